// Package main implements contentgen, a command line tool for trying the
// content prompts against the configured language model without running the
// HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/content"
	"github.com/storyspire/saarthi-api/internal/conversation"
	"github.com/storyspire/saarthi-api/internal/domain"
	"github.com/storyspire/saarthi-api/internal/generation"
	"github.com/storyspire/saarthi-api/internal/platform/llm"
	"github.com/storyspire/saarthi-api/internal/platform/logger"
)

// generatorFactory builds the text generator. Tests replace it.
type generatorFactory func(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (generation.TextGenerator, error)

// cli carries the state shared by all subcommands.
type cli struct {
	configPath   string
	verbose      bool
	newGenerator generatorFactory
	loadConfig   func(path string) (*config.Config, error)
}

func main() {
	if err := newRootCmd(llm.NewGenerator, config.LoadFile).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(factory generatorFactory, load func(string) (*config.Config, error)) *cobra.Command {
	c := &cli{newGenerator: factory, loadConfig: load}

	root := &cobra.Command{
		Use:          "contentgen",
		Short:        "Generate learning content from the command line",
		Long:         "contentgen runs the same prompts, recovery and fallbacks as the API server and prints the result as JSON.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log every recovery stage to stderr")

	root.AddCommand(c.generateCmd(), c.pingCmd(), c.kindsCmd())
	return root
}

// setup loads configuration and builds a logger and a generator.
func (c *cli) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, generation.TextGenerator, error) {
	cfg, err := c.loadConfig(c.configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	log := logger.New(cmd.ErrOrStderr(), level)

	gen, err := c.newGenerator(cmd.Context(), log, cfg.LLM)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	return cfg, log, gen, nil
}

// generateOutput is what the generate command prints.
type generateOutput struct {
	Kind    string              `json:"kind"`
	Source  string              `json:"source"`
	Reason  string              `json:"reason,omitempty"`
	Items   domain.ContentBatch `json:"items"`
	Raw     string              `json:"raw,omitempty"`
	Cleaned string              `json:"cleaned,omitempty"`
}

func (c *cli) generateCmd() *cobra.Command {
	var (
		difficulty string
		count      int
		showRaw    bool
	)

	cmd := &cobra.Command{
		Use:   "generate <kind>",
		Short: "Generate one batch of content",
		Long: "Generate one batch of flashcards, word-match pairs or sentence-builder items.\n" +
			"Kinds: " + kindList() + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, gen, err := c.setup(cmd)
			if err != nil {
				return err
			}
			if difficulty == "" {
				difficulty = cfg.Content.DefaultDifficulty
			}
			if count == 0 {
				count = cfg.Content.DefaultCount
			}

			req, err := domain.NewGenerationRequest(args[0], difficulty, count)
			if err != nil {
				return err
			}

			extractor, err := content.NewExtractor(gen, log, cfg.Content, requestTimeout(cfg))
			if err != nil {
				return err
			}

			result, err := extractor.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := generateOutput{
				Kind:   req.Kind.String(),
				Source: string(result.Source),
				Items:  result.Batch,
			}
			if result.Reason != nil {
				out.Reason = result.Reason.Error()
			}
			if showRaw {
				out.Raw = result.Raw
				out.Cleaned = result.Cleaned
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "learner level passed to the prompt (default from config)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of items to request (default from config)")
	cmd.Flags().BoolVar(&showRaw, "raw", false, "include the model text before and after recovery")
	return cmd
}

func (c *cli) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the language model is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, gen, err := c.setup(cmd)
			if err != nil {
				return err
			}
			relay, err := conversation.NewRelay(gen, log, cfg.Conversation, requestTimeout(cfg))
			if err != nil {
				return err
			}

			start := time.Now()
			text, err := relay.Ping(cmd.Context())
			if err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", text, cfg.LLM.ModelName, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func (c *cli) kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the content kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, k := range domain.TaskKinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func requestTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.LLM.RequestTimeoutSeconds) * time.Second
}

func kindList() string {
	kinds := domain.TaskKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
