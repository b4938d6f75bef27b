package content

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"text/template"

	"github.com/storyspire/saarthi-api/internal/domain"
)

//go:embed prompts/*.tmpl
var embeddedPrompts embed.FS

// promptData represents the data passed to the prompt templates.
type promptData struct {
	Count      int
	Difficulty string
}

// prompts holds one parsed template per content kind.
type prompts struct {
	byKind map[domain.TaskKind]*template.Template
}

// loadPrompts parses the template for every kind from dir, or from the
// embedded set when dir is empty. A missing template is an error.
func loadPrompts(dir string) (*prompts, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(embeddedPrompts, "prompts")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded prompts: %w", err)
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	p := &prompts{byKind: make(map[domain.TaskKind]*template.Template, len(domain.TaskKinds()))}
	for _, kind := range domain.TaskKinds() {
		name := kind.String() + ".tmpl"
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt template %s: %w", name, err)
		}
		tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt template %s: %w", name, err)
		}
		p.byKind[kind] = tmpl
	}
	return p, nil
}

// render builds the instruction for req.
func (p *prompts) render(req domain.GenerationRequest) (string, error) {
	tmpl, ok := p.byKind[req.Kind]
	if !ok {
		return "", fmt.Errorf("%w: no prompt for kind %q", domain.ErrInvalidRequest, req.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{Count: req.Count, Difficulty: req.Difficulty}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
