package conversation

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// cannedReplies are served when no reply could be generated, keyed by base
// language code. The first entry in cannedTags is the matcher default.
var (
	cannedTags = []language.Tag{
		language.English,
		language.Hindi,
		language.Spanish,
		language.French,
		language.German,
	}

	cannedReplies = map[string][]string{
		"en": {
			"That's interesting! Could you tell me more about what you mean?",
			"I understand what you're saying. Could you tell me more about that?",
			"Sorry, I didn't catch that. Could you say it another way?",
		},
		"hi": {
			"यह दिलचस्प है! क्या आप इसके बारे में और बता सकते हैं?",
			"मैं समझ रहा हूँ। क्या आप थोड़ा और विस्तार से बताएँगे?",
		},
		"es": {
			"¡Qué interesante! ¿Puedes contarme un poco más?",
			"Entiendo lo que dices. ¿Puedes explicarlo de otra manera?",
		},
		"fr": {
			"C'est intéressant ! Peux-tu m'en dire un peu plus ?",
			"Je comprends. Peux-tu le dire autrement ?",
		},
		"de": {
			"Das ist interessant! Kannst du mir mehr darüber erzählen?",
			"Ich verstehe. Kannst du das anders sagen?",
		},
	}

	cannedMatcher = language.NewMatcher(cannedTags)
)

// cannedReply picks a continuation for lang, falling back to def and then to
// English. turn rotates through the available sentences.
func cannedReply(lang string, def language.Tag, turn int) string {
	tag, _ := language.MatchStrings(cannedMatcher, lang, def.String())
	base, _ := tag.Base()
	replies := cannedReplies[base.String()]
	if len(replies) == 0 {
		replies = cannedReplies["en"]
	}
	if turn < 0 {
		turn = 0
	}
	return replies[turn%len(replies)]
}

// languageName renders a BCP 47 code as an English language name for use in
// prompts. Anything that does not parse is assumed to already be a name.
func languageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "English"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
