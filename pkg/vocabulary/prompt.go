package vocabulary

import (
	"fmt"
	"strings"

	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/chapterprep/chapterprep/pkg/models"
)

var levelGuidance = map[string]string{
	models.LevelA1: "Pick very common words that an absolute beginner probably does not know yet: concrete nouns, simple adjectives, basic verbs. Skip the words everybody recognizes (hello, thanks and the like).",
	models.LevelA2: "Pick elementary vocabulary that an A2 learner still struggles with: everyday vocabulary, common adjectives, frequent verbs beyond the basic core.",
	models.LevelB1: "Pick intermediate words: more precise topical vocabulary, common expressions, nuanced verbs, frequent false friends. Skip very simple words as well as rare ones.",
	models.LevelB2: "Pick upper-intermediate words: formal vocabulary, common idioms, collocations, accessible specialized terms. Prefer words that really enrich active vocabulary.",
	models.LevelC1: "Pick advanced words: formal or literary vocabulary, idioms, precise collocations, specialized terms. They must be a real challenge even for a good speaker.",
	models.LevelC2: "Pick rare, idiomatic or highly specialized words that only near-native speakers master: archaisms, regionalisms, precise jargon, subtle set phrases. Keep to the truly difficult words.",
}

// PromptParams are the inputs of BuildPrompt.
type PromptParams struct {
	Text            string
	Level           string
	TargetLanguage  string
	WordCount       int
	TranslationMode string
}

// Validate rejects parameters no prompt can be built from.
func (p PromptParams) Validate() error {
	if _, ok := levelGuidance[p.Level]; !ok {
		return errcodes.ValidationError(fmt.Sprintf("%q is not a valid level", p.Level))
	}
	switch p.TranslationMode {
	case models.TranslationModeTranslation, models.TranslationModeDefinition:
	default:
		return errcodes.ValidationError(fmt.Sprintf("%q is not a valid translation mode", p.TranslationMode))
	}
	if strings.TrimSpace(p.TargetLanguage) == "" {
		return errcodes.ValidationError(`"target_language" is required`)
	}
	if p.WordCount < MinWordsToExtract || p.WordCount > MaxWordsToExtract {
		return errcodes.ValidationError(fmt.Sprintf(`"words_to_extract" must be between %d and %d`, MinWordsToExtract, MaxWordsToExtract))
	}
	return nil
}

// BuildPrompt renders the extraction instruction. It is a pure function of
// its parameters.
func BuildPrompt(p PromptParams) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	var output string
	if p.TranslationMode == models.TranslationModeTranslation {
		output = `For each word, the "output" field holds its French translation, short and precise (1 to 4 words at most).`
	} else {
		output = fmt.Sprintf(`For each word, the "output" field holds a simple definition in the target language (%s), in one short sentence (15 words at most), understandable at level %s.`, p.TargetLanguage, p.Level)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert in language teaching. Your job is to extract vocabulary worth learning from a text written in %s.\n\n", p.TargetLanguage)
	b.WriteString("SOURCE TEXT:\n---\n")
	b.WriteString(p.Text)
	b.WriteString("\n---\n\n")
	b.WriteString("INSTRUCTIONS:\n")
	fmt.Fprintf(&b, "- Learner level: %s\n", p.Level)
	fmt.Fprintf(&b, "- %s\n", levelGuidance[p.Level])
	fmt.Fprintf(&b, "- Select EXACTLY %d words or expressions from the text.\n", p.WordCount)
	fmt.Fprintf(&b, "- %s\n", output)
	b.WriteString(`- The "word" field holds the word exactly as it appears in the text.` + "\n")
	b.WriteString(`- The "base_form" field holds the canonical form: infinitive for verbs, nominative singular for nouns, masculine singular for adjectives.` + "\n")
	b.WriteString("- Do not select proper nouns (first names, places).\n")
	b.WriteString("- Do not select words that are identical in French and in the target language.\n")
	b.WriteString("- Return ONLY a valid JSON array, with no text before or after it and no markdown code block.\n\n")
	b.WriteString("EXPECTED RESPONSE FORMAT (example):\n")
	b.WriteString("[\n  {\n")
	b.WriteString(`    "word": "the word as it appears in the text",` + "\n")
	b.WriteString(`    "base_form": "canonical form",` + "\n")
	b.WriteString(`    "output": "translation or definition"` + "\n")
	b.WriteString("  }\n]\n\n")
	fmt.Fprintf(&b, "Now return the JSON array for the %d selected words.", p.WordCount)

	return b.String(), nil
}
