package vocabulary

import (
	"regexp"
	"strings"

	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/segmentio/encoding/json"
)

var (
	leadingFenceRE  = regexp.MustCompile("^```[A-Za-z]*\\s*")
	trailingFenceRE = regexp.MustCompile("\\s*```$")
)

// Candidate is an extracted word. Candidates are not stored until the user
// confirms them.
type Candidate struct {
	Word     string `json:"word"`
	BaseForm string `json:"base_form"`
	Output   string `json:"output"`
}

// ParseCandidates turns raw model output into candidates. Code fences are
// stripped, entries that are not objects or miss a field are dropped, and an
// empty result is an UpstreamError. No cap is applied to the count.
func ParseCandidates(raw string) ([]Candidate, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = leadingFenceRE.ReplaceAllString(cleaned, "")
	cleaned = trailingFenceRE.ReplaceAllString(cleaned, "")

	// Valid also rejects trailing content after the first value.
	if !json.Valid([]byte(cleaned)) {
		return nil, errcodes.UpstreamError("invalid JSON")
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()

	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, errcodes.UpstreamError("invalid JSON")
	}

	items, ok := data.([]interface{})
	if !ok {
		return nil, errcodes.UpstreamError("expected array")
	}

	candidates := []Candidate{}
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		c := Candidate{
			Word:     text(obj["word"]),
			BaseForm: text(obj["base_form"]),
			Output:   text(obj["output"]),
		}
		if c.Word == "" || c.BaseForm == "" || c.Output == "" {
			continue
		}
		candidates = append(candidates, c)
	}

	if len(candidates) == 0 {
		return nil, errcodes.UpstreamError("no valid words")
	}

	return candidates, nil
}

// text coerces a decoded JSON scalar to trimmed text. null, missing fields,
// arrays and objects count as empty.
func text(v interface{}) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
