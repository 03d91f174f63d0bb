package vocabulary

import (
	"context"
	"testing"

	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.response, g.err
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{response: "```json\n[{\"word\":\"canapé\",\"base_form\":\"canapé\",\"output\":\"sofa\"}]\n```"}
	extractor := NewExtractor(gen)

	candidates, err := extractor.Extract(context.Background(), testParams())
	require.NoError(t, err)
	assert.Equal(t, []Candidate{{Word: "canapé", BaseForm: "canapé", Output: "sofa"}}, candidates)

	require.Len(t, gen.prompts, 1)
	expected, err := BuildPrompt(testParams())
	require.NoError(t, err)
	assert.Equal(t, expected, gen.prompts[0])
}

func TestExtractor_Extract_InvalidParamsSkipUpstream(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{}
	p := testParams()
	p.Level = "Z9"

	_, err := NewExtractor(gen).Extract(context.Background(), p)
	assert.True(t, errcodes.IsCode(err, "validation_error"))
	assert.Empty(t, gen.prompts)
}

func TestExtractor_Extract_PropagatesGeneratorErrors(t *testing.T) {
	t.Parallel()

	for _, upstream := range []error{
		errcodes.UpstreamError("upstream timeout"),
		errcodes.Misconfigured("upstream API key is not configured"),
	} {
		_, err := NewExtractor(&stubGenerator{err: upstream}).Extract(context.Background(), testParams())
		assert.Equal(t, upstream, err)
	}
}

func TestExtractor_Extract_ValidatesResponse(t *testing.T) {
	t.Parallel()

	_, err := NewExtractor(&stubGenerator{response: `{"not":"an array"}`}).Extract(context.Background(), testParams())
	requireUpstream(t, err, "expected array")
}

func TestCountWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 4, CountWords("Il était  une\nfois"))
}

func TestRecommendWordsToExtract(t *testing.T) {
	t.Parallel()

	cases := map[int]int{
		0:     5,
		40:    5,
		100:   5,
		150:   8,
		200:   10,
		250:   12,
		1000:  50,
		5000:  50,
		10000: 50,
	}
	for wordCount, want := range cases {
		assert.Equal(t, want, RecommendWordsToExtract(wordCount), wordCount)
	}
}
