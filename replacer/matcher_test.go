package replacer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerlilow/mrf/replacer/query"
)

func specsOf(types ...query.MatcherType) []query.MatcherSpec {
	specs := make([]query.MatcherSpec, len(types))
	for i, typ := range types {
		specs[i] = query.MatcherSpec{Type: typ}
	}
	return specs
}

func spansOf(a Assignment) []Span {
	spans := make([]Span, len(a))
	for i, b := range a {
		spans[i] = b.Span
	}
	return spans
}

func TestMatchTokens(t *testing.T) {
	t.Parallel()
	const (
		anyM = query.MatchAny
		numM = query.MatchNumber
	)
	tests := []struct {
		name      string
		input     string
		types     []query.MatcherType
		wantSpans []Span
		wantMatch bool
	}{
		{
			name:      "no matchers, empty input",
			input:     "",
			types:     nil,
			wantSpans: []Span{},
			wantMatch: true,
		},
		{
			name:      "no matchers, non-empty input",
			input:     "abc",
			types:     nil,
			wantMatch: false,
		},
		{
			name:      "matcher needs a token",
			input:     "",
			types:     []query.MatcherType{anyM},
			wantMatch: false,
		},
		{
			name:      "single any takes everything",
			input:     "abc123",
			types:     []query.MatcherType{anyM},
			wantSpans: []Span{{0, 2}},
			wantMatch: true,
		},
		{
			name:      "two any, first is minimal",
			input:     "abc123",
			types:     []query.MatcherType{anyM, anyM},
			wantSpans: []Span{{0, 1}, {1, 2}},
			wantMatch: true,
		},
		{
			name:      "last any absorbs the rest",
			input:     "abc def456",
			types:     []query.MatcherType{anyM, anyM},
			wantSpans: []Span{{0, 1}, {1, 4}},
			wantMatch: true,
		},
		{
			name:      "trailing number forces the any to grow",
			input:     "abc def456",
			types:     []query.MatcherType{anyM, numM},
			wantSpans: []Span{{0, 3}, {3, 4}},
			wantMatch: true,
		},
		{
			name:      "skips earlier numbers",
			input:     "abc123def456",
			types:     []query.MatcherType{anyM, numM},
			wantSpans: []Span{{0, 3}, {3, 4}},
			wantMatch: true,
		},
		{
			name:      "two trailing numbers cannot match",
			input:     "abc123def456",
			types:     []query.MatcherType{anyM, numM, numM},
			wantMatch: false,
		},
		{
			name:      "number in the middle",
			input:     "image-1.jpg",
			types:     []query.MatcherType{anyM, numM, anyM},
			wantSpans: []Span{{0, 2}, {2, 3}, {3, 5}},
			wantMatch: true,
		},
		{
			name:      "backtracks past the first number",
			input:     "v1-final-2.txt",
			types:     []query.MatcherType{anyM, numM, anyM, numM, anyM},
			wantSpans: []Span{{0, 1}, {1, 2}, {2, 5}, {5, 6}, {6, 8}},
			wantMatch: true,
		},
		{
			name:      "regress to the previous matcher",
			input:     "a1b2",
			types:     []query.MatcherType{anyM, anyM, numM},
			wantSpans: []Span{{0, 1}, {1, 3}, {3, 4}},
			wantMatch: true,
		},
		{
			name:      "leading number",
			input:     "001 intro.mp3",
			types:     []query.MatcherType{numM, anyM},
			wantSpans: []Span{{0, 1}, {1, 6}},
			wantMatch: true,
		},
		{
			name:      "trailing digits split text",
			input:     "intro.mp3",
			types:     []query.MatcherType{anyM, numM},
			wantSpans: []Span{{0, 3}, {3, 4}},
			wantMatch: true,
		},
		{
			name:      "number matcher on text",
			input:     "abc",
			types:     []query.MatcherType{numM},
			wantMatch: false,
		},
		{
			name:      "last number cannot take several tokens",
			input:     "1-2",
			types:     []query.MatcherType{numM},
			wantMatch: false,
		},
		{
			name:      "more matchers than tokens",
			input:     "a-b",
			types:     []query.MatcherType{anyM, anyM, anyM, anyM},
			wantMatch: false,
		},
		{
			name:      "one token per matcher",
			input:     "a-b",
			types:     []query.MatcherType{anyM, anyM, anyM},
			wantSpans: []Span{{0, 1}, {1, 2}, {2, 3}},
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, ok := MatchTokens(Tokenize(tt.input), specsOf(tt.types...))
			require.Equal(t, tt.wantMatch, ok)
			if !ok {
				assert.Nil(t, a)
				return
			}
			assert.Equal(t, tt.wantSpans, spansOf(a))
		})
	}
}

func TestMatchTokensInvariants(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"example-001",
		"IMG_20190203_104512.jpg",
		"Season 2 Episode 10 - The Finale.mkv",
		"1 2 3 4 5",
		"no-digits-here",
	}
	patterns := []string{"{}", "{}{}", "{}{n}{}", "{n}{}", "{}{}{}{}", "{}{n}{}{n}{}"}

	for _, input := range inputs {
		tokens := Tokenize(input)
		for _, pattern := range patterns {
			specs, err := query.Compile(pattern)
			require.NoError(t, err)

			a, ok := MatchTokens(tokens, specs)
			if !ok {
				continue
			}
			require.Len(t, a, len(specs))

			// coverage: spans are contiguous, non-empty and reproduce the input
			next := 0
			var original string
			for _, b := range a {
				assert.Equal(t, next, b.Span.Start, "%q / %s", input, pattern)
				assert.Positive(t, b.Span.Len())
				next = b.Span.End
				original += SpanText(tokens, b.Span)

				// type fidelity
				if b.Spec.Type == query.MatchNumber {
					require.Equal(t, 1, b.Span.Len())
					assert.Equal(t, KindNumber, tokens[b.Span.Start].Kind)
				}
			}
			assert.Equal(t, len(tokens), next)
			assert.Equal(t, input, original)
		}
	}
}

func TestMatchTokensMinimality(t *testing.T) {
	t.Parallel()
	tokens := Tokenize("one two-three four.five")
	for n := 1; n <= len(tokens); n++ {
		specs := make([]query.MatcherSpec, n)
		a, ok := MatchTokens(tokens, specs)
		require.True(t, ok)
		for i, b := range a[:n-1] {
			assert.Equal(t, 1, b.Span.Len(), "matcher %d of %d", i, n)
		}
		assert.Equal(t, len(tokens)-(n-1), a[n-1].Span.Len())
	}
}
