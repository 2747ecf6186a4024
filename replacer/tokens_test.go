package replacer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:  "sentence",
			input: "Hi, number 42.",
			expected: []Token{
				{Kind: KindText, Text: "Hi", Start: 0, End: 2},
				{Kind: KindPunctuation, Text: ",", Start: 2, End: 3},
				{Kind: KindWhitespace, Text: " ", Start: 3, End: 4},
				{Kind: KindText, Text: "number", Start: 4, End: 10},
				{Kind: KindWhitespace, Text: " ", Start: 10, End: 11},
				{Kind: KindNumber, Text: "42", Start: 11, End: 13},
				{Kind: KindPunctuation, Text: ".", Start: 13, End: 14},
			},
		},
		{
			name:  "file name",
			input: "example-001",
			expected: []Token{
				{Kind: KindText, Text: "example", Start: 0, End: 7},
				{Kind: KindPunctuation, Text: "-", Start: 7, End: 8},
				{Kind: KindNumber, Text: "001", Start: 8, End: 11},
			},
		},
		{
			name:  "punctuation run",
			input: "a_-.b",
			expected: []Token{
				{Kind: KindText, Text: "a", Start: 0, End: 1},
				{Kind: KindPunctuation, Text: "_-.", Start: 1, End: 4},
				{Kind: KindText, Text: "b", Start: 4, End: 5},
			},
		},
		{
			name:  "mixed whitespace",
			input: "a \t\r\n\fb",
			expected: []Token{
				{Kind: KindText, Text: "a", Start: 0, End: 1},
				{Kind: KindWhitespace, Text: " \t\r\n\f", Start: 1, End: 6},
				{Kind: KindText, Text: "b", Start: 6, End: 7},
			},
		},
		{
			name:  "vertical tab is text",
			input: "\v",
			expected: []Token{
				{Kind: KindText, Text: "\v", Start: 0, End: 1},
			},
		},
		{
			name:  "non ascii stays in one text token",
			input: "héllo1",
			expected: []Token{
				{Kind: KindText, Text: "héllo", Start: 0, End: 6},
				{Kind: KindNumber, Text: "1", Start: 6, End: 7},
			},
		},
		{
			name:  "non ascii digits are text",
			input: "٣",
			expected: []Token{
				{Kind: KindText, Text: "٣", Start: 0, End: 2},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestTokenizeReconstructsInput(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		" ",
		"IMG_0001.JPG",
		"My Holiday (2019) - part 3.mkv",
		"über straße 12",
		"a\x00b\xffc",
		"{}{n:03}",
		"..hidden",
	}
	for _, input := range inputs {
		tokens := Tokenize(input)

		var sb strings.Builder
		prevEnd := 0
		for i, tok := range tokens {
			assert.Equal(t, prevEnd, tok.Start, "token %d of %q is not contiguous", i, input)
			assert.Equal(t, input[tok.Start:tok.End], tok.Text)
			assert.NotEmpty(t, tok.Text)
			if i > 0 {
				assert.NotEqual(t, tokens[i-1].Kind, tok.Kind, "adjacent tokens of %q share a kind", input)
			}
			prevEnd = tok.End
			sb.WriteString(tok.Text)
		}
		assert.Equal(t, input, sb.String())
	}
}
