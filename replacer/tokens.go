package replacer

import "strings"

// TokenKind classifies a run of input characters.
type TokenKind int

const (
	KindNumber      TokenKind = iota // ASCII digits
	KindWhitespace                   // ASCII whitespace
	KindPunctuation                  // ASCII punctuation
	KindText                         // everything else, including non-ASCII bytes
)

func (k TokenKind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindWhitespace:
		return "Whitespace"
	case KindPunctuation:
		return "Punctuation"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Token is a maximal run of one character class in the input.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int // byte offset of the first character
	End   int // byte offset just past the last character
}

// Tokenize splits input into tokens so that "Hi, number 42." becomes
// [Hi][,][ ][number][ ][42][.]. Concatenating the tokens' Text yields input.
func Tokenize(input string) []Token {
	var tokens []Token
	start := 0
	for start < len(input) {
		kind := kindOf(input[start])
		end := start + 1
		for end < len(input) && kindOf(input[end]) == kind {
			end++
		}
		tokens = append(tokens, Token{
			Kind:  kind,
			Text:  input[start:end],
			Start: start,
			End:   end,
		})
		start = end
	}
	return tokens
}

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// kindOf works on bytes: every byte of a multi-byte UTF-8 sequence is >= 0x80
// and therefore Text, so non-ASCII characters are never split.
func kindOf(c byte) TokenKind {
	switch {
	case '0' <= c && c <= '9':
		return KindNumber
	case c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r':
		return KindWhitespace
	case c < 0x80 && strings.IndexByte(asciiPunctuation, c) >= 0:
		return KindPunctuation
	default:
		return KindText
	}
}
