package query

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType defines different types of tokens produced by the lexer.
type TokenType int

const (
	TokenText   TokenType = iota // marker, replacement or format text
	TokenLBrace                  // '{'
	TokenRBrace                  // '}'
	TokenEqual                   // '=' starting a replacement
	TokenColon                   // ':' starting a format
	TokenEOF                     // end of input
)

func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "Text"
	case TokenLBrace:
		return "LBrace"
	case TokenRBrace:
		return "RBrace"
	case TokenEqual:
		return "Equal"
	case TokenColon:
		return "Colon"
	case TokenEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Token represents a single lexical token with type, value, and position.
type Token struct {
	Type     TokenType // type of this token
	Value    string    // unescaped text for this token
	Position int       // byte offset in the replacer string
}

// MatcherType is the type constraint of a matcher.
type MatcherType int

const (
	MatchAny    MatcherType = iota // {}
	MatchNumber                    // {n}
)

func (m MatcherType) String() string {
	switch m {
	case MatchAny:
		return "any"
	case MatchNumber:
		return "number"
	default:
		return "unknown"
	}
}

// FormatSpec pads rendered content to a minimum width.
type FormatSpec struct {
	Width   int
	ZeroPad bool
}

func (f FormatSpec) String() string {
	if f.ZeroPad {
		return "0" + strconv.Itoa(f.Width)
	}
	return strconv.Itoa(f.Width)
}

// MatcherSpec is one compiled `{...}` unit of a replacer string.
type MatcherSpec struct {
	Type    MatcherType
	Replace *string     // literal replacement, nil when the matched text is kept
	Format  *FormatSpec // nil when no format was given
	Pos     int         // byte offset of the opening brace
}

// String renders the matcher back into replacer syntax.
func (m MatcherSpec) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	if m.Type == MatchNumber {
		sb.WriteByte('n')
	}
	if m.Replace != nil {
		sb.WriteByte('=')
		sb.WriteString(escapeReplace(*m.Replace))
	}
	if m.Format != nil {
		sb.WriteByte(':')
		sb.WriteString(m.Format.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// GoString is used by %#v in test failure output.
func (m MatcherSpec) GoString() string {
	return fmt.Sprintf("MatcherSpec(%s@%d)", m.String(), m.Pos)
}

func escapeReplace(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if isEscapable(s[i]) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
