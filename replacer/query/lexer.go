package query

import "strings"

// lexMode tracks which part of a matcher unit the lexer is in. The same
// character means different things depending on it, e.g. '=' is a delimiter
// after the marker but literal text inside a replacement.
type lexMode int

const (
	modeOutside lexMode = iota // between units
	modeMarker                 // after '{', before '=' or ':'
	modeReplace                // after '='
	modeFormat                 // after ':'
)

// Lexer is responsible for scanning a replacer string and producing tokens.
type Lexer struct {
	input    string // the entire input to tokenize
	position int    // current reading position in input
	mode     lexMode
	tokens   []Token
}

// NewLexer returns a new Lexer with the given input and initializes state.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:    input,
		position: 0,
		mode:     modeOutside,
		tokens:   make([]Token, 0),
	}
}

// Tokenize processes the entire input and produces the list of tokens,
// terminated by a TokenEOF. Replacement text is returned unescaped.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		currentPos := l.position
		c := l.input[l.position]

		switch l.mode {
		case modeOutside:
			switch c {
			case '{':
				l.addToken(TokenLBrace, "{", currentPos)
				l.position++
				l.mode = modeMarker
			case '}':
				l.addToken(TokenRBrace, "}", currentPos)
				l.position++
			default:
				l.lexUntil(currentPos, "{}")
			}

		case modeMarker:
			switch c {
			case '}':
				l.closeUnit(currentPos)
			case '=':
				l.addToken(TokenEqual, "=", currentPos)
				l.position++
				l.mode = modeReplace
			case ':':
				l.addToken(TokenColon, ":", currentPos)
				l.position++
				l.mode = modeFormat
			default:
				l.lexUntil(currentPos, "}=:")
			}

		case modeReplace:
			switch c {
			case '}':
				l.closeUnit(currentPos)
			case ':':
				l.addToken(TokenColon, ":", currentPos)
				l.position++
				l.mode = modeFormat
			default:
				if err := l.lexReplace(currentPos); err != nil {
					return nil, err
				}
			}

		case modeFormat:
			if c == '}' {
				l.closeUnit(currentPos)
				continue
			}
			l.lexUntil(currentPos, "}")
		}
	}

	l.addToken(TokenEOF, "", l.position)
	return l.tokens, nil
}

func (l *Lexer) closeUnit(pos int) {
	l.addToken(TokenRBrace, "}", pos)
	l.position++
	l.mode = modeOutside
}

// lexUntil consumes raw text up to (not including) any byte in stops.
func (l *Lexer) lexUntil(startPos int, stops string) {
	start := l.position
	for l.position < len(l.input) && strings.IndexByte(stops, l.input[l.position]) < 0 {
		l.position++
	}
	l.addToken(TokenText, l.input[start:l.position], startPos)
}

// lexReplace consumes replacement text up to an unescaped ':' or '}'.
// A backslash may escape any of `{}:\`.
func (l *Lexer) lexReplace(startPos int) error {
	var value strings.Builder
	for l.position < len(l.input) {
		c := l.input[l.position]
		if c == ':' || c == '}' {
			break
		}
		if c == '\\' {
			if l.position+1 >= len(l.input) {
				return errorf(l.position, "'\\' escape is at the end of input")
			}
			next := l.input[l.position+1]
			if !isEscapable(next) {
				return errorf(l.position, "invalid escape %q", l.input[l.position:l.position+2])
			}
			value.WriteByte(next)
			l.position += 2
			continue
		}
		value.WriteByte(c)
		l.position++
	}
	l.addToken(TokenText, value.String(), startPos)
	return nil
}

// addToken is a helper to append a new token to the lexer's token list.
func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	})
}

func isEscapable(c byte) bool {
	switch c {
	case '{', '}', ':', '\\':
		return true
	}
	return false
}
