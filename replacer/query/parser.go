package query

import (
	"strconv"
)

// maxWidth bounds format widths so a typo cannot allocate gigabytes of padding.
const maxWidth = 1 << 16

// Parser consumes tokens produced by the lexer and builds matcher specs.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a new Parser instance
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
	}
}

// Compile parses a replacer string such as "{}{n:03}{=_}" into its matcher
// specs. The result is read-only and may be shared between goroutines.
func Compile(replacer string) ([]MatcherSpec, error) {
	tokens, err := NewLexer(replacer).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parse processes all tokens and returns one spec per unit.
func (p *Parser) Parse() ([]MatcherSpec, error) {
	var specs []MatcherSpec
	for {
		token := p.peek()
		switch token.Type {
		case TokenEOF:
			return specs, nil
		case TokenLBrace:
			spec, err := p.parseUnit()
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		case TokenRBrace:
			return nil, errorf(token.Position, "unexpected '}' outside of a matcher")
		default:
			return nil, errorf(token.Position, "literal text %q outside of a matcher is not supported", token.Value)
		}
	}
}

// parseUnit parses `{ marker? ('=' replace)? (':' format)? }`.
func (p *Parser) parseUnit() (MatcherSpec, error) {
	open := p.next()
	spec := MatcherSpec{Type: MatchAny, Pos: open.Position}

	if tok := p.peek(); tok.Type == TokenText {
		p.next()
		typ, err := parseMarker(tok)
		if err != nil {
			return spec, err
		}
		spec.Type = typ
	}

	if p.peek().Type == TokenEqual {
		p.next()
		replace := ""
		if tok := p.peek(); tok.Type == TokenText {
			p.next()
			replace = tok.Value
		}
		spec.Replace = &replace
	}

	if colon := p.peek(); colon.Type == TokenColon {
		p.next()
		tok := p.peek()
		if tok.Type != TokenText {
			return spec, errorf(tok.Position, "missing format width")
		}
		p.next()
		format, err := parseFormat(tok)
		if err != nil {
			return spec, err
		}
		spec.Format = format
	}

	closing := p.next()
	switch closing.Type {
	case TokenRBrace:
		return spec, nil
	case TokenEOF:
		return spec, errorf(open.Position, "unterminated matcher")
	default:
		return spec, errorf(closing.Position, "unexpected %s %q in matcher", closing.Type, closing.Value)
	}
}

func parseMarker(tok Token) (MatcherType, error) {
	switch tok.Value {
	case "n":
		return MatchNumber, nil
	default:
		return MatchAny, errorf(tok.Position, "unknown matcher type %q", tok.Value)
	}
}

// parseFormat parses an optional '0' pad flag followed by a width. A lone
// "0" is a zero width, not a pad flag without a width.
func parseFormat(tok Token) (*FormatSpec, error) {
	digits := tok.Value
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, errorf(tok.Position+i, "format width must be an unsigned integer, got %q", digits)
		}
	}

	format := &FormatSpec{}
	if len(digits) > 1 && digits[0] == '0' {
		format.ZeroPad = true
		digits = digits[1:]
	}

	width, err := strconv.Atoi(digits)
	if err != nil || width > maxWidth {
		return nil, errorf(tok.Position, "format width %s is too large (max %d)", digits, maxWidth)
	}
	format.Width = width
	return format, nil
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF, Position: -1}
	}
	return p.tokens[p.current]
}

// next consumes the current token.
func (p *Parser) next() Token {
	tok := p.peek()
	if p.current < len(p.tokens) {
		p.current++
	}
	return tok
}
