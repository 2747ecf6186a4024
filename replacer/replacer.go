// Package replacer maps strings through a compiled replacer such as
// "{}{n:03}{}". An input is split into Number, Whitespace, Punctuation and
// Text tokens, the tokens are partitioned among the matchers, and each
// matcher's share is optionally replaced and padded before being joined
// into the output.
package replacer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kerlilow/mrf/replacer/query"
)

// ErrNoMatch is returned when the matchers cannot cover an item.
var ErrNoMatch = errors.New("unable to match specifiers with input")

// Replacer is a compiled replacer string. It is immutable and safe for
// concurrent use.
type Replacer struct {
	source string
	specs  []query.MatcherSpec
}

// Compile parses a replacer string. Errors satisfy
// errors.Is(err, query.ErrMalformedSpec).
func Compile(s string) (*Replacer, error) {
	specs, err := query.Compile(s)
	if err != nil {
		return nil, err
	}
	return &Replacer{source: s, specs: specs}, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// replacers known at compile time.
func MustCompile(s string) *Replacer {
	r, err := Compile(s)
	if err != nil {
		panic(fmt.Sprintf("replacer: Compile(%q): %v", s, err))
	}
	return r
}

// String returns the source replacer string.
func (r *Replacer) String() string { return r.source }

// NumMatchers returns how many matchers the replacer has.
func (r *Replacer) NumMatchers() int { return len(r.specs) }

// Specs returns a copy of the compiled matcher specs.
func (r *Replacer) Specs() []query.MatcherSpec {
	return append([]query.MatcherSpec(nil), r.specs...)
}

// Replace maps item through the replacer.
func (r *Replacer) Replace(item string) (string, error) {
	tokens := Tokenize(item)
	a, ok := MatchTokens(tokens, r.specs)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoMatch, item)
	}
	return Render(tokens, a), nil
}

// Part describes what one matcher did to an item.
type Part struct {
	Index    int    // matcher index
	Original string // input text owned by the matcher
	Rendered string // text the matcher contributed to the output
	Literal  bool   // Rendered came from a replacement literal
	InStart  int    // byte range of Original in the input
	InEnd    int
	OutStart int // byte range of Rendered in the output
	OutEnd   int
}

// Match is the detailed result of mapping one item.
type Match struct {
	Input  string
	Output string
	Parts  []Part
}

// Match maps item and reports where each matcher's text came from and went.
func (r *Replacer) Match(item string) (*Match, error) {
	tokens := Tokenize(item)
	a, ok := MatchTokens(tokens, r.specs)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, item)
	}

	m := &Match{Input: item, Parts: make([]Part, 0, len(a))}
	var sb strings.Builder
	out := 0
	for i, b := range a {
		rendered := renderBinding(tokens, b)
		m.Parts = append(m.Parts, Part{
			Index:    i,
			Original: SpanText(tokens, b.Span),
			Rendered: rendered,
			Literal:  b.Spec.Replace != nil,
			InStart:  tokens[b.Span.Start].Start,
			InEnd:    tokens[b.Span.End-1].End,
			OutStart: out,
			OutEnd:   out + len(rendered),
		})
		sb.WriteString(rendered)
		out += len(rendered)
	}
	m.Output = sb.String()
	return m, nil
}
