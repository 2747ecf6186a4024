package replacer

import "github.com/kerlilow/mrf/replacer/query"

// Span is a half-open range of token indices.
type Span struct {
	Start int
	End   int
}

// Len returns the number of tokens in the span.
func (s Span) Len() int { return s.End - s.Start }

// Binding pairs a matcher with the tokens it owns.
type Binding struct {
	Spec query.MatcherSpec
	Span Span
}

// Assignment holds one binding per matcher, in matcher order. The spans are
// contiguous and together cover every token.
type Assignment []Binding

// MatchTokens partitions tokens among specs. Every matcher but the last takes
// the fewest tokens that still let the rest of the pattern match; the last one
// takes whatever is left. It reports false when no partition exists.
func MatchTokens(tokens []Token, specs []query.MatcherSpec) (Assignment, bool) {
	spans := make([]Span, len(specs))
	if !assign(tokens, specs, spans, 0, 0) {
		return nil, false
	}
	a := make(Assignment, len(specs))
	for i, spec := range specs {
		a[i] = Binding{Spec: spec, Span: spans[i]}
	}
	return a, true
}

// assign fills spans[i:] for specs[i:] against tokens[from:] using recursive
// backtracking. A false return makes the caller grow its own span and retry.
func assign(tokens []Token, specs []query.MatcherSpec, spans []Span, i, from int) bool {
	remaining := len(tokens) - from
	if i == len(specs) {
		return remaining == 0
	}
	if remaining == 0 {
		return false
	}

	spec := specs[i]

	// The last matcher absorbs the whole suffix.
	if i == len(specs)-1 {
		span := Span{Start: from, End: len(tokens)}
		if !accepts(spec, tokens[span.Start:span.End]) {
			return false
		}
		spans[i] = span
		return true
	}

	// Every later matcher needs at least one token.
	maxSize := remaining - (len(specs) - 1 - i)
	if spec.Type == query.MatchNumber && maxSize > 1 {
		maxSize = 1
	}
	for size := 1; size <= maxSize; size++ {
		span := Span{Start: from, End: from + size}
		if !accepts(spec, tokens[span.Start:span.End]) {
			continue
		}
		spans[i] = span
		if assign(tokens, specs, spans, i+1, span.End) {
			return true
		}
	}
	return false
}

// accepts checks the matcher's type constraint against a proposed span.
func accepts(spec query.MatcherSpec, span []Token) bool {
	switch spec.Type {
	case query.MatchNumber:
		return len(span) == 1 && span[0].Kind == KindNumber
	default:
		return len(span) > 0
	}
}
