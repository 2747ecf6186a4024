package replacer

import (
	"strings"

	"github.com/kerlilow/mrf/replacer/query"
)

// Format right-aligns s to f.Width, padding with '0' or ' '.
// Content at least that wide is returned unchanged; nothing is
// ever truncated, so formatting twice is the same as formatting once.
func Format(s string, f *query.FormatSpec) string {
	if f == nil || len(s) >= f.Width {
		return s
	}
	fill := " "
	if f.ZeroPad {
		fill = "0"
	}
	return strings.Repeat(fill, f.Width-len(s)) + s
}

// SpanText returns the original text covered by span.
func SpanText(tokens []Token, span Span) string {
	if span.Len() == 1 {
		return tokens[span.Start].Text
	}
	var sb strings.Builder
	for _, tok := range tokens[span.Start:span.End] {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// renderBinding resolves a binding's content and applies its format.
func renderBinding(tokens []Token, b Binding) string {
	content := ""
	if b.Spec.Replace != nil {
		content = *b.Spec.Replace
	} else {
		content = SpanText(tokens, b.Span)
	}
	return Format(content, b.Spec.Format)
}

// Render produces the output string for an assignment over tokens.
func Render(tokens []Token, a Assignment) string {
	var sb strings.Builder
	for _, b := range a {
		sb.WriteString(renderBinding(tokens, b))
	}
	return sb.String()
}
