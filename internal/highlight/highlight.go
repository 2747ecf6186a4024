package highlight

import (
	"strings"

	"github.com/fatih/color"

	"github.com/kerlilow/mrf/replacer"
)

var palette = []color.Attribute{
	color.FgCyan,
	color.FgGreen,
	color.FgYellow,
	color.FgRed,
	color.FgMagenta,
}

// Highlighter colours matched spans by matcher index.
type Highlighter struct {
	styles []*color.Color
}

// New returns a Highlighter. When enabled is false every method returns
// plain text regardless of color.NoColor.
func New(enabled bool) *Highlighter {
	styles := make([]*color.Color, len(palette))
	for i, attr := range palette {
		styles[i] = color.New(attr)
		if enabled {
			styles[i].EnableColor()
		} else {
			styles[i].DisableColor()
		}
	}
	return &Highlighter{styles: styles}
}

func (h *Highlighter) style(index int) *color.Color {
	return h.styles[index%len(h.styles)]
}

// Input returns m.Input with each matcher's span in its colour.
func (h *Highlighter) Input(m *replacer.Match) string {
	var sb strings.Builder
	for _, p := range m.Parts {
		sb.WriteString(h.style(p.Index).Sprint(m.Input[p.InStart:p.InEnd]))
	}
	return sb.String()
}

// Output returns m.Output with the parts that came from the input in their
// matcher's colour. Replacement literals are left plain.
func (h *Highlighter) Output(m *replacer.Match) string {
	var sb strings.Builder
	for _, p := range m.Parts {
		if p.Literal || p.Rendered == "" {
			sb.WriteString(p.Rendered)
			continue
		}
		sb.WriteString(h.style(p.Index).Sprint(p.Rendered))
	}
	return sb.String()
}

// Mapping renders "input -> output".
func (h *Highlighter) Mapping(m *replacer.Match) string {
	return h.Input(m) + " -> " + h.Output(m)
}
