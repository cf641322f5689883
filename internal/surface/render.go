package surface

import (
	"github.com/dshills/scrubbing/internal/renderer/core"
)

// OrientationAttr is the attribute carrying an element's scrub axis name.
const OrientationAttr = "scrub-orientation"

// Theme holds the styles used by Render.
type Theme struct {
	Label  core.Style
	Value  core.Style
	Active core.Style
	Hint   core.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Label:  core.DefaultStyle(),
		Value:  core.DefaultStyle().Bold(),
		Active: core.DefaultStyle().Bold().Reverse(),
		Hint:   core.DefaultStyle().WithForeground(core.ColorFromIndex(8)),
	}
}

// orientationGlyph maps an orientation hint to the glyph drawn after the
// value, the terminal stand-in for a resize cursor.
func orientationGlyph(name string) rune {
	switch name {
	case "Horizontal":
		return '↔'
	case "Vertical":
		return '↕'
	default:
		return 0
	}
}

// Render redraws every element and flushes the backend.
func (s *Surface) Render() {
	s.backend.Clear()
	for _, el := range s.elements {
		s.renderElement(el)
	}
	s.backend.Show()
}

func (s *Surface) renderElement(el *Element) {
	b := el.bounds
	if b.IsEmpty() {
		return
	}
	row := b.Top

	col := s.drawString(b.Left, row, b.Right, el.label, s.theme.Label)

	valueStyle := s.theme.Value
	if el == s.captured {
		valueStyle = s.theme.Active
	}
	col = s.drawString(el.valueOrigin(), row, b.Right, el.text, valueStyle)
	if col < el.valueOrigin() {
		col = el.valueOrigin()
	}

	if hint, ok := el.Attr(OrientationAttr); ok {
		if g := orientationGlyph(hint); g != 0 && col+1 < b.Right {
			s.backend.SetCell(col+1, row, core.NewStyledCell(g, s.theme.Hint))
		}
	}
}

// drawString draws text from column x, clipped at right, and returns the
// column after the last cell drawn.
func (s *Surface) drawString(x, y, right int, text string, style core.Style) int {
	for _, r := range text {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > right {
			break
		}
		s.backend.SetCell(x, y, core.NewStyledCell(r, style))
		x += w
	}
	return x
}
