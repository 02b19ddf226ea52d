package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/engine"
)

// BarLayout sizes the bar chart. MaxValue is the value that fills the whole
// height.
type BarLayout struct {
	Width    int
	Height   int
	MaxValue int
}

func DefaultBarLayout(width, height int) BarLayout {
	return BarLayout{Width: width, Height: height, MaxValue: arrays.MaxValue}
}

// Fits reports whether n bars get at least one column each.
func (l BarLayout) Fits(n int) bool {
	return n <= l.Width
}

// barHeights scales values into [1, Height] rows.
func (l BarLayout) barHeights(values []int) []int {
	heights := make([]int, len(values))
	for i, v := range values {
		h := (v*l.Height + l.MaxValue - 1) / l.MaxValue
		heights[i] = min(max(h, 1), l.Height)
	}
	return heights
}

// RenderBars draws values as vertical bars colored by the roles of h.
func RenderBars(values []int, h engine.Highlight, layout BarLayout, theme Theme) string {
	n := len(values)
	if n == 0 || layout.Width <= 0 || layout.Height <= 0 || layout.MaxValue <= 0 {
		return ""
	}

	colW := max(layout.Width/n, 1)
	n = min(n, layout.Width/colW)
	fillW := colW
	if colW >= 3 {
		fillW = colW - 1
	}
	block := strings.Repeat("█", fillW) + strings.Repeat(" ", colW-fillW)
	blank := strings.Repeat(" ", colW)

	roles := engine.Roles(h, n)
	heights := layout.barHeights(values[:n])

	styles := make(map[engine.Role]lipgloss.Style, 5)
	styleFor := func(r engine.Role) lipgloss.Style {
		s, ok := styles[r]
		if !ok {
			s = lipgloss.NewStyle().Foreground(theme.RoleColor(r))
			styles[r] = s
		}
		return s
	}

	rows := make([]string, 0, layout.Height)
	for level := layout.Height; level >= 1; level-- {
		var row strings.Builder
		var seg strings.Builder
		segRole, segFilled := engine.RoleNone, false

		flush := func() {
			if seg.Len() == 0 {
				return
			}
			if segFilled {
				row.WriteString(styleFor(segRole).Render(seg.String()))
			} else {
				row.WriteString(seg.String())
			}
			seg.Reset()
		}

		for i := 0; i < n; i++ {
			filled := heights[i] >= level
			role := roles[i]
			if !filled {
				role = engine.RoleNone
			}
			if seg.Len() > 0 && (filled != segFilled || role != segRole) {
				flush()
			}
			segRole, segFilled = role, filled
			if filled {
				seg.WriteString(block)
			} else {
				seg.WriteString(blank)
			}
		}
		flush()
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

// RenderCompact draws values on a braille canvas, two bars per column,
// without role colors.
func RenderCompact(values []int, layout BarLayout, theme Theme) string {
	c := NewCanvas(max((len(values)+1)/2, 1), layout.Height)
	c.DrawBars(values, layout.MaxValue)
	return lipgloss.NewStyle().Foreground(theme.Bar).Render(c.String())
}
