package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/metrics"
)

const background = "#0a0a0a"

// SVGOptions sizes a bar snapshot. Colors maps highlight roles to fill
// colors; missing roles use the RoleNone entry, then white.
type SVGOptions struct {
	BarWidth float64
	Gap      float64
	Height   float64
	MaxValue int
	Colors   map[engine.Role]string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		BarWidth: 8,
		Gap:      2,
		Height:   240,
		MaxValue: arrays.MaxValue,
		Colors: map[engine.Role]string{
			engine.RoleNone:    "#64c8ff",
			engine.RoleCompare: "#ffc864",
			engine.RoleSwap:    "#ff6b6b",
			engine.RoleWrite:   "#c38bff",
			engine.RoleSorted:  "#4ade80",
		},
	}
}

func (o SVGOptions) color(r engine.Role) string {
	if c, ok := o.Colors[r]; ok {
		return c
	}
	if c, ok := o.Colors[engine.RoleNone]; ok {
		return c
	}
	return "#ffffff"
}

// BarsToSVG draws one rectangle per value, bottom aligned and colored by
// the roles of h.
func BarsToSVG(values []int, h engine.Highlight, opts SVGOptions) string {
	if len(values) == 0 || opts.MaxValue <= 0 {
		return ""
	}

	step := opts.BarWidth + opts.Gap
	width := float64(len(values))*step + opts.Gap
	roles := engine.Roles(h, len(values))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, opts.Height, width, opts.Height, background))

	for i, v := range values {
		bh := float64(min(max(v, 0), opts.MaxValue)) / float64(opts.MaxValue) * opts.Height
		x := opts.Gap + float64(i)*step
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, opts.Height-bh, opts.BarWidth, bh, opts.color(roles[i])))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TraceToSVG draws the comparison count of each sample as a polyline.
func TraceToSVG(samples []metrics.Sample, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}

	peak := samples[len(samples)-1].Comparisons
	for _, s := range samples {
		peak = max(peak, s.Comparisons)
	}
	if peak == 0 {
		peak = 1
	}
	last := float64(len(samples) - 1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor))

	for i, s := range samples {
		x := float64(i) / last * float64(width)
		y := float64(height) - float64(s.Comparisons)/float64(peak)*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
