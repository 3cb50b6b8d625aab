package export

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/collide/internal/arena"
)

var palette = []string{"#ff6b6b", "#4ecdc4", "#ffe66d", "#a29bfe", "#55efc4", "#fd79a8", "#74b9ff", "#fab1a0"}

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

// BodiesToSVG draws every body as a filled circle in arena coordinates.
func BodiesToSVG(bodies []arena.Body, width, height float64) string {
	var sb strings.Builder
	header(&sb, width, height)

	sb.WriteString(`<g stroke="#ffffff" stroke-width="0.5" fill-opacity="0.85">
`)
	for i, b := range bodies {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, b.Pos.X, b.Pos.Y, b.R, palette[i%len(palette)]))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws a polyline through points in arena coordinates.
func TrajectoryToSVG(points []r2.Vec, width, height float64, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// Trail records the centre of one body every frame. It satisfies
// sim.Observer.
type Trail struct {
	Index  int
	Points []r2.Vec
}

func (t *Trail) OnFrame(w *arena.World, st arena.Stats, tm float64) {
	if t.Index < 0 || t.Index >= len(w.Bodies) {
		return
	}
	t.Points = append(t.Points, w.Bodies[t.Index].Pos)
}
