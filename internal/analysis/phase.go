package analysis

import (
	"fmt"
	"strings"
)

// PhasePortrait2D is a set of (x, y) samples, typically two per-frame
// series of the same run.
type PhasePortrait2D struct {
	XLabel, YLabel string
	Points         []struct{ X, Y float64 }
}

// NewPhasePortrait pairs xs and ys up to the shorter length.
func NewPhasePortrait(xLabel string, xs []float64, yLabel string, ys []float64) *PhasePortrait2D {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	p := &PhasePortrait2D{
		XLabel: xLabel,
		YLabel: yLabel,
		Points: make([]struct{ X, Y float64 }, n),
	}
	for i := 0; i < n; i++ {
		p.Points[i].X, p.Points[i].Y = xs[i], ys[i]
	}
	return p
}

// PhasePortraitToASCII plots the portrait on a width x height character grid
// with 10% padding and the zero axes drawn where they are visible.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 {
		return ""
	}

	// Find bounds
	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	// Create canvas
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Plot points
	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	if portrait.XLabel != "" || portrait.YLabel != "" {
		sb.WriteString(fmt.Sprintf("%s vs %s  x:[%.3g, %.3g] y:[%.3g, %.3g]\n",
			portrait.YLabel, portrait.XLabel, minX, maxX, minY, maxY))
	}
	return sb.String()
}
