package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statsStyle  = lipgloss.NewStyle().Padding(0, 2).Width(40)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	menuPointer = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleDsc = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	hintKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))
)

func canvasStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Muted).
		Foreground(CurrentTheme.Primary)
}

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(CurrentTheme.Primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(CurrentTheme.Muted)
}

func modeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent)
}

// ProgressBar renders the charge meter of a held mouse button.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// hints renders "key action" pairs for the footer of a screen.
func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(hintKey.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]))
	}
	return b.String()
}
