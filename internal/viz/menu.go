package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/collide/internal/arena"
	"github.com/san-kum/collide/internal/scenario"
)

const (
	stateMenu = iota
	stateSim
)

// menu lists the scenario presets and hands over to a live Model.
type menu struct {
	state, cursor int
	presets       []string
	cfg           arena.Config
	seed          int64
	err           error
	live          Model
}

func newMenu(cfg arena.Config, seed int64) menu {
	return menu{
		state:   stateMenu,
		presets: scenario.Names(),
		cfg:     cfg,
		seed:    seed,
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		live, err := NewModel(m.cfg, m.presets[m.cursor], m.seed)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live, m.state = live, stateSim
		return m, m.live.Init()
	}
	return m, nil
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	b.WriteString("\n\n    " + h.Render("COLLIDE") + "\n    " + sub.Render("circle collision arena") + "\n    " + sub.Render("─────────────────────────") + "\n\n")

	for i, name := range m.presets {
		p, _ := scenario.Get(name)
		desc := p.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuPointer.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", name)), menuIdleDsc.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

// RunInteractive opens the preset menu.
func RunInteractive(cfg arena.Config, seed int64) error {
	_, err := tea.NewProgram(newMenu(cfg, seed), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
