package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbitsim/internal/config"
)

const (
	stateMenu = iota
	stateSim
)

// Launcher builds a ready-to-run live model for a scenario.
type Launcher func(sc *config.Scenario) (Model, error)

// Picker lists the presets and hands the chosen one to a live model.
type Picker struct {
	state         int
	cursor        int
	presets       []string
	launch        Launcher
	live          Model
	err           error
	width, height int
}

func NewPicker(launch Launcher) Picker {
	return Picker{
		state:   stateMenu,
		presets: config.ListPresets(),
		launch:  launch,
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.state == stateSim {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "backspace" {
			p.state = stateMenu
			return p, nil
		}
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.presets)-1 {
				p.cursor++
			}
		case "enter", " ":
			live, err := p.launch(config.GetPreset(p.presets[p.cursor]))
			if err != nil {
				p.err = err
				return p, nil
			}
			if p.width > 0 {
				live.resize(p.width, p.height)
			}
			p.live, p.state, p.err = live, stateSim, nil
			return p, p.live.Init()
		}
	}
	return p, nil
}

func (p Picker) View() string {
	if p.state == stateSim {
		return p.live.View()
	}

	title := lipgloss.NewStyle().Bold(true)
	var s strings.Builder
	s.WriteString(title.Render(GradientText("ORBITSIM", CurrentTheme.Primary, CurrentTheme.Secondary)) + "  " + Subtle.Render("choose a scenario") + "\n\n")
	for i, name := range p.presets {
		desc := config.GetPreset(name).Description
		line := fmt.Sprintf("%-12s %s", name, Subtle.Render(desc))
		if i == p.cursor {
			s.WriteString(NeonGlow.Render("▸ "+name) + strings.TrimPrefix(line, name) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	if p.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(p.err.Error()) + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("↑/↓ select · enter run · backspace back · q quit"))
	return GlassPanel.Render(s.String())
}
