package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the stats panel and the canvas inks.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color

	Trail      lipgloss.Color
	Path       lipgloss.Color
	Heading    lipgloss.Color
	Body       lipgloss.Color
	Barycenter lipgloss.Color
}

// Ink returns the canvas color for a drawing layer.
func (t Theme) Ink(i Ink) lipgloss.Color {
	switch i {
	case InkTrail:
		return t.Trail
	case InkPath:
		return t.Path
	case InkHeading:
		return t.Heading
	case InkBody:
		return t.Body
	case InkBarycenter:
		return t.Barycenter
	}
	return t.Text
}

var (
	ThemeNebula = Theme{
		Name:       "nebula",
		Primary:    lipgloss.Color("#c77dff"),
		Secondary:  lipgloss.Color("#72ddf7"),
		Text:       lipgloss.Color("#f1e9ff"),
		Success:    lipgloss.Color("#80ffdb"),
		Error:      lipgloss.Color("#ff5d8f"),
		Trail:      lipgloss.Color("#5a189a"),
		Path:       lipgloss.Color("#9d4edd"),
		Heading:    lipgloss.Color("#72ddf7"),
		Body:       lipgloss.Color("#f1e9ff"),
		Barycenter: lipgloss.Color("#ffd166"),
	}

	ThemeAurora = Theme{
		Name:       "aurora",
		Primary:    lipgloss.Color("#2ee6a6"),
		Secondary:  lipgloss.Color("#48cae4"),
		Text:       lipgloss.Color("#d8f3dc"),
		Success:    lipgloss.Color("#52b788"),
		Error:      lipgloss.Color("#ef476f"),
		Trail:      lipgloss.Color("#1b4332"),
		Path:       lipgloss.Color("#40916c"),
		Heading:    lipgloss.Color("#90e0ef"),
		Body:       lipgloss.Color("#d8f3dc"),
		Barycenter: lipgloss.Color("#f72585"),
	}

	ThemeMono = Theme{
		Name:       "mono",
		Primary:    lipgloss.Color("#e8e8e8"),
		Secondary:  lipgloss.Color("#b0b0b0"),
		Text:       lipgloss.Color("#e8e8e8"),
		Success:    lipgloss.Color("#c8c8c8"),
		Error:      lipgloss.Color("#d9534f"),
		Trail:      lipgloss.Color("#4e4e4e"),
		Path:       lipgloss.Color("#7a7a7a"),
		Heading:    lipgloss.Color("#a0a0a0"),
		Body:       lipgloss.Color("#f5f5f5"),
		Barycenter: lipgloss.Color("#d9534f"),
	}

	ThemeSolar = Theme{
		Name:       "solar",
		Primary:    lipgloss.Color("#ffb000"),
		Secondary:  lipgloss.Color("#ffd75f"),
		Text:       lipgloss.Color("#fff3d6"),
		Success:    lipgloss.Color("#5fd068"),
		Error:      lipgloss.Color("#ff4757"),
		Trail:      lipgloss.Color("#8a6a3a"),
		Path:       lipgloss.Color("#ff5f00"),
		Heading:    lipgloss.Color("#ffd75f"),
		Body:       lipgloss.Color("#fff3d6"),
		Barycenter: lipgloss.Color("#5fd068"),
	}

	ThemeDeepSpace = Theme{
		Name:       "deep-space",
		Primary:    lipgloss.Color("#7aa2ff"),
		Secondary:  lipgloss.Color("#a0c4ff"),
		Text:       lipgloss.Color("#e0f0ff"),
		Success:    lipgloss.Color("#00ff88"),
		Error:      lipgloss.Color("#ff4444"),
		Trail:      lipgloss.Color("#4a5a7a"),
		Path:       lipgloss.Color("#7aa2ff"),
		Heading:    lipgloss.Color("#a0c4ff"),
		Body:       lipgloss.Color("#e0f0ff"),
		Barycenter: lipgloss.Color("#ffd700"),
	}

	CurrentTheme = ThemeNebula

	Themes = []Theme{
		ThemeNebula,
		ThemeAurora,
		ThemeMono,
		ThemeSolar,
		ThemeDeepSpace,
	}
)

// GetTheme returns a theme by name, falling back to nebula.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNebula
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
