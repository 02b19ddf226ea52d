package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/engine"
)

// Theme colors the bars by role and the surrounding panels.
type Theme struct {
	Name    string
	Bar     lipgloss.Color
	Compare lipgloss.Color
	Swap    lipgloss.Color
	Write   lipgloss.Color
	Sorted  lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name:    "default",
		Bar:     lipgloss.Color("#10b981"),
		Compare: lipgloss.Color("#f59e0b"),
		Swap:    lipgloss.Color("#ef4444"),
		Write:   lipgloss.Color("#8b5cf6"),
		Sorted:  lipgloss.Color("#06b6d4"),
		Accent:  lipgloss.Color("#2dd4bf"),
		Text:    lipgloss.Color("#e5e7eb"),
		Muted:   lipgloss.Color("#6b7280"),
		Border:  lipgloss.Color("#374151"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Bar:     lipgloss.Color("#ff00ff"),
		Compare: lipgloss.Color("#ffff00"),
		Swap:    lipgloss.Color("#ff0000"),
		Write:   lipgloss.Color("#ff8800"),
		Sorted:  lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Border:  lipgloss.Color("#444466"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Bar:     lipgloss.Color("#00aa00"),
		Compare: lipgloss.Color("#ffff00"),
		Swap:    lipgloss.Color("#ff0000"),
		Write:   lipgloss.Color("#88ff88"),
		Sorted:  lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Bar:     lipgloss.Color("#888888"),
		Compare: lipgloss.Color("#ffffff"),
		Swap:    lipgloss.Color("#ff0000"),
		Write:   lipgloss.Color("#0088ff"),
		Sorted:  lipgloss.Color("#cccccc"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Border:  lipgloss.Color("#444444"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Bar:     lipgloss.Color("#0077be"),
		Compare: lipgloss.Color("#ffd700"),
		Swap:    lipgloss.Color("#ff4444"),
		Write:   lipgloss.Color("#00ff88"),
		Sorted:  lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Border:  lipgloss.Color("#224466"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Bar:     lipgloss.Color("#ff6b6b"),
		Compare: lipgloss.Color("#feca57"),
		Swap:    lipgloss.Color("#ff4757"),
		Write:   lipgloss.Color("#ff9ff3"),
		Sorted:  lipgloss.Color("#5fd068"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Border:  lipgloss.Color("#5a3b5c"),
	}

	Themes = []Theme{
		ThemeDefault,
		ThemeCyberpunk,
		ThemeRetro,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, or the default theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after t in Themes.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeDefault
}

// RoleColor is the bar color for a role.
func (t Theme) RoleColor(r engine.Role) lipgloss.Color {
	switch r {
	case engine.RoleCompare:
		return t.Compare
	case engine.RoleSwap:
		return t.Swap
	case engine.RoleWrite:
		return t.Write
	case engine.RoleSorted:
		return t.Sorted
	default:
		return t.Bar
	}
}
