package tui

import "github.com/charmbracelet/lipgloss"

// Theme bundles the styles and symbols the list is drawn with.
type Theme struct {
	Title, Muted, Accent, Success, Error lipgloss.Style
	Cursor, Done, Selected, Border       lipgloss.Style
	BoxChecked, BoxUnchecked             string
	Mark                                 string
}

// ThemeFor returns the named theme; unknown names get "classic".
func ThemeFor(name string) Theme {
	switch name {
	case "neon":
		return Theme{
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        lipgloss.NewStyle().Faint(true),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Cursor:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Selected:     lipgloss.NewStyle().Reverse(true),
			Border:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("13")).Padding(0, 1),
			BoxChecked:   "◼",
			BoxUnchecked: "◻",
			Mark:         "●",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Title:        plain.Bold(true),
			Muted:        plain,
			Accent:       plain,
			Success:      plain,
			Error:        plain.Bold(true),
			Cursor:       plain.Bold(true),
			Done:         plain.Strikethrough(true),
			Selected:     plain.Underline(true),
			Border:       plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			BoxChecked:   "[x]",
			BoxUnchecked: "[ ]",
			Mark:         "*",
		}
	default:
		return Theme{
			Title:        lipgloss.NewStyle().Bold(true),
			Muted:        lipgloss.NewStyle().Faint(true),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Cursor:       lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Selected:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Border:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
			BoxChecked:   "☑",
			BoxUnchecked: "☐",
			Mark:         "●",
		}
	}
}
