package ui

import "github.com/charmbracelet/lipgloss"

// Design centralizes the dashboard color palette and common styles.
//
// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	Primary lipgloss.Color // #4d9375
	Yellow  lipgloss.Color // #e6cc77
	Red     lipgloss.Color // #cb7676

	Text      lipgloss.Color // #dbd7caee
	Secondary lipgloss.Color // #bfbaaa
	Muted     lipgloss.Color // #dedcd590
	Border    lipgloss.Color // #252525
}

// Vitesse defines the current global design theme for the TUI.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Red:     lipgloss.Color("#cb7676"),

	Text:      lipgloss.Color("#dbd7caee"),
	Secondary: lipgloss.Color("#bfbaaa"),
	Muted:     lipgloss.Color("#dedcd590"),
	Border:    lipgloss.Color("#252525"),
}

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// MutedStyle returns the style for secondary annotations.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Muted)
}

func okStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(Vitesse.Primary) }
func warnStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(Vitesse.Yellow) }
func badStyle() lipgloss.Style  { return lipgloss.NewStyle().Foreground(Vitesse.Red) }

func textStyle() lipgloss.Style      { return lipgloss.NewStyle().Foreground(Vitesse.Text) }
func secondaryStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(Vitesse.Secondary) }
func ruleStyle() lipgloss.Style      { return lipgloss.NewStyle().Foreground(Vitesse.Border) }
