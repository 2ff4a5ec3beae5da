package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/taskdeck/internal/state"
)

// palette is one theme's color set. The dark palette uses Tokyo Night
// colors; light swaps in darker foregrounds for bright terminals.
type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	errorC    lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
}

var darkPalette = palette{
	primary:   lipgloss.Color("#6C63FF"),
	secondary: lipgloss.Color("#2EC4B6"),
	accent:    lipgloss.Color("#FF6B6B"),
	muted:     lipgloss.Color("#666666"),
	success:   lipgloss.Color("#2ECC71"),
	warning:   lipgloss.Color("#F39C12"),
	errorC:    lipgloss.Color("#E74C3C"),
	fg:        lipgloss.Color("#C0CAF5"),
	subtle:    lipgloss.Color("#414868"),
}

var lightPalette = palette{
	primary:   lipgloss.Color("#5A4FCF"),
	secondary: lipgloss.Color("#0FA3B1"),
	accent:    lipgloss.Color("#D7263D"),
	muted:     lipgloss.Color("#8A8A8A"),
	success:   lipgloss.Color("#1E8E3E"),
	warning:   lipgloss.Color("#C77700"),
	errorC:    lipgloss.Color("#C62828"),
	fg:        lipgloss.Color("#1F2335"),
	subtle:    lipgloss.Color("#C4C8DA"),
}

// styleSet is the set of lipgloss styles derived from the active palette.
type styleSet struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	panel       lipgloss.Style
	activePanel lipgloss.Style
	title       lipgloss.Style
	subtitle    lipgloss.Style
	muted       lipgloss.Style
	success     lipgloss.Style
	warning     lipgloss.Style
	errorS      lipgloss.Style
	selected    lipgloss.Style
	normal      lipgloss.Style
	header      lipgloss.Style
	footer      lipgloss.Style
	column      lipgloss.Style
	card        lipgloss.Style
	cardSel     lipgloss.Style
}

func stylesFor(theme string) styleSet {
	p := darkPalette
	if theme == state.ThemeLight {
		p = lightPalette
	}

	return styleSet{
		activeTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(p.primary).
			Padding(0, 2),
		inactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.subtle).
			Padding(1, 2),
		activePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2),
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		subtitle: lipgloss.NewStyle().Foreground(p.muted),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		success:  lipgloss.NewStyle().Foreground(p.success),
		warning:  lipgloss.NewStyle().Foreground(p.warning),
		errorS:   lipgloss.NewStyle().Foreground(p.errorC),
		selected: lipgloss.NewStyle().Bold(true).Foreground(p.secondary),
		normal:   lipgloss.NewStyle().Foreground(p.fg),
		header:   lipgloss.NewStyle().Padding(0, 1),
		footer:   lipgloss.NewStyle().Padding(0, 1),
		column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.subtle).
			Padding(0, 1),
		card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.subtle).
			Padding(0, 1),
		cardSel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.secondary).
			Padding(0, 1),
	}
}
