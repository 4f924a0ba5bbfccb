package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Prompt        lipgloss.Style
	Count         lipgloss.Style
	Help          lipgloss.Style
	HelpKey       lipgloss.Style
	Main          lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	Date          lipgloss.Style
	StatusSuccess lipgloss.Style
	Dialog        lipgloss.Style
	ErrorDialog   lipgloss.Style
	DialogTitle   lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Faded         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:     lipgloss.NewStyle().Faint(true),
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Count:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:    lipgloss.NewStyle().Faint(true),
		HelpKey: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Main: lipgloss.NewStyle().
			Padding(1, 2).
			MaxHeight(100), // Will be dynamically adjusted
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Date:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("99")),
		ErrorDialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("203")),
		DialogTitle:   lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Button:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ButtonFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("99")).Bold(true),
		Faded:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
