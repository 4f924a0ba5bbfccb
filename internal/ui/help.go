package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"passgrip/internal/ui/input"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent renders the key reference for the pager
func (r *HelpRenderer) RenderHelpContent(sections []input.HelpSection) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	width := 0
	for _, section := range sections {
		for _, b := range section.Bindings {
			width = max(width, lipgloss.Width(bindingKeys(b)))
		}
	}

	var help strings.Builder

	// Title
	help.WriteString(titleStyle.Render("passgrip Help"))
	help.WriteString("\n")

	for _, section := range sections {
		help.WriteString(sectionStyle.Render(section.Title))
		help.WriteString("\n")
		for _, b := range section.Bindings {
			keys := lipgloss.NewStyle().Width(width).Render(bindingKeys(b))
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(keys), descStyle.Render(b.Help().Desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render("  Type to search, q closes this help"))
	return help.String()
}

// bindingKeys lists every key of a binding, e.g. "ctrl+n, down"
func bindingKeys(b key.Binding) string {
	return strings.Join(b.Keys(), ", ")
}

// helpPager runs ov over the help text. It implements tea.ExecCommand, so
// bubbletea releases the terminal while the pager runs.
type helpPager struct {
	content string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (p *helpPager) SetStdin(r io.Reader)  { p.stdin = r }
func (p *helpPager) SetStdout(w io.Writer) { p.stdout = w }
func (p *helpPager) SetStderr(w io.Writer) { p.stderr = w }

// Run shows the help content using ov pager
func (p *helpPager) Run() error {
	// Create oviewer root from the reader
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}

// showHelp hands the terminal to the pager and reports back when it exits
func showHelp(content string) tea.Cmd {
	return tea.Exec(&helpPager{content: content}, func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}
