package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleItems = lipgloss.NewStyle().
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleRefusal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true)

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindItems
	kindRefusal
	kindDanger
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "There is a "),
		strings.HasPrefix(line, "The body of"),
		strings.HasPrefix(line, "  A "),
		strings.HasPrefix(line, "    A "):
		return kindItems
	case strings.Contains(line, "pitch black"),
		strings.Contains(line, "grue"),
		strings.Contains(line, "lurking"):
		return kindDanger
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "Which "),
		strings.HasPrefix(line, "What do you want"),
		strings.HasPrefix(line, "There was no verb"),
		strings.HasPrefix(line, "I don't know the word"):
		return kindRefusal
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindItems:
		return styleItems.Render(line)
	case kindRefusal:
		return styleRefusal.Render(line)
	case kindDanger:
		return styleDanger.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
