package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing
// the current room on the left and score/turn counters on the right,
// in the manner of a classic status line.
func (m Model) renderStatusBar() string {
	g := m.game

	roomName := g.World.Here()
	if room := g.World.HereRoom(); room != nil {
		roomName = room.Name
	}

	left := " " + roomName
	right := fmt.Sprintf("Score: %d        Moves: %d ", g.Score, g.Turn)

	// Show carried items if they fit, otherwise just the counters.
	if inv := g.World.Inventory(); len(inv) > 0 {
		var names []string
		for _, id := range inv {
			names = append(names, g.Name(id))
		}
		candidate := fmt.Sprintf("Inv: %s | Score: %d | Moves: %d ",
			strings.Join(names, ", "), g.Score, g.Turn)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
