// Package tui provides a Bubble Tea terminal UI for playing a game.
package tui

// recall remembers what the player typed so the arrow keys can walk
// back through it. The cursor convention: an index past the end of the
// buffer means the input line is live (not showing a recalled entry).
type recall struct {
	lines []string
	limit int
	at    int
}

func newRecall(limit int) *recall {
	return &recall{limit: limit}
}

// Remember records a submitted line and drops the cursor back to live
// input. Repeating the previous line records nothing.
func (r *recall) Remember(line string) {
	if n := len(r.lines); n == 0 || r.lines[n-1] != line {
		r.lines = append(r.lines, line)
		if len(r.lines) > r.limit {
			r.lines = r.lines[1:]
		}
	}
	r.at = len(r.lines)
}

// Back steps toward older entries, sticking at the oldest.
func (r *recall) Back() (string, bool) {
	if len(r.lines) == 0 {
		return "", false
	}
	if r.at > 0 {
		r.at--
	}
	return r.lines[r.at], true
}

// Forward steps toward newer entries. Stepping past the newest returns
// ok=false, meaning the input line should go back to blank.
func (r *recall) Forward() (string, bool) {
	if r.at >= len(r.lines) {
		return "", false
	}
	r.at++
	if r.at == len(r.lines) {
		return "", false
	}
	return r.lines[r.at], true
}
