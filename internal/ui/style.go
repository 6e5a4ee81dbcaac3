// Package ui renders status badges and small bean summaries for the CLI,
// degrading to plain, colorless text when not attached to a terminal or
// when --json output is requested.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/beansdev/beans/internal/types"
)

// Renderer renders colored output when the destination supports it.
type Renderer struct {
	color bool

	open       lipgloss.Style
	inProgress lipgloss.Style
	closed     lipgloss.Style
	blocked    lipgloss.Style
	goal       lipgloss.Style
	dim        lipgloss.Style
}

// NewRenderer detects w's color profile via termenv and builds the
// corresponding styles. Pass plain=true (e.g. for --json or a non-TTY
// destination) to force uncolored output regardless of profile.
func NewRenderer(w io.Writer, plain bool) *Renderer {
	profile := termenv.EnvColorProfile()
	color := !plain && profile != termenv.Ascii

	r := &Renderer{color: color}
	if !color {
		return r
	}

	r.open = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))       // blue
	r.inProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	r.closed = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))     // green
	r.blocked = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))    // red
	r.goal = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))       // magenta
	r.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))        // gray
	return r
}

// StatusBadge renders a short label for a bean's classification. isGoal
// and isBlocked are derived classifications (graph package), not stored
// fields, so callers pass them in explicitly.
func (r *Renderer) StatusBadge(status types.Status, isGoal, isBlocked bool) string {
	label, style := r.classify(status, isGoal, isBlocked)
	if !r.color {
		return label
	}
	return style.Render(label)
}

func (r *Renderer) classify(status types.Status, isGoal, isBlocked bool) (string, lipgloss.Style) {
	switch {
	case status == types.StatusClosed:
		return "closed", r.closed
	case status == types.StatusInProgress:
		return "in_progress", r.inProgress
	case isGoal:
		return "goal", r.goal
	case isBlocked:
		return "blocked", r.blocked
	default:
		return "open", r.open
	}
}

// Summary renders one line: "<badge> <id>  <title>".
func (r *Renderer) Summary(id, title string, status types.Status, isGoal, isBlocked bool) string {
	badge := r.StatusBadge(status, isGoal, isBlocked)
	if !r.color {
		return fmt.Sprintf("%-10s %-16s %s", badge, id, title)
	}
	idStyled := r.dim.Render(id)
	return fmt.Sprintf("%-20s %-26s %s", badge, idStyled, title)
}
