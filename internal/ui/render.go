package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBody pretty-prints a bean's description for `beans show --render`:
// headings (lines starting with "#") get a bold style, fenced code blocks
// get a dim box, everything else passes through. Bean bodies are short
// task notes, not long-form prose, so this stays lighter than a full
// markdown renderer (see DESIGN.md for why).
func (r *Renderer) RenderBody(body string) string {
	if !r.color {
		return body
	}
	heading := lipgloss.NewStyle().Bold(true)
	code := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingLeft(2)

	var out []string
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(strings.TrimSpace(line), "```"):
			inFence = !inFence
			out = append(out, code.Render(line))
		case inFence:
			out = append(out, code.Render(line))
		case strings.HasPrefix(line, "#"):
			out = append(out, heading.Render(line))
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
