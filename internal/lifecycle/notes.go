package lifecycle

import (
	"fmt"
	"strings"
	"time"
)

const headTailLines = 50

// failureNote renders a notes entry for a failed close attempt: a long
// verify output is recorded as 50 head lines plus 50 tail lines with an
// omission marker in between.
func failureNote(attempt int, at time.Time, exitCode int, output string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Attempt %d — %s\n", attempt, at.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Exit code: %d\n\n", exitCode)
	sb.WriteString("```\n")
	sb.WriteString(headTail(output))
	sb.WriteString("\n```\n")
	return sb.String()
}

// headTail returns the first and last headTailLines lines of output,
// joined by an omission marker when the middle is dropped.
func headTail(output string) string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) <= 2*headTailLines {
		return strings.Join(lines, "\n")
	}
	head := lines[:headTailLines]
	tail := lines[len(lines)-headTailLines:]
	omitted := len(lines) - 2*headTailLines
	marker := fmt.Sprintf("... %d lines omitted ...", omitted)
	return strings.Join(head, "\n") + "\n" + marker + "\n" + strings.Join(tail, "\n")
}

// appendNote appends text as a new append-only notes entry, separated
// from prior entries by a blank line.
func appendNote(existing string, text string) string {
	if existing == "" {
		return text
	}
	return strings.TrimRight(existing, "\n") + "\n\n" + text
}
