package gen

import (
	"strings"
)

// indent prefixes every non-blank line of s with level*2 spaces.
// Blank lines are emptied and a single trailing newline is dropped.
func indent(level int, s string) string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return ""
	}
	pad := strings.Repeat("  ", level)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = pad + strings.TrimRight(l, "\r")
	}
	return strings.Join(lines, "\n")
}

// oneline folds a description onto a single line.
func oneline(s *string) string {
	if s == nil {
		return ""
	}
	v := strings.Trim(*s, "\n")
	v = strings.ReplaceAll(v, "\n", " ")
	return strings.TrimRight(v, " \t\r")
}

// rubyDoc renders a description as a Ruby literal.
func rubyDoc(s *string) string {
	if s == nil {
		return "nil"
	}
	return "%q{" + *s + "}"
}

// lineCount returns the number of lines of s.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}
