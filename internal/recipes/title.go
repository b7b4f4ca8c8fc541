package recipes

import "strings"

const (
	maxTitleRunes      = 80
	fallbackTitleRunes = 50
	titleScanLines     = 3
)

// DeriveTitle picks a display title for a recipe body without one.
// The first of the leading three lines that is non-empty and not a
// "Yield"/"Prep" metadata line wins, capped at 80 characters. Otherwise the
// first 50 characters of the body are used with newlines flattened.
func DeriveTitle(body string) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Yield") || strings.HasPrefix(line, "Prep") {
			continue
		}
		return truncateRunes(line, maxTitleRunes)
	}
	return strings.ReplaceAll(truncateRunes(body, fallbackTitleRunes), "\n", " ") + "..."
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
