package telegram

import (
	"strings"
	"unicode/utf8"
)

// maxMessageRunes stays under Telegram's 4096 character limit.
const maxMessageRunes = 4000

var markdownTidier = strings.NewReplacer("###", "🍳", "**", "*")

// tidyMarkdown adapts model output to Telegram's legacy Markdown.
func tidyMarkdown(s string) string { return markdownTidier.Replace(s) }

// paginate splits text into non-empty segments of at most limit runes,
// breaking only between lines. A line longer than limit is cut into
// limit-sized pieces. Blank lines that would open a segment are dropped.
func paginate(text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	var (
		parts  []string
		cur    []string
		curLen int
	)
	flush := func() {
		parts = append(parts, strings.Join(cur, "\n"))
		cur = cur[:0]
		curLen = 0
	}
	for _, line := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(line)
		if n > limit {
			if len(cur) > 0 {
				flush()
			}
			r := []rune(line)
			for len(r) > limit {
				parts = append(parts, string(r[:limit]))
				r = r[limit:]
			}
			cur = append(cur, string(r))
			curLen = len(r)
			continue
		}
		if len(cur) > 0 && curLen+1+n > limit {
			flush()
		}
		if len(cur) == 0 && n == 0 {
			continue
		}
		if len(cur) > 0 {
			curLen++
		}
		cur = append(cur, line)
		curLen += n
	}
	if len(cur) > 0 {
		flush()
	}
	return parts
}
