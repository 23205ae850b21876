package ui

import "strings"

// truncate shortens s to at most width runes, ending with an ellipsis when
// anything was cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// truncateMiddle keeps both ends of s, useful for long file paths.
func truncateMiddle(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width || width <= 0 {
		return s
	}
	if width <= 3 {
		return truncate(s, width)
	}
	keep := width - 1
	head := keep / 2
	tail := keep - head
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}

func padRight(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
