package discovery

import (
	"html"
	"regexp"
	"strings"
)

const maxPathNameLen = 120

var invalidPathChars = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]+`)

// SafePathName makes value usable as a single path element on Windows, macOS
// and Linux. Empty results become "untitled".
func SafePathName(value string) string {
	text := html.UnescapeString(strings.TrimSpace(value))
	text = invalidPathChars.ReplaceAllString(text, " ")
	text = strings.Join(strings.Fields(text), " ")
	text = strings.TrimSpace(strings.Trim(text, ". "))
	if text == "" {
		return "untitled"
	}
	if r := []rune(text); len(r) > maxPathNameLen {
		text = strings.TrimSpace(strings.TrimRight(string(r[:maxPathNameLen]), ". "))
	}
	if text == "" {
		return "untitled"
	}
	return text
}
