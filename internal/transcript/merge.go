// Package transcript rebuilds readable paragraphs from caption fragments.
package transcript

import (
	"html"
	"iter"
	"slices"
	"strings"
	"unicode/utf8"
)

const closingMarks = "\"')]}»›”’"

// Merge joins fragments into sentence-level paragraphs. A paragraph is sealed
// once the running buffer ends in . ! ? or … (ignoring trailing closing
// quotes and brackets). A sealed paragraph identical to the one emitted just
// before it is dropped. Fragments are pulled lazily.
func Merge(fragments iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		var (
			buffer  string
			last    string
			emitted bool
		)
		seal := func(p string) bool {
			if emitted && p == last {
				return true
			}
			last, emitted = p, true
			return yield(p)
		}

		for raw := range fragments {
			text := normalize(raw)
			if text == "" {
				continue
			}
			if buffer == "" {
				buffer = text
			} else {
				buffer += " " + text
			}
			if isSentenceEnd(buffer) {
				p := buffer
				buffer = ""
				if !seal(p) {
					return
				}
			}
		}
		if buffer != "" {
			seal(buffer)
		}
	}
}

func MergeAll(fragments []string) []string {
	out := slices.Collect(Merge(slices.Values(fragments)))
	if out == nil {
		return []string{}
	}
	return out
}

func normalize(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

func isSentenceEnd(s string) bool {
	trimmed := strings.TrimRight(s, closingMarks)
	if trimmed == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(trimmed)
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}
