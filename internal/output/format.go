package output

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
)

// FormatLikeCount renders counts compactly: 999, 1k, 1.2k, 531k, 1M, 1.5M.
func FormatLikeCount(n int) string {
	switch {
	case n >= 1_000_000:
		return compact(n, 1_000_000, "M")
	case n >= 1_000:
		return compact(n, 1_000, "k")
	default:
		return strconv.Itoa(n)
	}
}

func compact(n, unit int, suffix string) string {
	if n%unit == 0 {
		return strconv.Itoa(n/unit) + suffix
	}
	s := fmt.Sprintf("%.1f", float64(n)/float64(unit))
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + suffix
}

// FormatDate renders a unix timestamp as a UTC calendar date. Missing or zero
// timestamps render as "".
func FormatDate(ts *int64) string {
	if ts == nil || *ts == 0 {
		return ""
	}
	return time.Unix(*ts, 0).UTC().Format("2006-01-02")
}

func displayAuthor(raw string) string {
	a := strings.TrimSpace(raw)
	if a == "" {
		return "@Unknown"
	}
	if strings.HasPrefix(a, "@") {
		return a
	}
	return "@" + a
}

func displayText(raw string) string {
	t := strings.Join(strings.Fields(html.UnescapeString(raw)), " ")
	if t == "" {
		return "(Comment deleted)"
	}
	return t
}
