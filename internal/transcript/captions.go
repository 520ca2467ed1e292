package transcript

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	markupTag       = regexp.MustCompile(`</?[^>]+>`)
	inlineTimestamp = regexp.MustCompile(`<\d{2}:\d{2}:\d{2}\.\d{3}>`)
)

var cueHeaders = []string{"Kind:", "Language:", "Style:", "Region:"}

// CleanCaptions reduces a WebVTT or SRT document to its spoken text lines.
// Headers, cue timings, SRT counters and markup are removed, and a line equal
// to the previous kept line is skipped.
func CleanCaptions(r io.Reader, srt bool) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	cleaned := make([]string, 0, 128)
	last := ""
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.ToUpper(line) == "WEBVTT" || strings.HasPrefix(line, "NOTE") || strings.Contains(line, "-->") {
			continue
		}
		if srt && isDigits(line) {
			continue
		}
		line = markupTag.ReplaceAllString(line, "")
		line = inlineTimestamp.ReplaceAllString(line, "")
		if hasCueHeader(line) {
			continue
		}
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || line == last {
			continue
		}
		last = line
		cleaned = append(cleaned, html.UnescapeString(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read captions: %w", err)
	}
	return cleaned, nil
}

func CleanCaptionFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open caption file %s: %w", path, err)
	}
	defer f.Close()
	return CleanCaptions(f, strings.EqualFold(filepath.Ext(path), ".srt"))
}

func hasCueHeader(line string) bool {
	for _, h := range cueHeaders {
		if strings.HasPrefix(line, h) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
