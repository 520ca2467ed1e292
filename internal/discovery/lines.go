package discovery

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

func ReadLines(r io.Reader) ([]string, error) {
	lines := make([]string, 0, 16)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if skipLine(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func ReadLinesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bulk file %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read bulk file %s: %w", path, err)
	}
	return lines, nil
}

func skipLine(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}
