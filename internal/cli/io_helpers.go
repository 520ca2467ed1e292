package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"yt-harvester/internal/harvest"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// pickRenderer draws a live bar on terminals and falls back to plain lines
// everywhere else.
func pickRenderer(out io.Writer, noProgress bool) harvest.Renderer {
	if noProgress || !isTerminal(out) {
		return harvest.LineRenderer{Out: out}
	}
	return harvest.NewBarRenderer(out)
}
