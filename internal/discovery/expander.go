// Package discovery expands raw inputs into work items, fanning playlists
// out into one item per member.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"yt-harvester/internal/model"
	"yt-harvester/internal/resolve"
	"yt-harvester/internal/runstore"
)

type CollectionLister interface {
	ExpandCollection(ctx context.Context, collectionURL string) model.Fetched[model.Collection]
}

type Expander struct {
	Lister  CollectionLister
	BaseDir string
	Logger  *slog.Logger
}

// Expand keeps input order, and collection members keep playlist order.
// Members of one playlist share a directory named after it under BaseDir (or
// the working directory). Standalone lines are emitted with BaseDir as-is.
// A playlist with no members is skipped. A playlist that cannot be listed
// falls back to a single item for the raw line.
func (e Expander) Expand(ctx context.Context, lines []string) ([]model.WorkItem, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	items := make([]model.WorkItem, 0, len(lines))
	add := func(input, dir string) {
		items = append(items, model.WorkItem{
			Index:     len(items) + 1,
			Input:     input,
			OutputDir: dir,
			Status:    model.StatusPending,
		})
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if skipLine(line) {
			continue
		}
		playlistURL, ok := resolve.PlaylistURL(line)
		if !ok || e.Lister == nil {
			add(line, e.BaseDir)
			continue
		}

		res := e.Lister.ExpandCollection(ctx, playlistURL)
		switch res.Kind {
		case model.FetchEmpty:
			logger.Info("skipping empty playlist", "input", line)
			continue
		case model.FetchFailed:
			logger.Warn("playlist expansion failed; treating input as a single video", "input", line, "err", res.Err)
			add(line, e.BaseDir)
			continue
		}

		dir := CollectionDir(e.BaseDir, res.Value)
		if err := runstore.Mkdir(dir); err != nil {
			return nil, fmt.Errorf("prepare playlist directory: %w", err)
		}
		logger.Debug("expanded playlist", "input", line, "members", len(res.Value.Members), "dir", dir)
		for _, member := range res.Value.Members {
			add(member, dir)
		}
	}
	return items, nil
}

func CollectionDir(baseDir string, c model.Collection) string {
	root := strings.TrimSpace(baseDir)
	if root == "" {
		root = "."
	}
	return filepath.Join(root, fmt.Sprintf("%s [%s]", SafePathName(c.Title), SafePathName(c.ID)))
}
