package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"yt-harvester/internal/comments"
	"yt-harvester/internal/model"
	"yt-harvester/internal/output"
	"yt-harvester/internal/resolve"
	"yt-harvester/internal/transcript"
	"yt-harvester/internal/ytdlp"
)

const (
	StageMetadata   = "Fetching metadata"
	StageTranscript = "Fetching transcript"
	StageComments   = "Fetching comments"
	StageAnalysis   = "Analyzing content"
	StageSave       = "Saving output"
)

// Extractor is the subset of the yt-dlp client a harvest needs.
type Extractor interface {
	Metadata(ctx context.Context, videoID string) model.Fetched[model.Metadata]
	OfficialTranscript(ctx context.Context, videoID string) model.Fetched[[]string]
	AutoTranscript(ctx context.Context, videoID string) model.Fetched[[]string]
	Comments(ctx context.Context, videoID string, maxDownload int) model.Fetched[[]model.CommentRecord]
}

type TextAnalyzer interface {
	Sentiment(text string) model.Sentiment
	Keywords(text string, topN int) []string
}

type Sink interface {
	Save(r model.HarvestResult) (string, error)
}

type Settings struct {
	TopN         int
	MaxDownload  int
	CommentsOnly bool
	Sentiment    bool
	Keywords     bool
	KeywordCount int
	ProxyMode    string
	Proxies      []string
}

// Harvester runs the per-video pipeline: metadata, transcript, comments,
// analysis, then save. Extraction problems degrade the result instead of
// failing the item; only an unresolvable input or a failed save does.
type Harvester struct {
	Extractor Extractor
	Analyzer  TextAnalyzer
	Sink      Sink
	Settings  Settings
	Logger    *slog.Logger
}

func (h *Harvester) StageCount() int {
	if h.Settings.CommentsOnly {
		return 2
	}
	return 5
}

func (h *Harvester) Process(ctx context.Context, task Task) Outcome {
	videoID, err := resolve.VideoID(task.Item.Input)
	if err != nil {
		return Outcome{Err: err}
	}
	log := h.logger().With("video_id", videoID, "worker", task.Worker)
	proxy := ytdlp.ProxyForWorker(task.Worker, h.Settings.ProxyMode, h.Settings.Proxies)
	ctx = ytdlp.WithProxy(ctx, proxy)

	result := model.HarvestResult{
		VideoID:      videoID,
		OutputDir:    task.Item.OutputDir,
		CommentsOnly: h.Settings.CommentsOnly,
	}

	var spoken string
	if !h.Settings.CommentsOnly {
		task.Stage(StageMetadata)
		meta := h.Extractor.Metadata(ctx, videoID)
		if !meta.OK() {
			log.Warn("metadata unavailable", "reason", meta.Reason())
		}
		result.Metadata = meta.Value.WithFallbacks(resolve.WatchURL(videoID))

		task.Stage(StageTranscript)
		var found bool
		result.Transcript, found = h.transcript(ctx, videoID, log)
		if found {
			spoken = strings.Join(result.Transcript, " ")
		}
	}

	task.Stage(StageComments)
	raw := h.Extractor.Comments(ctx, videoID, h.Settings.MaxDownload)
	if raw.Kind == model.FetchFailed {
		log.Warn("comments unavailable", "reason", raw.Reason())
	}
	result.Threads = comments.BuildThreads(raw.Value, h.Settings.TopN)

	if !h.Settings.CommentsOnly {
		task.Stage(StageAnalysis)
		result.Analysis = h.analyze(spoken)
	}

	task.Stage(StageSave)
	path, err := h.Sink.Save(result)
	if err != nil {
		return Outcome{VideoID: videoID, Err: fmt.Errorf("save output: %w", err)}
	}
	return Outcome{VideoID: videoID, Path: path}
}

// transcript tries the official captions first and falls back to automatic
// ones; the first source that merges into at least one paragraph wins.
func (h *Harvester) transcript(ctx context.Context, videoID string, log *slog.Logger) ([]string, bool) {
	sources := []struct {
		name  string
		fetch func(context.Context, string) model.Fetched[[]string]
	}{
		{"official", h.Extractor.OfficialTranscript},
		{"auto", h.Extractor.AutoTranscript},
	}
	for _, src := range sources {
		got := src.fetch(ctx, videoID)
		switch got.Kind {
		case model.FetchFound:
			if merged := transcript.MergeAll(got.Value); len(merged) > 0 {
				log.Debug("transcript found", "source", src.name, "paragraphs", len(merged))
				return merged, true
			}
		case model.FetchFailed:
			if errors.Is(got.Err, ytdlp.ErrNotInstalled) {
				return []string{fmt.Sprintf("(Transcript unavailable: %s.)", ytdlp.ErrNotInstalled)}, false
			}
			log.Debug("transcript source failed", "source", src.name, "reason", got.Reason())
		}
	}
	return []string{output.TranscriptUnavailable}, false
}

func (h *Harvester) analyze(text string) model.Analysis {
	var a model.Analysis
	if h.Analyzer == nil {
		return a
	}
	if h.Settings.Sentiment {
		s := h.Analyzer.Sentiment(text)
		a.Sentiment = &s
	}
	if h.Settings.Keywords {
		a.Keywords = h.Analyzer.Keywords(text, h.Settings.KeywordCount)
	}
	return a
}

func (h *Harvester) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.Logger
}
