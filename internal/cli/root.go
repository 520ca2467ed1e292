package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"yt-harvester/internal/analysis"
	"yt-harvester/internal/config"
	"yt-harvester/internal/discovery"
	"yt-harvester/internal/harvest"
	"yt-harvester/internal/output"
	"yt-harvester/internal/runstore"
	"yt-harvester/internal/ytdlp"
)

var ErrOutputConflict = errors.New("--output names a single file but more than one video was resolved")

type rootFlags struct {
	comments      int
	maxComments   int
	format        string
	output        string
	bulk          string
	bulkOutputDir string
	workers       int
	commentsOnly  bool
	noSentiment   bool
	noKeywords    bool
	configPath    string
	verbose       bool
	noProgress    bool
}

// Run executes the command line in args. It returns an error when the run
// cannot start or when any item failed.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:           "yt-harvester [url]",
		Short:         "Harvest metadata, transcripts and comments from YouTube videos",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarvest(cmd, f, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.IntVarP(&f.comments, "comments", "c", 0, "number of top-level comments to keep (default from config: 80)")
	fl.IntVar(&f.maxComments, "max-comments", 0, "maximum comments to download before ranking (default from config: 20000)")
	fl.StringVarP(&f.format, "format", "f", "", "output format: txt|json|csv")
	fl.StringVarP(&f.output, "output", "o", "", "output file (single video only)")
	fl.StringVar(&f.bulk, "bulk", "", "file with one URL per line")
	fl.StringVar(&f.bulkOutputDir, "bulk-output-dir", "", "directory for bulk output files")
	fl.IntVar(&f.workers, "workers", 0, "parallel workers (default from config: 4)")
	fl.BoolVar(&f.commentsOnly, "comments-only", false, "only fetch and write comments")
	fl.BoolVar(&f.noSentiment, "no-sentiment", false, "skip sentiment analysis")
	fl.BoolVar(&f.noKeywords, "no-keywords", false, "skip keyword extraction")
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default $"+config.EnvPath+" or ./"+config.DefaultPath+")")
	cmd.PersistentFlags().BoolVar(&f.verbose, "verbose", false, "log yt-dlp invocations and other diagnostics")
	fl.BoolVar(&f.noProgress, "no-progress", false, "disable the progress bar")

	cmd.AddCommand(newDoctorCommand(&f, stdout), newInitCommand(&f, stdout))
	return cmd
}

func runHarvest(cmd *cobra.Command, f rootFlags, args []string, stdout, stderr io.Writer) error {
	ctx := cmd.Context()
	logger := newLogger(stderr, f.verbose)

	cfg, err := resolveConfig(cmd, f, logger)
	if err != nil {
		return err
	}

	var lines []string
	switch {
	case len(args) == 1 && f.bulk != "":
		return errors.New("pass either a URL or --bulk, not both")
	case f.bulk != "":
		lines, err = discovery.ReadLinesFile(f.bulk)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("no links found in %s", f.bulk)
		}
	case len(args) == 1:
		lines = []string{args[0]}
	default:
		return errors.New("provide a video URL or --bulk FILE")
	}

	if dep := ytdlp.DependencyStatus(cfg.Extraction.YTDLPPath); !dep.YTDLPFound {
		logger.Warn("yt-dlp not found; metadata, transcripts and comments will be unavailable", "binary", cfg.Extraction.YTDLPPath)
	}

	client := ytdlp.New(ytdlp.Options{
		Binary:        cfg.Extraction.YTDLPPath,
		Timeout:       cfg.Extraction.Timeout,
		RatePerSecond: cfg.Extraction.RatePerSecond,
		Languages:     cfg.Extraction.TranscriptLanguages,
		CommentSort:   cfg.Comments.Sort,
		Logger:        logger,
	})
	expander := discovery.Expander{Lister: client, BaseDir: cfg.Output.Dir, Logger: logger}
	items, err := expander.Expand(ctx, lines)
	if err != nil {
		return err
	}

	bulk := f.bulk != "" || len(items) > 1
	if f.output != "" && len(items) > 1 {
		return fmt.Errorf("%w (%d videos)", ErrOutputConflict, len(items))
	}

	if bulk && cfg.Output.Dir != "" {
		if err := runstore.Mkdir(cfg.Output.Dir); err != nil {
			return err
		}
		lock, err := runstore.AcquireRunLock(cfg.Output.Dir, uuid.NewString())
		if err != nil {
			return err
		}
		defer func() {
			_ = lock.Release()
		}()
	}

	settings := harvest.Settings{
		TopN:         cfg.Comments.TopN,
		MaxDownload:  cfg.Comments.MaxDownload,
		CommentsOnly: f.commentsOnly || cfg.Output.Format == output.FormatCSV,
		Sentiment:    cfg.Processing.Sentiment,
		Keywords:     cfg.Processing.Keywords,
		KeywordCount: cfg.Processing.KeywordCount,
		ProxyMode:    cfg.Extraction.ProxyMode,
		Proxies:      cfg.Extraction.Proxies,
	}

	var sink harvest.Sink = output.FileSink{Format: cfg.Output.Format, ExplicitPath: f.output}
	sequential := false
	if bulk && cfg.Output.Format == output.FormatCSV {
		combined, err := output.CreateCombinedCSV(combinedCSVPath(cfg, f.output))
		if err != nil {
			return err
		}
		defer func() {
			if err := combined.Close(); err != nil {
				logger.Error("close combined csv", "path", combined.Path(), "err", err)
			}
		}()
		sink = combined
		sequential = true
	}

	h := &harvest.Harvester{
		Extractor: client,
		Analyzer:  analysis.New(),
		Sink:      sink,
		Settings:  settings,
		Logger:    logger,
	}

	if bulk {
		fmt.Fprintf(stdout, "Processing %d videos...\n", len(items))
	}
	summary := harvest.Run(ctx, items, h.Process, harvest.Options{
		Workers:    cfg.Run.Workers,
		Sequential: sequential,
		Detailed:   !bulk,
		StageCount: h.StageCount(),
		Renderer:   pickRenderer(stdout, f.noProgress),
	})
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d videos failed", summary.Failed, len(items))
	}
	return nil
}

// resolveConfig layers flags over environment over the config file over
// defaults.
func resolveConfig(cmd *cobra.Command, f rootFlags, logger *slog.Logger) (config.Config, error) {
	path := config.ResolvePath(f.configPath)
	cfg, err := config.Load(path)
	if err != nil {
		logger.Warn("config unusable, using defaults", "path", path, "err", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		logger.Warn("ignoring environment override", "err", err)
	}

	fl := cmd.Flags()
	if fl.Changed("comments") {
		cfg.Comments.TopN = f.comments
	}
	if fl.Changed("max-comments") {
		cfg.Comments.MaxDownload = f.maxComments
	}
	if fl.Changed("format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(f.format))
	}
	if fl.Changed("bulk-output-dir") {
		cfg.Output.Dir = strings.TrimSpace(f.bulkOutputDir)
	}
	if fl.Changed("workers") {
		cfg.Run.Workers = f.workers
	}
	if f.noSentiment {
		cfg.Processing.Sentiment = false
	}
	if f.noKeywords {
		cfg.Processing.Keywords = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func combinedCSVPath(cfg config.Config, explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := cfg.Output.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, cfg.Output.CombinedCSV)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
