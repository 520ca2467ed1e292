package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"yt-harvester/internal/model"
	"yt-harvester/internal/resolve"
	"yt-harvester/internal/transcript"
)

var ErrNotInstalled = errors.New("yt-dlp is not installed")

var OfficialLanguages = []string{"en", "en-US", "en-GB", "en-CA", "en-AU"}

const (
	DefaultBinary      = "yt-dlp"
	DefaultCommentSort = "top"
	autoSubLangs       = "en.*,en"
)

type Options struct {
	Binary        string
	Timeout       time.Duration
	RatePerSecond float64
	Languages     []string
	CommentSort   string
	Logger        *slog.Logger
}

// Client runs yt-dlp as a subprocess. Every call gets its own scratch
// directory, so concurrent workers never see each other's sidecar files.
type Client struct {
	binary      string
	timeout     time.Duration
	limiter     *rate.Limiter
	languages   []string
	commentSort string
	logger      *slog.Logger
}

type DependencyReport struct {
	YTDLPFound bool   `json:"yt_dlp_found"`
	YTDLPPath  string `json:"yt_dlp_path,omitempty"`
}

func New(opts Options) *Client {
	c := &Client{
		binary:      strings.TrimSpace(opts.Binary),
		timeout:     opts.Timeout,
		limiter:     rate.NewLimiter(rate.Inf, 0),
		languages:   opts.Languages,
		commentSort: strings.TrimSpace(opts.CommentSort),
		logger:      opts.Logger,
	}
	if c.binary == "" {
		c.binary = DefaultBinary
	}
	if opts.RatePerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}
	if len(c.languages) == 0 {
		c.languages = OfficialLanguages
	}
	if c.commentSort == "" {
		c.commentSort = DefaultCommentSort
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

func DependencyStatus(binary string) DependencyReport {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	report := DependencyReport{}
	if path, err := exec.LookPath(binary); err == nil {
		report.YTDLPFound = true
		report.YTDLPPath = path
	}
	return report
}

type videoInfo struct {
	Title       string   `json:"title"`
	Uploader    string   `json:"uploader"`
	Channel     string   `json:"channel"`
	WebpageURL  string   `json:"webpage_url"`
	ViewCount   *int64   `json:"view_count"`
	Duration    *float64 `json:"duration"`
	UploadDate  string   `json:"upload_date"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (c *Client) Metadata(ctx context.Context, videoID string) model.Fetched[model.Metadata] {
	out, err := c.run(ctx, "", "-J", "--skip-download", "--no-playlist", "--no-warnings", resolve.WatchURL(videoID))
	if err != nil {
		return model.Failed[model.Metadata](err)
	}
	var info videoInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return model.Failed[model.Metadata](fmt.Errorf("parse yt-dlp metadata JSON: %w", err))
	}
	channel := strings.TrimSpace(info.Uploader)
	if channel == "" {
		channel = strings.TrimSpace(info.Channel)
	}
	return model.Found(model.Metadata{
		Title:       strings.TrimSpace(info.Title),
		Channel:     channel,
		URL:         strings.TrimSpace(info.WebpageURL),
		ViewCount:   info.ViewCount,
		Duration:    info.Duration,
		UploadDate:  strings.TrimSpace(info.UploadDate),
		Description: info.Description,
		Tags:        info.Tags,
	})
}

// OfficialTranscript returns caption fragments from uploaded (non-automatic)
// English subtitles.
func (c *Client) OfficialTranscript(ctx context.Context, videoID string) model.Fetched[[]string] {
	return c.captions(ctx, videoID, "--write-subs", strings.Join(c.languages, ","))
}

func (c *Client) AutoTranscript(ctx context.Context, videoID string) model.Fetched[[]string] {
	return c.captions(ctx, videoID, "--write-auto-subs", autoSubLangs)
}

func (c *Client) captions(ctx context.Context, videoID, writeFlag, langs string) model.Fetched[[]string] {
	dir, cleanup, err := c.scratch()
	if err != nil {
		return model.Failed[[]string](err)
	}
	defer cleanup()

	_, err = c.run(ctx, dir,
		"--skip-download",
		writeFlag,
		"--sub-format", "vtt",
		"--sub-langs", langs,
		"--no-write-playlist-metafiles",
		"-o", videoID+".%(ext)s",
		resolve.WatchURL(videoID),
	)
	if err != nil {
		return model.Failed[[]string](err)
	}

	path, ok := firstCaptionFile(dir, videoID)
	if !ok {
		return model.Empty[[]string]()
	}
	lines, err := transcript.CleanCaptionFile(path)
	if err != nil {
		return model.Failed[[]string](err)
	}
	if len(lines) == 0 {
		return model.Empty[[]string]()
	}
	return model.Found(lines)
}

// firstCaptionFile picks one caption file so language variants of the same
// track are not merged together. VTT files sort ahead of SRT.
func firstCaptionFile(dir, videoID string) (string, bool) {
	for _, ext := range []string{".vtt", ".srt"} {
		matches, err := filepath.Glob(filepath.Join(dir, videoID+"*"+ext))
		if err != nil || len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		return matches[0], true
	}
	return "", false
}

func (c *Client) Comments(ctx context.Context, videoID string, maxDownload int) model.Fetched[[]model.CommentRecord] {
	dir, cleanup, err := c.scratch()
	if err != nil {
		return model.Failed[[]model.CommentRecord](err)
	}
	defer cleanup()

	_, err = c.run(ctx, dir,
		"--skip-download",
		"--write-comments",
		"--write-info-json",
		"--extractor-args", fmt.Sprintf("youtube:max_comments=%d;comment_sort=%s", maxDownload, c.commentSort),
		"--no-write-playlist-metafiles",
		"-o", videoID+".%(ext)s",
		resolve.WatchURL(videoID),
	)
	if err != nil {
		return model.Failed[[]model.CommentRecord](err)
	}

	data, err := os.ReadFile(filepath.Join(dir, videoID+".info.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Empty[[]model.CommentRecord]()
		}
		return model.Failed[[]model.CommentRecord](fmt.Errorf("read info JSON: %w", err))
	}
	var payload struct {
		Comments []model.CommentRecord `json:"comments"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return model.Failed[[]model.CommentRecord](fmt.Errorf("parse info JSON comments: %w", err))
	}
	if len(payload.Comments) == 0 {
		return model.Empty[[]model.CommentRecord]()
	}
	return model.Found(payload.Comments)
}

type flatCollection struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Entries []flatEntry `json:"entries"`
}

type flatEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ExpandCollection lists a playlist's members without resolving each one.
func (c *Client) ExpandCollection(ctx context.Context, collectionURL string) model.Fetched[model.Collection] {
	if strings.TrimSpace(collectionURL) == "" {
		return model.Failed[model.Collection](errors.New("collection URL is required"))
	}
	out, err := c.run(ctx, "", "--flat-playlist", "-J", collectionURL)
	if err != nil {
		return model.Failed[model.Collection](err)
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return model.Failed[model.Collection](errors.New("yt-dlp returned empty output"))
	}

	var fc flatCollection
	if err := json.Unmarshal(out, &fc); err != nil {
		return model.Failed[model.Collection](fmt.Errorf("parse yt-dlp playlist JSON: %w", err))
	}
	members := make([]string, 0, len(fc.Entries))
	for _, e := range fc.Entries {
		if u := memberURL(strings.TrimSpace(e.ID), strings.TrimSpace(e.URL)); u != "" {
			members = append(members, u)
		}
	}
	if len(members) == 0 {
		return model.Empty[model.Collection]()
	}
	return model.Found(model.Collection{
		ID:      strings.TrimSpace(fc.ID),
		Title:   strings.TrimSpace(fc.Title),
		Members: members,
	})
}

func memberURL(videoID, maybeURL string) string {
	if maybeURL != "" {
		if strings.HasPrefix(maybeURL, "http://") || strings.HasPrefix(maybeURL, "https://") {
			return maybeURL
		}
		if strings.HasPrefix(maybeURL, "watch?") || strings.HasPrefix(maybeURL, "/watch?") {
			return "https://www.youtube.com/" + strings.TrimPrefix(maybeURL, "/")
		}
		if resolve.IsVideoID(maybeURL) {
			return resolve.WatchURL(maybeURL)
		}
	}
	if videoID != "" {
		return resolve.WatchURL(videoID)
	}
	return ""
}

func (c *Client) scratch() (string, func(), error) {
	dir := filepath.Join(os.TempDir(), "yt-harvester-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", nil, fmt.Errorf("create scratch directory: %w", err)
	}
	return dir, func() {
		_ = os.RemoveAll(dir)
	}, nil
}

func (c *Client) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for extraction slot: %w", err)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if proxy := ProxyFrom(ctx); proxy != "" {
		args = append([]string{"--proxy", proxy}, args...)
	}

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	stderr := &cappedBuffer{max: 8192}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	c.logger.Debug("yt-dlp finished", "args", strings.Join(args, " "), "elapsed", time.Since(start).Round(time.Millisecond), "err", err)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotInstalled, c.binary)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("yt-dlp interrupted: %w", ctxErr)
		}
		return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// cappedBuffer keeps the first max bytes written and silently drops the rest.
type cappedBuffer struct {
	b   strings.Builder
	max int
}

func (t *cappedBuffer) Write(p []byte) (int, error) {
	if remain := t.max - t.b.Len(); remain > 0 {
		if len(p) > remain {
			t.b.Write(p[:remain])
		} else {
			t.b.Write(p)
		}
	}
	return len(p), nil
}

func (t *cappedBuffer) String() string {
	return t.b.String()
}
