package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"yt-harvester/internal/model"
	"yt-harvester/internal/runstore"
)

var csvHeader = []string{
	"comment_id",
	"video_id",
	"author",
	"comment_text",
	"like_count",
	"timestamp",
	"is_reply",
	"parent_comment_id",
}

// csvRows flattens threads into one row per comment, each root followed by its
// replies.
func csvRows(videoID string, threads []model.CommentThread) [][]string {
	rows := make([][]string, 0, len(threads))
	for _, th := range threads {
		rows = append(rows, csvRow(videoID, th.Root, false, ""))
		for _, r := range th.Replies {
			rows = append(rows, csvRow(videoID, r, true, th.Root.ID))
		}
	}
	return rows
}

func csvRow(videoID string, c model.CommentRecord, reply bool, parent string) []string {
	ts := ""
	if c.Timestamp != nil {
		ts = strconv.FormatInt(*c.Timestamp, 10)
	}
	return []string{
		c.ID,
		videoID,
		c.Author,
		c.Text,
		strconv.Itoa(c.LikeCount),
		ts,
		strconv.FormatBool(reply),
		parent,
	}
}

func renderCSV(r model.HarvestResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(csvRows(r.VideoID, r.Threads)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CombinedCSV appends the comments of many results to one file that carries a
// single header row. It is not safe for concurrent use.
type CombinedCSV struct {
	path string
	f    *os.File
	w    *csv.Writer
}

func CreateCombinedCSV(path string) (*CombinedCSV, error) {
	if err := runstore.Mkdir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create combined csv: %w", err)
	}
	c := &CombinedCSV{path: path, f: f, w: csv.NewWriter(f)}
	if err := c.write([][]string{csvHeader}); err != nil {
		_ = f.Close()
		return nil, err
	}
	return c, nil
}

func (c *CombinedCSV) Path() string { return c.path }

// Save appends the rows of r and flushes them before returning.
func (c *CombinedCSV) Save(r model.HarvestResult) (string, error) {
	if err := c.write(csvRows(r.VideoID, r.Threads)); err != nil {
		return "", err
	}
	return c.path, nil
}

func (c *CombinedCSV) write(rows [][]string) error {
	if err := c.w.WriteAll(rows); err != nil {
		return fmt.Errorf("write combined csv: %w", err)
	}
	return nil
}

func (c *CombinedCSV) Close() error {
	c.w.Flush()
	werr := c.w.Error()
	cerr := c.f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}
