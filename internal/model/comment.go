package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RootParent is the parent value yt-dlp uses for top-level comments.
const RootParent = "root"

type CommentRecord struct {
	ID        string
	Author    string
	Text      string
	LikeCount int
	Timestamp *int64
	Parent    string
}

func (c CommentRecord) IsRoot() bool {
	p := strings.TrimSpace(c.Parent)
	return p == "" || p == RootParent
}

// SortTimestamp treats a missing timestamp as 0.
func (c CommentRecord) SortTimestamp() int64 {
	if c.Timestamp == nil {
		return 0
	}
	return *c.Timestamp
}

type rawCommentRecord struct {
	ID        any     `json:"id"`
	Author    *string `json:"author"`
	Text      *string `json:"text"`
	LikeCount any     `json:"like_count"`
	Timestamp any     `json:"timestamp"`
	Parent    any     `json:"parent"`
}

// UnmarshalJSON accepts the loosely typed comment objects yt-dlp writes into
// info.json and coerces them into the fixed record shape.
func (c *CommentRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw rawCommentRecord
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode comment record: %w", err)
	}

	*c = CommentRecord{
		ID:        scalarString(raw.ID),
		LikeCount: NormalizeLikes(raw.LikeCount),
		Parent:    scalarString(raw.Parent),
	}
	if raw.Author != nil {
		c.Author = *raw.Author
	}
	if raw.Text != nil {
		c.Text = *raw.Text
	}
	if n, ok := raw.Timestamp.(json.Number); ok {
		if v, err := n.Int64(); err == nil {
			c.Timestamp = &v
		} else if f, err := n.Float64(); err == nil {
			v := int64(f)
			c.Timestamp = &v
		}
	}
	return nil
}

// NormalizeLikes coerces a like count to a non-negative integer: integers are
// clamped at 0, digit-only strings are parsed, everything else becomes 0.
func NormalizeLikes(v any) int {
	switch n := v.(type) {
	case int:
		return max(n, 0)
	case int32:
		return max(int(n), 0)
	case int64:
		return max(int(n), 0)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return max(int(i), 0)
	case float64:
		if n != float64(int64(n)) {
			return 0
		}
		return max(int(n), 0)
	case string:
		if n == "" {
			return 0
		}
		for _, r := range n {
			if r < '0' || r > '9' {
				return 0
			}
		}
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

// CommentThread is a root comment and at most one level of replies. Every
// reply's Parent equals Root.ID.
type CommentThread struct {
	Root    CommentRecord
	Replies []CommentRecord
}
