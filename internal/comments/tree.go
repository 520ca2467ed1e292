// Package comments rebuilds two-level comment threads from the flat record
// list yt-dlp returns.
package comments

import (
	"cmp"
	"slices"

	"yt-harvester/internal/model"
)

// MaxReplies caps the replies kept under each root.
const MaxReplies = 50

// BuildThreads keeps the topN most-liked roots (stable on ties) and attaches
// to each its newest MaxReplies replies. A reply to a reply is attached to the
// root at the top of its parent chain. topN <= 0 yields no threads.
func BuildThreads(records []model.CommentRecord, topN int) []model.CommentThread {
	if topN <= 0 || len(records) == 0 {
		return []model.CommentThread{}
	}

	byID := make(map[string]model.CommentRecord, len(records))
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		if _, dup := byID[r.ID]; !dup {
			byID[r.ID] = r
		}
	}

	roots := make([]model.CommentRecord, 0, len(records))
	buckets := make(map[string][]model.CommentRecord)
	for _, r := range records {
		if r.IsRoot() {
			roots = append(roots, r)
			continue
		}
		rootID := rootAncestor(r.Parent, byID)
		if rootID == "" {
			continue
		}
		buckets[rootID] = append(buckets[rootID], r)
	}

	slices.SortStableFunc(roots, func(a, b model.CommentRecord) int {
		return cmp.Compare(max(b.LikeCount, 0), max(a.LikeCount, 0))
	})
	if len(roots) > topN {
		roots = roots[:topN]
	}

	threads := make([]model.CommentThread, 0, len(roots))
	for _, root := range roots {
		var replies []model.CommentRecord
		if root.ID != "" {
			replies = buckets[root.ID]
		}
		threads = append(threads, model.CommentThread{
			Root:    root,
			Replies: limitReplies(root.ID, replies),
		})
	}
	return threads
}

func limitReplies(rootID string, replies []model.CommentRecord) []model.CommentRecord {
	out := slices.Clone(replies)
	slices.SortStableFunc(out, func(a, b model.CommentRecord) int {
		return cmp.Compare(b.SortTimestamp(), a.SortTimestamp())
	})
	if len(out) > MaxReplies {
		out = out[:MaxReplies]
	}
	for i := range out {
		out[i].Parent = rootID
	}
	if out == nil {
		return []model.CommentRecord{}
	}
	return out
}

// rootAncestor follows parent links until it reaches a root record. A parent
// id that is not in the list is returned as-is, so the reply stays bucketed
// under an id no root will claim. Cycles yield "".
func rootAncestor(parent string, byID map[string]model.CommentRecord) string {
	seen := make(map[string]bool)
	for {
		rec, ok := byID[parent]
		if !ok {
			return parent
		}
		if rec.IsRoot() {
			return rec.ID
		}
		if seen[parent] {
			return ""
		}
		seen[parent] = true
		parent = rec.Parent
	}
}
