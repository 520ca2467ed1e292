package output

import (
	"fmt"
	"strings"

	"yt-harvester/internal/model"
)

const (
	TranscriptUnavailable = "(Transcript unavailable.)"
	noComments            = "(No comments found.)"
)

// RenderText lays a result out as METADATA, optional ANALYSIS, TRANSCRIPT and
// COMMENTS sections. Comments-only results carry just the COMMENTS section.
func RenderText(r model.HarvestResult) []byte {
	var b strings.Builder
	if !r.CommentsOnly {
		m := r.Metadata
		b.WriteString("====== METADATA ======\n")
		fmt.Fprintf(&b, "Title: %s\n", m.Title)
		fmt.Fprintf(&b, "Channel: %s\n", m.Channel)
		fmt.Fprintf(&b, "URL: %s\n", m.URL)
		if m.ViewCount != nil && *m.ViewCount > 0 {
			fmt.Fprintf(&b, "Views: %s\n", FormatLikeCount(int(*m.ViewCount)))
		}
		if m.UploadDate != "" {
			fmt.Fprintf(&b, "Uploaded: %s\n", m.UploadDate)
		}
		b.WriteString("\n")

		a := r.Analysis
		if a.Sentiment != nil || len(a.Keywords) > 0 {
			b.WriteString("====== ANALYSIS ======\n")
			if a.Sentiment != nil {
				fmt.Fprintf(&b, "Sentiment: Polarity=%.2f, Subjectivity=%.2f\n", a.Sentiment.Polarity, a.Sentiment.Subjectivity)
			}
			if len(a.Keywords) > 0 {
				fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(a.Keywords, ", "))
			}
			b.WriteString("\n")
		}

		paragraphs := r.Transcript
		if len(paragraphs) == 0 {
			paragraphs = []string{TranscriptUnavailable}
		}
		b.WriteString("====== TRANSCRIPT ======\n")
		b.WriteString(strings.TrimSpace(strings.Join(paragraphs, "\n\n")))
		b.WriteString("\n\n")
	}

	b.WriteString("====== COMMENTS ======\n")
	b.WriteString(strings.TrimSpace(strings.Join(commentLines(r.Threads), "\n")))
	b.WriteString("\n")
	return []byte(b.String())
}

// commentLines renders each thread as its root line followed by its replies
// indented one level, with a blank line between threads.
func commentLines(threads []model.CommentThread) []string {
	if len(threads) == 0 {
		return []string{noComments}
	}
	lines := make([]string, 0, len(threads)*2)
	for i, th := range threads {
		if i > 0 {
			lines = append(lines, "")
		}
		root := th.Root
		date := ""
		if d := FormatDate(root.Timestamp); d != "" {
			date = " [" + d + "]"
		}
		lines = append(lines, fmt.Sprintf("%s (likes: %s)%s: %s",
			displayAuthor(root.Author), FormatLikeCount(root.LikeCount), date, displayText(root.Text)))
		for _, reply := range th.Replies {
			lines = append(lines, fmt.Sprintf("  ↳ %s (likes: %s): %s",
				displayAuthor(reply.Author), FormatLikeCount(reply.LikeCount), displayText(reply.Text)))
		}
	}
	return lines
}
