package output

import "yt-harvester/internal/model"

type jsonDocument struct {
	Metadata   model.Metadata `json:"metadata"`
	Analysis   model.Analysis `json:"analysis"`
	Transcript []string       `json:"transcript"`
	Comments   []jsonComment  `json:"comments"`
}

type jsonCommentsDocument struct {
	Comments []jsonComment `json:"comments"`
}

type jsonComment struct {
	Author    string      `json:"author"`
	Text      string      `json:"text"`
	LikeCount int         `json:"like_count"`
	Timestamp *int64      `json:"timestamp"`
	ID        string      `json:"id"`
	Replies   []jsonReply `json:"replies"`
}

type jsonReply struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	LikeCount int    `json:"like_count"`
	Timestamp *int64 `json:"timestamp"`
	ID        string `json:"id"`
}

// Document returns the value serialized for the json format.
func Document(r model.HarvestResult) any {
	comments := jsonComments(r.Threads)
	if r.CommentsOnly {
		return jsonCommentsDocument{Comments: comments}
	}
	transcript := r.Transcript
	if transcript == nil {
		transcript = []string{}
	}
	return jsonDocument{
		Metadata:   r.Metadata,
		Analysis:   r.Analysis,
		Transcript: transcript,
		Comments:   comments,
	}
}

func jsonComments(threads []model.CommentThread) []jsonComment {
	out := make([]jsonComment, 0, len(threads))
	for _, th := range threads {
		replies := make([]jsonReply, 0, len(th.Replies))
		for _, r := range th.Replies {
			replies = append(replies, jsonReply{
				Author:    r.Author,
				Text:      r.Text,
				LikeCount: r.LikeCount,
				Timestamp: r.Timestamp,
				ID:        r.ID,
			})
		}
		out = append(out, jsonComment{
			Author:    th.Root.Author,
			Text:      th.Root.Text,
			LikeCount: th.Root.LikeCount,
			Timestamp: th.Root.Timestamp,
			ID:        th.Root.ID,
			Replies:   replies,
		})
	}
	return out
}
