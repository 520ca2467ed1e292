package model

// WorkItem is one unit of scheduled processing. An empty OutputDir means the
// item has no destination directory and writes relative to the working dir.
type WorkItem struct {
	Index     int    `json:"index"`
	Input     string `json:"input"`
	OutputDir string `json:"output_dir,omitempty"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// Collection is an expanded playlist: its title, id and member watch URLs in
// playlist order.
type Collection struct {
	ID      string
	Title   string
	Members []string
}

type Metadata struct {
	Title       string   `json:"Title"`
	Channel     string   `json:"Channel"`
	URL         string   `json:"URL"`
	ViewCount   *int64   `json:"ViewCount"`
	Duration    *float64 `json:"Duration"`
	UploadDate  string   `json:"UploadDate,omitempty"`
	Description string   `json:"Description,omitempty"`
	Tags        []string `json:"Tags"`
}

const (
	UnknownTitle   = "(Unknown title)"
	UnknownChannel = "(Unknown channel)"
)

// WithFallbacks fills the placeholders used when extraction returned nothing
// usable for title, channel or URL.
func (m Metadata) WithFallbacks(watchURL string) Metadata {
	if m.Title == "" {
		m.Title = UnknownTitle
	}
	if m.Channel == "" {
		m.Channel = UnknownChannel
	}
	if m.URL == "" {
		m.URL = watchURL
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m
}

type Sentiment struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Analysis holds optional text analysis. A nil Sentiment or Keywords slice
// means that analysis was disabled for the run.
type Analysis struct {
	Sentiment *Sentiment `json:"sentiment"`
	Keywords  []string   `json:"keywords"`
}

// HarvestResult is everything collected for one video, handed to the output
// writer once the item pipeline finishes.
type HarvestResult struct {
	VideoID      string
	OutputDir    string
	CommentsOnly bool
	Metadata     Metadata
	Analysis     Analysis
	Transcript   []string
	Threads      []CommentThread
}
