package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLikes(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"int", 7, 7},
		{"negative int", -5, 0},
		{"digit string", "42", 42},
		{"letters", "abc", 0},
		{"signed string", "-3", 0},
		{"empty string", "", 0},
		{"json number", json.Number("12"), 12},
		{"negative json number", json.Number("-2"), 0},
		{"fractional json number", json.Number("3.5"), 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeLikes(tc.in))
		})
	}
}

func TestCommentRecordUnmarshalCoercesFields(t *testing.T) {
	data := `[
		{"id":"a","author":"@alice","text":"hi","like_count":"15","timestamp":1700000000,"parent":"root"},
		{"id":"b","author":null,"text":null,"like_count":-4,"parent":"a"},
		{"id":"c","like_count":"lots","timestamp":null}
	]`
	var recs []CommentRecord
	require.NoError(t, json.Unmarshal([]byte(data), &recs))
	require.Len(t, recs, 3)

	assert.Equal(t, "a", recs[0].ID)
	assert.Equal(t, 15, recs[0].LikeCount)
	require.NotNil(t, recs[0].Timestamp)
	assert.Equal(t, int64(1700000000), *recs[0].Timestamp)
	assert.True(t, recs[0].IsRoot())

	assert.Equal(t, "", recs[1].Author)
	assert.Equal(t, 0, recs[1].LikeCount)
	assert.Nil(t, recs[1].Timestamp)
	assert.Equal(t, int64(0), recs[1].SortTimestamp())
	assert.False(t, recs[1].IsRoot())

	assert.Equal(t, 0, recs[2].LikeCount)
	assert.True(t, recs[2].IsRoot())
}

func TestMetadataWithFallbacks(t *testing.T) {
	m := Metadata{}.WithFallbacks("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	assert.Equal(t, UnknownTitle, m.Title)
	assert.Equal(t, UnknownChannel, m.Channel)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", m.URL)

	kept := Metadata{Title: "T", Channel: "C", URL: "U"}.WithFallbacks("W")
	assert.Equal(t, "T", kept.Title)
	assert.Equal(t, "U", kept.URL)
}

func TestFetchedReason(t *testing.T) {
	assert.Equal(t, "", Found(1).Reason())
	assert.Equal(t, "no data", Empty[int]().Reason())
	assert.Equal(t, "boom", Failed[int](errors.New("boom")).Reason())
	assert.True(t, Found("x").OK())
	assert.False(t, Empty[string]().OK())
}
