package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-harvester/internal/model"
)

type fakeLister struct {
	results map[string]model.Fetched[model.Collection]
	calls   []string
}

func (f *fakeLister) ExpandCollection(_ context.Context, url string) model.Fetched[model.Collection] {
	f.calls = append(f.calls, url)
	if r, ok := f.results[url]; ok {
		return r
	}
	return model.Empty[model.Collection]()
}

func TestExpandPlaylistAndStandalone(t *testing.T) {
	base := t.TempDir()
	lister := &fakeLister{results: map[string]model.Fetched[model.Collection]{
		"https://www.youtube.com/playlist?list=PL1": model.Found(model.Collection{
			ID:    "PL1",
			Title: "My: Mix?",
			Members: []string{
				"https://www.youtube.com/watch?v=aaaaaaaaaaa",
				"https://www.youtube.com/watch?v=bbbbbbbbbbb",
				"https://www.youtube.com/watch?v=ccccccccccc",
			},
		}),
	}}

	items, err := Expander{Lister: lister, BaseDir: base}.Expand(context.Background(), []string{
		"https://www.youtube.com/watch?v=xxxxxxxxxxx&list=PL1",
		"# comment",
		"",
		"dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	require.Len(t, items, 4)

	playlistDir := filepath.Join(base, "My Mix [PL1]")
	for i, it := range items[:3] {
		assert.Equal(t, i+1, it.Index)
		assert.Equal(t, playlistDir, it.OutputDir)
		assert.Equal(t, model.StatusPending, it.Status)
	}
	assert.Equal(t, "https://www.youtube.com/watch?v=bbbbbbbbbbb", items[1].Input)
	assert.Equal(t, "dQw4w9WgXcQ", items[3].Input)
	assert.Equal(t, base, items[3].OutputDir)
	assert.NotEqual(t, items[0].OutputDir, items[3].OutputDir)

	info, err := os.Stat(playlistDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, []string{"https://www.youtube.com/playlist?list=PL1"}, lister.calls)
}

func TestExpandSkipsEmptyPlaylist(t *testing.T) {
	items, err := Expander{Lister: &fakeLister{}}.Expand(context.Background(), []string{
		"https://www.youtube.com/playlist?list=EMPTY",
		"dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "dQw4w9WgXcQ", items[0].Input)
	assert.Equal(t, 1, items[0].Index)
	assert.Equal(t, "", items[0].OutputDir)
}

func TestExpandFailedPlaylistFallsBackToRawLine(t *testing.T) {
	raw := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=BROKEN"
	lister := &fakeLister{results: map[string]model.Fetched[model.Collection]{
		"https://www.youtube.com/playlist?list=BROKEN": model.Failed[model.Collection](errors.New("boom")),
	}}
	items, err := Expander{Lister: lister, BaseDir: "out"}.Expand(context.Background(), []string{raw})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, raw, items[0].Input)
	assert.Equal(t, "out", items[0].OutputDir)
}

func TestCollectionDirWithoutBase(t *testing.T) {
	dir := CollectionDir("", model.Collection{ID: "PL9", Title: ""})
	assert.Equal(t, "untitled [PL9]", dir)
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("  a  \n\n# skip\n  # also skip\nb\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestReadLinesFileMissing(t *testing.T) {
	_, err := ReadLinesFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSafePathName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "Hello World"},
		{`a/b\c:d*e?f"g<h>i|j`, "a b c d e f g h i j"},
		{"  lots   of\tspace  ", "lots of space"},
		{"trailing dots...", "trailing dots"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"", "untitled"},
		{"...", "untitled"},
		{"\x01\x02", "untitled"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SafePathName(tc.in), tc.in)
	}

	long := strings.Repeat("é", 130)
	assert.Equal(t, strings.Repeat("é", 120), SafePathName(long))
}
