package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yt-harvester/internal/model"
)

const testVideoID = "dQw4w9WgXcQ"

// installFakeYTDLP puts a yt-dlp shell script first on PATH. Every invocation
// appends its arguments, one per line, to $YTDLP_ARGS_LOG.
func installFakeYTDLP(t *testing.T, body string) string {
	t.Helper()
	tmp := t.TempDir()
	fakeBin := filepath.Join(tmp, "bin")
	if err := os.MkdirAll(fakeBin, 0o755); err != nil {
		t.Fatal(err)
	}
	script := "#!/usr/bin/env bash\nset -euo pipefail\nprintf '%s\\n' \"$@\" >> \"$YTDLP_ARGS_LOG\"\n" + body
	if err := os.WriteFile(filepath.Join(fakeBin, "yt-dlp"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	argsLog := filepath.Join(tmp, "args.log")
	t.Setenv("PATH", fakeBin+":"+os.Getenv("PATH"))
	t.Setenv("YTDLP_ARGS_LOG", argsLog)
	t.Setenv("TMPDIR", filepath.Join(tmp, "scratch"))
	if err := os.MkdirAll(filepath.Join(tmp, "scratch"), 0o755); err != nil {
		t.Fatal(err)
	}
	return tmp
}

func readArgs(t *testing.T, tmp string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(tmp, "args.log"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func assertScratchEmpty(t *testing.T, tmp string) {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(tmp, "scratch"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected scratch directories to be removed, found %d", len(entries))
	}
}

func TestMetadataParsesInfo(t *testing.T) {
	installFakeYTDLP(t, `echo '{"title":"Never Gonna","uploader":"Rick","webpage_url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ","view_count":1200,"duration":212,"upload_date":"20091025","tags":["pop"]}'
`)
	got := New(Options{}).Metadata(context.Background(), testVideoID)
	if got.Kind != model.FetchFound {
		t.Fatalf("expected found, got %s (%s)", got.Kind, got.Reason())
	}
	m := got.Value
	if m.Title != "Never Gonna" || m.Channel != "Rick" || m.UploadDate != "20091025" {
		t.Fatalf("unexpected metadata: %+v", m)
	}
	if m.ViewCount == nil || *m.ViewCount != 1200 {
		t.Fatalf("unexpected view count: %v", m.ViewCount)
	}
	if len(m.Tags) != 1 || m.Tags[0] != "pop" {
		t.Fatalf("unexpected tags: %v", m.Tags)
	}
}

func TestMetadataFailureCarriesStderr(t *testing.T) {
	installFakeYTDLP(t, `echo "ERROR: Video unavailable" >&2
exit 1
`)
	got := New(Options{}).Metadata(context.Background(), testVideoID)
	if got.Kind != model.FetchFailed {
		t.Fatalf("expected failure, got %s", got.Kind)
	}
	if !strings.Contains(got.Reason(), "Video unavailable") {
		t.Fatalf("expected stderr in reason, got %q", got.Reason())
	}
}

func TestMissingBinaryIsNotInstalled(t *testing.T) {
	c := New(Options{Binary: "yt-dlp-definitely-not-installed"})
	got := c.Metadata(context.Background(), testVideoID)
	if got.Kind != model.FetchFailed || !errors.Is(got.Err, ErrNotInstalled) {
		t.Fatalf("expected ErrNotInstalled, got %s (%v)", got.Kind, got.Err)
	}
	if DependencyStatus("yt-dlp-definitely-not-installed").YTDLPFound {
		t.Fatalf("dependency status should report missing binary")
	}
}

func TestAutoTranscriptReadsFirstCaptionFile(t *testing.T) {
	tmp := installFakeYTDLP(t, `for a in "$@"; do
  if [ "$a" = "--write-auto-subs" ]; then
    printf 'WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nHello\n\n00:00:01.000 --> 00:00:02.000\nworld.\n' > dQw4w9WgXcQ.en.vtt
    printf 'WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nHallo\n' > dQw4w9WgXcQ.fr.vtt
  fi
done
`)
	got := New(Options{}).AutoTranscript(context.Background(), testVideoID)
	if got.Kind != model.FetchFound {
		t.Fatalf("expected found, got %s (%s)", got.Kind, got.Reason())
	}
	if strings.Join(got.Value, "|") != "Hello|world." {
		t.Fatalf("unexpected fragments: %v", got.Value)
	}
	args := readArgs(t, tmp)
	if !strings.Contains(args, "--sub-langs\nen.*,en\n") {
		t.Fatalf("expected auto caption languages, got:\n%s", args)
	}
	assertScratchEmpty(t, tmp)
}

func TestOfficialTranscriptEmptyWhenNoFiles(t *testing.T) {
	tmp := installFakeYTDLP(t, "exit 0\n")
	got := New(Options{}).OfficialTranscript(context.Background(), testVideoID)
	if got.Kind != model.FetchEmpty {
		t.Fatalf("expected empty, got %s", got.Kind)
	}
	args := readArgs(t, tmp)
	if !strings.Contains(args, "--write-subs\n") || !strings.Contains(args, "en,en-US,en-GB,en-CA,en-AU") {
		t.Fatalf("unexpected official transcript args:\n%s", args)
	}
}

func TestCommentsReadsInfoJSON(t *testing.T) {
	tmp := installFakeYTDLP(t, `cat > dQw4w9WgXcQ.info.json <<'JSON'
{"id":"dQw4w9WgXcQ","comments":[
  {"id":"c1","author":"@a","text":"first","like_count":3,"parent":"root","timestamp":1700000000},
  {"id":"c2","author":"@b","text":"reply","like_count":"x","parent":"c1"}
]}
JSON
`)
	got := New(Options{}).Comments(context.Background(), testVideoID, 500)
	if got.Kind != model.FetchFound {
		t.Fatalf("expected found, got %s (%s)", got.Kind, got.Reason())
	}
	if len(got.Value) != 2 || got.Value[1].Parent != "c1" || got.Value[1].LikeCount != 0 {
		t.Fatalf("unexpected records: %+v", got.Value)
	}
	if args := readArgs(t, tmp); !strings.Contains(args, "youtube:max_comments=500;comment_sort=top") {
		t.Fatalf("expected extractor args, got:\n%s", args)
	}
	assertScratchEmpty(t, tmp)
}

func TestCommentsEmptyWithoutInfoJSON(t *testing.T) {
	installFakeYTDLP(t, "exit 0\n")
	got := New(Options{}).Comments(context.Background(), testVideoID, 10)
	if got.Kind != model.FetchEmpty {
		t.Fatalf("expected empty, got %s", got.Kind)
	}
}

func TestExpandCollection(t *testing.T) {
	installFakeYTDLP(t, `echo '{"id":"PL1","title":"Mix","entries":[{"id":"aaaaaaaaaaa","url":"https://www.youtube.com/watch?v=aaaaaaaaaaa"},{"id":"bbbbbbbbbbb","url":"bbbbbbbbbbb"},{"id":"ccccccccccc"},{"id":"","url":""}]}'
`)
	got := New(Options{}).ExpandCollection(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	if got.Kind != model.FetchFound {
		t.Fatalf("expected found, got %s (%s)", got.Kind, got.Reason())
	}
	want := []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"https://www.youtube.com/watch?v=bbbbbbbbbbb",
		"https://www.youtube.com/watch?v=ccccccccccc",
	}
	if got.Value.ID != "PL1" || got.Value.Title != "Mix" || strings.Join(got.Value.Members, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected collection: %+v", got.Value)
	}
}

func TestExpandCollectionEmpty(t *testing.T) {
	installFakeYTDLP(t, `echo '{"id":"PL2","title":"Nothing","entries":[]}'
`)
	got := New(Options{}).ExpandCollection(context.Background(), "https://www.youtube.com/playlist?list=PL2")
	if got.Kind != model.FetchEmpty {
		t.Fatalf("expected empty, got %s", got.Kind)
	}
}

func TestProxyIsPassedToYTDLP(t *testing.T) {
	tmp := installFakeYTDLP(t, "echo '{}'\n")
	ctx := WithProxy(context.Background(), "http://proxy:3128")
	New(Options{}).Metadata(ctx, testVideoID)
	if args := readArgs(t, tmp); !strings.HasPrefix(args, "--proxy\nhttp://proxy:3128\n") {
		t.Fatalf("expected proxy args first, got:\n%s", args)
	}
}
