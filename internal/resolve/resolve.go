// Package resolve turns user-supplied strings into YouTube video ids and
// canonical playlist URLs.
package resolve

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var ErrInvalidIdentifier = errors.New("invalid video identifier")

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

func IsVideoID(s string) bool {
	return videoIDPattern.MatchString(s)
}

// VideoID extracts the 11-character id from a bare id, a youtu.be short link,
// a watch URL (?v=), an /embed/, /shorts/ or /watch/ path, or as a last resort
// the final path segment of anything containing a slash.
func VideoID(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", fmt.Errorf("%w: no video identifier provided", ErrInvalidIdentifier)
	}
	if IsVideoID(candidate) {
		return candidate, nil
	}

	if u, err := url.Parse(candidate); err == nil {
		host := strings.ToLower(u.Hostname())
		if isShortHost(host) {
			if segs := pathSegments(u.Path); len(segs) > 0 && IsVideoID(segs[0]) {
				return segs[0], nil
			}
		}
		if strings.HasSuffix(host, "youtube.com") {
			if v := u.Query().Get("v"); IsVideoID(v) {
				return v, nil
			}
			segs := pathSegments(u.Path)
			if len(segs) >= 2 && IsVideoID(segs[1]) {
				switch segs[0] {
				case "embed", "shorts", "watch":
					return segs[1], nil
				}
			}
		}
	}

	if strings.Contains(candidate, "/") {
		parts := strings.Split(candidate, "/")
		if tail := parts[len(parts)-1]; IsVideoID(tail) {
			return tail, nil
		}
	}
	return "", fmt.Errorf("%w: cannot extract a video id from %q", ErrInvalidIdentifier, candidate)
}

// PlaylistID reports the `list` parameter of a YouTube or youtu.be URL. A bare
// video id is never treated as a playlist.
func PlaylistID(raw string) (string, bool) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" || IsVideoID(candidate) {
		return "", false
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if !strings.HasSuffix(host, "youtube.com") && !isShortHost(host) {
		return "", false
	}
	id := strings.TrimSpace(u.Query().Get("list"))
	if id == "" {
		return "", false
	}
	return id, true
}

func PlaylistURL(raw string) (string, bool) {
	id, ok := PlaylistID(raw)
	if !ok {
		return "", false
	}
	return "https://www.youtube.com/playlist?list=" + url.QueryEscape(id), true
}

func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func isShortHost(host string) bool {
	return host == "youtu.be" || host == "www.youtu.be"
}

func pathSegments(p string) []string {
	out := make([]string, 0, 4)
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
