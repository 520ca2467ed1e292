package ytdlp

import (
	"context"
	"strings"
)

const (
	ProxyModeOff       = "off"
	ProxyModePerWorker = "per_worker"
)

type proxyKey struct{}

// WithProxy routes every yt-dlp call made with the returned context through
// proxy. A blank proxy leaves ctx unchanged.
func WithProxy(ctx context.Context, proxy string) context.Context {
	proxy = strings.TrimSpace(proxy)
	if proxy == "" {
		return ctx
	}
	return context.WithValue(ctx, proxyKey{}, proxy)
}

func ProxyFrom(ctx context.Context) string {
	p, _ := ctx.Value(proxyKey{}).(string)
	return p
}

func NormalizeProxyMode(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", ProxyModeOff:
		return ProxyModeOff, true
	case ProxyModePerWorker:
		return ProxyModePerWorker, true
	default:
		return "", false
	}
}

func NormalizeProxyList(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, p := range raw {
		v := strings.TrimSpace(p)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// ProxyForWorker pins worker n (1-based) to the n-th proxy in per_worker mode.
func ProxyForWorker(workerID int, mode string, proxies []string) string {
	if m, _ := NormalizeProxyMode(mode); m != ProxyModePerWorker {
		return ""
	}
	if workerID <= 0 || workerID > len(proxies) {
		return ""
	}
	return proxies[workerID-1]
}
