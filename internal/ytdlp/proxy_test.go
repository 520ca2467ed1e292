package ytdlp

import (
	"context"
	"testing"
)

func TestProxyForWorker(t *testing.T) {
	proxies := []string{"http://p1:8080", "http://p2:8080"}
	if got := ProxyForWorker(1, ProxyModePerWorker, proxies); got != proxies[0] {
		t.Fatalf("worker 1 proxy mismatch: got %q want %q", got, proxies[0])
	}
	if got := ProxyForWorker(2, ProxyModePerWorker, proxies); got != proxies[1] {
		t.Fatalf("worker 2 proxy mismatch: got %q want %q", got, proxies[1])
	}
	if got := ProxyForWorker(3, ProxyModePerWorker, proxies); got != "" {
		t.Fatalf("expected no proxy past the list, got %q", got)
	}
	if got := ProxyForWorker(1, ProxyModeOff, proxies); got != "" {
		t.Fatalf("expected empty proxy for off mode, got %q", got)
	}
}

func TestNormalizeProxyMode(t *testing.T) {
	if m, ok := NormalizeProxyMode(""); !ok || m != ProxyModeOff {
		t.Fatalf("blank mode: got %q ok=%v", m, ok)
	}
	if m, ok := NormalizeProxyMode(" Per_Worker "); !ok || m != ProxyModePerWorker {
		t.Fatalf("per_worker mode: got %q ok=%v", m, ok)
	}
	if _, ok := NormalizeProxyMode("round_robin"); ok {
		t.Fatalf("expected unknown mode to be rejected")
	}
}

func TestNormalizeProxyListDropsBlanksAndDuplicates(t *testing.T) {
	got := NormalizeProxyList([]string{" http://a ", "", "http://a", "http://b"})
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("unexpected proxies: %v", got)
	}
}

func TestWithProxy(t *testing.T) {
	ctx := context.Background()
	if WithProxy(ctx, "  ") != ctx {
		t.Fatalf("blank proxy should not wrap the context")
	}
	if got := ProxyFrom(WithProxy(ctx, " http://p ")); got != "http://p" {
		t.Fatalf("unexpected proxy: %q", got)
	}
	if got := ProxyFrom(ctx); got != "" {
		t.Fatalf("expected no proxy, got %q", got)
	}
}
