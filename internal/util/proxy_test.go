package util

import (
	"net/http"
	"net/url"
	"testing"
)

func proxyFor(t *testing.T, fn func(*http.Request) (*url.URL, error), target string) string {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	u, err := fn(req)
	if err != nil {
		t.Fatalf("proxy func: %v", err)
	}
	if u == nil {
		return ""
	}
	return u.String()
}

func TestNewProxyFunc_Schemes(t *testing.T) {
	fn := NewProxyFunc("http://proxy.internal:3128", "http://secure.internal:3129", "")

	if got := proxyFor(t, fn, "http://api.example.com/v1"); got != "http://proxy.internal:3128" {
		t.Errorf("http request proxied via %q", got)
	}
	if got := proxyFor(t, fn, "https://api.example.com/v1"); got != "http://secure.internal:3129" {
		t.Errorf("https request proxied via %q", got)
	}
}

func TestNewProxyFunc_HTTPSFallsBackToHTTP(t *testing.T) {
	fn := NewProxyFunc("http://proxy.internal:3128", "", "")

	if got := proxyFor(t, fn, "https://api.example.com/v1"); got != "http://proxy.internal:3128" {
		t.Errorf("https request proxied via %q", got)
	}
}

func TestNewProxyFunc_NoProxy(t *testing.T) {
	fn := NewProxyFunc("http://proxy.internal:3128", "", "ollama.lan,.corp.example")

	if got := proxyFor(t, fn, "http://ollama.lan:11434/api/generate"); got != "" {
		t.Errorf("no_proxy host proxied via %q", got)
	}
	if got := proxyFor(t, fn, "https://llm.corp.example/v1"); got != "" {
		t.Errorf("no_proxy domain proxied via %q", got)
	}
	if got := proxyFor(t, fn, "https://api.example.com/v1"); got == "" {
		t.Error("expected other hosts to be proxied")
	}
}
