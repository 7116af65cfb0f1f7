package gemini

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"brewbliss/models"
)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	base := []Option{WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithLogger(quietLogger())}
	return New("test-key", append(base, opts...)...)
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func (m *memCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memCache) Set(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string]string{}
	}
	m.data[key] = value
	m.sets++
}

func TestGenerateDescriptionSuccess(t *testing.T) {
	var gotPath, gotKey, gotPrompt string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		io.WriteString(w, candidateBody("  Velvety espresso kissed with lavender.  "))
	})

	got := c.GenerateDescription(context.Background(), "Lavender Latte", "espresso, lavender, oat milk")
	if got != "Velvety espresso kissed with lavender." {
		t.Fatalf("unexpected description %q", got)
	}
	if gotPath != "/v1beta/models/"+DefaultModel+":generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if !strings.Contains(gotPrompt, "Lavender Latte") || !strings.Contains(gotPrompt, "oat milk") {
		t.Errorf("prompt missing inputs: %q", gotPrompt)
	}
}

func TestGenerateDescriptionFallbacks(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"error":{"message":"boom"}}`)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "not json")
		}},
		{"no candidates", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"candidates":[]}`)
		}},
		{"blank text", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, candidateBody("   "))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.handler)
			if got := c.GenerateDescription(context.Background(), "X", "y"); got != FallbackDescription {
				t.Fatalf("expected fallback, got %q", got)
			}
		})
	}
}

func TestGenerateDescriptionWithoutKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	c := New("", WithBaseURL(srv.URL), WithLogger(quietLogger()))
	if got := c.GenerateDescription(context.Background(), "X", "y"); got != FallbackDescription {
		t.Fatalf("expected fallback, got %q", got)
	}
	if called {
		t.Fatal("no request should be made without an api key")
	}
}

func TestGenerateDescriptionUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New("k", WithBaseURL(url), WithLogger(quietLogger()))
	if got := c.GenerateDescription(context.Background(), "X", "y"); got != FallbackDescription {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGenerateDescriptionCache(t *testing.T) {
	calls := 0
	cache := &memCache{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		io.WriteString(w, candidateBody("Golden and flaky."))
	}, WithCache(cache))

	for i := 0; i < 2; i++ {
		if got := c.GenerateDescription(context.Background(), "Croissant", "butter"); got != "Golden and flaky." {
			t.Fatalf("call %d: got %q", i, got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
}

func TestFallbackNotCached(t *testing.T) {
	cache := &memCache{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, WithCache(cache))

	c.GenerateDescription(context.Background(), "X", "y")
	if cache.sets != 0 {
		t.Fatalf("fallback must not be cached, got %d sets", cache.sets)
	}
}

func TestAnalyzeMessage(t *testing.T) {
	cases := []struct {
		name string
		text string
		want models.Analysis
	}{
		{"exact", `{"sentiment":"Negative","priority":"High"}`, models.Analysis{Sentiment: models.SentimentNegative, Priority: models.PriorityHigh}},
		{"lower case", `{"sentiment":"positive","priority":"low"}`, models.Analysis{Sentiment: models.SentimentPositive, Priority: models.PriorityLow}},
		{"unknown values", `{"sentiment":"Ecstatic","priority":"Urgent"}`, models.DefaultAnalysis()},
		{"partial", `{"sentiment":"Negative"}`, models.Analysis{Sentiment: models.SentimentNegative, Priority: models.PriorityNormal}},
		{"not json", `I think it is positive`, models.DefaultAnalysis()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotMime string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var req generateRequest
				json.NewDecoder(r.Body).Decode(&req)
				if req.GenerationConfig != nil {
					gotMime = req.GenerationConfig.ResponseMimeType
				}
				io.WriteString(w, candidateBody(tc.text))
			})
			got := c.AnalyzeMessage(context.Background(), "The coffee was cold.")
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
			if gotMime != "application/json" {
				t.Errorf("responseMimeType = %q", gotMime)
			}
		})
	}
}

func TestAnalyzeMessageFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	if got := c.AnalyzeMessage(context.Background(), "hi"); got != models.DefaultAnalysis() {
		t.Fatalf("expected default analysis, got %+v", got)
	}
}

func TestDescriptionCacheKey(t *testing.T) {
	a := DescriptionCacheKey("Latte", "milk")
	b := DescriptionCacheKey("  latte ", "MILK")
	if a != b {
		t.Fatalf("keys should normalise case and spacing: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "describe:") {
		t.Fatalf("unexpected key %q", a)
	}
	if a == DescriptionCacheKey("Latte", "oat milk") {
		t.Fatal("different ingredients must yield different keys")
	}
}
