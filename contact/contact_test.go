package contact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"brewbliss/app"
	"brewbliss/config"
	"brewbliss/models"
	"brewbliss/store"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.Defaults()
	cfg.UploadDir = t.TempDir()
	st := store.New(store.WithLoadingDelay(0))
	st.Initialize()
	a := app.New(cfg, st, log.New(io.Discard, "", 0))
	t.Cleanup(func() { a.Close(context.Background()) })
	return a
}

func TestNewMessage(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	msg, err := NewMessage(" Ada ", "ada@example.com", " Hello ", now)
	if err != nil {
		t.Fatal(err)
	}
	if msg.ID == "" || msg.Name != "Ada" || msg.Message != "Hello" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if msg.Date != "2026-03-01T09:30:00.000Z" {
		t.Fatalf("unexpected date %q", msg.Date)
	}

	for _, c := range [][3]string{{"", "a@b.c", "hi"}, {"A", " ", "hi"}, {"A", "a@b.c", ""}} {
		if _, err := NewMessage(c[0], c[1], c[2], now); !errors.Is(err, ErrMissingFields) {
			t.Errorf("NewMessage(%q) = %v", c, err)
		}
	}
	if _, err := NewMessage("A", "a@b.c", strings.Repeat("x", maxMessageLength+1), now); !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("got %v", err)
	}
}

func TestSubmitAndList(t *testing.T) {
	a := newTestApp(t)
	router := httprouter.New()
	router.POST("/api/contact", Submit(a))
	router.GET("/api/admin/messages", AdminMessages(a))

	for _, name := range []string{"First", "Second"} {
		rr := httptest.NewRecorder()
		body := `{"name":"` + name + `","email":"x@example.com","message":"hello"}`
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)))
		if rr.Code != http.StatusAccepted {
			t.Fatalf("submit: got %d %s", rr.Code, rr.Body.String())
		}
		a.Wait()
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil))
	var msgs []models.ContactMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &msgs); err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 || msgs[0].Name != "Second" || msgs[1].Name != "First" {
		t.Fatalf("inbox should be newest first: %+v", msgs)
	}
	if msgs[0].Sentiment != models.SentimentNeutral || msgs[0].Priority != models.PriorityNormal {
		t.Fatalf("fallback analysis should be attached: %+v", msgs[0])
	}
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	a := newTestApp(t)
	rr := httptest.NewRecorder()
	Submit(a)(rr, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":"A","email":"","message":"m"}`)), nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d", rr.Code)
	}
	a.Wait()
	if len(a.Store.ListMessages()) != 0 {
		t.Fatal("rejected submission reached the inbox")
	}
}
