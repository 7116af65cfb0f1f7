package live

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"brewbliss/models"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := newTestHub(t)

	client := &Client{Send: make(chan []byte, 10)}
	if !hub.Register(client) {
		t.Fatal("register failed on a running hub")
	}

	hub.MenuCreated(models.MenuItem{ID: "x", Name: "Test Latte", Category: models.CategoryCoffee})

	select {
	case got := <-client.Send:
		var f Frame
		if err := json.Unmarshal(got, &f); err != nil {
			t.Fatal(err)
		}
		if f.Action != ActionMenuCreated || f.Item == nil || f.Item.Name != "Test Latte" {
			t.Fatalf("unexpected frame %s", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.Unregister(client)
	// a second unregister must not close the channel twice
	hub.Unregister(client)

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after unregister")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := newTestHub(t)

	slow := &Client{Send: make(chan []byte, 1)}
	slow.Send <- []byte("backlog")
	hub.Register(slow)
	hub.MenuDeleted("1")
	// Run handles one case at a time, so once this registration is
	// accepted the broadcast above has been fanned out.
	hub.Register(&Client{Send: make(chan []byte, 1)})

	<-slow.Send
	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Fatal("slow client should have been dropped, not served")
		}
	case <-time.After(time.Second):
		t.Fatal("slow client was not dropped")
	}
}

func TestPublishAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()
	hub.Stop()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.MessageReceived(models.ContactMessage{ID: "m"})
		if hub.Register(&Client{Send: make(chan []byte, 1)}) {
			t.Error("register should fail after stop")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked after stop")
	}
}

func TestHandlerStreamsFrames(t *testing.T) {
	hub := newTestHub(t)
	router := httprouter.New()
	router.GET("/live", Handler(hub))
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/live", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// registration happens before the upgrade handler returns, but the dial
	// may complete first; retry until a frame arrives.
	deadline := time.Now().Add(2 * time.Second)
	conn.SetReadDeadline(deadline)
	received := make(chan []byte, 1)
	go func() {
		_, data, err := conn.ReadMessage()
		if err == nil {
			received <- data
		}
	}()
	for time.Now().Before(deadline) {
		hub.MenuDeleted("42")
		select {
		case data := <-received:
			if !strings.Contains(string(data), `"action":"menu-deleted"`) {
				t.Fatalf("unexpected frame %s", data)
			}
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
	t.Fatal("no frame received over websocket")
}
