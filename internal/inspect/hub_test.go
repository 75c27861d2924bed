package inspect

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubDropsStalledClient(t *testing.T) {
	hub := NewHub(nil, 50*time.Millisecond)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, Message{Type: MessageSnapshot})
	}))
	defer srv.Close()
	defer hub.Close()

	// The client never reads, so the server's socket buffers fill up.
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client was never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	big := Message{Type: MessageLocale, Title: strings.Repeat("x", 1<<20)}
	deadline = time.Now().Add(10 * time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("stalled client was not dropped; Broadcast blocked on its writes")
		}
		start := time.Now()
		hub.Broadcast(big)
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Fatalf("Broadcast took %v with a 50ms write timeout", elapsed)
		}
	}
}

func TestNewHubDefaultWriteTimeout(t *testing.T) {
	if got := NewHub(nil, 0).writeTimeout; got != DefaultWriteTimeout {
		t.Errorf("writeTimeout = %v, want %v", got, DefaultWriteTimeout)
	}
	if got := NewHub(nil, time.Second).writeTimeout; got != time.Second {
		t.Errorf("writeTimeout = %v, want 1s", got)
	}
}
