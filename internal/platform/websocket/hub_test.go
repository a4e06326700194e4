package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newClient(hub *Hub, id string, topics ...string) *Client {
	return &Client{ID: id, Topics: topics, Send: make(chan []byte, 16), hub: hub}
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newClient(hub, "c-1", "queue")

	hub.Register(client)
	if hub.ClientCount() != 1 || hub.TopicCount("queue") != 1 {
		t.Fatalf("expected 1 client on queue, got %d/%d", hub.ClientCount(), hub.TopicCount("queue"))
	}

	hub.Unregister(client)
	if hub.ClientCount() != 0 || hub.TopicCount("queue") != 0 {
		t.Fatalf("expected no clients, got %d/%d", hub.ClientCount(), hub.TopicCount("queue"))
	}
	if _, ok := <-client.Send; ok {
		t.Error("expected Send channel closed")
	}

	// A second unregister is a no-op.
	hub.Unregister(client)
}

func TestHub_BroadcastToTopic(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub := newClient(hub, "sub", "queue")
	other := newClient(hub, "other", "consultations")
	hub.Register(sub)
	hub.Register(other)

	event, err := NewEvent(EventUpdate, "queue", map[string]int{"total": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hub.Broadcast("queue", event)

	select {
	case data := <-sub.Send:
		var got Event
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Type != EventUpdate || got.Topic != "queue" || string(got.Data) != `{"total":3}` {
			t.Errorf("unexpected event %+v", got)
		}
	default:
		t.Fatal("expected subscriber to receive the event")
	}

	select {
	case <-other.Send:
		t.Error("expected non-subscriber to receive nothing")
	default:
	}
}

func TestHub_BroadcastSkipsFullBuffer(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := &Client{ID: "slow", Topics: []string{"queue"}, Send: make(chan []byte, 1), hub: hub}
	hub.Register(client)

	event := Event{Type: EventUpdate, Topic: "queue"}
	hub.Broadcast("queue", event)
	hub.Broadcast("queue", event)

	if len(client.Send) != 1 {
		t.Errorf("expected one buffered event, got %d", len(client.Send))
	}
}

func TestHub_SubscribeAndUnsubscribe(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newClient(hub, "c-2")
	hub.Register(client)

	hub.ProcessMessage(client, ClientMessage{Action: "subscribe", Topics: []string{"queue", "staff", "queue"}})
	if len(client.Topics) != 2 {
		t.Fatalf("expected 2 topics without duplicates, got %v", client.Topics)
	}
	if hub.TopicCount("staff") != 1 {
		t.Errorf("expected 1 on staff, got %d", hub.TopicCount("staff"))
	}

	hub.ProcessMessage(client, ClientMessage{Action: "unsubscribe", Topics: []string{"staff"}})
	if hub.TopicCount("staff") != 0 || hub.TopicCount("queue") != 1 {
		t.Errorf("expected only queue left, got staff=%d queue=%d", hub.TopicCount("staff"), hub.TopicCount("queue"))
	}
	if len(client.Topics) != 1 || client.Topics[0] != "queue" {
		t.Errorf("expected client topics [queue], got %v", client.Topics)
	}
}

func TestHub_ConcurrentRegisterUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := newClient(hub, "c", "queue")
			hub.Register(c)
			hub.Broadcast("queue", Event{Type: EventUpdate, Topic: "queue"})
			hub.Unregister(c)
		}()
	}
	wg.Wait()
	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestWebSocketHandler_UnknownTopic(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	h := NewWebSocketHandler(hub, HandlerOptions{Snapshot: func(topic string) (any, bool) {
		return nil, topic == "queue"
	}})

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ws/nope", nil), httptest.NewRecorder())
	c.SetParamNames("topic")
	c.SetParamValues("nope")

	err := h.HandleConnect(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestWebSocketHandler_RequiresUpgrade(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	h := NewWebSocketHandler(hub, HandlerOptions{})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ws/queue", nil), rec)
	c.SetParamNames("topic")
	c.SetParamValues("queue")

	if err := h.HandleConnect(c); err == nil && rec.Code == http.StatusSwitchingProtocols {
		t.Fatal("expected upgrade to fail for a plain request")
	}
}

func TestWebSocketHandler_SnapshotThenBroadcast(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	h := NewWebSocketHandler(hub, HandlerOptions{
		AllowedOrigins: []string{"http://console.local"},
		Snapshot: func(topic string) (any, bool) {
			return map[string]string{"nowServing": "4"}, topic == "queue"
		},
	})

	e := echo.New()
	h.RegisterRoutes(e.Group(""))
	server := httptest.NewServer(e)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/queue"

	if _, _, err := gorillawebsocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://evil.example"}}); err == nil {
		t.Fatal("expected foreign origin rejected")
	}

	conn, resp, err := gorillawebsocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://console.local"}})
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first Event
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if first.Type != EventSnapshot || string(first.Data) != `{"nowServing":"4"}` {
		t.Fatalf("unexpected snapshot %+v", first)
	}

	deadline := time.Now().Add(time.Second)
	for hub.TopicCount("queue") == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	event, _ := NewEvent(EventUpdate, "queue", map[string]string{"nowServing": "5"})
	hub.Broadcast("queue", event)

	var next Event
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("failed to read update: %v", err)
	}
	if next.Type != EventUpdate || string(next.Data) != `{"nowServing":"5"}` {
		t.Errorf("unexpected update %+v", next)
	}
}
