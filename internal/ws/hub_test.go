package ws

import (
	"encoding/json"
	"testing"
)

func TestNotifyStatsReady_DeliversToAllUserConnections(t *testing.T) {
	h := NewHub()

	c1 := &Client{UserID: "00000001", hub: h, send: make(chan []byte, 1)}
	c2 := &Client{UserID: "00000001", hub: h, send: make(chan []byte, 1)}
	other := &Client{UserID: "00000002", hub: h, send: make(chan []byte, 1)}
	h.register(c1)
	h.register(c2)
	h.register(other)

	h.NotifyStatsReady("00000001")

	for _, c := range []*Client{c1, c2} {
		select {
		case raw := <-c.send:
			var ev Event
			if err := json.Unmarshal(raw, &ev); err != nil {
				t.Fatalf("bad payload: %v", err)
			}
			if ev.Type != "stats_ready" || ev.UserID != "00000001" {
				t.Fatalf("event = %+v", ev)
			}
		default:
			t.Fatalf("expected event on client %p", c)
		}
	}

	select {
	case <-other.send:
		t.Fatalf("event leaked to another user's connection")
	default:
	}
}

func TestUnregister_RemovesClient(t *testing.T) {
	h := NewHub()
	c := &Client{UserID: "00000001", hub: h, send: make(chan []byte, 1)}
	h.register(c)
	h.unregister(c)

	h.NotifyStatsReady("00000001")
	select {
	case <-c.send:
		t.Fatalf("unregistered client still receives events")
	default:
	}
}
