package app

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
	"github.com/KeithOruwari19/walkingbuddy/internal/metrics"
)

type EventType string

const (
	EventRoomNew     EventType = "room:new"
	EventRoomJoin    EventType = "room:join"
	EventRoomLeave   EventType = "room:leave"
	EventRoomUpdate  EventType = "room:update"
	EventRoomDelete  EventType = "room:delete"
	EventChatMessage EventType = "chat:message"
)

// Event is the wire shape fanned out to subscribers.
type Event struct {
	Type    EventType           `json:"type"`
	Room    domain.RoomSnapshot `json:"room"`
	Message *domain.Message     `json:"message,omitempty"`
}

// Subscriber is a live outbound channel. TrySend must never block; a failed
// send marks the subscriber dead. The hub calls Close exactly once when it
// drops a subscriber.
type Subscriber interface {
	TrySend(data []byte) error
	Close()
}

// Hub fans events out to live subscriptions. A subscription is scoped to one
// room, or to no room at all ("" = lobby, receives every event). Broadcast
// enqueues onto a single ordered queue; the Run loop serializes delivery, so
// events for one room reach subscribers in commit order. Delivery is
// best-effort: a dead subscriber is dropped, never retried, and a full queue
// drops the event rather than block a mutating caller.
type Hub struct {
	mu   sync.RWMutex
	subs map[Subscriber]domain.RoomID

	queue chan Event
	done  chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs:  make(map[Subscriber]domain.RoomID),
		queue: make(chan Event, 256),
		done:  make(chan struct{}),
	}
}

// Run dispatches queued events until ctx is canceled. Call in its own
// goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case ev := <-h.queue:
			h.dispatch(ev)
		}
	}
}

// Done is closed after Run has finished shutting subscribers down.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Subscribe registers sub. roomID "" means lobby scope (all events).
func (h *Hub) Subscribe(sub Subscriber, roomID domain.RoomID) {
	h.mu.Lock()
	h.subs[sub] = roomID
	n := len(h.subs)
	h.mu.Unlock()
	metrics.Subscribers.Set(float64(n))
	log.Info().Str("module", "app.hub").Str("room", string(roomID)).Int("subscribers", n).Msg("subscriber added")
}

// Unsubscribe removes sub. Idempotent; the caller owns the transport and
// closes it itself on the disconnect path.
func (h *Hub) Unsubscribe(sub Subscriber) {
	h.mu.Lock()
	_, existed := h.subs[sub]
	delete(h.subs, sub)
	n := len(h.subs)
	h.mu.Unlock()
	if existed {
		metrics.Subscribers.Set(float64(n))
		log.Info().Str("module", "app.hub").Int("subscribers", n).Msg("subscriber removed")
	}
}

// Broadcast enqueues ev for delivery. It never fails and never blocks.
func (h *Hub) Broadcast(ev Event) {
	select {
	case h.queue <- ev:
	default:
		metrics.EventsDropped.Inc()
		log.Warn().Str("module", "app.hub").Str("type", string(ev.Type)).Msg("broadcast queue full, event dropped")
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

type subSnap struct {
	sub  Subscriber
	room domain.RoomID
}

func (h *Hub) dispatch(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Str("module", "app.hub").Err(err).Msg("event marshal")
		return
	}

	// Snapshot under the read lock, send after release. A slow or stuck
	// subscriber must not stall unrelated mutating callers.
	h.mu.RLock()
	targets := make([]subSnap, 0, len(h.subs))
	for sub, room := range h.subs {
		if room == "" || room == ev.Room.ID {
			targets = append(targets, subSnap{sub: sub, room: room})
		}
	}
	h.mu.RUnlock()

	var dead []Subscriber
	sent := 0
	for _, t := range targets {
		if err := t.sub.TrySend(data); err != nil {
			dead = append(dead, t.sub)
			continue
		}
		sent++
	}
	metrics.EventsBroadcast.WithLabelValues(string(ev.Type)).Add(float64(sent))
	if len(dead) > 0 {
		h.removeDead(dead)
	}
	log.Debug().Str("module", "app.hub").Str("type", string(ev.Type)).Int("sent", sent).Int("dropped", len(dead)).Msg("event dispatched")
}

func (h *Hub) removeDead(dead []Subscriber) {
	h.mu.Lock()
	var toClose []Subscriber
	for _, sub := range dead {
		if _, ok := h.subs[sub]; ok {
			delete(h.subs, sub)
			toClose = append(toClose, sub)
		}
	}
	n := len(h.subs)
	h.mu.Unlock()

	metrics.Subscribers.Set(float64(n))
	for _, sub := range toClose {
		sub.Close()
	}
	log.Info().Str("module", "app.hub").Int("removed", len(toClose)).Int("subscribers", n).Msg("dead subscribers dropped")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	subs := make([]Subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.subs = make(map[Subscriber]domain.RoomID)
	h.mu.Unlock()

	metrics.Subscribers.Set(0)
	for _, sub := range subs {
		sub.Close()
	}
}
