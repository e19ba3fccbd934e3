// Package events is the websocket adapter for the event hub: it upgrades
// subscription requests, owns the transport lifetime, and feeds the hub a
// non-blocking Subscriber per connection.
package events

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/KeithOruwari19/walkingbuddy/internal/app"
	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	Hub *app.Hub

	ReadLimit    int64
	PingPeriod   time.Duration
	RateLimit    int
	RateInterval time.Duration
}

// subscription implements app.Subscriber over one websocket connection.
type subscription struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newSubscription(conn *websocket.Conn) *subscription {
	return &subscription{
		conn: conn,
		send: make(chan []byte, 32),
	}
}

func (s *subscription) TrySend(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("connection closed")
	}
	select {
	case s.send <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

func (s *subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.send)
	s.mu.Unlock()
	_ = s.conn.Close()
}

// HandleEvents upgrades the request and scopes the subscription to the
// optional room_id query param; no param means lobby scope (every event).
func (ctl *Controller) HandleEvents(ctx context.Context, c *gin.Context) {
	roomID := domain.RoomID(c.Query("room_id"))

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Str("module", "adapters.events").Err(err).Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	sub := newSubscription(ws)
	ctl.Hub.Subscribe(sub, roomID)
	log.Info().Str("module", "adapters.events").Str("room", string(roomID)).Msg("new event subscription")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, sub)
	go ctl.readPump(cancel, sub)
}

func (ctl *Controller) writePump(ctx context.Context, s *subscription) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-s.send:
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Str("module", "adapters.events").Err(err).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump exists to notice disconnects. Subscribers do not speak to the
// server over this channel; inbound frames are discarded, rate-limited so a
// misbehaving client cannot spin the loop.
func (ctl *Controller) readPump(cancel context.CancelFunc, s *subscription) {
	limiter := newFrameRateLimiter(ctl.RateLimit, ctl.RateInterval)
	defer func() {
		ctl.Hub.Unsubscribe(s)
		s.Close()
		cancel()
	}()

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			log.Debug().Str("module", "adapters.events").Err(err).Msg("readPump closing")
			return
		}
		if !limiter.Allow() {
			log.Warn().Str("module", "adapters.events").Msg("inbound frame rate exceeded, dropping connection")
			return
		}
	}
}
