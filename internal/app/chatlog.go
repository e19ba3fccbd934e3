package app

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

// ChatLogStore holds one append-only message sequence per room. A log is
// created together with its room and removed together with it; Clear resets
// the sequence but keeps the log.
type ChatLogStore struct {
	mu   sync.RWMutex
	logs map[domain.RoomID][]domain.Message
}

func NewChatLogStore() *ChatLogStore {
	return &ChatLogStore{logs: make(map[domain.RoomID][]domain.Message)}
}

func (s *ChatLogStore) CreateLog(id domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.logs[id]; !exists {
		s.logs[id] = []domain.Message{}
	}
}

func (s *ChatLogStore) Append(id domain.RoomID, user domain.UserID, content string) (domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, domain.ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[id]; !ok {
		return domain.Message{}, domain.ErrRoomNotFound
	}
	msg := domain.Message{
		UserID:    user,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	s.logs[id] = append(s.logs[id], msg)
	return msg, nil
}

// Messages returns the last limit messages in chronological order.
// limit <= 0 means the whole log.
func (s *ChatLogStore) Messages(id domain.RoomID, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs, ok := s.logs[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Clear resets the log to empty. Idempotent.
func (s *ChatLogStore) Clear(id domain.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[id]; !ok {
		return domain.ErrRoomNotFound
	}
	s.logs[id] = []domain.Message{}
	log.Info().Str("module", "app.chatlog").Str("room", string(id)).Msg("chat cleared")
	return nil
}

// Remove drops the log entirely. Called when its room is deleted.
func (s *ChatLogStore) Remove(id domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.logs, id)
}
