package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultCapacity = 15

type Turn struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Store — ограниченный буфер истории диалога на пользователя.
// При переполнении самые старые реплики вытесняются.
type Store struct {
	mu       sync.RWMutex
	capacity int
	turns    map[uuid.UUID][]Turn
}

// NewStore создает хранилище истории с заданной емкостью на пользователя.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Store{
		capacity: capacity,
		turns:    make(map[uuid.UUID][]Turn),
	}
}

// Append добавляет реплику пользователю, вытесняя самую старую при переполнении.
func (s *Store) Append(userID uuid.UUID, turn Turn) {
	if turn.At.IsZero() {
		turn.At = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.turns[userID], turn)
	if len(turns) > s.capacity {
		turns = turns[len(turns)-s.capacity:]
	}
	s.turns[userID] = turns
}

// Recent возвращает копию истории пользователя от старых реплик к новым.
func (s *Store) Recent(userID uuid.UUID) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[userID]
	if len(turns) == 0 {
		return nil
	}

	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Clear удаляет историю пользователя.
func (s *Store) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, userID)
}
