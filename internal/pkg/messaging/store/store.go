package store

import (
	"sync"

	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
)

// Store holds the ordered transcript of the open conversation.
//
// Messages keep arrival order: history first, then live messages appended as
// they are delivered. The list is never re-sorted by timestamp, so delivery
// that races across senders stays in the order it was applied.
//
// Every Clear advances a generation counter. A history fetch records the
// generation it started under and applies its result through InitializeAt;
// if the view closed in the meantime the result is discarded instead of
// repopulating a cleared transcript.
type Store struct {
	mu       sync.Mutex
	messages []messaging.Message
	gen      uint64
}

// New constructs an empty Store at generation zero.
func New() *Store {
	return &Store{}
}

// Generation returns the current open/close generation.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Initialize replaces the entire transcript with history.
func (s *Store) Initialize(history []messaging.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages[:0:0], history...)
}

// InitializeAt replaces the transcript only if gen still matches the current
// generation. It reports whether the history was applied; a false return
// means the view closed while the fetch was in flight and the result was
// dropped.
func (s *Store) InitializeAt(gen uint64, history []messaging.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.messages = append(s.messages[:0:0], history...)
	return true
}

// Append adds m to the end of the transcript. When m carries a ClientKey
// that matches an existing entry, the entry is replaced in place instead:
// the server echo of an optimistic send supersedes the local copy rather
// than rendering twice.
func (s *Store) Append(m messaging.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ClientKey != "" {
		for i := range s.messages {
			if s.messages[i].ClientKey == m.ClientKey {
				s.messages[i] = m
				return
			}
		}
	}
	s.messages = append(s.messages, m)
}

// Snapshot returns a copy of the transcript in arrival order.
func (s *Store) Snapshot() []messaging.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]messaging.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Clear discards the transcript and advances the generation, invalidating
// any in-flight history fetch started before the close.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.gen++
}
