package messaging

import (
	"errors"
	"testing"
	"time"
)

func TestNewMessage(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("trims content and keeps timestamp", func(t *testing.T) {
		m, err := NewMessage(idA, idB, "  hi there  ", at)
		if err != nil {
			t.Fatalf("NewMessage error: %v", err)
		}
		if m.Content != "hi there" {
			t.Errorf("Content = %q, want %q", m.Content, "hi there")
		}
		if !m.Timestamp.Equal(at) {
			t.Errorf("Timestamp = %v, want %v", m.Timestamp, at)
		}
		if m.ID != "" {
			t.Errorf("ID = %q, want empty before persistence", m.ID)
		}
	})

	t.Run("defaults zero timestamp to now", func(t *testing.T) {
		m, err := NewMessage(idA, idB, "hi", time.Time{})
		if err != nil {
			t.Fatalf("NewMessage error: %v", err)
		}
		if m.Timestamp.IsZero() {
			t.Error("Timestamp should be set")
		}
	})

	t.Run("rejects empty content before anything else", func(t *testing.T) {
		for _, content := range []string{"", "   ", "\n\t"} {
			if _, err := NewMessage(idA, idB, content, at); !errors.Is(err, ErrEmptyContent) {
				t.Errorf("NewMessage(%q) err = %v, want ErrEmptyContent", content, err)
			}
		}
	})

	t.Run("rejects self message", func(t *testing.T) {
		if _, err := NewMessage(idA, idA, "hi", at); !errors.Is(err, ErrSelfMessage) {
			t.Errorf("err = %v, want ErrSelfMessage", err)
		}
	})

	t.Run("rejects bad sender then bad recipient", func(t *testing.T) {
		if _, err := NewMessage("nope", idB, "hi", at); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("bad sender err = %v, want ErrInvalidSession", err)
		}
		if _, err := NewMessage(idA, "nope", "hi", at); !errors.Is(err, ErrInvalidChatTarget) {
			t.Errorf("bad recipient err = %v, want ErrInvalidChatTarget", err)
		}
	})
}

func TestMessageDirection(t *testing.T) {
	m := Message{FromUser: idA, ToUser: idB, Content: "hi"}
	if got := MessageDirection(m, idA); got != DirectionOutgoing {
		t.Errorf("direction for sender = %v, want outgoing", got)
	}
	if got := MessageDirection(m, idB); got != DirectionIncoming {
		t.Errorf("direction for recipient = %v, want incoming", got)
	}
}

func TestCounterpart(t *testing.T) {
	m := Message{FromUser: idA, ToUser: idB}
	if got := Counterpart(m, idA); got != idB {
		t.Errorf("Counterpart for sender = %q, want %q", got, idB)
	}
	if got := Counterpart(m, idB); got != idA {
		t.Errorf("Counterpart for recipient = %q, want %q", got, idA)
	}
}
