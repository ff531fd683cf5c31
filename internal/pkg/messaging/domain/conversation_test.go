package messaging

import (
	"errors"
	"testing"
)

const (
	idA = "aaaaaaaaaaaaaaaaaaaaaaaa"
	idB = "bbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestResolveChannelID(t *testing.T) {
	t.Run("sorted pair joined with dash", func(t *testing.T) {
		got, err := ResolveChannelID(idA, idB)
		if err != nil {
			t.Fatalf("ResolveChannelID error: %v", err)
		}
		want := idA + "-" + idB
		if got != want {
			t.Errorf("channel = %q, want %q", got, want)
		}
	})

	t.Run("commutative", func(t *testing.T) {
		ab, err := ResolveChannelID(idA, idB)
		if err != nil {
			t.Fatalf("ResolveChannelID(a,b) error: %v", err)
		}
		ba, err := ResolveChannelID(idB, idA)
		if err != nil {
			t.Fatalf("ResolveChannelID(b,a) error: %v", err)
		}
		if ab != ba {
			t.Errorf("not commutative: %q vs %q", ab, ba)
		}
	})

	t.Run("invalid own id is an invalid session", func(t *testing.T) {
		_, err := ResolveChannelID("abc", idB)
		if !errors.Is(err, ErrInvalidSession) {
			t.Errorf("err = %v, want ErrInvalidSession", err)
		}
	})

	t.Run("invalid counterpart id is an invalid chat target", func(t *testing.T) {
		_, err := ResolveChannelID(idA, "507f1f77bcf86cd79943901g")
		if !errors.Is(err, ErrInvalidChatTarget) {
			t.Errorf("err = %v, want ErrInvalidChatTarget", err)
		}
	})
}
