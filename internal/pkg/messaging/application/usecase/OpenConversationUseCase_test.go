package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
	"github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/session"
)

func TestOpenConversationHappyPath(t *testing.T) {
	repo := &fakeMessageRepo{}
	ft := &fakeTransport{}
	uc := NewOpenConversationUseCase(ft, repo, nil)

	conv, err := uc.Execute(context.Background(), OpenConversationInput{
		Mode:          messaging.ModeSeekerInitiated,
		CurrentUserID: idA,
		CounterpartID: idB,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	defer conv.Close()

	wantChannel := idA + "-" + idB
	if conv.ChannelID != wantChannel {
		t.Errorf("ChannelID = %q, want %q", conv.ChannelID, wantChannel)
	}
	if len(ft.joined) != 1 || ft.joined[0] != wantChannel {
		t.Errorf("joined = %v, want [%s]", ft.joined, wantChannel)
	}
	if got := conv.Transcript(); len(got) != 0 {
		t.Errorf("transcript = %+v, want empty", got)
	}

	saved, err := conv.Send(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if saved.ID == "" {
		t.Error("saved.ID should be server-assigned")
	}

	got := conv.Transcript()
	if len(got) != 1 || got[0].Content != "hi" {
		t.Fatalf("transcript = %+v, want the sent message", got)
	}
	if conv.Direction(got[0]) != messaging.DirectionOutgoing {
		t.Errorf("direction = %v, want outgoing", conv.Direction(got[0]))
	}
}

func TestOpenConversationLoadsHistoryBeforeJoining(t *testing.T) {
	repo := &fakeMessageRepo{history: []messaging.Message{
		{ID: "m1", FromUser: idB, ToUser: idA, Content: "old", Timestamp: time.Now().Add(-time.Hour)},
	}}
	ft := &fakeTransport{}
	uc := NewOpenConversationUseCase(ft, repo, nil)

	conv, err := uc.Execute(context.Background(), OpenConversationInput{
		Mode:          messaging.ModeSeekerInitiated,
		CurrentUserID: idA,
		CounterpartID: idB,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	defer conv.Close()

	// History first, then a live delivery appends after it.
	ft.deliver(messaging.Message{ID: "m2", FromUser: idB, ToUser: idA, Content: "new"})

	got := conv.Transcript()
	if len(got) != 2 || got[0].ID != "m1" || got[1].ID != "m2" {
		t.Errorf("transcript order = %+v, want [m1 m2]", got)
	}
}

func TestOpenConversationEchoReplacesOwnSend(t *testing.T) {
	repo := &fakeMessageRepo{}
	ft := &fakeTransport{}
	uc := NewOpenConversationUseCase(ft, repo, nil)

	conv, err := uc.Execute(context.Background(), OpenConversationInput{
		Mode:          messaging.ModeSeekerInitiated,
		CurrentUserID: idA,
		CounterpartID: idB,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	defer conv.Close()

	saved, err := conv.Send(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}

	// The gateway echoes the broadcast back to the sender.
	ft.deliver(saved)

	got := conv.Transcript()
	if len(got) != 1 {
		t.Errorf("transcript = %+v, want 1 message (echo replaces, not duplicates)", got)
	}
}

func TestOpenConversationRejectsBadIdentities(t *testing.T) {
	uc := NewOpenConversationUseCase(&fakeTransport{}, &fakeMessageRepo{}, nil)

	_, err := uc.Execute(context.Background(), OpenConversationInput{CurrentUserID: "bad", CounterpartID: idB})
	if !errors.Is(err, messaging.ErrInvalidSession) {
		t.Errorf("err = %v, want ErrInvalidSession", err)
	}

	_, err = uc.Execute(context.Background(), OpenConversationInput{CurrentUserID: idA, CounterpartID: "bad"})
	if !errors.Is(err, messaging.ErrInvalidChatTarget) {
		t.Errorf("err = %v, want ErrInvalidChatTarget", err)
	}
}

func TestOpenConversationJoinFailure(t *testing.T) {
	ft := &fakeTransport{joinErr: errors.New("gateway down")}
	uc := NewOpenConversationUseCase(ft, &fakeMessageRepo{}, nil)

	_, err := uc.Execute(context.Background(), OpenConversationInput{
		CurrentUserID: idA,
		CounterpartID: idB,
	})
	if !errors.Is(err, session.ErrTransport) {
		t.Errorf("err = %v, want session.ErrTransport", err)
	}
}

func TestCloseReleasesSessionAndTranscript(t *testing.T) {
	repo := &fakeMessageRepo{history: []messaging.Message{
		{ID: "m1", FromUser: idB, ToUser: idA, Content: "old"},
	}}
	ft := &fakeTransport{}
	uc := NewOpenConversationUseCase(ft, repo, nil)

	conv, err := uc.Execute(context.Background(), OpenConversationInput{
		CurrentUserID: idA,
		CounterpartID: idB,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	conv.Close()
	conv.Close() // idempotent

	if got := conv.SessionState(); got != session.StateIdle {
		t.Errorf("session state = %v, want idle", got)
	}
	if got := conv.Transcript(); len(got) != 0 {
		t.Errorf("transcript after close = %+v, want empty", got)
	}
}
