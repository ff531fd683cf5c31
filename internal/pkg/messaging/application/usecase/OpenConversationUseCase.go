package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tport "github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/transport/port"
	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
	repository "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/persistence/repository/port"
	"github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/session"
	"github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/store"
)

// OpenConversationInput identifies the conversation to open. Mode is
// declared by the caller, never inferred: it states which role opened the
// chat and therefore which role the counterpart holds.
type OpenConversationInput struct {
	Mode          messaging.ChatMode
	CurrentUserID string
	CounterpartID string
}

// Conversation is an open conversation view: a transcript store paired with
// a live channel session. Close releases both; the pair is acquired on open
// and released on close, so a background join never outlives its view.
type Conversation struct {
	ChannelID     string
	Mode          messaging.ChatMode
	CurrentUserID string
	CounterpartID string

	store *store.Store
	sess  *session.ChannelSession

	closeOnce sync.Once
}

// Transcript returns the ordered messages for rendering.
func (c *Conversation) Transcript() []messaging.Message {
	return c.store.Snapshot()
}

// Send persists and broadcasts content to the counterpart, then appends the
// server-confirmed copy to the transcript. The live-channel echo of the same
// message carries the same correlation key and replaces rather than
// duplicates it.
func (c *Conversation) Send(ctx context.Context, content string) (messaging.Message, error) {
	draft := messaging.Message{
		FromUser:  c.CurrentUserID,
		ToUser:    c.CounterpartID,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	saved, err := c.sess.Send(ctx, draft)
	if err != nil {
		return messaging.Message{}, err
	}
	c.store.Append(saved)
	return saved, nil
}

// OnMessage registers h to observe live inbound messages after they are
// applied to the transcript.
func (c *Conversation) OnMessage(h func(messaging.Message)) {
	c.sess.OnMessage(func(m messaging.Message) {
		c.store.Append(m)
		if h != nil {
			h(m)
		}
	})
}

// Direction classifies a transcript message for rendering.
func (c *Conversation) Direction(m messaging.Message) messaging.Direction {
	return messaging.MessageDirection(m, c.CurrentUserID)
}

// Close leaves the live channel and clears the transcript. Idempotent.
func (c *Conversation) Close() {
	c.closeOnce.Do(func() {
		_ = c.sess.Leave()
		c.store.Clear()
	})
}

// SessionState exposes the underlying channel session state, mainly for a
// disconnected indicator in the UI adapter.
func (c *Conversation) SessionState() session.State {
	return c.sess.State()
}

// OpenConversationUseCase wires the open flow in its required order:
// validate both ids, resolve the channel id, load history, initialize the
// transcript, then join the live channel. Initializing before joining means
// a live message can never be overwritten by stale history.
type OpenConversationUseCase struct {
	Transport tport.Transport
	Repo      repository.MessageRepository
	Logger    *slog.Logger
}

func NewOpenConversationUseCase(transport tport.Transport, repo repository.MessageRepository, logger *slog.Logger) *OpenConversationUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenConversationUseCase{Transport: transport, Repo: repo, Logger: logger}
}

// Execute opens the conversation and returns a live view. The caller owns
// the returned Conversation and must Close it when the view goes away.
func (uc *OpenConversationUseCase) Execute(ctx context.Context, in OpenConversationInput) (*Conversation, error) {
	channelID, err := messaging.ResolveChannelID(in.CurrentUserID, in.CounterpartID)
	if err != nil {
		return nil, err
	}

	st := store.New()
	sess := session.New(uc.Transport, uc.Repo, uc.Logger)

	conv := &Conversation{
		ChannelID:     channelID,
		Mode:          in.Mode,
		CurrentUserID: in.CurrentUserID,
		CounterpartID: in.CounterpartID,
		store:         st,
		sess:          sess,
	}

	// The generation is captured before the fetch; a Close that sneaks in
	// while history is in flight bumps it and the late result is dropped.
	gen := st.Generation()
	history, err := NewLoadHistoryUseCase(uc.Repo, uc.Logger).Execute(ctx, LoadHistoryInput{
		CurrentUserID: in.CurrentUserID,
		CounterpartID: in.CounterpartID,
	})
	if err != nil {
		return nil, err
	}
	if !st.InitializeAt(gen, history) {
		return nil, ErrConversationClosed
	}

	sess.OnMessage(st.Append)

	if err := sess.Join(ctx, channelID); err != nil {
		st.Clear()
		return nil, err
	}

	uc.Logger.Info("conversation opened",
		"channel", channelID,
		"mode", in.Mode.String(),
		"history", len(history))
	return conv, nil
}
