package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	tport "github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/transport/port"
	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
	repository "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/persistence/repository/port"
)

// State is the channel session lifecycle position.
type State int32

const (
	StateIdle State = iota
	StateJoining
	StateJoined
	StateLeaving
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateJoining:
		return "joining"
	case StateJoined:
		return "joined"
	case StateLeaving:
		return "leaving"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Session-level errors.
var (
	// ErrPersistence wraps a storage write failure during send. The message
	// was never broadcast.
	ErrPersistence = errors.New("session: message persistence failed")
	// ErrTransport wraps a realtime connect, join, or broadcast failure.
	// There is no automatic retry; the caller reopens the conversation.
	ErrTransport = errors.New("session: realtime transport failure")
	// ErrNotJoined is returned by Send when no channel is joined.
	ErrNotJoined = errors.New("session: no channel joined")
)

// ChannelSession owns the lifecycle of one live conversation channel:
// Idle -> Joining -> Joined -> Leaving -> Idle, with a Joined -> Errored
// excursion when the connection drops underneath it. At most one channel is
// joined at a time; joining a second channel implicitly leaves the first.
//
// Send is persist-then-broadcast: the message is durably stored through the
// repository first and only the server-confirmed copy goes out on the wire.
// The session never appends the sender's own message anywhere; the returned
// copy is the caller's to apply, which keeps the append policy (and the echo
// handling) in one place.
type ChannelSession struct {
	transport tport.Transport
	repo      repository.MessageRepository
	logger    *slog.Logger

	mu        sync.Mutex
	state     State
	channelID string
	handler   func(messaging.Message)
}

// New constructs an idle session over the given transport and repository.
func New(transport tport.Transport, repo repository.MessageRepository, logger *slog.Logger) *ChannelSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChannelSession{
		transport: transport,
		repo:      repo,
		logger:    logger,
	}
}

// State returns the current lifecycle state.
func (s *ChannelSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Channel returns the joined channel id, or "" when not joined.
func (s *ChannelSession) Channel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateJoined {
		return ""
	}
	return s.channelID
}

// OnMessage registers h for inbound messages on the joined channel.
// Typically wired straight to the transcript store's Append.
func (s *ChannelSession) OnMessage(h func(messaging.Message)) {
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
}

// Join connects the transport and subscribes to channelID. Joining the
// already-joined channel is a no-op; joining while another channel is live
// leaves it first.
func (s *ChannelSession) Join(ctx context.Context, channelID string) error {
	if channelID == "" {
		return fmt.Errorf("%w: empty channel id", ErrTransport)
	}

	s.mu.Lock()
	if s.state == StateJoined {
		if s.channelID == channelID {
			s.mu.Unlock()
			return nil
		}
		s.mu.Unlock()
		if err := s.Leave(); err != nil {
			return err
		}
		s.mu.Lock()
	}
	s.state = StateJoining
	s.channelID = channelID
	s.mu.Unlock()

	// Subscribe before emitting the join so an immediate delivery is not lost.
	s.transport.OnReceive(s.dispatch)
	s.transport.OnClose(s.transportClosed)

	if err := s.transport.Connect(ctx); err != nil {
		s.toIdle()
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := s.transport.JoinRoom(ctx, channelID); err != nil {
		_ = s.transport.Disconnect()
		s.toIdle()
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	s.mu.Lock()
	s.state = StateJoined
	s.mu.Unlock()
	s.logger.Debug("channel joined", "channel", channelID)
	return nil
}

// Leave unsubscribes and tears the connection down. Idempotent: leaving an
// idle (or never-joined) session does nothing. It also clears the Errored
// state after a dropped connection.
func (s *ChannelSession) Leave() error {
	s.mu.Lock()
	if s.state == StateIdle {
		s.mu.Unlock()
		return nil
	}
	channelID := s.channelID
	s.state = StateLeaving
	s.mu.Unlock()

	s.transport.OffReceive()
	err := s.transport.Disconnect()

	s.toIdle()
	s.logger.Debug("channel left", "channel", channelID)
	return err
}

// Send validates draft, persists it, then broadcasts the stored copy on the
// joined channel. The stored message is returned for the caller to append.
//
// Failure modes, checked in order:
//   - domain validation errors (empty content, bad ids) before any I/O
//   - ErrNotJoined when no channel is live
//   - ErrPersistence when the storage write fails; nothing is broadcast
//   - ErrTransport when the broadcast fails; the message IS persisted and
//     is still returned alongside the error
func (s *ChannelSession) Send(ctx context.Context, draft messaging.Message) (messaging.Message, error) {
	m, err := messaging.NewMessage(draft.FromUser, draft.ToUser, draft.Content, draft.Timestamp)
	if err != nil {
		return messaging.Message{}, err
	}
	m.ClientKey = draft.ClientKey
	if m.ClientKey == "" {
		m.ClientKey = uuid.NewString()
	}

	s.mu.Lock()
	if s.state != StateJoined {
		s.mu.Unlock()
		return messaging.Message{}, ErrNotJoined
	}
	channelID := s.channelID
	s.mu.Unlock()

	saved, err := s.repo.SaveMessage(ctx, m)
	if err != nil {
		return messaging.Message{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.transport.SendMessage(ctx, channelID, saved); err != nil {
		s.logger.Warn("broadcast failed after persist", "channel", channelID, "error", err)
		return saved, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return saved, nil
}

func (s *ChannelSession) dispatch(m messaging.Message) {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	if h != nil {
		h(m)
	}
}

// transportClosed records a connection drop. A drop while joined parks the
// session in Errored until the caller leaves or reopens; a drop during leave
// or after idle is the expected teardown path.
func (s *ChannelSession) transportClosed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateJoined {
		return
	}
	if err != nil {
		s.logger.Warn("channel connection dropped", "channel", s.channelID, "error", err)
		s.state = StateErrored
		return
	}
	s.state = StateIdle
	s.channelID = ""
}

func (s *ChannelSession) toIdle() {
	s.mu.Lock()
	s.state = StateIdle
	s.channelID = ""
	s.mu.Unlock()
}
