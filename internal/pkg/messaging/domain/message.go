package messaging

import (
	"errors"
	"strings"
	"time"
)

// Domain-level errors for the messaging core.
var (
	ErrInvalidSession    = errors.New("messaging: current user id is not a valid participant id")
	ErrInvalidChatTarget = errors.New("messaging: chat target id is not a valid participant id")
	ErrEmptyContent      = errors.New("messaging: message content is empty")
	ErrSelfMessage       = errors.New("messaging: sender and recipient are the same participant")
)

// Message is an immutable entry in a conversation transcript.
//
// ID is assigned by storage and is empty on an optimistic local copy.
// ClientKey is a client-generated correlation key carried through the
// persist-and-broadcast round trip so the server echo can supersede the
// optimistic copy instead of rendering next to it.
type Message struct {
	ID        string    `json:"_id,omitempty"`
	FromUser  string    `json:"fromUser"`
	ToUser    string    `json:"toUser"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	ClientKey string    `json:"clientKey,omitempty"`
}

// NewMessage builds a validated message ready to persist.
//
// Validations:
//   - both participant ids must be well-formed (sender failing is
//     ErrInvalidSession, recipient failing is ErrInvalidChatTarget)
//   - sender and recipient must differ
//   - content must be non-empty after trimming
//
// The timestamp defaults to now when zero.
func NewMessage(fromUser, toUser, content string, at time.Time) (Message, error) {
	if !IsValidParticipantID(fromUser) {
		return Message{}, ErrInvalidSession
	}
	if !IsValidParticipantID(toUser) {
		return Message{}, ErrInvalidChatTarget
	}
	if strings.EqualFold(fromUser, toUser) {
		return Message{}, ErrSelfMessage
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, ErrEmptyContent
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return Message{
		FromUser:  fromUser,
		ToUser:    toUser,
		Content:   content,
		Timestamp: at,
	}, nil
}

// Direction tells whether a message renders on the sender or recipient side.
type Direction int16

const (
	DirectionOutgoing Direction = 0
	DirectionIncoming Direction = 1
)

func (d Direction) String() string {
	if d == DirectionIncoming {
		return "incoming"
	}
	return "outgoing"
}

// MessageDirection classifies m relative to the viewing user.
func MessageDirection(m Message, currentUserID string) Direction {
	if m.FromUser == currentUserID {
		return DirectionOutgoing
	}
	return DirectionIncoming
}

// Counterpart returns the participant in m that is not currentUserID.
func Counterpart(m Message, currentUserID string) string {
	if m.FromUser == currentUserID {
		return m.ToUser
	}
	return m.FromUser
}
