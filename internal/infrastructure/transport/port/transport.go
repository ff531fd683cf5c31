package port

import (
	"context"

	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
)

// ReceiveHandler consumes messages delivered on the joined room.
type ReceiveHandler func(m messaging.Message)

// Transport is the bidirectional realtime channel the messaging core rides
// on. Implementations must be safe for concurrent use.
//
// The contract is deliberately room-oriented: exactly one logical room per
// channel id, join by emitting the room id, deliver by invoking the
// registered receive handler. There is no reconnect policy at this layer;
// when the underlying connection drops the close handler fires once and the
// transport stays down until Connect is called again.
type Transport interface {
	// Connect establishes the underlying connection. Calling Connect on an
	// already-connected transport is a no-op.
	Connect(ctx context.Context) error

	// Disconnect tears the connection down. Idempotent.
	Disconnect() error

	// JoinRoom subscribes the connection to roomID's message events.
	JoinRoom(ctx context.Context, roomID string) error

	// SendMessage broadcasts m to the members of roomID.
	SendMessage(ctx context.Context, roomID string, m messaging.Message) error

	// OnReceive registers h for inbound message events. A nil handler
	// drops deliveries.
	OnReceive(h ReceiveHandler)

	// OffReceive unregisters the receive handler.
	OffReceive()

	// OnClose registers h to run once when the connection terminates,
	// with the terminating error (nil on clean disconnect).
	OnClose(h func(err error))
}
