package repository

import (
	"context"

	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
)

// MessageRepository defines the storage operations the messaging core
// consumes. The backing implementation is the platform REST API; the port
// keeps use cases and the channel session testable without a server.
type MessageRepository interface {
	// GetConversation returns the persisted messages exchanged between the
	// two participants, oldest first. The pair is unordered.
	GetConversation(ctx context.Context, idA, idB string) ([]messaging.Message, error)

	// SaveMessage durably stores m and returns the stored copy with its
	// server-assigned ID. The input ClientKey is echoed back unchanged.
	SaveMessage(ctx context.Context, m messaging.Message) (messaging.Message, error)
}
