package usecase

import (
	"context"
	"log/slog"

	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
	repository "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/persistence/repository/port"
)

// LoadHistoryInput names the two participants whose transcript to fetch.
type LoadHistoryInput struct {
	CurrentUserID string
	CounterpartID string
}

// LoadHistoryUseCase fetches the persisted transcript for a conversation.
// One-shot, not reactive.
type LoadHistoryUseCase struct {
	Repo   repository.MessageRepository
	Logger *slog.Logger
}

func NewLoadHistoryUseCase(repo repository.MessageRepository, logger *slog.Logger) *LoadHistoryUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadHistoryUseCase{Repo: repo, Logger: logger}
}

// Execute returns the persisted messages for the pair, oldest first.
//
// Identity validation fails closed before any I/O. Fetch failures degrade
// to an empty transcript instead of an error: callers cannot tell a failed
// load from "no messages yet", and must not try to. That asymmetry with
// send (which surfaces failures) is the prescribed contract.
func (uc *LoadHistoryUseCase) Execute(ctx context.Context, in LoadHistoryInput) ([]messaging.Message, error) {
	if !messaging.IsValidParticipantID(in.CurrentUserID) {
		return nil, messaging.ErrInvalidSession
	}
	if !messaging.IsValidParticipantID(in.CounterpartID) {
		return nil, messaging.ErrInvalidChatTarget
	}

	msgs, err := uc.Repo.GetConversation(ctx, in.CurrentUserID, in.CounterpartID)
	if err != nil {
		uc.Logger.Debug("history load degraded to empty", "error", err)
		return []messaging.Message{}, nil
	}
	if msgs == nil {
		msgs = []messaging.Message{}
	}
	return msgs, nil
}
