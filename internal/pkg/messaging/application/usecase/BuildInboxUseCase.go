package usecase

import (
	"context"
	"log/slog"
	"sort"

	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
	repository "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/persistence/repository/port"
)

// placeholderName stands in when a counterpart profile cannot be fetched.
// The conversation still shows up; only the metadata degrades.
const placeholderName = "Unknown"

// ConversationSummary is one inbox row: the counterpart, the most recent
// message exchanged with them, and their display metadata.
type ConversationSummary struct {
	CounterpartID string
	LastMessage   messaging.Message
	DisplayName   string
	AvatarURL     string
	Affiliation   string
}

// BuildInboxInput carries everything the inbox needs. Messages is the full
// set involving CurrentUserID; ExcludeSameRole filters out counterparts of
// the viewer's own role (e.g. alumni-to-alumni chatter in a provider's
// "messages from seekers" view).
type BuildInboxInput struct {
	Messages        []messaging.Message
	CurrentUserID   string
	Mode            messaging.ChatMode
	ExcludeSameRole []string
}

// BuildInboxUseCase groups a user's messages by counterpart and enriches
// each group with profile metadata.
type BuildInboxUseCase struct {
	Profiles repository.ProfileRepository
	Logger   *slog.Logger
}

func NewBuildInboxUseCase(profiles repository.ProfileRepository, logger *slog.Logger) *BuildInboxUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BuildInboxUseCase{Profiles: profiles, Logger: logger}
}

// Execute returns one summary per distinct counterpart, sorted by the
// timestamp of the last message, newest first.
func (uc *BuildInboxUseCase) Execute(ctx context.Context, in BuildInboxInput) ([]ConversationSummary, error) {
	if !messaging.IsValidParticipantID(in.CurrentUserID) {
		return nil, messaging.ErrInvalidSession
	}

	excluded := make(map[string]struct{}, len(in.ExcludeSameRole))
	for _, id := range in.ExcludeSameRole {
		excluded[id] = struct{}{}
	}

	latest := make(map[string]messaging.Message)
	for _, m := range in.Messages {
		if m.FromUser != in.CurrentUserID && m.ToUser != in.CurrentUserID {
			continue
		}
		counterpart := messaging.Counterpart(m, in.CurrentUserID)
		if counterpart == in.CurrentUserID {
			continue
		}
		if _, skip := excluded[counterpart]; skip {
			continue
		}
		if best, ok := latest[counterpart]; !ok || m.Timestamp.After(best.Timestamp) {
			latest[counterpart] = m
		}
	}

	role := in.Mode.CounterpartRole()
	summaries := make([]ConversationSummary, 0, len(latest))
	for counterpart, last := range latest {
		s := ConversationSummary{
			CounterpartID: counterpart,
			LastMessage:   last,
			DisplayName:   placeholderName,
		}
		if messaging.IsValidParticipantID(counterpart) {
			if p, err := uc.Profiles.GetProfile(ctx, role, counterpart); err == nil {
				s.DisplayName = p.Name
				s.AvatarURL = p.AvatarURL
				s.Affiliation = p.Affiliation
			} else {
				uc.Logger.Debug("profile enrichment degraded", "counterpart", counterpart, "error", err)
			}
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessage.Timestamp.After(summaries[j].LastMessage.Timestamp)
	})
	return summaries, nil
}
