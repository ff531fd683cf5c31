package repository

import (
	"context"

	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
)

// Profile is the display metadata attached to a conversation counterpart.
// Affiliation carries the alumni's company or the student's course.
type Profile struct {
	Name        string `json:"name"`
	AvatarURL   string `json:"img"`
	Affiliation string `json:"affiliation,omitempty"`
}

// ProfileRepository fetches participant display metadata. Students and
// alumni live behind different endpoints, so lookups are role-qualified.
type ProfileRepository interface {
	GetProfile(ctx context.Context, role messaging.Role, id string) (Profile, error)
}
