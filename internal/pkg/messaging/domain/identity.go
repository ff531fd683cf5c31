package messaging

// participantIDLen is the length of a participant identifier: a 12-byte
// storage object id rendered as hex.
const participantIDLen = 24

// IsValidParticipantID reports whether id is a well-formed participant
// identifier: exactly 24 characters, all hex digits. Input is accepted
// case-insensitively; stored identifiers are lowercase.
func IsValidParticipantID(id string) bool {
	if len(id) != participantIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Role identifies which side of the platform a participant belongs to.
type Role int16

const (
	// RoleSeeker is the student side.
	RoleSeeker Role = 0
	// RoleProvider is the alumni side.
	RoleProvider Role = 1
)

func (r Role) String() string {
	if r == RoleProvider {
		return "provider"
	}
	return "seeker"
}

// ChatMode states who opened the conversation. It replaces role inference
// from navigation context: callers declare the mode at open time and the
// counterpart's role follows from it.
type ChatMode int16

const (
	// ModeSeekerInitiated means a student opened the chat with an alumni.
	ModeSeekerInitiated ChatMode = 0
	// ModeProviderInitiated means an alumni opened the chat with a student.
	ModeProviderInitiated ChatMode = 1
)

func (m ChatMode) String() string {
	if m == ModeProviderInitiated {
		return "provider-initiated"
	}
	return "seeker-initiated"
}

// CounterpartRole returns the role of the other participant for this mode.
func (m ChatMode) CounterpartRole() Role {
	if m == ModeProviderInitiated {
		return RoleSeeker
	}
	return RoleProvider
}
