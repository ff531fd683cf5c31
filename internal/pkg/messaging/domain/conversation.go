package messaging

import "strings"

// ResolveChannelID derives the realtime channel id for the conversation
// between currentUserID and targetID: the two ids sorted lexicographically
// and joined with "-". The result is independent of argument order, so both
// participants land on the same channel no matter who opens the chat first.
//
// Both ids must be well-formed. A bad currentUserID yields ErrInvalidSession
// (the viewer's own session is broken, they must re-authenticate); a bad
// targetID yields ErrInvalidChatTarget (the chat link points nowhere).
func ResolveChannelID(currentUserID, targetID string) (string, error) {
	if !IsValidParticipantID(currentUserID) {
		return "", ErrInvalidSession
	}
	if !IsValidParticipantID(targetID) {
		return "", ErrInvalidChatTarget
	}
	a, b := currentUserID, targetID
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "-" + b, nil
}
