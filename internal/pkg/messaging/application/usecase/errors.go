package usecase

import "errors"

// ErrConversationClosed indicates the conversation view was closed while an
// open was still in flight; the late result was discarded.
var ErrConversationClosed = errors.New("messaging: conversation closed before open completed")
