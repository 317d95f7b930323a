package chat

import "errors"

// Domain sentinels, mapped to transport status codes by the presentation
// layer. Wrap with %w so callers can use errors.Is.
var (
	ErrInvalid             = errors.New("chat: invalid input")
	ErrNameTaken           = errors.New("chat: participant name already taken")
	ErrParticipantNotFound = errors.New("chat: participant not found")
	ErrMessageNotFound     = errors.New("chat: message not found")
	ErrNotOwner            = errors.New("chat: requester does not own this message")
)
