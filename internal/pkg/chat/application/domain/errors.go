package chat

import "errors"

var (
	ErrEmptyParticipants = errors.New("chat: both participant ids are required")
	ErrGroupNameRequired = errors.New("chat: group requires a name")
	ErrGroupTooSmall     = errors.New("chat: group requires at least 3 members including the creator")
)
