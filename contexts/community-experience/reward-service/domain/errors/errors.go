package errors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid reward input")
	ErrUserNotFound   = errors.New("user has no points record")
	ErrGrantMalformed = errors.New("reward event payload is malformed")
)
