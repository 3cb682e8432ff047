package chat

import "errors"

var (
	ErrProvider        = errors.New("provider request failed")
	ErrUnknownProvider = errors.New("unknown provider")
)
