package settings

import "errors"

var (
	ErrConfig          = errors.New("invalid configuration")
	ErrMissingKey      = errors.New("missing API key")
	ErrUnknownProvider = errors.New("unknown chat provider")
)
