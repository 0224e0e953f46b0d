package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"

	ErrSourceUnavailable = errors.New("recipe source unavailable")
	ErrStoreUnavailable  = errors.New("recipe store unavailable")
)
