package app

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrIndexNotReady = errors.New("no content has been ingested, please ingest URLs first")
)
