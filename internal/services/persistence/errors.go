package persistence

import "errors"

var (
	// ErrTimelineNotFound is returned when no snapshot exists for a media id
	ErrTimelineNotFound = errors.New("timeline not found")

	// ErrInvalidDocument is returned when a snapshot fails structural validation
	ErrInvalidDocument = errors.New("invalid timeline document")

	// ErrBridgeClosed is returned by saves issued after Close
	ErrBridgeClosed = errors.New("persistence bridge closed")
)
