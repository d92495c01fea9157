package timeline

import "errors"

var (
	// non-positive layout config field
	ErrInvalidConfig = errors.New("invalid timeline config")

	// target cue no longer present in the collection
	ErrCueNotFound = errors.New("cue not found")

	// adjustment would invert the cue's start/end ordering
	ErrRejectedAdjustment = errors.New("adjustment rejected")
)
