package mailprobe

import "errors"

var (
	// ErrBatchSize is returned by ValidateBatch when the address list
	// is empty or longer than MaxBatchSize. It is checked before any
	// network activity.
	ErrBatchSize = errors.New("mailprobe: batch size must be between 1 and 100")
)
