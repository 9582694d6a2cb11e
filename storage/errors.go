package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("item not found in storage")
var ErrAlreadyExists = errors.New("item already exists in storage")
var ErrVersionConflict = errors.New("item was modified concurrently")
var ErrUnavailable = errors.New("storage unavailable")

// translateError folds request timeouts and cancellations into ErrUnavailable
// so controllers can answer 503 instead of a generic 500.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrUnavailable
	}
	return err
}
