package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/GitShailendra/HackOnX-sub001/notify"
	"github.com/GitShailendra/HackOnX-sub001/storage"
)

// Notifier is the fire-and-forget side of notification delivery. The real
// implementation is notify.Dispatcher; tests plug in a recorder.
type Notifier interface {
	Dispatch(msg notify.Message)
}

// maxUpdateAttempts bounds the reload-and-reapply loop under version
// conflicts. Two judges rating the same team concurrently both get through;
// anything pathological beyond that surfaces as a conflict.
const maxUpdateAttempts = 3

// applyUpdate loads the application, applies mutate, and writes it back with
// the storage layer's version compare-and-swap, reloading on conflict.
func applyUpdate(ctx context.Context, store storage.ApplicationStorage, id string, mutate func(*storage.Application) error) (*storage.Application, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		app, err := store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := mutate(app); err != nil {
			return nil, err
		}
		err = store.Update(ctx, app)
		if err == nil {
			return app, nil
		}
		if !errors.Is(err, storage.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, storage.ErrVersionConflict
}

// statusFromStorageError maps storage sentinels onto HTTP status codes.
func statusFromStorageError(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, storage.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, storage.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
