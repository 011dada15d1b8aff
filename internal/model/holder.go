package model

import (
	"sync/atomic"

	"github.com/normkit/normalize-server/internal/errors"
)

// Holder publishes the active model snapshot. Readers call Current on every
// request; Store swaps in a new snapshot in one atomic pointer write, so a
// request in flight keeps the snapshot it started with.
type Holder struct {
	current atomic.Pointer[Model]
}

// NewHolder creates an empty holder. Current returns MODEL_UNAVAILABLE until
// the first Store.
func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the active snapshot.
func (h *Holder) Current() (*Model, error) {
	m := h.current.Load()
	if m == nil {
		return nil, errors.ErrModelUnavailable
	}
	return m, nil
}

// Store publishes m as the active snapshot.
func (h *Holder) Store(m *Model) {
	h.current.Store(m)
}

// Ready reports whether a snapshot has been published.
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}
