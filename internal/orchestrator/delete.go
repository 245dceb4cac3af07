package orchestrator

import (
	"context"
	"sync"

	"github.com/ayaxan7/seller-dashboard/pkg/errs"
)

// DeleteSnapshot is a read-only view of in-flight deletions and the last
// transient outcome message.
type DeleteSnapshot struct {
	DeletingIDs    map[string]bool
	SuccessMessage string
	Error          string
}

// DeleteTracker runs product deletions, tracking them per product id so one
// row can show a spinner while the rest of the list stays interactive.
type DeleteTracker struct {
	store ProductStore

	mu         sync.Mutex
	inFlight   map[string]bool
	successMsg string
	errMsg     string
}

func NewDeleteTracker(store ProductStore) *DeleteTracker {
	return &DeleteTracker{store: store, inFlight: make(map[string]bool)}
}

// Delete removes one product. A second call for the same id while the first
// is still running is rejected; other ids proceed independently.
func (t *DeleteTracker) Delete(ctx context.Context, productID string, imageURL string) error {
	t.mu.Lock()
	if t.inFlight[productID] {
		t.mu.Unlock()
		return errs.ErrBusy
	}
	t.inFlight[productID] = true
	t.successMsg = ""
	t.errMsg = ""
	t.mu.Unlock()

	err := t.store.Delete(ctx, productID, imageURL)

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, productID)

	if err != nil {
		t.errMsg = failureMessage(err, msgDeleteFailed)
		return nil
	}

	t.successMsg = msgDeleteSuccessful
	return nil
}

func (t *DeleteTracker) IsDeleting(productID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight[productID]
}

func (t *DeleteTracker) Snapshot() DeleteSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	deleting := make(map[string]bool, len(t.inFlight))
	for id := range t.inFlight {
		deleting[id] = true
	}

	return DeleteSnapshot{
		DeletingIDs:    deleting,
		SuccessMessage: t.successMsg,
		Error:          t.errMsg,
	}
}

// ClearMessages drops the transient banner content once the surface has
// shown it.
func (t *DeleteTracker) ClearMessages() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.successMsg = ""
	t.errMsg = ""
}
