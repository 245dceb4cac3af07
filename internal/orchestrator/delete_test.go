package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/ayaxan7/seller-dashboard/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteSuccessMessage(t *testing.T) {
	store := newFakeStore()
	tracker := NewDeleteTracker(store)

	err := tracker.Delete(context.Background(), "p1", "img-url")
	require.NoError(t, err)

	snap := tracker.Snapshot()
	assert.Equal(t, "Product deleted successfully", snap.SuccessMessage)
	assert.Empty(t, snap.Error)
	assert.Empty(t, snap.DeletingIDs)
	assert.Equal(t, []string{"p1"}, store.deleted)
}

func TestDeleteFailureMessage(t *testing.T) {
	store := newFakeStore()
	store.deleteErr = errs.ErrProductNotFound
	tracker := NewDeleteTracker(store)

	err := tracker.Delete(context.Background(), "p1", "")
	require.NoError(t, err)

	snap := tracker.Snapshot()
	assert.Empty(t, snap.SuccessMessage)
	assert.Equal(t, errs.ErrProductNotFound.Error(), snap.Error)
}

func TestDeleteTracksPerProduct(t *testing.T) {
	store := newFakeStore()
	store.deleteBlock = make(chan struct{})
	tracker := NewDeleteTracker(store)

	done := make(chan struct{})
	go func() {
		defer close(done)
		tracker.Delete(context.Background(), "p1", "")
	}()

	require.Eventually(t, func() bool {
		return tracker.IsDeleting("p1")
	}, time.Second, time.Millisecond)

	// same row is busy, other rows are not
	assert.ErrorIs(t, tracker.Delete(context.Background(), "p1", ""), errs.ErrBusy)
	assert.False(t, tracker.IsDeleting("p2"))

	close(store.deleteBlock)
	<-done

	assert.False(t, tracker.IsDeleting("p1"))
}

func TestDeleteClearMessages(t *testing.T) {
	store := newFakeStore()
	tracker := NewDeleteTracker(store)

	require.NoError(t, tracker.Delete(context.Background(), "p1", ""))
	require.NotEmpty(t, tracker.Snapshot().SuccessMessage)

	tracker.ClearMessages()

	snap := tracker.Snapshot()
	assert.Empty(t, snap.SuccessMessage)
	assert.Empty(t, snap.Error)
}
