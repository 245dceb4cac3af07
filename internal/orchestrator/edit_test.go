package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditLoadPopulatesForm(t *testing.T) {
	store := newFakeStore()
	store.products["p1"] = domain.Product{
		ID:          "p1",
		Name:        "Mug",
		Price:       9.99,
		Description: "Ceramic",
		ImageURL:    "https://blobs.example.com/object/public/images/old.jpg",
	}

	o := NewEditOrchestrator(&fakeUploader{}, store)

	err := o.Load(context.Background(), "p1")
	require.NoError(t, err)

	snap := o.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, "p1", snap.ProductID)
	assert.Equal(t, "Mug", snap.Name)
	assert.Equal(t, "9.99", snap.Price)
	assert.Equal(t, "Ceramic", snap.Description)
	assert.Equal(t, store.products["p1"].ImageURL, snap.CurrentImageURL)
}

func TestEditLoadFailure(t *testing.T) {
	store := newFakeStore()
	o := NewEditOrchestrator(&fakeUploader{}, store)

	err := o.Load(context.Background(), "missing")
	require.Error(t, err)

	snap := o.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Equal(t, "Product not found", snap.Error)
}

func TestEditReusesImageURLWithoutNewSelection(t *testing.T) {
	store := newFakeStore()
	store.products["p1"] = domain.Product{
		ID:       "p1",
		Name:     "Mug",
		Price:    9.99,
		ImageURL: "https://blobs.example.com/object/public/images/old.jpg",
	}

	uploader := &fakeUploader{}
	o := NewEditOrchestrator(uploader, store)
	require.NoError(t, o.Load(context.Background(), "p1"))

	o.SetName("Big Mug")
	o.SetPrice("12.50")

	require.NoError(t, o.Submit(context.Background(), nil))

	assert.Equal(t, StateDone, o.Snapshot().State)
	assert.Zero(t, uploader.uploadCalls(), "no new image means no upload")

	require.Len(t, store.updated, 1)
	updated := store.updated[0]
	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, "Big Mug", updated.Name)
	assert.Equal(t, 12.50, updated.Price)
	assert.Equal(t, store.products["p1"].ImageURL, updated.ImageURL)
}

func TestEditUploadsReplacementImage(t *testing.T) {
	store := newFakeStore()
	store.products["p1"] = domain.Product{ID: "p1", Name: "Mug", Price: 9.99, ImageURL: "old-url"}

	uploader := &fakeUploader{url: "new-url"}
	o := NewEditOrchestrator(uploader, store)
	require.NoError(t, o.Load(context.Background(), "p1"))

	o.SelectImage(ImageRef{Filename: "new.jpg", Data: []byte("bytes")})

	require.NoError(t, o.Submit(context.Background(), nil))

	assert.Equal(t, 1, uploader.uploadCalls())
	require.Len(t, store.updated, 1)
	assert.Equal(t, "new-url", store.updated[0].ImageURL)
}

func TestEditUploadFailureAbortsBeforeUpdate(t *testing.T) {
	store := newFakeStore()
	store.products["p1"] = domain.Product{ID: "p1", Name: "Mug", Price: 9.99, ImageURL: "old-url"}

	uploader := &fakeUploader{failErr: errors.New("connection reset")}
	o := NewEditOrchestrator(uploader, store)
	require.NoError(t, o.Load(context.Background(), "p1"))

	o.SelectImage(ImageRef{Filename: "new.jpg", Data: []byte("bytes")})

	require.NoError(t, o.Submit(context.Background(), nil))

	snap := o.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Equal(t, "Failed to upload image", snap.Error)
	assert.Zero(t, store.updateCalls(), "upload failure must abort before the document is touched")
}

func TestEditValidation(t *testing.T) {
	type TestCase struct {
		Name        string
		FormName    string
		FormPrice   string
		ExpectedMsg string
	}

	testCases := []TestCase{
		{Name: "blank name", FormName: " ", FormPrice: "9.99", ExpectedMsg: "Product name cannot be empty"},
		{Name: "blank price", FormName: "Mug", FormPrice: "", ExpectedMsg: "Price cannot be empty"},
		{Name: "invalid price", FormName: "Mug", FormPrice: "free", ExpectedMsg: "Please enter a valid price"},
		{Name: "negative price", FormName: "Mug", FormPrice: "-1", ExpectedMsg: "Please enter a valid price"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			store := newFakeStore()
			store.products["p1"] = domain.Product{ID: "p1", Name: "Mug", Price: 9.99}

			uploader := &fakeUploader{}
			o := NewEditOrchestrator(uploader, store)
			require.NoError(t, o.Load(context.Background(), "p1"))

			o.SetName(tc.FormName)
			o.SetPrice(tc.FormPrice)

			require.NoError(t, o.Submit(context.Background(), nil))

			snap := o.Snapshot()
			assert.Equal(t, StateInvalidInput, snap.State)
			assert.Equal(t, tc.ExpectedMsg, snap.Error)
			assert.Zero(t, uploader.uploadCalls())
			assert.Zero(t, store.updateCalls())
		})
	}
}
