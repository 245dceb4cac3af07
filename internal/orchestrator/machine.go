// Package orchestrator holds the per-operation state machines that sequence
// image upload and document mutation for the add, edit, and delete flows.
// Each instance allows at most one in-flight mutation: a Submit while a
// previous one is still running is rejected, regardless of what the calling
// surface does with its buttons.
package orchestrator

import (
	"context"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalidInput
	StateLoading
	StateUploading
	StatePersisting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalidInput:
		return "invalid_input"
	case StateLoading:
		return "loading"
	case StateUploading:
		return "uploading"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// InFlight reports whether a remote operation is currently running.
func (s State) InFlight() bool {
	return s == StateLoading || s == StateUploading || s == StatePersisting
}

// Uploader uploads a local image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (url string, err error)
}

// ProductStore is the slice of the store adapter the orchestrators drive.
type ProductStore interface {
	Create(ctx context.Context, data domain.Product) (id string, err error)
	Update(ctx context.Context, data domain.Product) (err error)
	Delete(ctx context.Context, id string, imageURL string) (err error)
	GetByID(ctx context.Context, id string) (product domain.Product, err error)
}

// ImageRef is a locally selected image that has not been uploaded yet.
type ImageRef struct {
	Filename string
	Data     []byte
}

const (
	msgSelectImage      = "Please select an image"
	msgNameEmpty        = "Product name cannot be empty"
	msgPriceEmpty       = "Price cannot be empty"
	msgPriceInvalid     = "Please enter a valid price"
	msgUploadFailed     = "Failed to upload image"
	msgAddFailed        = "Failed to add product"
	msgUpdateFailed     = "Failed to update product"
	msgDeleteFailed     = "Failed to delete product"
	msgLoadFailed       = "Failed to load product"
	msgDeleteSuccessful = "Product deleted successfully"
)

// failureMessage prefers the underlying cause, falling back to the
// per-operation default when there is none.
func failureMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
