package orchestrator

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"github.com/ayaxan7/seller-dashboard/pkg/errs"
)

// EditSnapshot is a read-only view of the edit flow's current state.
type EditSnapshot struct {
	State           State
	ProductID       string
	Name            string
	Price           string
	Description     string
	CurrentImageURL string
	NewImage        bool
	Error           string
}

type EditOrchestrator struct {
	uploader Uploader
	store    ProductStore

	mu              sync.Mutex
	state           State
	productID       string
	name            string
	price           string
	description     string
	currentImageURL string
	newImage        *ImageRef
	errMsg          string
}

func NewEditOrchestrator(uploader Uploader, store ProductStore) *EditOrchestrator {
	return &EditOrchestrator{uploader: uploader, store: store, state: StateIdle}
}

// Load fetches the product being edited and populates the form fields.
func (o *EditOrchestrator) Load(ctx context.Context, productID string) error {
	o.mu.Lock()
	if o.state.InFlight() {
		o.mu.Unlock()
		return errs.ErrBusy
	}
	o.state = StateLoading
	o.errMsg = ""
	o.mu.Unlock()

	product, err := o.store.GetByID(ctx, productID)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.state = StateFailed
		o.errMsg = failureMessage(err, msgLoadFailed)
		return err
	}

	o.state = StateIdle
	o.productID = product.ID
	o.name = product.Name
	o.price = strconv.FormatFloat(product.Price, 'f', -1, 64)
	o.description = product.Description
	o.currentImageURL = product.ImageURL

	return nil
}

func (o *EditOrchestrator) SetName(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.name = name
	o.clearErrorLocked()
}

func (o *EditOrchestrator) SetPrice(price string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.price = price
	o.clearErrorLocked()
}

func (o *EditOrchestrator) SetDescription(description string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.description = description
	o.clearErrorLocked()
}

func (o *EditOrchestrator) SelectImage(image ImageRef) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.newImage = &image
	o.clearErrorLocked()
}

func (o *EditOrchestrator) clearErrorLocked() {
	o.errMsg = ""
	if o.state == StateInvalidInput || o.state == StateFailed {
		o.state = StateIdle
	}
}

func (o *EditOrchestrator) Snapshot() EditSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return EditSnapshot{
		State:           o.state,
		ProductID:       o.productID,
		Name:            o.name,
		Price:           o.price,
		Description:     o.description,
		CurrentImageURL: o.currentImageURL,
		NewImage:        o.newImage != nil,
		Error:           o.errMsg,
	}
}

// Submit validates, uploads the replacement image when one was selected
// (aborting before the document is touched if that fails), and issues a full
// record update. Without a new image the prior URL is reused.
func (o *EditOrchestrator) Submit(ctx context.Context, onSuccess func()) error {
	o.mu.Lock()
	if o.state.InFlight() {
		o.mu.Unlock()
		return errs.ErrBusy
	}

	o.state = StateValidating
	if msg := o.validateLocked(); msg != "" {
		o.state = StateInvalidInput
		o.errMsg = msg
		o.mu.Unlock()
		return nil
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(o.price), 64)
	productID := o.productID
	name := o.name
	description := o.description
	imageURL := o.currentImageURL
	newImage := o.newImage

	o.errMsg = ""

	if newImage != nil {
		o.state = StateUploading
		o.mu.Unlock()

		uploadedURL, err := o.uploader.Upload(ctx, newImage.Filename, newImage.Data)
		if err != nil {
			o.fail(msgUploadFailed)
			return nil
		}
		imageURL = uploadedURL

		o.mu.Lock()
	}

	o.state = StatePersisting
	o.mu.Unlock()

	err := o.store.Update(ctx, domain.Product{
		ID:          productID,
		Name:        name,
		Price:       price,
		Description: description,
		ImageURL:    imageURL,
	})
	if err != nil {
		o.fail(failureMessage(err, msgUpdateFailed))
		return nil
	}

	o.mu.Lock()
	o.state = StateDone
	o.mu.Unlock()

	if onSuccess != nil {
		onSuccess()
	}

	return nil
}

func (o *EditOrchestrator) fail(msg string) {
	o.mu.Lock()
	o.state = StateFailed
	o.errMsg = msg
	o.mu.Unlock()
}

func (o *EditOrchestrator) validateLocked() string {
	if strings.TrimSpace(o.name) == "" {
		return msgNameEmpty
	}

	if strings.TrimSpace(o.price) == "" {
		return msgPriceEmpty
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(o.price), 64)
	if err != nil || price <= 0 {
		return msgPriceInvalid
	}

	return ""
}
