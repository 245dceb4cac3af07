package orchestrator

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"github.com/ayaxan7/seller-dashboard/pkg/errs"
)

// AddSnapshot is a read-only view of the add flow's current state.
type AddSnapshot struct {
	State         State
	Name          string
	Price         string
	Description   string
	ImageSelected bool
	Error         string
	ProductID     string
}

type AddOrchestrator struct {
	uploader Uploader
	store    ProductStore

	mu          sync.Mutex
	state       State
	name        string
	price       string
	description string
	image       *ImageRef
	errMsg      string
	productID   string
}

func NewAddOrchestrator(uploader Uploader, store ProductStore) *AddOrchestrator {
	return &AddOrchestrator{uploader: uploader, store: store, state: StateIdle}
}

func (o *AddOrchestrator) SetName(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.name = name
	o.clearErrorLocked()
}

func (o *AddOrchestrator) SetPrice(price string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.price = price
	o.clearErrorLocked()
}

func (o *AddOrchestrator) SetDescription(description string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.description = description
	o.clearErrorLocked()
}

func (o *AddOrchestrator) SelectImage(image ImageRef) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.image = &image
	o.clearErrorLocked()
}

// Editing any input clears a terminal error and re-arms the machine.
func (o *AddOrchestrator) clearErrorLocked() {
	o.errMsg = ""
	if o.state == StateInvalidInput || o.state == StateFailed {
		o.state = StateIdle
	}
}

func (o *AddOrchestrator) Snapshot() AddSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return AddSnapshot{
		State:         o.state,
		Name:          o.name,
		Price:         o.price,
		Description:   o.description,
		ImageSelected: o.image != nil,
		Error:         o.errMsg,
		ProductID:     o.productID,
	}
}

// Submit runs validate -> upload -> persist. Validation failures never reach
// the remote layer. Stage failures land in the error slot rather than being
// returned; the only error Submit itself produces is ErrBusy when a previous
// submission is still in flight.
func (o *AddOrchestrator) Submit(ctx context.Context, onSuccess func(productID string)) error {
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
	name := o.name
	description := o.description
	image := *o.image

	o.state = StateUploading
	o.errMsg = ""
	o.mu.Unlock()

	imageURL, err := o.uploader.Upload(ctx, image.Filename, image.Data)
	if err != nil {
		o.fail(failureMessage(err, msgUploadFailed))
		return nil
	}

	o.mu.Lock()
	o.state = StatePersisting
	o.mu.Unlock()

	id, err := o.store.Create(ctx, domain.Product{
		Name:        name,
		Price:       price,
		Description: description,
		ImageURL:    imageURL,
	})
	if err != nil {
		o.fail(failureMessage(err, msgAddFailed))
		return nil
	}

	o.mu.Lock()
	o.state = StateDone
	o.productID = id
	o.mu.Unlock()

	if onSuccess != nil {
		onSuccess(id)
	}

	return nil
}

func (o *AddOrchestrator) fail(msg string) {
	o.mu.Lock()
	o.state = StateFailed
	o.errMsg = msg
	o.mu.Unlock()
}

func (o *AddOrchestrator) validateLocked() string {
	if o.image == nil {
		return msgSelectImage
	}

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
