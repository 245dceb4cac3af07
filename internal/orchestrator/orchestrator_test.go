package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
)

// fakeUploader records uploads and can be made to fail or block.
type fakeUploader struct {
	mu      sync.Mutex
	calls   int
	failErr error
	url     string
	block   chan struct{}
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}

	if f.failErr != nil {
		return "", f.failErr
	}

	if f.url != "" {
		return f.url, nil
	}

	return "https://blobs.example.com/object/public/images/" + filename, nil
}

func (f *fakeUploader) uploadCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeStore records mutations and can be made to fail or block per method.
type fakeStore struct {
	mu          sync.Mutex
	created     []domain.Product
	updated     []domain.Product
	deleted     []string
	products    map[string]domain.Product
	createErr   error
	updateErr   error
	deleteErr   error
	getErr      error
	deleteBlock chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]domain.Product)}
}

func (f *fakeStore) Create(ctx context.Context, data domain.Product) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return "", f.createErr
	}

	data.ID = "prod-1"
	f.created = append(f.created, data)
	return data.ID, nil
}

func (f *fakeStore) Update(ctx context.Context, data domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}

	f.updated = append(f.updated, data)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string, imageURL string) error {
	if f.deleteBlock != nil {
		<-f.deleteBlock
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return domain.Product{}, f.getErr
	}

	product, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("Product not found")
	}

	return product, nil
}

func (f *fakeStore) createCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *fakeStore) updateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updated)
}
