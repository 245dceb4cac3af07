package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"github.com/ayaxan7/seller-dashboard/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeProductRepo is an in-memory stand-in for the mongo repository.
type fakeProductRepo struct {
	mu      sync.Mutex
	docs    map[string]domain.Product
	orphans []domain.OrphanedBlob
	feed    chan []domain.Product
	addErr  error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		docs: make(map[string]domain.Product),
		feed: make(chan []domain.Product, 4),
	}
}

func (f *fakeProductRepo) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.addErr != nil {
		return primitive.NilObjectID, f.addErr
	}

	f.docs[data.ID] = data
	return data.ObjectID, nil
}

func (f *fakeProductRepo) ReplaceProduct(ctx context.Context, data domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.docs[data.ID]; !ok {
		return errs.ErrProductNotFound
	}

	f.docs[data.ID] = data
	return nil
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.docs[id]; !ok {
		return errs.ErrProductNotFound
	}

	delete(f.docs, id)
	return nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	product, ok := f.docs[id]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}

	return product, nil
}

func (f *fakeProductRepo) GetVendorProducts(ctx context.Context, vendorID string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var data []domain.Product
	for _, p := range f.docs {
		if p.VendorID == vendorID {
			data = append(data, p)
		}
	}

	sort.Slice(data, func(i, j int) bool { return data[i].CreatedAt > data[j].CreatedAt })

	return data, nil
}

func (f *fakeProductRepo) WatchVendorProducts(ctx context.Context, vendorID string) (<-chan []domain.Product, <-chan error) {
	out := make(chan []domain.Product, 1)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-f.feed:
				if !ok {
					return
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, errc
}

func (f *fakeProductRepo) AddOrphanedBlob(ctx context.Context, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.orphans = append(f.orphans, domain.OrphanedBlob{
		ObjectID: primitive.NewObjectID(),
		ImageURL: imageURL,
	})
	return nil
}

func (f *fakeProductRepo) GetOrphanedBlobs(ctx context.Context) ([]domain.OrphanedBlob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]domain.OrphanedBlob(nil), f.orphans...), nil
}

func (f *fakeProductRepo) DeleteOrphanedBlob(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, orphan := range f.orphans {
		if orphan.ObjectID == id {
			f.orphans = append(f.orphans[:i], f.orphans[i+1:]...)
			return nil
		}
	}

	return nil
}

func (f *fakeProductRepo) orphanCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orphans)
}

// fakeBlobStore records puts and deletes; individual URLs can be made to fail.
type fakeBlobStore struct {
	mu      sync.Mutex
	puts    []string
	deleted []string
	delErr  map[string]error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{delErr: make(map[string]error)}
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.puts = append(f.puts, key)
	return fmt.Sprintf("https://cdn.example.com/%s", key), nil
}

func (f *fakeBlobStore) DeleteByURL(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.delErr[url]; ok {
		return err
	}

	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeBlobStore) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)
}
