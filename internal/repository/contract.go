package repository

import (
	"context"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (res domain.User, err error)
	AddUser(ctx context.Context, data domain.User) (id int64, err error)
	GetUserByID(ctx context.Context, id int64) (data domain.User, err error)
}

type ProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	ReplaceProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	GetVendorProducts(ctx context.Context, vendorID string) (data []domain.Product, err error)
	WatchVendorProducts(ctx context.Context, vendorID string) (<-chan []domain.Product, <-chan error)
	AddOrphanedBlob(ctx context.Context, imageURL string) (err error)
	GetOrphanedBlobs(ctx context.Context) (data []domain.OrphanedBlob, err error)
	DeleteOrphanedBlob(ctx context.Context, id primitive.ObjectID) (err error)
}
