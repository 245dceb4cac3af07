package service

import (
	"context"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"github.com/ayaxan7/seller-dashboard/internal/dto"
	"github.com/segmentio/kafka-go"
)

type AuthService interface {
	SignUp(ctx context.Context, payload dto.AuthRequest) (session domain.Session, err error)
	SignIn(ctx context.Context, payload dto.AuthRequest) (respPayload dto.LoginResponse, err error)
	SignOut()
	IsLoggedIn() bool
}

type BlobService interface {
	Upload(ctx context.Context, filename string, data []byte) (url string, err error)
}

type ProductService interface {
	Create(ctx context.Context, data domain.Product) (id string, err error)
	Update(ctx context.Context, data domain.Product) (err error)
	Delete(ctx context.Context, id string, imageURL string) (err error)
	GetByID(ctx context.Context, id string) (product domain.Product, err error)
	List(ctx context.Context) (data []domain.Product, err error)
	Watch(ctx context.Context) (<-chan []domain.Product, <-chan error)
	SweepOrphanedBlobs()
}

// BlobStore is the object store holding product images.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	DeleteByURL(ctx context.Context, url string) (err error)
}

// EventProducer is satisfied by *kafka.Conn.
type EventProducer interface {
	WriteMessages(msgs ...kafka.Message) (int, error)
}
