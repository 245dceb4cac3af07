package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is the document shape stored in the products collection. ID mirrors
// the document key so lookups can fall back on either field.
type Product struct {
	ObjectID    primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          string             `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"image_url" json:"imageUrl"`
	VendorID    string             `bson:"vendor_id" json:"vendorId"`
	Email       string             `bson:"email" json:"email"`
	CreatedAt   int64              `bson:"created_at" json:"createdAt"`
}

// OrphanedBlob records an image whose best-effort deletion failed during a
// product delete. The sweeper retries these.
type OrphanedBlob struct {
	ObjectID   primitive.ObjectID `bson:"_id,omitempty"`
	ImageURL   string             `bson:"image_url"`
	RecordedAt int64              `bson:"recorded_at"`
}
