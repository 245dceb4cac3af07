package repository

import (
	"context"
	"time"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"github.com/ayaxan7/seller-dashboard/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("products").InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBProductRepositoryImpl) ReplaceProduct(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ObjectID}}

	result, err := r.db.Collection("products").ReplaceOne(ctx, filter, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReplaceProduct").Msg("Failed to replace product")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	result, err := r.db.Collection("products").DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrProductNotFound
	}

	return
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.db.Collection("products").FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, err
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) GetVendorProducts(ctx context.Context, vendorID string) (data []domain.Product, err error) {
	filter := bson.D{{Key: "vendor_id", Value: vendorID}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection("products").Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetVendorProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetVendorProducts").Msg("")
		return
	}

	return data, nil
}

// WatchVendorProducts opens a change stream on the products collection and
// re-queries the vendor's full set on every remote change, emitting it sorted
// newest-first. Delete events carry no document body, so re-querying is the
// only way a single stream can serve all mutation kinds. Both channels close
// when ctx is cancelled; a stream failure delivers one error and ends the
// feed, leaving resubscription to the caller.
func (r *MongoDBProductRepositoryImpl) WatchVendorProducts(ctx context.Context, vendorID string) (<-chan []domain.Product, <-chan error) {
	snapshots := make(chan []domain.Product, 1)
	errc := make(chan error, 1)

	go func() {
		defer close(snapshots)
		defer close(errc)

		opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
		stream, err := r.db.Collection("products").Watch(ctx, vendorChangeStreamPipeline(vendorID), opts)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "WatchVendorProducts").Msg("")
			errc <- err
			return
		}
		defer stream.Close(context.Background())

		if !r.emitSnapshot(ctx, vendorID, snapshots, errc) {
			return
		}

		for stream.Next(ctx) {
			if !r.emitSnapshot(ctx, vendorID, snapshots, errc) {
				return
			}
		}

		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "WatchVendorProducts").Msg("")
			errc <- err
		}
	}()

	return snapshots, errc
}

// vendorChangeStreamPipeline narrows the stream to this vendor's writes.
// Delete events carry no document body, so they pass through unconditionally
// and the re-query sorts out whether the vendor's set actually changed.
func vendorChangeStreamPipeline(vendorID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "$or", Value: bson.A{
				bson.D{{Key: "fullDocument.vendor_id", Value: vendorID}},
				bson.D{{Key: "operationType", Value: "delete"}},
			}},
		}}},
	}
}

func (r *MongoDBProductRepositoryImpl) emitSnapshot(ctx context.Context, vendorID string, snapshots chan []domain.Product, errc chan error) bool {
	products, err := r.GetVendorProducts(ctx, vendorID)
	if err != nil {
		if ctx.Err() == nil {
			errc <- err
		}
		return false
	}

	if products == nil {
		products = []domain.Product{}
	}

	// A slow consumer sees the latest set, not an event log: replace any
	// undelivered snapshot instead of blocking the stream.
	select {
	case snapshots <- products:
	default:
		select {
		case <-snapshots:
		default:
		}
		select {
		case snapshots <- products:
		case <-ctx.Done():
			return false
		}
	}

	return true
}

func (r *MongoDBProductRepositoryImpl) AddOrphanedBlob(ctx context.Context, imageURL string) (err error) {
	_, err = r.db.Collection("orphaned_blobs").InsertOne(ctx, domain.OrphanedBlob{
		ImageURL:   imageURL,
		RecordedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrphanedBlob").Msg("")
		return
	}

	return
}

func (r *MongoDBProductRepositoryImpl) GetOrphanedBlobs(ctx context.Context) (data []domain.OrphanedBlob, err error) {
	cursor, err := r.db.Collection("orphaned_blobs").Find(ctx, bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrphanedBlobs").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrphanedBlobs").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) DeleteOrphanedBlob(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	_, err = r.db.Collection("orphaned_blobs").DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteOrphanedBlob").Msg("")
		return
	}

	return
}
