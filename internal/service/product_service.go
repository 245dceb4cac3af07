package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ayaxan7/seller-dashboard/config"
	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"github.com/ayaxan7/seller-dashboard/internal/dto"
	"github.com/ayaxan7/seller-dashboard/internal/repository"
	"github.com/ayaxan7/seller-dashboard/internal/session"
	"github.com/ayaxan7/seller-dashboard/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductServiceImpl struct {
	repo          repository.ProductRepository
	blobStore     BlobStore
	sessions      *session.Store
	config        config.Config
	kafkaProducer EventProducer
}

func CreateNewProductService(repo repository.ProductRepository, blobStore BlobStore, sessions *session.Store, config config.Config, kafkaProducer EventProducer) ProductService {
	return &ProductServiceImpl{
		repo:          repo,
		blobStore:     blobStore,
		sessions:      sessions,
		config:        config,
		kafkaProducer: kafkaProducer,
	}
}

// Create stamps the current vendor identity onto the product and writes it in
// a single insert: the document key is assigned up front so the stored id
// field always matches it, with no patch write afterwards.
func (s *ProductServiceImpl) Create(ctx context.Context, data domain.Product) (id string, err error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return "", errs.ErrNotLoggedIn
	}

	data.ObjectID = primitive.NewObjectID()
	data.ID = data.ObjectID.Hex()
	data.VendorID = sess.VendorID
	data.Email = sess.Email
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().UnixMilli()
	}

	_, err = s.repo.AddProduct(ctx, data)
	if err != nil {
		return "", err
	}

	s.publishEvent(ctx, "add_product", data)

	return data.ID, nil
}

// Update is a full record replace. The creation timestamp is carried over
// from the stored document so edits never move a product in the list order.
func (s *ProductServiceImpl) Update(ctx context.Context, data domain.Product) (err error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return errs.ErrNotLoggedIn
	}

	existing, err := s.repo.GetProductByID(ctx, data.ID)
	if err != nil {
		return err
	}

	data.ObjectID = existing.ObjectID
	data.VendorID = sess.VendorID
	data.Email = sess.Email
	data.CreatedAt = existing.CreatedAt

	err = s.repo.ReplaceProduct(ctx, data)
	if err != nil {
		return err
	}

	s.publishEvent(ctx, "update_product", data)

	return nil
}

// Delete removes the document, then best-effort deletes its image blob. A
// blob-side failure is recorded for the sweeper and swallowed: an orphaned
// image must not block a successful catalog delete.
func (s *ProductServiceImpl) Delete(ctx context.Context, id string, imageURL string) (err error) {
	err = s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}

	if imageURL != "" {
		err := s.blobStore.DeleteByURL(ctx, imageURL)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			log.Ctx(ctx).Error().Err(err).Str("component", "Delete").Str("image_url", imageURL).Msg("image deletion failed, continuing")
			if err := s.repo.AddOrphanedBlob(ctx, imageURL); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("component", "Delete").Msg("")
			}
		}
	}

	s.publishEvent(ctx, "delete_product", domain.Product{ID: id})

	return nil
}

func (s *ProductServiceImpl) GetByID(ctx context.Context, id string) (product domain.Product, err error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *ProductServiceImpl) List(ctx context.Context) (data []domain.Product, err error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return nil, errs.ErrNotLoggedIn
	}

	return s.repo.GetVendorProducts(ctx, sess.VendorID)
}

// Watch opens the live feed for the signed-in vendor. The feed is tied both
// to ctx and to the session: signing out cancels it, and the channels close
// once the producer side has cleaned up.
func (s *ProductServiceImpl) Watch(ctx context.Context) (<-chan []domain.Product, <-chan error) {
	out := make(chan []domain.Product, 1)
	outErr := make(chan error, 1)

	sess, ok := s.sessions.Current()
	if !ok {
		outErr <- errs.ErrNotLoggedIn
		close(out)
		close(outErr)
		return out, outErr
	}

	watchCtx, cancel := context.WithCancel(ctx)
	release := s.sessions.RegisterCancel(cancel)

	snapshots, errc := s.repo.WatchVendorProducts(watchCtx, sess.VendorID)

	go func() {
		defer close(out)
		defer close(outErr)
		defer release()
		defer cancel()

		for snapshots != nil || errc != nil {
			select {
			case snap, ok := <-snapshots:
				if !ok {
					snapshots = nil
					continue
				}
				select {
				case out <- snap:
				case <-watchCtx.Done():
					return
				}
			case err, ok := <-errc:
				if !ok {
					errc = nil
					continue
				}
				outErr <- err
			}
		}
	}()

	return out, outErr
}

// SweepOrphanedBlobs retries image deletions that were swallowed during
// product deletes. Runs on the scheduler.
func (s *ProductServiceImpl) SweepOrphanedBlobs() {
	ctx := context.Background()

	orphans, err := s.repo.GetOrphanedBlobs(ctx)
	if err != nil {
		log.Error().Err(err).Str("component", "SweepOrphanedBlobs").Msg("")
		return
	}

	for _, orphan := range orphans {
		err := s.blobStore.DeleteByURL(ctx, orphan.ImageURL)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			log.Error().Err(err).Str("component", "SweepOrphanedBlobs").Str("image_url", orphan.ImageURL).Msg("")
			continue
		}

		if err := s.repo.DeleteOrphanedBlob(ctx, orphan.ObjectID); err != nil {
			log.Error().Err(err).Str("component", "SweepOrphanedBlobs").Msg("")
		}
	}
}

func (s *ProductServiceImpl) publishEvent(ctx context.Context, eventType string, data domain.Product) {
	if s.kafkaProducer == nil {
		return
	}

	kafkaMsg := dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		err = s.writeKafkaMessage(jsonMsg)
		if err == nil {
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msgf("failed to write Kafka message (attempt %d/%d)", i+1, maxRetries)
		time.Sleep(time.Second * time.Duration(i+1))
	}
}

func (s *ProductServiceImpl) writeKafkaMessage(msg []byte) error {
	_, err := s.kafkaProducer.WriteMessages(
		kafka.Message{
			Value: msg,
		},
	)
	return err
}
