package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type BlobServiceImpl struct {
	store BlobStore
}

func CreateNewBlobService(store BlobStore) BlobService {
	return &BlobServiceImpl{store: store}
}

// Upload writes the image under a fresh random key. The 128-bit key makes
// collisions between concurrent uploads a non-concern. No retries here;
// retry policy belongs to the caller.
func (s *BlobServiceImpl) Upload(ctx context.Context, filename string, data []byte) (url string, err error) {
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := contentTypes[ext]
	if !ok {
		ext = ".jpg"
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("product_images/%s%s", uuid.New().String(), ext)

	url, err = s.store.Put(ctx, key, data, contentType)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Upload").Msg("")
		return "", err
	}

	return url, nil
}
