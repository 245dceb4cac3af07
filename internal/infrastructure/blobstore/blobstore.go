package blobstore

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ayaxan7/seller-dashboard/config"
	"github.com/ayaxan7/seller-dashboard/pkg/errs"
	"github.com/ayaxan7/seller-dashboard/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// Client talks to the HTTP object store holding product images. Objects are
// written under a caller-supplied key and served from a public URL; deletion
// addresses the object back through that URL.
type Client struct {
	baseURL string
	bucket  string
	apiKey  string
	cb      *gobreaker.CircuitBreaker[[]byte]
}

func CreateNewClient(conf config.BlobStorageConfig, cb *gobreaker.CircuitBreaker[[]byte]) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		bucket:  conf.Bucket,
		apiKey:  conf.APIKey,
		cb:      cb,
	}
}

func (c *Client) objectURL(key string) string {
	return fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, key)
}

func (c *Client) publicURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, key)
}

func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.cb.Execute(func() ([]byte, error) {
		status, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
			URL:    c.objectURL(key),
			Method: http.MethodPost,
			Body:   data,
			Headers: map[string]string{
				"Authorization": fmt.Sprintf("Bearer %s", c.apiKey),
				"Content-Type":  contentType,
			},
		})
		if err != nil {
			return nil, err
		}

		if status < 200 || status >= 300 {
			return nil, fmt.Errorf("blob store returned status %d: %s", status, string(body))
		}

		return body, nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Put").Msg("")
		return "", err
	}

	return c.publicURL(key), nil
}

// DeleteByURL removes the object addressed by a public URL. A missing object
// reports errs.ErrNotFound so callers can treat it as already gone.
func (c *Client) DeleteByURL(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, fmt.Sprintf("%s/object/public/%s/", c.baseURL, c.bucket))
	if !ok {
		return fmt.Errorf("url does not belong to bucket %s: %s", c.bucket, url)
	}

	_, err := c.cb.Execute(func() ([]byte, error) {
		status, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
			URL:    c.objectURL(key),
			Method: http.MethodDelete,
			Headers: map[string]string{
				"Authorization": fmt.Sprintf("Bearer %s", c.apiKey),
			},
		})
		if err != nil {
			return nil, err
		}

		if status == http.StatusNotFound {
			return nil, errs.ErrNotFound
		}

		if status < 200 || status >= 300 {
			return nil, fmt.Errorf("blob store returned status %d: %s", status, string(body))
		}

		return body, nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteByURL").Msg("")
		return err
	}

	return nil
}
