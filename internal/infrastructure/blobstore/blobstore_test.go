package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayaxan7/seller-dashboard/config"
	"github.com/ayaxan7/seller-dashboard/pkg/errs"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker() *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{Name: "test"})
}

func TestPutReturnsPublicURL(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := CreateNewClient(config.BlobStorageConfig{
		BaseURL: server.URL,
		Bucket:  "images",
		APIKey:  "key-123",
	}, newTestBreaker())

	url, err := client.Put(context.Background(), "product_images/a.jpg", []byte("bytes"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/object/images/product_images/a.jpg", gotPath)
	assert.Equal(t, "Bearer key-123", gotAuth)
	assert.Equal(t, "image/jpeg", gotContentType)
	assert.Equal(t, []byte("bytes"), gotBody)
	assert.Equal(t, fmt.Sprintf("%s/object/public/images/product_images/a.jpg", server.URL), url)
}

func TestPutServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := CreateNewClient(config.BlobStorageConfig{BaseURL: server.URL, Bucket: "images"}, newTestBreaker())

	_, err := client.Put(context.Background(), "k", nil, "image/png")
	assert.Error(t, err)
}

func TestDeleteByURL(t *testing.T) {
	var gotMethod, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := CreateNewClient(config.BlobStorageConfig{BaseURL: server.URL, Bucket: "images"}, newTestBreaker())

	url := fmt.Sprintf("%s/object/public/images/product_images/a.jpg", server.URL)
	require.NoError(t, client.DeleteByURL(context.Background(), url))

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/object/images/product_images/a.jpg", gotPath)
}

func TestDeleteByURLMissingObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := CreateNewClient(config.BlobStorageConfig{BaseURL: server.URL, Bucket: "images"}, newTestBreaker())

	url := fmt.Sprintf("%s/object/public/images/gone.jpg", server.URL)
	err := client.DeleteByURL(context.Background(), url)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteByURLForeignURL(t *testing.T) {
	client := CreateNewClient(config.BlobStorageConfig{BaseURL: "https://blobs.example.com", Bucket: "images"}, newTestBreaker())

	err := client.DeleteByURL(context.Background(), "https://elsewhere.example.com/object/public/images/a.jpg")
	assert.Error(t, err)
}
