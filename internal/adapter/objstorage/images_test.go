package objstorage_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wnstore/storefront/internal/adapter/objstorage"
)

func TestRemoveImages(t *testing.T) {

	t.Run("DeletesBucketObjects", func(t *testing.T) {
		var gotMethod, gotPath, gotAuth string
		var gotPayload map[string][]string

		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
				w.WriteHeader(http.StatusOK)
			},
		))
		defer srv.Close()

		client := objstorage.NewImagesClient(srv.URL, "images", "test-key")

		err := client.RemoveImages(t.Context(), []string{
			srv.URL + "/storage/v1/object/public/images/products/1/front.webp",
			srv.URL + "/storage/v1/object/public/images/products/1/back.webp",
		})
		require.NoError(t, err)

		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/storage/v1/object/images", gotPath)
		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t,
			[]string{"products/1/front.webp", "products/1/back.webp"},
			gotPayload["prefixes"],
		)
	})

	t.Run("SkipsForeignURLs", func(t *testing.T) {
		var called bool
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				called = true
			},
		))
		defer srv.Close()

		client := objstorage.NewImagesClient(srv.URL, "images", "test-key")

		err := client.RemoveImages(t.Context(), []string{
			"https://cdn.example.com/other/products/1/front.webp",
			"",
		})
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("ErrorStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bucket not found", http.StatusNotFound)
			},
		))
		defer srv.Close()

		client := objstorage.NewImagesClient(srv.URL, "images", "test-key")

		err := client.RemoveImages(t.Context(), []string{
			srv.URL + "/storage/v1/object/public/images/products/1/front.webp",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}
