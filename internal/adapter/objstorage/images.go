package objstorage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wnstore/storefront/internal/core/port"
)

var _ port.ImageStore = (*ImagesClient)(nil)

const requestTimeout = 15 * time.Second

// ImagesClient removes product images from the hosted storage bucket.
// It only ever sees the public URL strings the catalog stores.
type ImagesClient struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

func NewImagesClient(baseURL, bucket, serviceKey string) ImagesClient {
	return ImagesClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c ImagesClient) RemoveImages(ctx context.Context, urls []string) error {
	const op = "ImagesClient.RemoveImages"

	paths := c.objectPaths(urls)
	if len(paths) == 0 {
		return nil
	}

	payload, err := json.Marshal(map[string][]string{"prefixes": paths})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s", c.baseURL, c.bucket)
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, endpoint, bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: unexpected status %d: %s",
			op, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

// objectPaths maps public URLs back to bucket object paths. URLs that
// do not point into this bucket are skipped.
func (c ImagesClient) objectPaths(urls []string) []string {
	marker := "/" + c.bucket + "/"

	var paths []string
	for _, u := range urls {
		i := strings.LastIndex(u, marker)
		if i < 0 {
			continue
		}
		p := u[i+len(marker):]
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
