// Package images acquires meme source images for the game phase that
// follows the lobby: either an upload from the player's device or a random
// image fetched over HTTP. Failures here are reported to the caller and
// never touch lobby state.
package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultRandomURL serves a different random photo on every request
	DefaultRandomURL = "https://picsum.photos/800/600"

	// maxImageBytes caps both uploads and fetched images
	maxImageBytes = 10 << 20
)

var (
	ErrNotAnImage    = errors.New("data is not an image")
	ErrImageTooLarge = errors.New("image exceeds size limit")
)

// EncodeDataURL reads an uploaded image and returns it as a base64 data URL,
// the form the game phase renders directly into an <img> source.
func EncodeDataURL(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if len(data) > maxImageBytes {
		return "", ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	return fmt.Sprintf("data:%s;base64,%s",
		contentType, base64.StdEncoding.EncodeToString(data)), nil
}

// Fetcher retrieves random images from an HTTP source
type Fetcher struct {
	client *http.Client
	url    string
	logger *slog.Logger
}

// NewFetcher creates a Fetcher. A nil client gets a default with a timeout;
// an empty url gets DefaultRandomURL.
func NewFetcher(client *http.Client, url string, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if url == "" {
		url = DefaultRandomURL
	}
	return &Fetcher{
		client: client,
		url:    url,
		logger: logger.With(slog.String("component", "images")),
	}
}

// Random fetches one random image and returns it as a base64 data URL
func (f *Fetcher) Random(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("building image request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching random image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching random image: unexpected status %d", resp.StatusCode)
	}

	url, err := EncodeDataURL(resp.Body)
	if err != nil {
		return "", err
	}

	f.logger.Debug("random image fetched", slog.Int("bytes", len(url)))
	return url, nil
}
