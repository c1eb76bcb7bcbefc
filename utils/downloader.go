package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// maxImageBytes caps downloads of generated and catalog images.
const maxImageBytes = 20 << 20

var imageClient = &http.Client{Timeout: 30 * time.Second}

// ErrInvalidImageURL is returned for image locations that are not absolute http(s) URLs.
var ErrInvalidImageURL = errors.New("image url must be an absolute http or https url")

// ValidateImageURL checks that raw is an absolute http(s) URL with a host.
func ValidateImageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ErrInvalidImageURL
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	default:
		return ErrInvalidImageURL
	}
}

// FetchImage downloads an image from an http(s) URL. Anything else is rejected
// with ErrInvalidImageURL, so it is safe for URLs that come from requests.
func FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if err := ValidateImageURL(imageURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := imageClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image, status: %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// ReadImage reads a local file, or downloads pathOrURL when it is an http(s) URL.
// Only command line tools call it.
func ReadImage(ctx context.Context, pathOrURL string) ([]byte, error) {
	if ValidateImageURL(pathOrURL) == nil {
		return FetchImage(ctx, pathOrURL)
	}
	data, err := os.ReadFile(pathOrURL)
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", pathOrURL, maxImageBytes)
	}
	return data, nil
}

// DownloadImages reads urls (http(s) URLs or local paths) with at most 5 reads in
// flight and hands each payload to handle. It returns the URLs whose download or handling failed.
func DownloadImages(ctx context.Context, urls []string, handle func(url string, data []byte) error) []string {
	var failed []string
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Limit concurrency
	semaphore := make(chan struct{}, 5)

	for _, url := range urls {
		if url == "" {
			continue
		}
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			data, err := ReadImage(ctx, url)
			if err == nil {
				err = handle(url, data)
			}
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Str("url", url).Msg("failed to process image")
				mu.Lock()
				failed = append(failed, url)
				mu.Unlock()
			}
		}(url)
	}

	wg.Wait()
	return failed
}
