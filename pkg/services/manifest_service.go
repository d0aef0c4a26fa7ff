package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"craft-gallery/pkg/models"
)

var (
	// ErrNetwork matches every failure to read the manifest resource
	ErrNetwork = errors.New("network error")
	// ErrParse matches a manifest body that is not a JSON object of file lists
	ErrParse = errors.New("parse error")
	// ErrMissingCategory is returned when a category is absent from the manifest or has no files
	ErrMissingCategory = errors.New("category has no images")
)

// NetworkError is a transport failure while reading the manifest
type NetworkError struct {
	Source string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Source, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrNetwork) hold for any NetworkError
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ParseError is a manifest body that could not be decoded
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrParse) hold for any ParseError
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Fetcher reads the manifest. Every call performs a fresh read.
type Fetcher interface {
	Fetch(ctx context.Context) (models.Manifest, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context) (models.Manifest, error)

// Fetch calls f(ctx)
func (f FetcherFunc) Fetch(ctx context.Context) (models.Manifest, error) {
	return f(ctx)
}

// NewFetcher picks a Fetcher for source: gs://bucket/object, an http(s) URL,
// or a local file path.
func NewFetcher(source string) (Fetcher, error) {
	switch {
	case source == "":
		return nil, errors.New("manifest source is empty")
	case strings.HasPrefix(source, "gs://"):
		bucket, object, ok := strings.Cut(strings.TrimPrefix(source, "gs://"), "/")
		if !ok || bucket == "" || object == "" {
			return nil, fmt.Errorf("invalid bucket manifest source %q, want gs://bucket/object", source)
		}
		return &BucketFetcher{Bucket: bucket, Object: object}, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return &HTTPFetcher{URL: source}, nil
	default:
		return &FileFetcher{Path: source}, nil
	}
}

// FileFetcher reads the manifest from a local file
type FileFetcher struct {
	Path string
}

// Fetch reads and decodes the file
func (f *FileFetcher) Fetch(_ context.Context) (models.Manifest, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, &NetworkError{Source: f.Path, Err: err}
	}
	return decodeManifest(f.Path, data)
}

// HTTPFetcher issues one GET per Fetch
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// Fetch downloads and decodes the manifest
func (f *HTTPFetcher) Fetch(ctx context.Context) (models.Manifest, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, &NetworkError{Source: f.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &NetworkError{Source: f.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Source: f.URL, Err: fmt.Errorf("bad status code: %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Source: f.URL, Err: err}
	}
	return decodeManifest(f.URL, data)
}

// BucketFetcher reads the manifest object from a Cloud Storage bucket
type BucketFetcher struct {
	Bucket string
	Object string
	// Client is optional; a client is created per fetch when nil.
	Client *storage.Client
}

// Fetch downloads and decodes the manifest object
func (f *BucketFetcher) Fetch(ctx context.Context) (models.Manifest, error) {
	source := fmt.Sprintf("gs://%s/%s", f.Bucket, f.Object)

	client := f.Client
	if client == nil {
		c, err := storage.NewClient(ctx)
		if err != nil {
			return nil, &NetworkError{Source: source, Err: fmt.Errorf("failed to create storage client: %w", err)}
		}
		defer c.Close()
		client = c
	}

	reader, err := client.Bucket(f.Bucket).Object(f.Object).NewReader(ctx)
	if err != nil {
		return nil, &NetworkError{Source: source, Err: err}
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &NetworkError{Source: source, Err: err}
	}
	return decodeManifest(source, data)
}

func decodeManifest(source string, data []byte) (models.Manifest, error) {
	var m models.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if m == nil {
		m = models.Manifest{}
	}
	return m, nil
}
