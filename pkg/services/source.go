package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/patrickmn/go-cache"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ErrImageNotFound is returned when an image path does not exist in the source
var ErrImageNotFound = errors.New("image not found")

// ImageSource fetches image bytes by gallery path
type ImageSource interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Lister reports which image ordinals exist in a subcategory folder
type Lister interface {
	List(ctx context.Context, category, subcategory string) ([]int, error)
}

var imageNameRegex = regexp.MustCompile(`^image \((\d+)\)\.jpg$`)

// ordinal extracts n from "image (n).jpg"
func ordinal(name string) (int, bool) {
	m := imageNameRegex.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func folderPrefix(category, subcategory string) string {
	return fmt.Sprintf("images/gallery/%s/%s/", category, subcategory)
}

// OpenSource builds the image source named by an IMAGE_SOURCE value.
// The returned close function releases any client the source holds.
func OpenSource(ctx context.Context, location, credentialsFile string) (ImageSource, func() error, error) {
	noop := func() error { return nil }

	switch {
	case strings.HasPrefix(location, "dir:"):
		return DirSource{Root: strings.TrimPrefix(location, "dir:")}, noop, nil

	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return &HTTPSource{BaseURL: location, Client: http.DefaultClient}, noop, nil

	case strings.HasPrefix(location, "gs://"):
		var opts []option.ClientOption
		if credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}
		client, err := storage.NewClient(ctx, opts...)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create storage client: %v", err)
		}
		bucket := strings.TrimSuffix(strings.TrimPrefix(location, "gs://"), "/")
		return &GCSSource{Bucket: client.Bucket(bucket)}, client.Close, nil
	}

	return nil, noop, fmt.Errorf("unsupported image source %q", location)
}

// DirSource reads images from a local directory tree
type DirSource struct {
	Root string
}

func (s DirSource) resolve(path string) (string, error) {
	root := filepath.Clean(s.Root)
	full := filepath.Join(root, filepath.FromSlash(path))
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid path: path traversal detected")
	}
	return full, nil
}

func (s DirSource) Fetch(_ context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - resolve keeps the path inside Root
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrImageNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %v", err)
	}
	return data, nil
}

func (s DirSource) List(_ context.Context, category, subcategory string) ([]int, error) {
	dir, err := s.resolve(folderPrefix(category, subcategory))
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir: %v", err)
	}

	var ordinals []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n, ok := ordinal(e.Name()); ok {
			ordinals = append(ordinals, n)
		}
	}
	return ordinals, nil
}

// HTTPSource fetches images from a static file server
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	src := strings.TrimSuffix(s.BaseURL, "/") + ImageHref(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest(%q): %v", src, err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http.Get(%q): %v", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", path, ErrImageNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %v", err)
	}
	return data, nil
}

// GCSSource reads images from a Cloud Storage bucket using the gallery path as object name
type GCSSource struct {
	Bucket *storage.BucketHandle
}

func (s *GCSSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	reader, err := s.Bucket.Object(path).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrImageNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Object(%q).NewReader: %v", path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("ReadAll: %v", err)
	}
	return data, nil
}

func (s *GCSSource) List(ctx context.Context, category, subcategory string) ([]int, error) {
	prefix := folderPrefix(category, subcategory)
	it := s.Bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	var ordinals []int
	for {
		obj, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %v", err)
		}
		if n, ok := ordinal(strings.TrimPrefix(obj.Name, prefix)); ok {
			ordinals = append(ordinals, n)
		}
	}
	return ordinals, nil
}

// CachedSource keeps recently fetched images in memory
type CachedSource struct {
	source ImageSource
	cache  *cache.Cache
}

// NewCachedSource wraps source with an in-memory cache holding entries for ttl
func NewCachedSource(source ImageSource, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func (s *CachedSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if cached, found := s.cache.Get(path); found {
		return cached.([]byte), nil
	}

	data, err := s.source.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	s.cache.Set(path, data, cache.DefaultExpiration)
	return data, nil
}

// List passes through to the wrapped source when it can list folders
func (s *CachedSource) List(ctx context.Context, category, subcategory string) ([]int, error) {
	lister, ok := s.source.(Lister)
	if !ok {
		return nil, fmt.Errorf("image source %T cannot list folders", s.source)
	}
	return lister.List(ctx, category, subcategory)
}

// Flush drops every cached image
func (s *CachedSource) Flush() {
	s.cache.Flush()
}
