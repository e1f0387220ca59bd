package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"school-gallery/pkg/config"
	"school-gallery/pkg/models"
)

// Service holds the catalog, image source and running exports shared by the
// web server and the commands
type Service struct {
	config       *config.Config
	source       ImageSource
	archiver     Archiver
	placeholders *cache.Cache

	mu      sync.RWMutex
	catalog *models.Catalog
	exports map[string]*Exporter
}

const defaultCacheTTL = 5 * time.Minute

// NewService creates a service over a catalog and image source
func NewService(cfg *config.Config, catalog *models.Catalog, source ImageSource) *Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &Service{
		config:       cfg,
		source:       source,
		archiver:     ZipArchiver{},
		placeholders: cache.New(ttl, 2*ttl),
		catalog:      catalog,
		exports:      make(map[string]*Exporter),
	}
}

var (
	// defaultService is the singleton instance of Service
	defaultService *Service
	closeSource    func() error
	once           sync.Once
	initErr        error
)

// InitService loads the catalog and opens the image source from configuration
func InitService(cfg *config.Config) error {
	once.Do(func() {
		catalog, err := LoadCatalog(cfg.CatalogPath)
		if err != nil {
			initErr = err
			return
		}

		source, closeFn, err := OpenSource(context.Background(), cfg.ImageSource, cfg.CredentialsFile)
		if err != nil {
			initErr = err
			return
		}
		closeSource = closeFn

		defaultService = NewService(cfg, catalog, NewCachedSource(source, cfg.CacheTTL))
		log.Printf("Gallery ready: %d categories, images from %s", len(catalog.Categories), cfg.ImageSource)
	})
	return initErr
}

// Default returns the service created by InitService
func Default() *Service {
	return defaultService
}

// Shutdown releases the image source client
func Shutdown() {
	if closeSource == nil {
		return
	}
	if err := closeSource(); err != nil {
		log.Printf("Warning: error closing image source: %v", err)
	}
}

// GetCatalog returns the current catalog
func GetCatalog() *models.Catalog {
	return defaultService.Catalog()
}

// Catalog returns the current catalog
func (s *Service) Catalog() *models.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// SetCatalog swaps in a reloaded catalog. Cached images are dropped so
// replaced photos are fetched again.
func (s *Service) SetCatalog(catalog *models.Catalog) {
	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()

	if flusher, ok := s.source.(interface{ Flush() }); ok {
		flusher.Flush()
	}
}

// Source is the image source used for fetching and serving images
func (s *Service) Source() ImageSource {
	return s.source
}

// NewController starts a gallery over the current catalog
func (s *Service) NewController() *Controller {
	return NewController(s.Catalog())
}

// NewExporter creates an exporter over the service's image source. Each
// terminal session or command run holds its own.
func (s *Service) NewExporter() *Exporter {
	return NewExporter(s.source, s.archiver)
}

func exportKey(client, category, subcategory string) string {
	return client + "|" + category + "/" + subcategory
}

// Export runs a folder export for one web client. While it runs, the same
// client gets ErrExportInProgress for that folder. Other clients are not
// affected.
func (s *Service) Export(ctx context.Context, client string, sel models.Selection, sink Sink) (*ExportResult, error) {
	key := exportKey(client, sel.Category, sel.Subcategory)

	s.mu.Lock()
	if _, running := s.exports[key]; running {
		s.mu.Unlock()
		log.Printf("Export of %s/%s already running for this client", sel.Category, sel.Subcategory)
		return nil, ErrExportInProgress
	}
	exporter := s.NewExporter()
	s.exports[key] = exporter
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.exports, key)
		s.mu.Unlock()
	}()

	return exporter.ExportAll(ctx, sel, sink)
}

// ExportStatus reports the export trigger state of a folder for one client
func (s *Service) ExportStatus(client, category, subcategory string) ExportStatus {
	s.mu.RLock()
	_, running := s.exports[exportKey(client, category, subcategory)]
	s.mu.RUnlock()

	if running {
		return ExportStatus{Busy: true, Label: MsgDownloading}
	}
	return ExportStatus{Label: MsgDownloadAll}
}

// Placeholder returns the fallback image for photo n. Only ordinals that some
// folder of the current catalog can show are served.
func (s *Service) Placeholder(n int) ([]byte, error) {
	if n < 1 || n > s.Catalog().MaxCount() {
		return nil, fmt.Errorf("placeholder %d: %w", n, ErrImageNotFound)
	}

	key := strconv.Itoa(n)
	if cached, found := s.placeholders.Get(key); found {
		return cached.([]byte), nil
	}

	data, err := Placeholder(n)
	if err != nil {
		return nil, fmt.Errorf("placeholder %d: %w", n, err)
	}
	s.placeholders.Set(key, data, cache.DefaultExpiration)
	return data, nil
}
