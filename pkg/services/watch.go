package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"school-gallery/pkg/models"
)

// WatchCatalog reloads the catalog file whenever it changes on disk and passes
// each successfully parsed version to onChange. A bad edit is logged and the
// previous catalog stays active. Blocks until ctx is done.
func WatchCatalog(ctx context.Context, path string, onChange func(*models.Catalog)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Printf("Warning: failed to close catalog watcher: %v", err)
		}
	}()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch catalog: %w", err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			catalog, err := LoadCatalog(path)
			if err != nil {
				log.Printf("Catalog reload failed, keeping previous version: %v", err)
				continue
			}
			log.Printf("Catalog reloaded: %d categories", len(catalog.Categories))
			onChange(catalog)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Printf("Catalog watcher error: %v", err)
		}
	}
}
