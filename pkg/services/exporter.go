package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"school-gallery/pkg/models"
)

// ExportResult describes a delivered archive
type ExportResult struct {
	Filename string
	Entries  []string
	Failed   []int
	Size     int
}

// Exporter bundles every image of a selection into one archive.
// Only one export runs per exporter at a time.
type Exporter struct {
	source   ImageSource
	archiver Archiver

	mu   sync.Mutex
	busy bool
}

// NewExporter creates an exporter. A nil archiver makes every export fail
// with ErrArchiverUnavailable.
func NewExporter(source ImageSource, archiver Archiver) *Exporter {
	return &Exporter{source: source, archiver: archiver}
}

// Status is the current label and enabled state of the export trigger
func (e *Exporter) Status() ExportStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return ExportStatus{Busy: true, Label: MsgDownloading}
	}
	return ExportStatus{Label: MsgDownloadAll}
}

func (e *Exporter) begin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return false
	}
	e.busy = true
	return true
}

func (e *Exporter) end() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

type fetchResult struct {
	index int
	data  []byte
	err   error
}

// ArchiveName is the download filename of a subcategory export
func ArchiveName(subcategory string) string {
	return fmt.Sprintf("%s_photos.zip", subcategory)
}

// ExportAll fetches every image of sel concurrently, archives the ones that
// arrived as {subcategory}/image_{n}.jpg and delivers {subcategory}_photos.zip
// to sink. A failed image is logged and left out of the archive.
func (e *Exporter) ExportAll(ctx context.Context, sel models.Selection, sink Sink) (*ExportResult, error) {
	if e.archiver == nil {
		log.Printf("Export aborted for %s: no archiver", sel.Subcategory)
		return nil, ErrArchiverUnavailable
	}
	if len(sel.Images) == 0 {
		return nil, ErrEmptyCollection
	}
	if !e.begin() {
		return nil, ErrExportInProgress
	}
	defer e.end()

	results := e.fetchAll(ctx, sel.Images)

	archive := e.archiver.CreateArchive()
	folder := archive.AddFolder(sel.Subcategory)
	result := &ExportResult{Filename: ArchiveName(sel.Subcategory)}

	for _, r := range results {
		if r.err != nil {
			result.Failed = append(result.Failed, r.index+1)
			continue
		}
		name := DownloadName(r.index)
		if err := folder.AddFile(name, r.data); err != nil {
			log.Printf("Error creating ZIP: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrArchiveAssembly, err)
		}
		result.Entries = append(result.Entries, name)
	}

	blob, err := archive.Generate()
	if err != nil {
		log.Printf("Error creating ZIP: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrArchiveAssembly, err)
	}
	result.Size = len(blob)

	if err := sink.Deliver(ctx, result.Filename, blob); err != nil {
		log.Printf("Error delivering ZIP: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrArchiveAssembly, err)
	}

	log.Printf("Exported %s: %d images, %d failed, %d bytes",
		result.Filename, len(result.Entries), len(result.Failed), result.Size)
	return result, nil
}

// fetchAll fetches all paths at once and returns one result per path in
// input order. It waits for every fetch; a failure never cancels the others.
func (e *Exporter) fetchAll(ctx context.Context, paths []string) []fetchResult {
	results := make([]fetchResult, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			data, err := e.source.Fetch(ctx, path)
			if err != nil {
				log.Printf("Failed to load image %d: %v", i+1, err)
			}
			results[i] = fetchResult{index: i, data: data, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
