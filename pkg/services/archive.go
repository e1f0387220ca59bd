package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"time"
)

// Archiver creates archives for the bulk exporter
type Archiver interface {
	CreateArchive() Archive
}

// Archive collects folders and files and serializes them to one blob
type Archive interface {
	AddFolder(name string) Folder
	Generate() ([]byte, error)
}

// Folder is a directory inside an archive
type Folder interface {
	AddFile(name string, data []byte) error
}

// ZipArchiver builds ZIP archives in memory
type ZipArchiver struct {
	// Modified is stamped on every entry; zero means the time of generation.
	Modified time.Time
}

func (z ZipArchiver) CreateArchive() Archive {
	return &zipArchive{modified: z.Modified}
}

type zipEntry struct {
	name string
	data []byte
	dir  bool
}

type zipArchive struct {
	modified time.Time
	entries  []zipEntry
	names    map[string]bool
}

type zipFolder struct {
	archive *zipArchive
	prefix  string
}

func (a *zipArchive) AddFolder(name string) Folder {
	prefix := path.Clean("/" + name)[1:]
	if prefix != "" {
		a.add(zipEntry{name: prefix + "/", dir: true})
	}
	return &zipFolder{archive: a, prefix: prefix}
}

func (a *zipArchive) add(e zipEntry) bool {
	if a.names == nil {
		a.names = make(map[string]bool)
	}
	if a.names[e.name] {
		return false
	}
	a.names[e.name] = true
	a.entries = append(a.entries, e)
	return true
}

func (f *zipFolder) AddFile(name string, data []byte) error {
	entry := path.Join(f.prefix, path.Clean("/" + name)[1:])
	if entry == f.prefix || entry == "" {
		return fmt.Errorf("invalid archive entry name %q", name)
	}
	if !f.archive.add(zipEntry{name: entry, data: data}) {
		return fmt.Errorf("duplicate archive entry %q", entry)
	}
	return nil
}

func (a *zipArchive) Generate() ([]byte, error) {
	modified := a.modified
	if modified.IsZero() {
		modified = time.Now()
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range a.entries {
		// JPEGs are already compressed, so entries are stored as-is.
		header := &zip.FileHeader{
			Name:     e.name,
			Method:   zip.Store,
			Modified: modified,
		}

		w, err := zw.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", e.name, err)
		}
		if e.dir {
			continue
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}
	return buf.Bytes(), nil
}
