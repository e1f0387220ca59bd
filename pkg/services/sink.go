package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// Sink receives a finished archive, the way a browser receives a download
type Sink interface {
	Deliver(ctx context.Context, filename string, blob []byte) error
}

// DirSink writes archives into a directory
type DirSink struct {
	Dir string
}

func (s DirSink) Deliver(_ context.Context, filename string, blob []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	dst := filepath.Join(s.Dir, filepath.Base(filename))
	tmp := dst + ".part"
	if err := os.WriteFile(tmp, blob, 0644); err != nil {
		return fmt.Errorf("failed to write archive: %v", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move archive into place: %v", err)
	}
	return nil
}

// HTTPSink sends archives as an attachment response
type HTTPSink struct {
	W http.ResponseWriter
}

func (s HTTPSink) Deliver(_ context.Context, filename string, blob []byte) error {
	h := s.W.Header()
	h.Set("Content-Type", "application/zip")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.Set("Content-Length", strconv.Itoa(len(blob)))
	s.W.WriteHeader(http.StatusOK)

	if _, err := s.W.Write(blob); err != nil {
		return fmt.Errorf("failed to send archive: %v", err)
	}
	return nil
}
