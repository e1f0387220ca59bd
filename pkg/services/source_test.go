package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-gallery/pkg/models"
)

func writeImages(t *testing.T, root, category, subcategory string, ordinals ...int) {
	t.Helper()
	dir := filepath.Join(root, "images", "gallery", category, subcategory)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, n := range ordinals {
		path := filepath.Join(root, filepath.FromSlash(ImagePath(category, subcategory, n)))
		require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), 0644))
	}
}

func TestDirSource_Fetch(t *testing.T) {
	root := t.TempDir()
	writeImages(t, root, "school_photos", "inside", 1, 2)
	source := DirSource{Root: root}

	data, err := source.Fetch(context.Background(), ImagePath("school_photos", "inside", 2))
	require.NoError(t, err)
	assert.Equal(t, "image (2).jpg", string(data))

	_, err = source.Fetch(context.Background(), ImagePath("school_photos", "inside", 3))
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestDirSource_RejectsTraversal(t *testing.T) {
	source := DirSource{Root: t.TempDir()}
	_, err := source.Fetch(context.Background(), "../../etc/passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path traversal")
}

func TestDirSource_List(t *testing.T) {
	root := t.TempDir()
	writeImages(t, root, "school_photos", "inside", 1, 2, 10)
	require.NoError(t, os.WriteFile(filepath.Join(root, "images/gallery/school_photos/inside/notes.txt"), nil, 0644))
	source := DirSource{Root: root}

	ordinals, err := source.List(context.Background(), "school_photos", "inside")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 10}, ordinals)

	ordinals, err = source.List(context.Background(), "events", "sports_day_2025")
	require.NoError(t, err)
	assert.Empty(t, ordinals)
}

func TestOrdinal(t *testing.T) {
	n, ok := ordinal("image (17).jpg")
	assert.True(t, ok)
	assert.Equal(t, 17, n)

	for _, name := range []string{"image(1).jpg", "image (0).jpg", "image (1).png", "photo (1).jpg"} {
		_, ok := ordinal(name)
		assert.False(t, ok, name)
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		if r.URL.Path == "/images/gallery/school_photos/inside/image (1).jpg" {
			w.Write([]byte("jpeg"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	source := &HTTPSource{BaseURL: server.URL + "/", Client: server.Client()}

	data, err := source.Fetch(context.Background(), ImagePath("school_photos", "inside", 1))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
	assert.Equal(t, "/images/gallery/school_photos/inside/image (1).jpg", requested)

	_, err = source.Fetch(context.Background(), ImagePath("school_photos", "inside", 2))
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestHTTPSource_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	source := &HTTPSource{BaseURL: server.URL, Client: server.Client()}
	_, err := source.Fetch(context.Background(), ImagePath("a", "b", 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

type countingSource struct {
	calls atomic.Int32
}

func (s *countingSource) Fetch(_ context.Context, path string) ([]byte, error) {
	s.calls.Add(1)
	if path == "missing" {
		return nil, ErrImageNotFound
	}
	return []byte(path), nil
}

func TestCachedSource(t *testing.T) {
	inner := &countingSource{}
	source := NewCachedSource(inner, time.Minute)

	for i := 0; i < 3; i++ {
		data, err := source.Fetch(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, "a", string(data))
	}
	assert.Equal(t, int32(1), inner.calls.Load())

	_, err := source.Fetch(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrImageNotFound)
	_, _ = source.Fetch(context.Background(), "missing")
	assert.Equal(t, int32(3), inner.calls.Load(), "failures are not cached")

	source.Flush()
	_, _ = source.Fetch(context.Background(), "a")
	assert.Equal(t, int32(4), inner.calls.Load())
}

func TestCachedSource_ListNeedsLister(t *testing.T) {
	_, err := NewCachedSource(&countingSource{}, time.Minute).List(context.Background(), "a", "b")
	assert.Error(t, err)

	root := t.TempDir()
	writeImages(t, root, "a", "b", 1)
	ordinals, err := NewCachedSource(DirSource{Root: root}, time.Minute).List(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ordinals)
}

func TestOpenSource(t *testing.T) {
	source, closeFn, err := OpenSource(context.Background(), "dir:/srv/school", "")
	require.NoError(t, err)
	assert.Equal(t, DirSource{Root: "/srv/school"}, source)
	assert.NoError(t, closeFn())

	source, _, err = OpenSource(context.Background(), "https://cdn.example.org", "")
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, source)

	_, _, err = OpenSource(context.Background(), "ftp://nope", "")
	assert.Error(t, err)
}

func TestVerifyCatalog(t *testing.T) {
	root := t.TempDir()
	writeImages(t, root, "c", "full", 1, 2)
	writeImages(t, root, "c", "gaps", 1, 3, 4)

	catalog := &models.Catalog{Categories: []models.Category{{
		ID: "c",
		Subcategories: []models.Subcategory{
			{ID: "full", Count: 2},
			{ID: "gaps", Count: 3},
			{ID: "none", Count: 0},
		},
	}}}

	reports, err := VerifyCatalog(context.Background(), catalog, DirSource{Root: root})
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.True(t, reports[0].OK())
	assert.Equal(t, []int{2}, reports[1].Missing)
	assert.Equal(t, []int{4}, reports[1].Extra)
	assert.Equal(t, 3, reports[1].Found)
	assert.False(t, reports[1].OK())
	assert.True(t, reports[2].OK())
}
