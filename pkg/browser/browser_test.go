package browser

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-gallery/pkg/config"
	"school-gallery/pkg/models"
	"school-gallery/pkg/services"
)

func newTestModel(t *testing.T, root string) (*Model, string) {
	t.Helper()
	catalog, err := services.LoadCatalog("")
	require.NoError(t, err)

	out := t.TempDir()
	svc := services.NewService(&config.Config{}, catalog, services.DirSource{Root: root})
	return New(svc, services.DirSink{Dir: out}), out
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_NavigatesToPhotos(t *testing.T) {
	m, _ := newTestModel(t, t.TempDir())

	press(m, enter)
	assert.Equal(t, models.ViewSubcategories, m.ctrl.View())
	assert.Equal(t, "school_photos", m.ctrl.Selection().Category)

	press(m, down, enter)
	assert.Equal(t, models.ViewPhotos, m.ctrl.View())
	assert.Equal(t, "outside", m.ctrl.Selection().Subcategory)
	assert.Len(t, m.ctrl.Selection().Images, 93)

	press(m, esc)
	assert.Equal(t, models.ViewSubcategories, m.ctrl.View())
	press(m, esc)
	assert.Equal(t, models.ViewCategories, m.ctrl.View())
}

func TestModel_ModalKeys(t *testing.T) {
	m, _ := newTestModel(t, t.TempDir())
	press(m, enter, enter)
	require.Equal(t, models.ViewPhotos, m.ctrl.View())

	// Closed modal: arrows move the grid cursor, not the viewer
	press(m, right, right)
	assert.Equal(t, 2, m.cursor)
	assert.False(t, m.ctrl.Viewer().IsOpen())

	press(m, enter)
	require.True(t, m.ctrl.Viewer().IsOpen())
	assert.Equal(t, 2, m.ctrl.Viewer().Index())
	assert.Contains(t, m.View(), "image (3).jpg")

	press(m, left, left, left)
	assert.Equal(t, 22, m.ctrl.Viewer().Index())

	press(m, esc)
	assert.False(t, m.ctrl.Viewer().IsOpen())
	assert.Equal(t, models.ViewPhotos, m.ctrl.View())
	assert.Equal(t, 22, m.cursor)
}

func TestModel_EmptySubcategory(t *testing.T) {
	m, _ := newTestModel(t, t.TempDir())
	press(m, down, enter, enter)
	require.Equal(t, "events", m.ctrl.Selection().Category)
	require.Equal(t, models.ViewPhotos, m.ctrl.View())

	assert.Nil(t, press(m, runes("d")))
	view := m.View()
	assert.Contains(t, view, "No photos available in this category.")
	assert.NotContains(t, view, "[d]")
}

func TestModel_Export(t *testing.T) {
	root := t.TempDir()
	for _, n := range []int{1, 3} {
		path := filepath.Join(root, filepath.FromSlash(services.ImagePath("school_photos", "inside", n)))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0644))
	}

	m, out := newTestModel(t, root)
	press(m, enter, enter)

	cmd := press(m, runes("d"))
	require.NotNil(t, cmd)
	assert.Equal(t, services.MsgDownloading, m.status)

	m.Update(cmd())
	assert.Equal(t, services.MsgExportDone, m.status)
	assert.False(t, m.statusErr)

	zr, err := zip.OpenReader(filepath.Join(out, "inside_photos.zip"))
	require.NoError(t, err)
	defer zr.Close()

	var files []string
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f.Name)
		}
	}
	assert.Equal(t, []string{"inside/image_1.jpg", "inside/image_3.jpg"}, files)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, t.TempDir())
	cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
