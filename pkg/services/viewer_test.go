package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer(n int) *Viewer {
	v := &Viewer{}
	v.reset(ImagePaths("school_photos", "inside", n))
	return v
}

func TestViewer_OpenSetsImageAndFilename(t *testing.T) {
	v := newTestViewer(5)

	require.True(t, v.Open(2))
	assert.True(t, v.IsOpen())
	assert.True(t, v.ScrollLocked())
	assert.Equal(t, "images/gallery/school_photos/inside/image (3).jpg", v.Image())
	assert.Equal(t, "image_3.jpg", v.DownloadName())
}

func TestViewer_OpenOutOfRange(t *testing.T) {
	v := newTestViewer(3)
	assert.False(t, v.Open(3))
	assert.False(t, v.Open(-1))
	assert.False(t, v.IsOpen())
}

func TestViewer_NavigateWraps(t *testing.T) {
	v := newTestViewer(4)
	require.True(t, v.Open(0))

	v.Navigate(-1)
	assert.Equal(t, 3, v.Index())
	assert.Equal(t, "image_4.jpg", v.DownloadName())

	v.Navigate(1)
	assert.Equal(t, 0, v.Index())
}

func TestViewer_NavigateCycleIsIdentity(t *testing.T) {
	for _, n := range []int{1, 2, 7, 23} {
		v := newTestViewer(n)
		for start := 0; start < n; start++ {
			require.True(t, v.Open(start))
			for i := 0; i < n; i++ {
				v.Navigate(1)
			}
			assert.Equal(t, start, v.Index(), "n=%d start=%d", n, start)

			v.Navigate(1)
			v.Navigate(-1)
			assert.Equal(t, start, v.Index(), "inverse n=%d start=%d", n, start)
		}
	}
}

func TestViewer_NavigateRejectsOtherDirections(t *testing.T) {
	v := newTestViewer(3)
	v.Open(1)
	assert.False(t, v.Navigate(2))
	assert.False(t, v.Navigate(0))
	assert.Equal(t, 1, v.Index())
}

func TestViewer_EmptyListIsNoop(t *testing.T) {
	v := newTestViewer(0)
	assert.False(t, v.Open(0))
	assert.False(t, v.Navigate(1))
	assert.False(t, v.Navigate(-1))
	assert.Equal(t, "", v.Image())
}

func TestViewer_ReopenIsIdempotent(t *testing.T) {
	v := newTestViewer(6)

	v.Open(4)
	img, name := v.Image(), v.DownloadName()
	v.Close()
	assert.False(t, v.IsOpen())
	assert.False(t, v.ScrollLocked())

	v.Open(4)
	assert.Equal(t, img, v.Image())
	assert.Equal(t, name, v.DownloadName())
}

func TestViewer_KeysInertWhileClosed(t *testing.T) {
	v := newTestViewer(5)
	v.Open(2)
	v.Close()

	for _, key := range []string{KeyArrowLeft, KeyArrowRight, KeyEscape} {
		assert.False(t, v.HandleKey(key), key)
	}
	assert.Equal(t, 2, v.Index())
	assert.False(t, v.IsOpen())
}

func TestViewer_KeysWhileOpen(t *testing.T) {
	v := newTestViewer(5)
	v.Open(2)

	assert.True(t, v.HandleKey(KeyArrowRight))
	assert.Equal(t, 3, v.Index())
	assert.True(t, v.HandleKey(KeyArrowLeft))
	assert.True(t, v.HandleKey(KeyArrowLeft))
	assert.Equal(t, 1, v.Index())
	assert.False(t, v.HandleKey("Enter"))

	assert.True(t, v.HandleKey(KeyEscape))
	assert.False(t, v.IsOpen())
	assert.False(t, v.ScrollLocked())
}

func TestViewer_Swipe(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		wantMoved  bool
		wantIndex  int
	}{
		{"left 51px shows next", 200, 149, true, 3},
		{"left 49px ignored", 200, 151, false, 2},
		{"left exactly 50px ignored", 200, 150, false, 2},
		{"right 51px shows previous", 100, 151, true, 1},
		{"right 49px ignored", 100, 149, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViewer(5)
			v.Open(2)
			v.TouchStart(tt.start)
			assert.Equal(t, tt.wantMoved, v.TouchEnd(tt.end))
			assert.Equal(t, tt.wantIndex, v.Index())
		})
	}
}

func TestViewer_SwipeInertWhileClosed(t *testing.T) {
	v := newTestViewer(5)
	v.TouchStart(300)
	assert.False(t, v.TouchEnd(0))
	assert.Equal(t, 0, v.Index())
}

func TestViewer_BackdropClick(t *testing.T) {
	v := newTestViewer(2)
	v.Open(0)

	assert.False(t, v.Click("modalImage"))
	assert.True(t, v.IsOpen())
	assert.True(t, v.Click(BackdropID))
	assert.False(t, v.IsOpen())
}
