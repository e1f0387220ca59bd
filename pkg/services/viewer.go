package services

import (
	"fmt"
	"math"
)

// SwipeThreshold is the horizontal distance in pixels a touch must travel to count as a swipe
const SwipeThreshold = 50

// BackdropID identifies the modal backdrop as a click target
const BackdropID = "imageModal"

// Keys understood by the modal viewer
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEscape     = "Escape"
)

// Viewer is the full-screen single image viewer over the current image list
type Viewer struct {
	images       []string
	index        int
	open         bool
	scrollLocked bool
	touchStartX  float64
	touching     bool
}

// reset points the viewer at a new image list and closes it
func (v *Viewer) reset(images []string) {
	v.Close()
	v.images = images
	v.index = 0
}

// Open shows the image at index. Out of range indices are ignored.
func (v *Viewer) Open(index int) bool {
	if index < 0 || index >= len(v.images) {
		return false
	}
	v.index = index
	v.open = true
	v.scrollLocked = true
	return true
}

// Navigate moves one image left (-1) or right (+1), wrapping at both ends
func (v *Viewer) Navigate(direction int) bool {
	if len(v.images) == 0 || (direction != -1 && direction != 1) {
		return false
	}
	v.index = wrapIndex(v.index, direction, len(v.images))
	return true
}

// Close hides the viewer and restores page scroll
func (v *Viewer) Close() {
	v.open = false
	v.scrollLocked = false
	v.touching = false
}

// HandleKey applies a keyboard binding. Keys are inert while the viewer is closed.
func (v *Viewer) HandleKey(key string) bool {
	if !v.open {
		return false
	}
	switch key {
	case KeyArrowLeft:
		return v.Navigate(-1)
	case KeyArrowRight:
		return v.Navigate(1)
	case KeyEscape:
		v.Close()
		return true
	}
	return false
}

// Click closes the viewer when the click landed on the backdrop rather than the image
func (v *Viewer) Click(target string) bool {
	if !v.open || target != BackdropID {
		return false
	}
	v.Close()
	return true
}

// TouchStart records where a touch began. Only X matters.
func (v *Viewer) TouchStart(x float64) {
	if !v.open {
		return
	}
	v.touchStartX = x
	v.touching = true
}

// TouchEnd completes a touch and navigates when it was a horizontal swipe.
// A leftward swipe shows the next image.
func (v *Viewer) TouchEnd(x float64) bool {
	if !v.open || !v.touching {
		return false
	}
	v.touching = false

	delta := v.touchStartX - x
	if math.Abs(delta) <= SwipeThreshold {
		return false
	}
	if delta > 0 {
		return v.Navigate(1)
	}
	return v.Navigate(-1)
}

func (v *Viewer) IsOpen() bool       { return v.open }
func (v *Viewer) ScrollLocked() bool { return v.scrollLocked }
func (v *Viewer) Index() int         { return v.index }
func (v *Viewer) Len() int           { return len(v.images) }

// Image is the displayed image and download target
func (v *Viewer) Image() string {
	if len(v.images) == 0 {
		return ""
	}
	return v.images[v.index]
}

// DownloadName is the suggested filename for the displayed image
func (v *Viewer) DownloadName() string {
	return DownloadName(v.index)
}

// DownloadName is the 1-indexed filename of the image at index
func DownloadName(index int) string {
	return fmt.Sprintf("image_%d.jpg", index+1)
}

func wrapIndex(index, direction, n int) int {
	return (index + direction + n) % n
}
