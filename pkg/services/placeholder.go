package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	placeholderWidth  = 300
	placeholderHeight = 200
	placeholderScale  = 3
)

// placeholderBackground is the school theme blue (#1e40af)
var placeholderBackground = color.RGBA{R: 0x1e, G: 0x40, B: 0xaf, A: 0xff}

// Placeholder renders the fallback JPEG shown when image n fails to load
func Placeholder(n int) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid image number %d", n)
	}

	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBackground), image.Point{}, draw.Src)

	label := renderLabel(fmt.Sprintf("Image %d", n))
	w := label.Bounds().Dx() * placeholderScale
	h := label.Bounds().Dy() * placeholderScale
	if w > placeholderWidth {
		// Very long numbers are drawn unscaled
		w, h = label.Bounds().Dx(), label.Bounds().Dy()
	}
	x := (placeholderWidth - w) / 2
	y := (placeholderHeight - h) / 2
	draw.NearestNeighbor.Scale(img, image.Rect(x, y, x+w, y+h), label, label.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %v", err)
	}
	return buf.Bytes(), nil
}

// renderLabel draws text in white on a transparent image sized to fit it
func renderLabel(text string) *image.RGBA {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	label := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(text)
	return label
}
