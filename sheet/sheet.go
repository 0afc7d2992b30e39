/*
Package sheet decodes sprite sheet images into a flat buffer of straight
(non-premultiplied) RGBA pixels.

Any format registered with the standard image package can be read; PNG, GIF,
JPEG, BMP, TIFF and WebP are registered by this package. Whatever the source
color model, pixels are converted to color.NRGBA so that a fully transparent
pixel keeps its RGB channels and an opaque gray pixel has R == G == B.
*/
package sheet

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

var errEmpty = errors.New("sheet: image has no pixels")

// Image is a decoded sprite sheet. Pix holds Width*Height pixels in row-major
// order with no padding between rows.
type Image struct {
	Pix    []color.NRGBA
	Width  int
	Height int
}

// At returns the pixel at (x, y). The coordinates must be inside the image.
func (m *Image) At(x, y int) color.NRGBA {
	return m.Pix[y*m.Width+x]
}

// FromImage converts m into an Image with its top-left corner at (0, 0).
func FromImage(m image.Image) *Image {
	b := m.Bounds()

	n, _ := m.(*image.NRGBA)
	if n == nil || n.Rect.Min != (image.Point{}) || n.Stride != b.Dx()*4 {
		n = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(n, n.Bounds(), m, b.Min, draw.Src)
	}

	pix := make([]color.NRGBA, b.Dx()*b.Dy())
	for i := range pix {
		o := i << 2
		pix[i] = color.NRGBA{n.Pix[o], n.Pix[o+1], n.Pix[o+2], n.Pix[o+3]}
	}

	return &Image{
		Pix:    pix,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}

// Decode reads a sprite sheet from r.
func Decode(r io.Reader) (*Image, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("sheet: %w", err)
	}
	if m.Bounds().Empty() {
		return nil, errEmpty
	}
	return FromImage(m), nil
}

// DecodeFile reads the sprite sheet stored in file.
func DecodeFile(file string) (*Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// DecodeConfig returns the dimensions and format name of a sprite sheet
// without decoding the pixels.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	c, format, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("sheet: %w", err)
	}
	return c, format, nil
}
