/*
Package atlas keeps a two dimensional image of every tile in a Tileset.

Tiles are laid out left to right, top to bottom using the Tileset's virtual
column count. The atlas observes the Tileset so any tile changed with SetTile
is redrawn straight away and recorded as dirty until Clean is called, which
is what a texture uploader needs to know to push only the changed cells.
*/
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sort"

	"github.com/bodgit/tileset"
	"github.com/ericpauley/go-quantize/quantize"
)

const maxColors = 256

var errClosed = errors.New("atlas: closed")

// Atlas is an image of a Tileset that follows changes to it.
type Atlas struct {
	ts       *tileset.Tileset
	observer *tileset.Observer
	detached bool

	width   int
	height  int
	columns int
	rows    int
	img     *image.NRGBA
	buf     []color.NRGBA
	dirty   map[int]struct{}
}

// New returns an Atlas drawn from every tile currently in ts. The Atlas
// holds a reference to ts until Close is called.
func New(ts *tileset.Tileset) (*Atlas, error) {
	if ts == nil {
		return nil, tileset.ErrNilTileset
	}

	a := &Atlas{
		ts:      ts.Retain(),
		width:   ts.TileWidth(),
		height:  ts.TileHeight(),
		columns: ts.VirtualColumns(),
		buf:     make([]color.NRGBA, ts.TileLength()),
		dirty:   make(map[int]struct{}),
	}
	if a.columns < 1 {
		a.columns = 1
	}
	a.resize(ts.TileCount())

	for i := 0; i < ts.TileCount(); i++ {
		if err := a.draw(i); err != nil {
			ts.Release()
			return nil, err
		}
	}

	o, err := ts.Attach(a.onChange, a.onDelete)
	if err != nil {
		ts.Release()
		return nil, err
	}
	a.observer = o

	return a, nil
}

// Cell returns the rectangle in the atlas image occupied by tileID.
func (a *Atlas) Cell(tileID int) image.Rectangle {
	x, y := tileID%a.columns*a.width, tileID/a.columns*a.height
	return image.Rect(x, y, x+a.width, y+a.height)
}

// resize grows the image so it has room for tiles tiles
func (a *Atlas) resize(tiles int) {
	rows := (tiles + a.columns - 1) / a.columns
	if a.img != nil && rows <= a.rows {
		return
	}

	img := image.NewNRGBA(image.Rect(0, 0, a.columns*a.width, rows*a.height))
	if a.img != nil {
		draw.Draw(img, a.img.Bounds(), a.img, image.Point{}, draw.Src)
	}
	a.img, a.rows = img, rows
}

func (a *Atlas) draw(tileID int) error {
	if err := a.ts.Tile(tileID, a.buf); err != nil {
		return err
	}
	r := a.Cell(tileID)
	w := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a.img.SetNRGBA(x, y, a.buf[(y-r.Min.Y)*w+x-r.Min.X])
		}
	}
	return nil
}

func (a *Atlas) onChange(_ *tileset.Observer, tileID, _ int) error {
	a.resize(tileID + 1)
	if err := a.draw(tileID); err != nil {
		return err
	}
	a.dirty[tileID] = struct{}{}
	return nil
}

func (a *Atlas) onDelete(_ *tileset.Observer) {
	a.detached = true
}

// Detached reports whether the atlas has stopped following its Tileset.
func (a *Atlas) Detached() bool {
	return a.detached
}

// Image returns the atlas image. It is updated in place as tiles change
// until the Tileset grows past the last row, when it is replaced.
func (a *Atlas) Image() *image.NRGBA {
	return a.img
}

// Dirty returns the ids of tiles changed since the last call to Clean in
// ascending order.
func (a *Atlas) Dirty() []int {
	ids := make([]int, 0, len(a.dirty))
	for id := range a.dirty {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clean forgets every dirty tile.
func (a *Atlas) Clean() {
	a.dirty = make(map[int]struct{})
}

// Close stops following the Tileset and drops the reference to it.
func (a *Atlas) Close() error {
	if a.ts == nil {
		return errClosed
	}
	a.observer.Detach()
	a.ts.Release()
	a.ts = nil
	return nil
}

// Encode writes the atlas image to w as a PNG.
func (a *Atlas) Encode(w io.Writer) error {
	return png.Encode(w, a.img)
}

// EncodePaletted writes the atlas image to w as a paletted PNG reduced to at
// most colors colors.
func (a *Atlas) EncodePaletted(w io.Writer, colors int) error {
	if colors < 2 || colors > maxColors {
		return fmt.Errorf("atlas: palette must have between 2 and %d colors", maxColors)
	}

	b := a.img.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), a.img))
	draw.Draw(pm, b, a.img, b.Min, draw.Src)

	return png.Encode(w, pm)
}
