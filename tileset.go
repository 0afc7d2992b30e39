/*
Package tileset is a library for managing a collection of fixed-size pixel
tiles addressed by integer codepoints.

A Tileset owns a dense tile store that grows by doubling, a sparse charmap
from codepoint to tile id and a list of observers that are told about every
tile that changes. Tile 0 is reserved as a blank tile. Tilesets can be built
tile by tile with SetTile or loaded in one go from a sprite sheet with Load.

A Tileset is not safe for concurrent use; callers sharing one between
goroutines must serialize access to it.
*/
package tileset

import (
	"errors"
	"image/color"
)

const (
	defaultTilesLength   = 256
	defaultCharmapLength = 256

	// Codepoints above this are rejected so charmap growth cannot overflow
	// int on 32-bit platforms.
	maxCodepoint = 1<<30 - 1
)

var (
	// ErrNilTileset is returned by mutating operations called on a nil
	// Tileset.
	ErrNilTileset = errors.New("tileset: nil tileset")
	// ErrInvalidCodepoint is returned for negative or oversized codepoints.
	ErrInvalidCodepoint = errors.New("tileset: invalid codepoint")
	// ErrInvalidTileID is returned when a tile id is outside the allocated
	// tiles.
	ErrInvalidTileID = errors.New("tileset: tile id out of range")
	// ErrNotFound is returned when a codepoint has no tile.
	ErrNotFound = errors.New("tileset: no tile for codepoint")
	// ErrShortBuffer is returned when a pixel buffer holds fewer pixels
	// than a tile.
	ErrShortBuffer = errors.New("tileset: buffer shorter than tile")
	// ErrInvalidGrid is returned when a sprite sheet is split into fewer
	// than one column or row.
	ErrInvalidGrid = errors.New("tileset: invalid sheet grid")
)

// Tileset is a reference counted collection of tiles.
type Tileset struct {
	tileWidth      int
	tileHeight     int
	tileLength     int
	virtualColumns int

	pixels        []color.NRGBA
	tilesCount    int
	tilesCapacity int

	// Holds tile id + 1 so that the zero value means unassigned
	charmap []int

	observers []*Observer
	notifying int

	refs int
}

// New returns an empty Tileset with a reference count of one. It returns nil
// if either dimension is negative.
func New(tileWidth, tileHeight int) *Tileset {
	if tileWidth < 0 || tileHeight < 0 {
		return nil
	}
	return &Tileset{
		tileWidth:      tileWidth,
		tileHeight:     tileHeight,
		tileLength:     tileWidth * tileHeight,
		virtualColumns: 1,
		refs:           1,
	}
}

// Retain adds a reference to ts and returns it.
func (ts *Tileset) Retain() *Tileset {
	if ts != nil {
		ts.refs++
	}
	return ts
}

// Release drops a reference to ts. When the last reference is dropped every
// observer is detached, receiving its delete callback, and the tile and
// charmap storage is freed.
func (ts *Tileset) Release() {
	if ts == nil || ts.refs <= 0 {
		return
	}
	if ts.refs--; ts.refs != 0 {
		return
	}
	for o := ts.lastObserver(); o != nil; o = ts.lastObserver() {
		o.Detach()
	}
	ts.compact()
	ts.pixels = nil
	ts.charmap = nil
	ts.tilesCount = 0
	ts.tilesCapacity = 0
}

// TileWidth returns the width of each tile in pixels.
func (ts *Tileset) TileWidth() int {
	if ts == nil {
		return 0
	}
	return ts.tileWidth
}

// TileHeight returns the height of each tile in pixels.
func (ts *Tileset) TileHeight() int {
	if ts == nil {
		return 0
	}
	return ts.tileHeight
}

// TileLength returns the number of pixels in each tile.
func (ts *Tileset) TileLength() int {
	if ts == nil {
		return 0
	}
	return ts.tileLength
}

// TileCount returns the number of allocated tiles, including the blank tile.
func (ts *Tileset) TileCount() int {
	if ts == nil {
		return 0
	}
	return ts.tilesCount
}

// TileCapacity returns the number of tiles the store can hold before it
// needs to grow.
func (ts *Tileset) TileCapacity() int {
	if ts == nil {
		return 0
	}
	return ts.tilesCapacity
}

// VirtualColumns returns the number of columns consumers should use when
// laying tiles out in two dimensions.
func (ts *Tileset) VirtualColumns() int {
	if ts == nil {
		return 0
	}
	return ts.virtualColumns
}

// SetVirtualColumns changes the layout hint returned by VirtualColumns. It
// has no effect on storage.
func (ts *Tileset) SetVirtualColumns(columns int) {
	if ts == nil || columns < 1 {
		return
	}
	ts.virtualColumns = columns
}

func (ts *Tileset) growTiles() {
	capacity := ts.tilesCapacity * 2
	if capacity == 0 {
		capacity = defaultTilesLength
	}
	pixels := make([]color.NRGBA, capacity*ts.tileLength)
	copy(pixels, ts.pixels)
	ts.pixels = pixels
	ts.tilesCapacity = capacity
}

func (ts *Tileset) tile(tileID int) []color.NRGBA {
	return ts.pixels[tileID*ts.tileLength : (tileID+1)*ts.tileLength]
}
