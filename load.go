package tileset

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/bodgit/tileset/sheet"
)

// Class describes the content of a single sprite sheet tile.
type Class struct {
	HasColor bool // At least one pixel where R, G and B differ
	HasAlpha bool // At least one pixel that isn't fully opaque
}

// Glyph reports whether the tile is opaque grayscale and so is converted to
// white with the gray level as alpha when loaded.
func (c Class) Glyph() bool {
	return !c.HasColor && !c.HasAlpha
}

// Report is the result of analysing a sprite sheet.
type Report struct {
	TileWidth   int
	TileHeight  int
	ColorKey    color.NRGBA
	HasColorKey bool
	Tiles       []Class
}

// Glyphs returns the number of tiles that are converted to white with alpha.
func (r Report) Glyphs() (n int) {
	for _, c := range r.Tiles {
		if c.Glyph() {
			n++
		}
	}
	return
}

var errNilImage = errors.New("tileset: nil sheet image")

type grid struct {
	m             *sheet.Image
	columns, rows int
	width, height int
}

func newGrid(m *sheet.Image, columns, rows int) (*grid, error) {
	if m == nil {
		return nil, errNilImage
	}
	if columns < 1 || rows < 1 {
		return nil, ErrInvalidGrid
	}
	return &grid{
		m:       m,
		columns: columns,
		rows:    rows,
		width:   m.Width / columns,
		height:  m.Height / rows,
	}, nil
}

func (g *grid) tiles() int {
	return g.columns * g.rows
}

// at returns pixel (x, y) of tile i
func (g *grid) at(i, x, y int) color.NRGBA {
	return g.m.At(i%g.columns*g.width+x, i/g.columns*g.height+y)
}

// colorKey returns the color of the first tile if every pixel in it is
// identical
func (g *grid) colorKey() (color.NRGBA, bool) {
	if len(g.m.Pix) == 0 {
		return color.NRGBA{}, false
	}
	key := g.m.Pix[0]
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.at(0, x, y) != key {
				return color.NRGBA{}, false
			}
		}
	}
	return key, true
}

func (g *grid) classify(i int) (c Class) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := g.at(i, x, y)
			if p.A != 0xff {
				c.HasAlpha = true
			}
			if p.R != p.G || p.R != p.B {
				c.HasColor = true
			}
		}
	}
	return
}

// Analyze classifies every tile of m when split into columns by rows tiles
// and detects any color key.
func Analyze(m *sheet.Image, columns, rows int) (Report, error) {
	g, err := newGrid(m, columns, rows)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		TileWidth:  g.width,
		TileHeight: g.height,
		Tiles:      make([]Class, g.tiles()),
	}
	r.ColorKey, r.HasColorKey = g.colorKey()
	for i := range r.Tiles {
		r.Tiles[i] = g.classify(i)
	}

	return r, nil
}

// FromImage builds a Tileset by splitting m into columns by rows tiles.
//
// Opaque grayscale tiles are converted to white with the gray level as the
// alpha channel. If every pixel of the first tile is the same color, that
// color is treated as transparent across the whole sheet.
//
// If codepoints is nil, tile i is assigned to codepoint i for every tile,
// otherwise codepoints[i] is assigned to tile i.
func FromImage(m *sheet.Image, columns, rows int, codepoints []int) (*Tileset, error) {
	ts, _, err := Build(m, columns, rows, codepoints)
	return ts, err
}

// Build is FromImage but also returns the Report made while classifying the
// tiles, so the sheet is only analysed once.
func Build(m *sheet.Image, columns, rows int, codepoints []int) (*Tileset, Report, error) {
	r, err := Analyze(m, columns, rows)
	if err != nil {
		return nil, Report{}, err
	}
	g, _ := newGrid(m, columns, rows)

	ts := New(g.width, g.height)
	ts.virtualColumns = columns
	ts.pixels = make([]color.NRGBA, g.tiles()*ts.tileLength)
	ts.tilesCapacity, ts.tilesCount = g.tiles(), g.tiles()

	for i, class := range r.Tiles {
		glyph := class.Glyph()
		tile := ts.tile(i)
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				p := g.at(i, x, y)
				if glyph {
					p = color.NRGBA{0xff, 0xff, 0xff, p.R}
				}
				// Compared after conversion, so a grayscale key only
				// matches tiles that were left alone
				if r.HasColorKey && p == r.ColorKey {
					p = color.NRGBA{}
				}
				tile[y*g.width+x] = p
			}
		}
	}

	if codepoints == nil {
		for i := 0; i < g.tiles(); i++ {
			if _, err := ts.Assign(i, i); err != nil {
				ts.Release()
				return nil, Report{}, err
			}
		}
		return ts, r, nil
	}

	for i, codepoint := range codepoints {
		if _, err := ts.Assign(codepoint, i); err != nil {
			ts.Release()
			return nil, Report{}, fmt.Errorf("tileset: assigning codepoint %d to tile %d: %w", codepoint, i, err)
		}
	}

	return ts, r, nil
}

// Decode reads a sprite sheet from r and builds a Tileset from it as
// FromImage does.
func Decode(r io.Reader, columns, rows int, codepoints []int) (*Tileset, error) {
	m, err := sheet.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(m, columns, rows, codepoints)
}

// Load reads the sprite sheet stored in file and builds a Tileset from it as
// FromImage does.
func Load(file string, columns, rows int, codepoints []int) (*Tileset, error) {
	m, err := sheet.DecodeFile(file)
	if err != nil {
		return nil, err
	}
	return FromImage(m, columns, rows, codepoints)
}
