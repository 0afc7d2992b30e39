package tileset_test

import (
	"image/color"
	"testing"

	"github.com/bodgit/tileset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(ts *tileset.Tileset, c color.NRGBA) []color.NRGBA {
	pixels := make([]color.NRGBA, ts.TileLength())
	for i := range pixels {
		pixels[i] = c
	}
	return pixels
}

func TestNew(t *testing.T) {
	ts := tileset.New(8, 12)
	require.NotNil(t, ts)
	defer ts.Release()

	assert.Equal(t, 8, ts.TileWidth())
	assert.Equal(t, 12, ts.TileHeight())
	assert.Equal(t, 96, ts.TileLength())
	assert.Equal(t, 0, ts.TileCount())
	assert.Equal(t, 0, ts.TileCapacity())
	assert.Equal(t, 0, ts.CharmapLength())
	assert.Equal(t, 1, ts.VirtualColumns())

	ts.SetVirtualColumns(16)
	assert.Equal(t, 16, ts.VirtualColumns())
	ts.SetVirtualColumns(0)
	assert.Equal(t, 16, ts.VirtualColumns())

	assert.Nil(t, tileset.New(-1, 8))
}

func TestNilTileset(t *testing.T) {
	var ts *tileset.Tileset

	assert.Equal(t, 0, ts.TileWidth())
	assert.Equal(t, 0, ts.TileHeight())
	assert.Equal(t, 0, ts.TileCount())
	assert.Equal(t, 0, ts.VirtualColumns())

	// Queries report nothing there
	_, ok := ts.Lookup(0)
	assert.False(t, ok)
	assert.Equal(t, tileset.ErrNotFound, ts.GetTile(0, nil))
	assert.Equal(t, tileset.ErrNotFound, ts.GetTile(0, make([]color.NRGBA, 1)))
	assert.Equal(t, tileset.ErrInvalidTileID, ts.Tile(0, nil))
	assert.Nil(t, ts.Codepoints(0))

	// Mutators fail
	_, err := ts.Assign(0, 0)
	assert.Equal(t, tileset.ErrNilTileset, err)
	_, err = ts.Generate(0)
	assert.Equal(t, tileset.ErrNilTileset, err)
	assert.Equal(t, tileset.ErrNilTileset, ts.SetTile(0, nil))

	o, err := ts.Attach(nil, nil)
	assert.Nil(t, o)
	assert.Equal(t, tileset.ErrNilTileset, err)

	// Both are no-ops
	ts.Release()
	o.Detach()
	assert.Nil(t, ts.Retain())
}

func TestRetainRelease(t *testing.T) {
	ts := tileset.New(2, 2)

	deleted := 0
	_, err := ts.Attach(nil, func(*tileset.Observer) { deleted++ })
	require.NoError(t, err)

	assert.Same(t, ts, ts.Retain())
	ts.Release()
	assert.Equal(t, 0, deleted, "released while still retained")

	ts.Release()
	assert.Equal(t, 1, deleted)

	// Releasing again is ignored
	ts.Release()
	assert.Equal(t, 1, deleted)
}

func TestReleaseDetachesEveryObserver(t *testing.T) {
	ts := tileset.New(2, 2)

	var order []int
	observers := make([]*tileset.Observer, 3)
	for i := range observers {
		i := i
		o, err := ts.Attach(nil, func(*tileset.Observer) { order = append(order, i) })
		require.NoError(t, err)
		observers[i] = o
	}

	ts.Release()

	assert.Equal(t, []int{2, 1, 0}, order)
	for _, o := range observers {
		assert.Nil(t, o.Tileset())
		o.Detach()
	}
	assert.Len(t, order, 3, "delete callbacks must run exactly once")
}

func TestReleaseFreesStorage(t *testing.T) {
	ts := tileset.New(2, 2)
	require.NoError(t, ts.SetTile('a', solid(ts, color.NRGBA{1, 2, 3, 4})))

	ts.Release()

	assert.Equal(t, 0, ts.TileCount())
	assert.Equal(t, 0, ts.CharmapLength())
	_, ok := ts.Lookup('a')
	assert.False(t, ok)
}
