package tileset_test

import (
	"image/color"
	"testing"

	"github.com/bodgit/tileset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignLookup(t *testing.T) {
	ts := tileset.New(1, 1)
	defer ts.Release()

	// No tiles yet
	_, err := ts.Assign(0, 0)
	assert.Equal(t, tileset.ErrInvalidTileID, err)

	for i := 0; i < 4; i++ {
		_, err := ts.Generate(1000 + i)
		require.NoError(t, err)
	}
	require.Equal(t, 5, ts.TileCount())

	tests := []struct {
		codepoint int
		tileID    int
	}{
		{0, 0},
		{65, 1},
		{255, 4},
		{256, 2},
		{70000, 3},
	}

	for _, table := range tests {
		id, err := ts.Assign(table.codepoint, table.tileID)
		require.NoError(t, err)
		assert.Equal(t, table.tileID, id)
	}
	for _, table := range tests {
		id, ok := ts.Lookup(table.codepoint)
		assert.True(t, ok, "codepoint %d", table.codepoint)
		assert.Equal(t, table.tileID, id, "codepoint %d", table.codepoint)
	}

	// Reassigning replaces the mapping
	_, err = ts.Assign(65, 3)
	require.NoError(t, err)
	id, _ := ts.Lookup(65)
	assert.Equal(t, 3, id)
}

func TestAssignInvalid(t *testing.T) {
	ts := tileset.New(1, 1)
	defer ts.Release()

	_, err := ts.Generate('x')
	require.NoError(t, err)

	_, err = ts.Assign(-1, 0)
	assert.Equal(t, tileset.ErrInvalidCodepoint, err)
	_, err = ts.Assign(1<<30, 0)
	assert.Equal(t, tileset.ErrInvalidCodepoint, err)
	_, err = ts.Assign(0, -1)
	assert.Equal(t, tileset.ErrInvalidTileID, err)
	_, err = ts.Assign(0, ts.TileCount())
	assert.Equal(t, tileset.ErrInvalidTileID, err)
}

func TestLookupMissing(t *testing.T) {
	ts := tileset.New(1, 1)
	defer ts.Release()

	_, ok := ts.Lookup(0)
	assert.False(t, ok, "empty charmap")

	_, err := ts.Generate(10)
	require.NoError(t, err)

	for _, codepoint := range []int{-1, 0, 9, 11, 255, 256, 1 << 20} {
		_, ok := ts.Lookup(codepoint)
		assert.False(t, ok, "codepoint %d", codepoint)
	}
}

func TestCharmapGrowth(t *testing.T) {
	ts := tileset.New(1, 1)
	defer ts.Release()

	tests := []struct {
		codepoint int
		length    int
	}{
		{0, 256},
		{255, 256},
		{300, 512},
		{100000, 131072},
		{1000, 131072},
	}

	ids := make(map[int]int)
	for _, table := range tests {
		id, err := ts.Generate(table.codepoint)
		require.NoError(t, err)
		ids[table.codepoint] = id
		assert.Equal(t, table.length, ts.CharmapLength(), "codepoint %d", table.codepoint)
	}

	for codepoint, want := range ids {
		got, ok := ts.Lookup(codepoint)
		assert.True(t, ok)
		assert.Equal(t, want, got, "codepoint %d", codepoint)
	}
}

func TestGenerate(t *testing.T) {
	ts := tileset.New(2, 2)
	defer ts.Release()

	id, err := ts.Generate('a')
	require.NoError(t, err)
	assert.Equal(t, 1, id, "tile 0 is reserved")
	assert.Equal(t, 2, ts.TileCount())
	assert.Equal(t, 256, ts.TileCapacity())

	again, err := ts.Generate('a')
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, 2, ts.TileCount(), "generate must be idempotent")

	id, err = ts.Generate('b')
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	_, err = ts.Generate(-5)
	assert.Equal(t, tileset.ErrInvalidCodepoint, err)
	assert.Equal(t, 3, ts.TileCount(), "failed generate must not allocate")

	blank := make([]color.NRGBA, ts.TileLength())
	pixels := make([]color.NRGBA, ts.TileLength())
	require.NoError(t, ts.Tile(0, pixels))
	assert.Equal(t, blank, pixels)
	require.NoError(t, ts.GetTile('a', pixels))
	assert.Equal(t, blank, pixels)
}

func TestGenerateReusesTileZero(t *testing.T) {
	ts := tileset.New(1, 1)
	defer ts.Release()

	_, err := ts.Generate('a')
	require.NoError(t, err)
	_, err = ts.Assign(' ', 0)
	require.NoError(t, err)

	id, err := ts.Generate(' ')
	require.NoError(t, err)
	assert.Equal(t, 0, id)
	assert.Equal(t, 2, ts.TileCount())
}

func TestTileStoreGrowth(t *testing.T) {
	ts := tileset.New(2, 1)
	defer ts.Release()

	for i := 0; i < 600; i++ {
		c := color.NRGBA{uint8(i), uint8(i >> 8), 0xff, 0xff}
		require.NoError(t, ts.SetTile(i, solid(ts, c)))

		switch ts.TileCount() {
		case 256:
			assert.Equal(t, 256, ts.TileCapacity())
		case 257:
			assert.Equal(t, 512, ts.TileCapacity())
		case 513:
			assert.Equal(t, 1024, ts.TileCapacity())
		}
	}
	assert.Equal(t, 601, ts.TileCount())

	pixels := make([]color.NRGBA, ts.TileLength())
	for i := 0; i < 600; i++ {
		require.NoError(t, ts.GetTile(i, pixels))
		c := color.NRGBA{uint8(i), uint8(i >> 8), 0xff, 0xff}
		assert.Equal(t, solid(ts, c), pixels, "codepoint %d", i)
	}
}

func TestCodepoints(t *testing.T) {
	ts := tileset.New(1, 1)
	defer ts.Release()

	id, err := ts.Generate('A')
	require.NoError(t, err)
	_, err = ts.Assign('a', id)
	require.NoError(t, err)
	_, err = ts.Assign(0x391, id)
	require.NoError(t, err)

	assert.Equal(t, []int{'A', 'a', 0x391}, ts.Codepoints(id))
	assert.Empty(t, ts.Codepoints(0))

	// Unassigned charmap entries never match a bad tile id
	assert.Nil(t, ts.Codepoints(-1))
	assert.Nil(t, ts.Codepoints(ts.TileCount()))

	var nilTileset *tileset.Tileset
	assert.Nil(t, nilTileset.Codepoints(0))
}
