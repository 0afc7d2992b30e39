package tileset

// CharmapLength returns the number of codepoints the charmap can currently
// index without growing.
func (ts *Tileset) CharmapLength() int {
	if ts == nil {
		return 0
	}
	return len(ts.charmap)
}

// Lookup returns the tile id assigned to codepoint. The boolean is false if
// the codepoint is negative, beyond the charmap or was never assigned.
func (ts *Tileset) Lookup(codepoint int) (int, bool) {
	if ts == nil || codepoint < 0 || codepoint >= len(ts.charmap) {
		return 0, false
	}
	if v := ts.charmap[codepoint]; v > 0 {
		return v - 1, true
	}
	return 0, false
}

// Assign maps codepoint to an existing tile, growing the charmap as needed,
// and returns the tile id.
func (ts *Tileset) Assign(codepoint, tileID int) (int, error) {
	if ts == nil {
		return 0, ErrNilTileset
	}
	if tileID < 0 || tileID >= ts.tilesCount {
		return 0, ErrInvalidTileID
	}
	if codepoint < 0 || codepoint > maxCodepoint {
		return 0, ErrInvalidCodepoint
	}
	if codepoint >= len(ts.charmap) {
		ts.growCharmap(codepoint)
	}
	ts.charmap[codepoint] = tileID + 1
	return tileID, nil
}

// Generate returns the tile assigned to codepoint, allocating and assigning a
// new blank tile if there isn't one. The first allocation also reserves tile
// 0 as the blank tile.
func (ts *Tileset) Generate(codepoint int) (int, error) {
	if ts == nil {
		return 0, ErrNilTileset
	}
	if tileID, ok := ts.Lookup(codepoint); ok {
		return tileID, nil
	}
	// Check before allocating so a bad codepoint doesn't leak a tile
	if codepoint < 0 || codepoint > maxCodepoint {
		return 0, ErrInvalidCodepoint
	}
	if ts.tilesCount == 0 {
		ts.tilesCount = 1 // Keep tile 0 blank
	}
	if ts.tilesCount >= ts.tilesCapacity {
		ts.growTiles()
	}
	tileID := ts.tilesCount
	ts.tilesCount++
	return ts.Assign(codepoint, tileID)
}

// Codepoints returns every codepoint assigned to tileID in ascending order.
// It returns nil if tileID isn't a tile in the tileset.
func (ts *Tileset) Codepoints(tileID int) []int {
	if ts == nil || tileID < 0 || tileID >= ts.tilesCount {
		return nil
	}
	var codepoints []int
	for codepoint, v := range ts.charmap {
		if v == tileID+1 {
			codepoints = append(codepoints, codepoint)
		}
	}
	return codepoints
}

func (ts *Tileset) growCharmap(codepoint int) {
	length := len(ts.charmap)
	if length == 0 {
		length = defaultCharmapLength
	}
	for codepoint >= length {
		length <<= 1
	}
	charmap := make([]int, length)
	copy(charmap, ts.charmap)
	ts.charmap = charmap
}
