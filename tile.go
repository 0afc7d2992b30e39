package tileset

import "image/color"

// GetTile copies the pixels of the tile assigned to codepoint into dst. If
// dst is nil only the existence of the tile is checked. A nil Tileset has no
// tiles so ErrNotFound is returned.
func (ts *Tileset) GetTile(codepoint int, dst []color.NRGBA) error {
	tileID, ok := ts.Lookup(codepoint)
	if !ok {
		return ErrNotFound
	}
	return ts.Tile(tileID, dst)
}

// Tile copies the pixels of tileID into dst. If dst is nil only the tile id
// is checked. A nil Tileset has no tiles so ErrInvalidTileID is returned.
func (ts *Tileset) Tile(tileID int, dst []color.NRGBA) error {
	if ts == nil || tileID < 0 || tileID >= ts.tilesCount {
		return ErrInvalidTileID
	}
	if dst == nil {
		return nil
	}
	if len(dst) < ts.tileLength {
		return ErrShortBuffer
	}
	copy(dst, ts.tile(tileID))
	return nil
}

// SetTile overwrites the tile assigned to codepoint with the first
// TileLength pixels of src, allocating a new tile if the codepoint has none,
// then notifies every observer.
//
// If an observer returns an error the remaining observers are skipped and
// an *ObserverError is returned. The new pixels are kept regardless.
func (ts *Tileset) SetTile(codepoint int, src []color.NRGBA) error {
	if ts == nil {
		return ErrNilTileset
	}
	if len(src) < ts.tileLength {
		return ErrShortBuffer
	}
	tileID, ok := ts.Lookup(codepoint)
	if !ok {
		var err error
		if tileID, err = ts.Generate(codepoint); err != nil {
			return err
		}
	}
	copy(ts.tile(tileID), src[:ts.tileLength])
	return ts.notify(tileID, codepoint)
}
