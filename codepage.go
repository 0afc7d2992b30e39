package tileset

import "golang.org/x/text/encoding/charmap"

// Graphic symbols drawn in place of the control codes in code page 437 fonts
var cp437Controls = [0x20]int{
	0x0000, 0x263a, 0x263b, 0x2665, 0x2666, 0x2663, 0x2660, 0x2022,
	0x25d8, 0x25cb, 0x25d9, 0x2642, 0x2640, 0x266a, 0x266b, 0x263c,
	0x25ba, 0x25c4, 0x2195, 0x203c, 0x00b6, 0x00a7, 0x25ac, 0x21a8,
	0x2191, 0x2193, 0x2192, 0x2190, 0x221f, 0x2194, 0x25b2, 0x25bc,
}

const cp437House = 0x2302

// CP437 returns the Unicode codepoints for a 16 by 16 sprite sheet laid out
// in IBM code page 437 order, suitable for passing to Load.
func CP437() []int {
	codepoints := make([]int, 0x100)
	for i := range codepoints {
		switch {
		case i < len(cp437Controls):
			codepoints[i] = cp437Controls[i]
		case i == 0x7f:
			codepoints[i] = cp437House
		default:
			codepoints[i] = int(charmap.CodePage437.DecodeByte(byte(i)))
		}
	}
	return codepoints
}
