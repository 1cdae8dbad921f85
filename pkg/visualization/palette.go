package visualization

import "image/color"

// Palette is the ten-color categorical palette used for communities
var Palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

// Gray colors edges that cross communities
var Gray = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// CommunityColor returns the palette entry for a community. Ids past the
// palette length wrap around; negative ids get Gray.
func CommunityColor(id int) color.RGBA {
	if id < 0 {
		return Gray
	}
	return Palette[id%len(Palette)]
}
