package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Placeholder tile palette, matching the violet/navy scheme of the catalog UI.
var (
	placeholderBackground = color.RGBA{R: 0xed, G: 0xe9, B: 0xfe, A: 0xff}
	placeholderForeground = color.RGBA{R: 0x06, G: 0x36, B: 0x6f, A: 0xff}
)

// Initials derives up to two uppercase initials from a display name. Blank
// names yield "+" so a placeholder tile is never empty.
func Initials(name string) string {
	initials := make([]rune, 0, 2)
	for _, word := range strings.Fields(name) {
		initials = append(initials, []rune(word)[0])
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "+"
	}
	return strings.ToUpper(string(initials))
}

// Placeholder draws a deterministic side x side PNG tile with the name's
// initials centered on a colored background.
func Placeholder(name string, side int) []byte {
	if side <= 0 {
		side = 320
	}
	initials := Initials(name)

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, initials).Ceil()
	tileW := textWidth + 8
	tileH := face.Height + 8

	tile := image.NewRGBA(image.Rect(0, 0, tileW, tileH))
	xdraw.Draw(tile, tile.Bounds(), image.NewUniform(placeholderBackground), image.Point{}, xdraw.Src)

	drawer := font.Drawer{
		Dst:  tile,
		Src:  image.NewUniform(placeholderForeground),
		Face: face,
		Dot:  fixed.P(4, 4+face.Ascent),
	}
	drawer.DrawString(initials)

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(placeholderBackground), image.Point{}, xdraw.Src)

	// Scale the glyph tile into the middle band of the square, preserving
	// the tile's aspect ratio.
	bandH := side * 2 / 5
	scale := float64(bandH) / float64(tileH)
	bandW := int(float64(tileW) * scale)
	if bandW > side {
		bandW = side
		scale = float64(side) / float64(tileW)
		bandH = int(float64(tileH) * scale)
	}
	offsetX := (side - bandW) / 2
	offsetY := (side - bandH) / 2
	target := image.Rect(offsetX, offsetY, offsetX+bandW, offsetY+bandH)
	xdraw.NearestNeighbor.Scale(dst, target, tile, tile.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		// Encoding an in-memory RGBA image cannot fail in practice.
		return nil
	}
	return buf.Bytes()
}
