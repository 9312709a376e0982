/*
Package face makes bitmap fonts usable with the drawing facilities of
golang.org/x/image/font.

A Face renders glyphs from a precomputed alpha atlas, similar to
golang.org/x/image/font/basicfont, but with the proportional metrics of the
underlying bitmap font. Runes are translated to font code points according to
the charset of the font; runes without a glyph are drawn with the font's
default character.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package face

import (
	"image"

	"github.com/npillmayer/pcf/bitfont"
	"github.com/npillmayer/pcf/pcfquery"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// tracer writes to trace with key 'font.pcf'
func tracer() tracing.Trace {
	return tracing.Select("font.pcf")
}

// Face implements font.Face for a bitmap font.
type Face struct {
	font    *bitfont.Font
	charset pcfquery.Charset
	mask    *image.Alpha // all glyphs stacked vertically
	top     []int        // y-position of glyph i within mask
}

var _ font.Face = (*Face)(nil)

// New creates a face for a bitmap font. Fonts with a charset not supported
// by golang.org/x/text are treated as Unicode fonts.
func New(f *bitfont.Font) *Face {
	cs, err := pcfquery.FontCharset(f)
	if err != nil {
		tracer().Infof("font %q: %v, assuming Unicode", f.Name, err)
		cs = pcfquery.Charset{Name: cs.Name, Unicode: true}
	}
	face := &Face{font: f, charset: cs, top: make([]int, len(f.Glyphs))}
	w, h := 0, 0
	for i, g := range f.Glyphs {
		face.top[i] = h
		w, h = max(w, g.Width), h+g.Height
	}
	face.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	for i, g := range f.Glyphs {
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if f.Pixel(g, x, y) {
					face.mask.Pix[face.mask.PixOffset(x, face.top[i]+y)] = 0xff
				}
			}
		}
	}
	return face
}

// lookup finds the glyph for r, falling back to the default character.
func (face *Face) lookup(r rune) (g bitfont.Glyph, inx int, ok bool) {
	if code, found := face.charset.CodeForRune(r); found {
		if inx = face.index(code); inx >= 0 {
			return face.font.Glyphs[inx], inx, true
		}
	}
	if inx = face.index(face.font.DefaultChar); inx >= 0 {
		return face.font.Glyphs[inx], inx, false
	}
	return bitfont.Glyph{}, -1, false
}

// index returns the position of the glyph for code in the font's glyph
// list, or -1 if the map has no valid entry for it.
func (face *Face) index(code rune) int {
	if face.font.Map == nil {
		return -1
	}
	if i, ok := face.font.Map.Index(code); ok && i >= 0 && i < len(face.font.Glyphs) {
		return i
	}
	return -1
}

// Close is a no-op.
func (face *Face) Close() error { return nil }

// Glyph returns the draw rectangle, mask and advance of the glyph for r,
// positioned at dot. If the font has no glyph for r, the default character
// is returned with ok set to false.
func (face *Face) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	//
	g, inx, ok := face.lookup(r)
	if inx < 0 {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x := dot.X.Round() + g.XOffset
	y := dot.Y.Round() - g.Ascent(face.font.Ascent)
	dr = image.Rect(x, y, x+g.Width, y+g.Height)
	return dr, face.mask, image.Pt(0, face.top[inx]), fixed.I(g.Advance), ok
}

// GlyphBounds returns the bounding box of the glyph for r, relative to the
// dot. Y-coordinates grow downwards, as with all font.Face implementations.
func (face *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	g, inx, ok := face.lookup(r)
	if inx < 0 {
		return fixed.Rectangle26_6{}, 0, false
	}
	top := -g.Ascent(face.font.Ascent)
	bounds = fixed.R(g.XOffset, top, g.XOffset+g.Width, top+g.Height)
	return bounds, fixed.I(g.Advance), ok
}

// GlyphAdvance returns the advance width of the glyph for r.
func (face *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	g, inx, ok := face.lookup(r)
	if inx < 0 {
		return 0, false
	}
	return fixed.I(g.Advance), ok
}

// Kern returns 0. Bitmap fonts carry no kerning information.
func (face *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

// Metrics returns the metrics of the font. x-height and cap height are taken
// from the glyphs for 'x' and 'H', if present.
func (face *Face) Metrics() font.Metrics {
	f := face.font
	m := font.Metrics{
		Height:     fixed.I(f.CellHeight),
		Ascent:     fixed.I(f.Ascent),
		Descent:    fixed.I(f.Descent),
		CaretSlope: image.Pt(0, 1),
	}
	if g, ok := f.Glyph('x'); ok {
		m.XHeight = fixed.I(g.Ascent(f.Ascent))
	}
	if g, ok := f.Glyph('H'); ok {
		m.CapHeight = fixed.I(g.Ascent(f.Ascent))
	}
	return m
}
