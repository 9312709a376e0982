/*
Package bitfont holds assembled bitmap fonts.

A Font is the usable form of a PCF font: a list of glyph descriptors, a packed
buffer holding the bitmaps of all glyphs, and a map from code points to glyphs.
Fonts are produced from decoded PCF tables by Assemble and serialized again by
Encode.

▪︎ Glyph bitmaps use one bit per pixel. Rows are packed to whole bytes, without
further padding, and the leftmost pixel of a row is the least significant bit
of the row's first byte.

▪︎ Font ascent is measured upwards from the baseline, font descent downwards.
A glyph's YOffset is the distance from the top of the font's cell (ascent
above the baseline) to the top row of the glyph's bitmap.

A Font does not reference the data it has been decoded from. Fonts are
immutable by convention; clients should not modify a font once it is in use,
as fonts may be shared between goroutines.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bitfont

import (
	"github.com/npillmayer/pcf/pcftab"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"
)

// tracer writes to trace with key 'font.pcf'
func tracer() tracing.Trace {
	return tracing.Select("font.pcf")
}

// Glyph describes the geometry of a glyph and the location of its bitmap.
type Glyph struct {
	Width        int    // width of the bitmap in pixels
	Height       int    // height of the bitmap in pixels
	XOffset      int    // left side bearing
	YOffset      int    // font ascent minus glyph ascent
	Advance      int    // horizontal advance in pixels
	BitmapOffset uint32 // offset of the glyph's bitmap in the font's bitmap buffer
}

// BitmapSize returns the number of bytes of the glyph's bitmap.
func (g Glyph) BitmapSize() int {
	return pcftab.RowBytes(g.Width) * g.Height
}

// Ascent returns the extent of the glyph above the baseline, given the
// ascent of the font.
func (g Glyph) Ascent(fontAscent int) int {
	return fontAscent - g.YOffset
}

// GlyphMap maps code points to indices into a font's glyph list.
type GlyphMap interface {
	Index(r rune) (int, bool)
	CodePoints() []rune // in ascending order
	Len() int
}

// DenseRange maps a contiguous range of ASCII code points, First…Last inclusive,
// to glyphs 0…Last-First.
type DenseRange struct {
	First, Last rune
}

func (d DenseRange) Index(r rune) (int, bool) {
	if r < d.First || r > d.Last {
		return 0, false
	}
	return int(r - d.First), true
}

func (d DenseRange) CodePoints() []rune {
	codes := make([]rune, 0, d.Len())
	for r := d.First; r <= d.Last; r++ {
		codes = append(codes, r)
	}
	return codes
}

func (d DenseRange) Len() int {
	if d.Last < d.First {
		return 0
	}
	return int(d.Last-d.First) + 1
}

// SparseMap maps arbitrary code points to glyphs.
type SparseMap map[rune]int

func (m SparseMap) Index(r rune) (int, bool) {
	i, ok := m[r]
	return i, ok
}

func (m SparseMap) CodePoints() []rune {
	codes := make([]rune, 0, len(m))
	for r := range m {
		codes = append(codes, r)
	}
	slices.Sort(codes)
	return codes
}

func (m SparseMap) Len() int {
	return len(m)
}

// Font is an assembled bitmap font.
type Font struct {
	Name        string
	CellWidth   int
	CellHeight  int
	Ascent      int
	Descent     int
	DefaultChar rune
	Map         GlyphMap
	Glyphs      []Glyph
	Bitmap      []byte // packed bitmaps of all glyphs
	Properties  pcftab.PropertyList
}

// Len returns the number of code points mapped by the font.
func (f *Font) Len() int {
	if f.Map == nil {
		return 0
	}
	return f.Map.Len()
}

// IsDense reports whether the font maps a contiguous range of ASCII code points.
func (f *Font) IsDense() bool {
	_, ok := f.Map.(DenseRange)
	return ok
}

// CodePoints returns the code points mapped by the font, in ascending order.
func (f *Font) CodePoints() []rune {
	if f.Map == nil {
		return nil
	}
	return f.Map.CodePoints()
}

// Glyph returns the glyph for code point r.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	if f.Map == nil {
		return Glyph{}, false
	}
	i, ok := f.Map.Index(r)
	if !ok || i < 0 || i >= len(f.Glyphs) {
		return Glyph{}, false
	}
	return f.Glyphs[i], true
}

// CharData returns the bitmap of the glyph for code point r. The bitmap is
// a sub-slice of the font's bitmap buffer and must not be modified.
func (f *Font) CharData(r rune) ([]byte, bool) {
	g, ok := f.Glyph(r)
	if !ok {
		return nil, false
	}
	end := int(g.BitmapOffset) + g.BitmapSize()
	if end > len(f.Bitmap) {
		return nil, false
	}
	return f.Bitmap[g.BitmapOffset:end], true
}

// Pixel reports whether pixel (x, y) of a glyph's bitmap is set.
// (0, 0) is the top left pixel.
func (f *Font) Pixel(g Glyph, x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	i := int(g.BitmapOffset) + y*pcftab.RowBytes(g.Width) + x/8
	if i >= len(f.Bitmap) {
		return false
	}
	return f.Bitmap[i]&(1<<(x%8)) != 0
}

// Validate checks the consistency of a font: every mapped code point has to
// refer to an existing glyph and every glyph's bitmap has to lie within the
// font's bitmap buffer.
func (f *Font) Validate() error {
	if f.Map == nil {
		return pcftab.NewError(pcftab.MissingRequired, pcftab.Encodings, "font has no glyph map")
	}
	if d, ok := f.Map.(DenseRange); ok && (d.First < 0 || d.Last > 127 || d.Last < d.First) {
		return pcftab.NewError(pcftab.InvalidEncodingRange, pcftab.Encodings,
			"dense range %#U…%#U is not a range of ASCII characters", d.First, d.Last)
	}
	for _, r := range f.Map.CodePoints() {
		if r < 0 || r > 0xffff {
			return pcftab.NewError(pcftab.InvalidEncodingRange, pcftab.Encodings, "code point %#x exceeds 16 bits", r)
		}
		if i, _ := f.Map.Index(r); i < 0 || i >= len(f.Glyphs) {
			return pcftab.NewError(pcftab.MissingRequired, pcftab.Metrics, "no glyph for code point %#U", r)
		}
	}
	for i, g := range f.Glyphs {
		if g.Width < 0 || g.Height < 0 {
			return pcftab.NewError(pcftab.InvalidBitmapData, pcftab.Bitmaps, "glyph %d has negative size", i)
		}
		if uint64(g.BitmapOffset)+uint64(g.BitmapSize()) > uint64(len(f.Bitmap)) {
			return pcftab.NewError(pcftab.InvalidBitmapData, pcftab.Bitmaps,
				"bitmap of glyph %d at [%d:%d] exceeds bitmap buffer of size %d",
				i, g.BitmapOffset, int(g.BitmapOffset)+g.BitmapSize(), len(f.Bitmap))
		}
	}
	return nil
}
