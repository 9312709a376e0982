/*
Package pcfquery answers questions about an assembled bitmap font: its
metrics, the metrics of single glyphs, the information stored in its
properties, and the character set its code points belong to.

All values are in pixels. Vertical values are measured upwards from the
baseline, i.e. descents are negative y-coordinates.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package pcfquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.pcf'
func tracer() tracing.Trace {
	return tracing.Select("font.pcf")
}

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	PixelSize                int     // nominal size in pixels
	PointSize                float64 // nominal size in points
	ResolutionX, ResolutionY int     // resolution in dpi
	Ascent, Descent          int     // ascender and descender; descent is positive
	CellWidth, CellHeight    int     // size of the font's character cell
	MaxAdvance               int     // maximum advance of all glyphs
	Monospaced               bool    // all glyphs share the same advance
}

// GlyphMetricsInfo contains all metric information for a glyph.
type GlyphMetricsInfo struct {
	Advance  int         // advance width
	LSB, RSB int         // side bearings
	BBox     BoundingBox // bounding box of the glyph's bitmap
	Ink      BoundingBox // bounding box of the pixels set
}

// BoundingBox describes the bounding box of a glyph, relative to the glyph's
// origin on the baseline.
type BoundingBox struct {
	MinX, MinY int
	MaxX, MaxY int
}

// IsEmpty reports whether this box has zero area.
func (bbox BoundingBox) IsEmpty() bool {
	return bbox.MaxX-bbox.MinX == 0 || bbox.MaxY-bbox.MinY == 0
}

// Dx returns the horizontal extent of this box.
func (bbox BoundingBox) Dx() int {
	return bbox.MaxX - bbox.MinX
}

// Dy returns the vertical extent of this box.
func (bbox BoundingBox) Dy() int {
	return bbox.MaxY - bbox.MinY
}
