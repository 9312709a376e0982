package pcfquery

import (
	"github.com/npillmayer/pcf/bitfont"
)

// --- Font Information -------------------------------------------------

// FontMetrics retrieves selected metrics of a font. Values not stated by the
// font's properties are derived from its glyphs.
func FontMetrics(f *bitfont.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{
		Ascent:      f.Ascent,
		Descent:     f.Descent,
		CellWidth:   f.CellWidth,
		CellHeight:  f.CellHeight,
		PixelSize:   f.CellHeight,
		ResolutionX: bitfont.DefaultResolution,
		ResolutionY: bitfont.DefaultResolution,
	}
	if n, ok := f.Properties.Int("PIXEL_SIZE"); ok && n > 0 {
		metrics.PixelSize = int(n)
	}
	if n, ok := f.Properties.Int("RESOLUTION_X"); ok && n > 0 {
		metrics.ResolutionX = int(n)
	}
	if n, ok := f.Properties.Int("RESOLUTION_Y"); ok && n > 0 {
		metrics.ResolutionY = int(n)
	}
	if n, ok := f.Properties.Int("POINT_SIZE"); ok && n > 0 {
		metrics.PointSize = float64(n) / 10 // decipoints
	} else {
		metrics.PointSize = float64(metrics.PixelSize) * 72.27 / float64(metrics.ResolutionY)
	}
	metrics.Monospaced = true
	for i, g := range f.Glyphs {
		metrics.MaxAdvance = max(metrics.MaxAdvance, g.Advance)
		if i > 0 && g.Advance != f.Glyphs[0].Advance {
			metrics.Monospaced = false
		}
	}
	if spacing, ok := f.Properties.String("SPACING"); ok {
		tracer().Debugf("font %q has spacing %s", f.Name, spacing)
		metrics.Monospaced = spacing == "M" || spacing == "C" || spacing == "m" || spacing == "c"
	}
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// GlyphMetrics retrieves metrics for the glyph of a given code point.
func GlyphMetrics(f *bitfont.Font, r rune) (GlyphMetricsInfo, bool) {
	g, ok := f.Glyph(r)
	if !ok {
		return GlyphMetricsInfo{}, false
	}
	top := g.Ascent(f.Ascent)
	metrics := GlyphMetricsInfo{
		Advance: g.Advance,
		LSB:     g.XOffset,
		BBox: BoundingBox{
			MinX: g.XOffset,
			MinY: top - g.Height,
			MaxX: g.XOffset + g.Width,
			MaxY: top,
		},
	}
	metrics.RSB = metrics.Advance - metrics.BBox.MaxX
	metrics.Ink = inkBox(f, g, metrics.BBox)
	return metrics, true
}

// inkBox finds the tightest box around the pixels set in the glyph's bitmap.
func inkBox(f *bitfont.Font, g bitfont.Glyph, bbox BoundingBox) BoundingBox {
	minX, minY, maxX, maxY := g.Width, g.Height, -1, -1
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if f.Pixel(g, x, y) {
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
			}
		}
	}
	if maxX < 0 {
		return BoundingBox{}
	}
	return BoundingBox{
		MinX: bbox.MinX + minX,
		MinY: bbox.MaxY - maxY - 1,
		MaxX: bbox.MinX + maxX + 1,
		MaxY: bbox.MaxY - minY,
	}
}
