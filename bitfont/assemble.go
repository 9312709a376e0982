package bitfont

import (
	"github.com/npillmayer/pcf/pcftab"
)

// Fallback values for fonts without an accelerator table.
const (
	DefaultAscent    = 14
	DefaultDescent   = 2
	DefaultCellWidth = 8
)

// Assemble builds a font from decoded PCF tables. Only code points passing
// filter f are included. Slots of the encoding table without a glyph, and slots
// referring to glyphs beyond the metrics table, are skipped.
//
// If every code point included is an ASCII character and the code points form
// a contiguous range, the font's glyph map is a DenseRange, otherwise it is a
// SparseMap.
func Assemble(t *pcftab.Tables, f Filter) (*Font, error) {
	if t == nil || t.Metrics == nil || t.Bitmaps == nil || t.Encoding == nil {
		return nil, pcftab.NewError(pcftab.MissingRequired, 0, "cannot assemble font from incomplete tables")
	}
	font := &Font{
		Name:        fontName(t.Props()),
		DefaultChar: rune(t.Encoding.DefaultChar),
		Properties:  append(pcftab.PropertyList(nil), t.Props()...),
	}
	font.Ascent, font.Descent = fontExtent(t)
	font.CellWidth = cellWidth(t)
	font.CellHeight = font.Ascent + font.Descent
	metrics := t.Metrics.Metrics
	var codes []rune
	for i, slot := range t.Encoding.Slots {
		inx, ok := slot.Unwrap()
		if !ok {
			continue
		}
		code := t.Encoding.CodePoint(i)
		if !f.Includes(code) {
			continue
		}
		if int(inx) >= len(metrics) {
			tracer().Debugf("code point %#U refers to glyph %d beyond metrics table", code, inx)
			continue
		}
		m := metrics[inx]
		g := Glyph{
			Width:        m.Width(),
			Height:       m.Height(),
			XOffset:      int(m.LeftBearing),
			YOffset:      font.Ascent - int(m.Ascent),
			Advance:      int(m.Advance),
			BitmapOffset: uint32(len(font.Bitmap)),
		}
		bitmap, err := t.Bitmaps.Glyph(int(inx), g.Width, g.Height)
		if err != nil {
			return nil, err
		}
		font.Bitmap = append(font.Bitmap, bitmap...)
		font.Glyphs = append(font.Glyphs, g)
		codes = append(codes, code)
	}
	font.Map = glyphMap(codes)
	tracer().Infof("assembled font %q: %d glyphs, cell %d × %d, dense=%v",
		font.Name, len(font.Glyphs), font.CellWidth, font.CellHeight, font.IsDense())
	return font, nil
}

// glyphMap creates the map for glyphs 0…n-1 with code points codes[0…n-1].
// codes are in ascending order.
func glyphMap(codes []rune) GlyphMap {
	if len(codes) > 0 && codes[len(codes)-1] < 128 &&
		int(codes[len(codes)-1]-codes[0]) == len(codes)-1 {
		return DenseRange{First: codes[0], Last: codes[len(codes)-1]}
	}
	m := make(SparseMap, len(codes))
	for i, c := range codes {
		m[c] = i
	}
	return m
}

func fontName(props pcftab.PropertyList) string {
	for _, key := range []string{"FONT", "FAMILY_NAME"} {
		if name, ok := props.String(key); ok && name != "" {
			return name
		}
	}
	return "unknown"
}

// fontExtent returns the font's ascent and descent, taken from the accelerator
// table if present, else from the font's properties.
func fontExtent(t *pcftab.Tables) (ascent, descent int) {
	if a, ok := t.Accelerator.Unwrap(); ok {
		return int(a.FontAscent), int(a.FontDescent)
	}
	ascent, descent = DefaultAscent, DefaultDescent
	if n, ok := t.Props().Int("FONT_ASCENT"); ok {
		ascent = int(n)
	}
	if n, ok := t.Props().Int("FONT_DESCENT"); ok {
		descent = int(n)
	}
	return ascent, descent
}

func cellWidth(t *pcftab.Tables) int {
	if a, ok := t.Accelerator.Unwrap(); ok && a.Bounds.Max.Advance > 0 {
		return int(a.Bounds.Max.Advance)
	}
	if len(t.Metrics.Metrics) > 0 {
		if w := int(pcftab.ComputeBounds(t.Metrics.Metrics).Max.Advance); w > 0 {
			return w
		}
	}
	return DefaultCellWidth
}
