package bitfont

import (
	"math"

	"github.com/npillmayer/pcf/pcftab"
)

// DefaultResolution is the resolution in dpi stated for encoded fonts.
const DefaultResolution = 75

// EncodeConfig controls the layout of an encoded font. The zero value encodes
// little endian, LSB first, with byte-aligned bitmap rows at 75 dpi.
type EncodeConfig struct {
	BigEndian  bool // multi-byte fields MSB first
	MSBitFirst bool // leftmost pixel in the most significant bit
	GlyphPad   int  // row padding of bitmaps: 1, 2, 4 or 8 bytes
	Resolution int  // resolution in dpi
}

func (cfg EncodeConfig) format() (pcftab.Format, error) {
	pad := cfg.GlyphPad
	if pad == 0 {
		pad = 1
	}
	if !pcftab.ValidPad(pad) {
		return pcftab.Format{}, pcftab.NewError(pcftab.UnsupportedFormat, pcftab.Bitmaps, "invalid glyph padding %d", pad)
	}
	return pcftab.Format{
		GlyphPad:   pad,
		ScanUnit:   1,
		BigEndian:  cfg.BigEndian,
		MSBitFirst: cfg.MSBitFirst,
	}, nil
}

func (cfg EncodeConfig) resolution() int {
	if cfg.Resolution <= 0 {
		return DefaultResolution
	}
	return cfg.Resolution
}

// Encode serializes a font to a PCF file. Glyph metrics are recomputed from
// the font's glyph descriptors. Encode fails if a code point does not resolve
// to a glyph or if a glyph's bitmap is not contained in the font's bitmap buffer.
func Encode(f *Font, cfg EncodeConfig) ([]byte, error) {
	format, err := cfg.format()
	if err != nil {
		return nil, err
	}
	codes := f.CodePoints()
	if len(codes) == 0 {
		return nil, pcftab.NewError(pcftab.MissingRequired, pcftab.Encodings, "font %q has no glyphs", f.Name)
	}
	metrics := make([]pcftab.Metric, len(codes))
	bitmaps := &pcftab.BitmapTable{Format: format, Offsets: make([]uint32, len(codes))}
	var sizes [4]int
	for i, code := range codes {
		g, ok := f.Glyph(code)
		if !ok {
			return nil, pcftab.NewError(pcftab.MissingRequired, pcftab.Metrics, "no glyph for code point %#U", code)
		}
		packed, ok := f.CharData(code)
		if !ok {
			return nil, pcftab.NewError(pcftab.InvalidBitmapData, pcftab.Bitmaps,
				"bitmap of code point %#U exceeds bitmap buffer", code)
		}
		if metrics[i], err = glyphMetric(g, f.Ascent); err != nil {
			return nil, err
		}
		rows, err := pcftab.PadRows(packed, g.Width, g.Height, format.GlyphPad, format.MSBitFirst)
		if err != nil {
			return nil, err
		}
		bitmaps.Offsets[i] = uint32(len(bitmaps.Data))
		bitmaps.Data = append(bitmaps.Data, rows...)
		for p := range sizes {
			sizes[p] += pcftab.RowStride(g.Width, 1<<p) * g.Height
		}
	}
	for p, size := range sizes {
		if uint64(size) > math.MaxUint32 {
			return nil, pcftab.NewError(pcftab.InvalidBitmapData, pcftab.Bitmaps, "bitmap data too large")
		}
		bitmaps.Sizes[p] = uint32(size)
	}
	enc, err := pcftab.NewEncodingTable(codes, f.DefaultChar)
	if err != nil {
		return nil, err
	}
	accel := accelerator(f, metrics)
	props := fontProperties(f, cfg.resolution(), accel.ConstantWidth)
	tracer().Debugf("encoding font %q: %d glyphs, format %v", f.Name, len(codes), format)
	return pcftab.WriteContainer([]pcftab.TableData{
		{Type: pcftab.Properties, Format: format, Data: pcftab.EncodeProperties(props, format)},
		{Type: pcftab.Accelerators, Format: format, Data: pcftab.EncodeAccelerator(accel, format)},
		{Type: pcftab.Metrics, Format: format, Data: pcftab.EncodeMetrics(metrics, format)},
		{Type: pcftab.Bitmaps, Format: format, Data: pcftab.EncodeBitmaps(bitmaps)},
		{Type: pcftab.Encodings, Format: format, Data: pcftab.EncodeEncoding(enc, format)},
		{Type: pcftab.BDFAccelerators, Format: format, Data: pcftab.EncodeAccelerator(accel, format)},
	})
}

// glyphMetric recomputes the metric of a glyph. Descent is derived from the
// glyph's height, so that ascent + descent always equals the height.
func glyphMetric(g Glyph, fontAscent int) (pcftab.Metric, error) {
	ascent := g.Ascent(fontAscent)
	values := [...]int{g.XOffset, g.XOffset + g.Width, g.Advance, ascent, g.Height - ascent}
	for _, v := range values {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return pcftab.Metric{}, pcftab.NewError(pcftab.InvalidTableEntry, pcftab.Metrics,
				"glyph metric %d exceeds 16 bits", v)
		}
	}
	return pcftab.Metric{
		LeftBearing:  int16(values[0]),
		RightBearing: int16(values[1]),
		Advance:      int16(values[2]),
		Ascent:       int16(values[3]),
		Descent:      int16(values[4]),
	}, nil
}

// accelerator summarizes the metrics of the glyphs of f. The maximum overlap
// is approximated by the maximum right side bearing.
func accelerator(f *Font, metrics []pcftab.Metric) *pcftab.Accelerator {
	bounds := pcftab.ComputeBounds(metrics)
	a := &pcftab.Accelerator{
		ConstantMetrics: bounds.Min == bounds.Max,
		ConstantWidth:   bounds.Min.Advance == bounds.Max.Advance,
		InkInside:       bounds.Min.LeftBearing >= 0 && bounds.Max.RightBearing <= bounds.Min.Advance,
		DrawDirection:   pcftab.LeftToRight,
		FontAscent:      int32(f.Ascent),
		FontDescent:     int32(f.Descent),
		MaxOverlap:      int32(bounds.Max.RightBearing),
	}
	a.NoOverlap = a.InkInside
	a.TerminalFont = a.ConstantWidth && a.InkInside &&
		bounds.Max.Ascent <= int16(f.Ascent) && bounds.Max.Descent <= int16(f.Descent)
	if cw := int16(min(f.CellWidth, math.MaxInt16)); bounds.Max.Advance < cw {
		bounds.Max.Advance = cw
	}
	a.Bounds = bounds
	return a
}

// fontProperties creates the properties of an encoded font.
func fontProperties(f *Font, resolution int, monospaced bool) pcftab.PropertyList {
	spacing := "P"
	if monospaced {
		spacing = "M"
	}
	pixelSize := f.CellHeight
	pointSize := int(math.Round(float64(pixelSize) * 722.7 / float64(resolution)))
	props := pcftab.PropertyList{
		{Name: "FONT", Value: pcftab.StringValue(f.Name)},
		{Name: "PIXEL_SIZE", Value: pcftab.IntValue(pixelSize)},
		{Name: "POINT_SIZE", Value: pcftab.IntValue(pointSize)},
		{Name: "RESOLUTION_X", Value: pcftab.IntValue(resolution)},
		{Name: "RESOLUTION_Y", Value: pcftab.IntValue(resolution)},
		{Name: "SPACING", Value: pcftab.StringValue(spacing)},
	}
	if f.Ascent != 0 || f.Descent != 0 {
		props = append(props,
			pcftab.Property{Name: "FONT_ASCENT", Value: pcftab.IntValue(f.Ascent)},
			pcftab.Property{Name: "FONT_DESCENT", Value: pcftab.IntValue(f.Descent)})
	}
	props = append(props, pcftab.Property{Name: "DEFAULT_CHAR", Value: pcftab.IntValue(f.DefaultChar)})
	for _, key := range []string{"CHARSET_REGISTRY", "CHARSET_ENCODING"} {
		if v, ok := f.Properties.String(key); ok {
			props = append(props, pcftab.Property{Name: key, Value: pcftab.StringValue(v)})
		}
	}
	return props
}
