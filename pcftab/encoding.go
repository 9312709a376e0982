package pcftab

// GlyphIndex is the index of a glyph in a font's metrics and bitmaps tables.
type GlyphIndex uint16

// noGlyph marks encoding slots without a glyph.
const noGlyph uint16 = 0xFFFF

// EncodingTable maps code points to glyphs. Code points are 16-bit values,
// split into a high byte ("row") and a low byte ("column"). The table holds a
// dense grid of slots for rows MinHigh…MaxHigh and columns MinLow…MaxLow.
// Slots without a glyph are None.
type EncodingTable struct {
	Format      Format
	MinLow      uint16 // min_char_or_byte2
	MaxLow      uint16 // max_char_or_byte2
	MinHigh     uint16 // min_byte1
	MaxHigh     uint16 // max_byte1
	DefaultChar uint16
	Slots       []Option[GlyphIndex] // row-major, Rows() × Cols()
}

// Rows returns the number of high-byte rows of the grid.
func (enc *EncodingTable) Rows() int {
	return int(enc.MaxHigh) - int(enc.MinHigh) + 1
}

// Cols returns the number of low-byte columns of the grid.
func (enc *EncodingTable) Cols() int {
	return int(enc.MaxLow) - int(enc.MinLow) + 1
}

// CodePoint returns the code point for slot number i of the grid.
func (enc *EncodingTable) CodePoint(i int) rune {
	cols := enc.Cols()
	row, col := i/cols, i%cols
	return rune(int(enc.MinHigh)+row)<<8 | rune(int(enc.MinLow)+col)
}

// Lookup returns the glyph for a code point, if any.
func (enc *EncodingTable) Lookup(code rune) Option[GlyphIndex] {
	high, low := int(code>>8), int(code&0xff)
	if code < 0 || code > 0xffff ||
		high < int(enc.MinHigh) || high > int(enc.MaxHigh) ||
		low < int(enc.MinLow) || low > int(enc.MaxLow) {
		return None[GlyphIndex]()
	}
	i := (high-int(enc.MinHigh))*enc.Cols() + low - int(enc.MinLow)
	if i >= len(enc.Slots) {
		return None[GlyphIndex]()
	}
	return enc.Slots[i]
}

// DecodeEncoding decodes an encodings table:
//
//	format  minLow  maxLow  minHigh  maxHigh  defaultChar  indices[rows × cols]
//
// An index of 0xFFFF denotes a code point without a glyph.
func DecodeEncoding(data []byte, base uint32) (*EncodingTable, error) {
	r, f, err := newTableReader(Encodings, data, base)
	if err != nil {
		return nil, err
	}
	enc := &EncodingTable{Format: f}
	for _, field := range []*uint16{&enc.MinLow, &enc.MaxLow, &enc.MinHigh, &enc.MaxHigh, &enc.DefaultChar} {
		if *field, err = r.u16(); err != nil {
			return nil, err
		}
	}
	if enc.MinLow > enc.MaxLow || enc.MinHigh > enc.MaxHigh || enc.MaxLow > 0xff || enc.MaxHigh > 0xff {
		return nil, r.fail(InvalidEncodingRange, "invalid code range: rows %d…%d, columns %d…%d",
			enc.MinHigh, enc.MaxHigh, enc.MinLow, enc.MaxLow)
	}
	n, err := checkedMulInt(enc.Rows(), enc.Cols())
	if err != nil || n > MaxGlyphCount {
		return nil, r.fail(InvalidEncodingRange, "code-point grid %d × %d too large", enc.Rows(), enc.Cols())
	}
	tracer().Debugf("encodings table: %d × %d slots, default char %#04x", enc.Rows(), enc.Cols(), enc.DefaultChar)
	b, err := r.next(2 * n)
	if err != nil {
		return nil, err
	}
	enc.Slots = make([]Option[GlyphIndex], n)
	for i := range enc.Slots {
		if inx := r.order.Uint16(b[2*i:]); inx != noGlyph {
			enc.Slots[i] = Some(GlyphIndex(inx))
		}
	}
	return enc, nil
}

// NewEncodingTable builds an encoding table for a list of code points, where
// code point codes[i] maps to glyph i. The grid spans the minimum and maximum
// high and low bytes of the code points present.
func NewEncodingTable(codes []rune, defaultChar rune) (*EncodingTable, error) {
	if len(codes) == 0 {
		return nil, newError(MissingRequired, Encodings, 0, "no code points to encode")
	}
	if len(codes) >= int(noGlyph) {
		return nil, newError(InvalidGlyphCount, Encodings, 0, "too many glyphs: %d", len(codes))
	}
	enc := &EncodingTable{
		Format:  DefaultFormat,
		MinLow:  0xff,
		MinHigh: 0xff,
	}
	for _, c := range codes {
		if c < 0 || c > 0xffff {
			return nil, newError(InvalidEncodingRange, Encodings, 0, "code point %#U exceeds 16 bits", c)
		}
		high, low := uint16(c>>8), uint16(c&0xff)
		enc.MinHigh, enc.MaxHigh = min(enc.MinHigh, high), max(enc.MaxHigh, high)
		enc.MinLow, enc.MaxLow = min(enc.MinLow, low), max(enc.MaxLow, low)
	}
	if defaultChar >= 0 && defaultChar <= 0xffff {
		enc.DefaultChar = uint16(defaultChar)
	}
	enc.Slots = make([]Option[GlyphIndex], enc.Rows()*enc.Cols())
	for i, c := range codes {
		high, low := int(c>>8), int(c&0xff)
		slot := (high-int(enc.MinHigh))*enc.Cols() + low - int(enc.MinLow)
		if enc.Slots[slot].IsSome() {
			return nil, newError(InvalidEncodingRange, Encodings, 0, "duplicate code point %#U", c)
		}
		enc.Slots[slot] = Some(GlyphIndex(i))
	}
	return enc, nil
}

// EncodeEncoding serializes an encodings table.
func EncodeEncoding(enc *EncodingTable, f Format) []byte {
	w := newTableWriter(f)
	w.u16(enc.MinLow)
	w.u16(enc.MaxLow)
	w.u16(enc.MinHigh)
	w.u16(enc.MaxHigh)
	w.u16(enc.DefaultChar)
	for _, slot := range enc.Slots {
		if inx, ok := slot.Unwrap(); ok {
			w.u16(uint16(inx))
		} else {
			w.u16(noGlyph)
		}
	}
	return w.Bytes()
}
