package pcftab

// BitmapTable holds the raw bitmap data of all glyphs of a font.
type BitmapTable struct {
	Format  Format
	Offsets []uint32  // per glyph, byte offset into Data
	Sizes   [4]uint32 // total size of all bitmaps for row padding 1, 2, 4 and 8
	Data    []byte    // bitmap data for the padding of Format
}

// SelectedSize returns the size of the bitmap data for the table's row padding.
func (bm *BitmapTable) SelectedSize() uint32 {
	return bm.Sizes[bm.Format.PadIndex()]
}

// Glyph returns the bitmap of glyph i in canonical layout (rows packed to whole
// bytes, LSB first). The glyph's geometry has to be taken from the metrics table.
func (bm *BitmapTable) Glyph(i int, width, height int) ([]byte, error) {
	if i < 0 || i >= len(bm.Offsets) {
		return nil, newError(InvalidBitmapData, Bitmaps, 0, "no bitmap for glyph %d", i)
	}
	off := bm.Offsets[i]
	if uint64(off) > uint64(len(bm.Data)) {
		return nil, newError(InvalidBitmapData, Bitmaps, 0,
			"bitmap offset %d of glyph %d exceeds bitmap data size %d", off, i, len(bm.Data))
	}
	b, err := RepackRows(bm.Data[off:], width, height, bm.Format.GlyphPad, bm.Format.MSBitFirst)
	if err != nil {
		return nil, withIssue(err, "glyph %d: ", i)
	}
	return b, nil
}

// DecodeBitmaps decodes a bitmaps table:
//
//	format  glyphCount  offsets[glyphCount]  sizes[4]  data[sizes[pad]]
//
// Bitmap data is copied. If the table's byte order differs from its bit order,
// bytes are swapped within each scan unit.
func DecodeBitmaps(data []byte, base uint32) (*BitmapTable, error) {
	r, f, err := newTableReader(Bitmaps, data, base)
	if err != nil {
		return nil, err
	}
	count, err := r.count(InvalidGlyphCount, MaxGlyphCount, "glyph")
	if err != nil {
		return nil, err
	}
	if 4*count > r.remaining() {
		return nil, r.fail(InvalidTableEntry, "%d bitmap offsets need %d bytes, table has %d", count, 4*count, r.remaining())
	}
	bm := &BitmapTable{Format: f, Offsets: make([]uint32, count)}
	for i := range bm.Offsets {
		if bm.Offsets[i], err = r.u32(); err != nil {
			return nil, err
		}
	}
	for i := range bm.Sizes {
		if bm.Sizes[i], err = r.u32(); err != nil {
			return nil, err
		}
	}
	size := bm.SelectedSize()
	tracer().Debugf("bitmaps table: %d glyphs, %d bytes, format %v", count, size, f)
	if uint64(size) > uint64(r.remaining()) {
		return nil, r.fail(BitmapSizeMismatch, "bitmap data size %d (pad %d) exceeds remaining table size %d",
			size, f.GlyphPad, r.remaining())
	}
	raw, err := r.next(int(size))
	if err != nil {
		return nil, err
	}
	bm.Data = make([]byte, len(raw))
	copy(bm.Data, raw)
	if f.BigEndian != f.MSBitFirst {
		swapScanUnits(bm.Data, f.ScanUnit)
	}
	return bm, nil
}

// EncodeBitmaps serializes a bitmaps table. The data of bm has to be laid out
// according to bm.Format already.
func EncodeBitmaps(bm *BitmapTable) []byte {
	w := newTableWriter(bm.Format)
	w.i32(int32(len(bm.Offsets)))
	for _, off := range bm.Offsets {
		w.u32(off)
	}
	for _, size := range bm.Sizes {
		w.u32(size)
	}
	w.bytes(bm.Data)
	return w.Bytes()
}
