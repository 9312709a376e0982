package pcftab

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Reading and writing bytes of a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

// byteOrder is implemented by binary.LittleEndian and binary.BigEndian.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// binarySegm is a segment of byte data. We use it throughout this package to
// navigate the font's binary data.
type binarySegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset > len(b) || n > len(b)-offset {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// --- Table reader ----------------------------------------------------------

// tableReader reads consecutive fields of a single table. The first field of
// every table is its format word, which is stored LSB first. All other fields
// are read in the byte order given by the format word.
type tableReader struct {
	data  binarySegm
	pos   int
	order binary.ByteOrder
	table TableType
	base  uint32 // offset of the table within the font file
}

// newTableReader reads the format word of a table and prepares a reader for the
// table's remaining fields.
func newTableReader(t TableType, data []byte, base uint32) (*tableReader, Format, error) {
	r := &tableReader{data: data, order: binary.LittleEndian, table: t, base: base}
	w, err := r.u32()
	if err != nil {
		return nil, Format{}, err
	}
	f := DecodeFormat(w)
	if f.UnknownFlags {
		return nil, f, r.fail(UnsupportedFormat, "unknown format word 0x%08x", w)
	}
	r.order = f.order()
	return r, f, nil
}

func (r *tableReader) fail(kind ErrorKind, format string, args ...any) error {
	return newError(kind, r.table, r.base+uint32(r.pos), format, args...)
}

func (r *tableReader) remaining() int {
	return len(r.data) - r.pos
}

// next consumes n bytes and returns them.
func (r *tableReader) next(n int) (binarySegm, error) {
	b, err := r.data.view(r.pos, n)
	if err != nil {
		return nil, r.fail(InvalidTableEntry, "table truncated: need %d bytes, have %d", n, r.remaining())
	}
	r.pos += n
	return b, nil
}

func (r *tableReader) skip(n int) error {
	_, err := r.next(n)
	return err
}

func (r *tableReader) u8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *tableReader) u16() (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r *tableReader) i16() (int16, error) {
	n, err := r.u16()
	return int16(n), err
}

func (r *tableReader) u32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

func (r *tableReader) i32() (int32, error) {
	n, err := r.u32()
	return int32(n), err
}

// count reads a 32-bit count and checks it against a ceiling.
func (r *tableReader) count(kind ErrorKind, ceiling int, what string) (int, error) {
	n, err := r.i32()
	if err != nil {
		return 0, err
	}
	if n < 0 || int(n) > ceiling {
		return 0, r.fail(kind, "%s count %d out of range [0…%d]", what, n, ceiling)
	}
	return int(n), nil
}

// --- Table writer ----------------------------------------------------------

// tableWriter appends the fields of a single table to a byte buffer.
type tableWriter struct {
	buf   []byte
	order byteOrder
}

// newTableWriter starts a table by writing its format word.
func newTableWriter(f Format) *tableWriter {
	w := &tableWriter{order: f.order()}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, f.Word())
	return w
}

func (w *tableWriter) u8(n uint8) {
	w.buf = append(w.buf, n)
}

func (w *tableWriter) u16(n uint16) {
	w.buf = w.order.AppendUint16(w.buf, n)
}

func (w *tableWriter) i16(n int16) {
	w.u16(uint16(n))
}

func (w *tableWriter) u32(n uint32) {
	w.buf = w.order.AppendUint32(w.buf, n)
}

func (w *tableWriter) i32(n int32) {
	w.u32(uint32(n))
}

func (w *tableWriter) bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *tableWriter) zeros(n int) {
	for ; n > 0; n-- {
		w.buf = append(w.buf, 0)
	}
}

func (w *tableWriter) Bytes() []byte {
	return w.buf
}

// align4 rounds n up to the next multiple of 4.
func align4(n int) int {
	return (n + 3) &^ 3
}

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two non-negative integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 || a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}
