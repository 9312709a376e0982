package pcftab

import (
	"encoding/binary"
	"fmt"
)

// Bits of a table's format word.
//
//	bits 0–1   glyph padding (1, 2, 4 or 8 bytes)
//	bit  2     byte order (0 = LSB first, 1 = MSB first)
//	bit  3     bit order (0 = LSB first, 1 = MSB first)
//	bits 4–5   scan unit (1, 2, 4 or 8 bytes)
//	bit  8     compressed metrics
//	bit  9     accelerator carries ink bounds
//	bit  10    ink bounds present
const (
	formatGlyphPadMask      = 0x3
	formatByteOrderBit      = 1 << 2
	formatBitOrderBit       = 1 << 3
	formatScanUnitShift     = 4
	formatScanUnitMask      = 0x3 << formatScanUnitShift
	formatCompressedMetrics = 1 << 8
	formatAccelInkBounds    = 1 << 9
	formatInkBounds         = 1 << 10
	formatKnownBits         = formatGlyphPadMask | formatByteOrderBit | formatBitOrderBit |
		formatScanUnitMask | formatCompressedMetrics | formatAccelInkBounds | formatInkBounds
)

// Format is the decoded form of a table's format word. The format word is
// decoded once, when a table is opened; code further down the pipeline uses
// the named fields only.
type Format struct {
	GlyphPad          int  // row padding of glyph bitmaps in bytes: 1, 2, 4 or 8
	ScanUnit          int  // bitmap scan unit in bytes: 1, 2, 4 or 8
	BigEndian         bool // multi-byte fields are stored MSB first
	MSBitFirst        bool // the leftmost pixel of a bitmap byte is its most significant bit
	CompressedMetrics bool // metrics are stored as biased bytes
	AccelInkBounds    bool // accelerator table carries ink bounds
	InkBounds         bool // ink bounds present
	UnknownFlags      bool // bits outside of the known layout are set
}

// DefaultFormat is little endian, LSB first, with byte-aligned bitmap rows.
var DefaultFormat = Format{GlyphPad: 1, ScanUnit: 1}

// DecodeFormat decodes a format word.
func DecodeFormat(w uint32) Format {
	return Format{
		GlyphPad:          1 << (w & formatGlyphPadMask),
		ScanUnit:          1 << ((w & formatScanUnitMask) >> formatScanUnitShift),
		BigEndian:         w&formatByteOrderBit != 0,
		MSBitFirst:        w&formatBitOrderBit != 0,
		CompressedMetrics: w&formatCompressedMetrics != 0,
		AccelInkBounds:    w&formatAccelInkBounds != 0,
		InkBounds:         w&formatInkBounds != 0,
		UnknownFlags:      w&^formatKnownBits != 0,
	}
}

// Word encodes f as a format word. Unknown flags are not preserved.
func (f Format) Word() uint32 {
	w := uint32(padIndex(f.GlyphPad))
	w |= uint32(padIndex(f.ScanUnit)) << formatScanUnitShift
	if f.BigEndian {
		w |= formatByteOrderBit
	}
	if f.MSBitFirst {
		w |= formatBitOrderBit
	}
	if f.CompressedMetrics {
		w |= formatCompressedMetrics
	}
	if f.AccelInkBounds {
		w |= formatAccelInkBounds
	}
	if f.InkBounds {
		w |= formatInkBounds
	}
	return w
}

// PadIndex returns the index of the glyph padding, i.e. 0 for 1-byte padding,
// 1 for 2-byte padding, and so on. Bitmap tables store one total size per index.
func (f Format) PadIndex() int {
	return padIndex(f.GlyphPad)
}

func (f Format) order() byteOrder {
	if f.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (f Format) String() string {
	order := "LSB"
	if f.BigEndian {
		order = "MSB"
	}
	bits := "LSB"
	if f.MSBitFirst {
		bits = "MSB"
	}
	return fmt.Sprintf("{byte=%s bit=%s pad=%d unit=%d compressed=%v ink=%v/%v}",
		order, bits, f.GlyphPad, f.ScanUnit, f.CompressedMetrics, f.AccelInkBounds, f.InkBounds)
}

// padIndex maps 1, 2, 4, 8 to 0, 1, 2, 3. Other values are treated as 1.
func padIndex(pad int) int {
	switch pad {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	}
	return 0
}

// ValidPad reports whether pad is a legal row padding or scan unit.
func ValidPad(pad int) bool {
	return pad == 1 || pad == 2 || pad == 4 || pad == 8
}
