package pcftab

import "math/bits"

// The canonical in-memory form of a glyph bitmap is one bit per pixel, rows
// packed to whole bytes without further padding, and the leftmost pixel of
// each byte in its least significant bit.

// RowBytes returns the number of bytes needed for a row of width pixels.
func RowBytes(width int) int {
	return (width + 7) / 8
}

// RowStride returns the number of bytes of a row of width pixels, padded to
// a multiple of pad bytes.
func RowStride(width, pad int) int {
	n := RowBytes(width)
	return (n + pad - 1) / pad * pad
}

// RepackRows converts the bitmap of a single glyph from a PCF row layout to the
// canonical layout. Source rows are padded to pad bytes; if msbFirst is set, the
// leftmost pixel of a source byte is its most significant bit and bytes are
// bit-reversed.
func RepackRows(src []byte, width, height, pad int, msbFirst bool) ([]byte, error) {
	if width < 0 || height < 0 || !ValidPad(pad) {
		return nil, newError(InvalidBitmapData, Bitmaps, 0, "invalid bitmap geometry %d × %d, pad %d", width, height, pad)
	}
	stride, tight := RowStride(width, pad), RowBytes(width)
	if need, err := checkedMulInt(stride, height); err != nil || need > len(src) {
		return nil, newError(InvalidBitmapData, Bitmaps, 0,
			"bitmap of %d × %d pixels needs %d bytes, have %d", width, height, stride*height, len(src))
	}
	dst := make([]byte, tight*height)
	for y := 0; y < height; y++ {
		copy(dst[y*tight:(y+1)*tight], src[y*stride:])
	}
	if msbFirst {
		reverseBits(dst)
	}
	return dst, nil
}

// PadRows is the inverse of RepackRows: it converts a glyph bitmap from the
// canonical layout to rows padded to pad bytes, optionally with the leftmost
// pixel in the most significant bit.
func PadRows(packed []byte, width, height, pad int, msbFirst bool) ([]byte, error) {
	if width < 0 || height < 0 || !ValidPad(pad) {
		return nil, newError(InvalidBitmapData, Bitmaps, 0, "invalid bitmap geometry %d × %d, pad %d", width, height, pad)
	}
	stride, tight := RowStride(width, pad), RowBytes(width)
	if tight*height > len(packed) {
		return nil, newError(InvalidBitmapData, Bitmaps, 0,
			"bitmap of %d × %d pixels needs %d bytes, have %d", width, height, tight*height, len(packed))
	}
	dst := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		copy(dst[y*stride:y*stride+tight], packed[y*tight:])
	}
	if msbFirst {
		reverseBits(dst)
	}
	return dst, nil
}

func reverseBits(b []byte) {
	for i := range b {
		b[i] = bits.Reverse8(b[i])
	}
}

// swapScanUnits reverses the byte order within each scan unit of b.
// Incomplete trailing units are left untouched.
func swapScanUnits(b []byte, unit int) {
	if unit <= 1 {
		return
	}
	for i := 0; i+unit <= len(b); i += unit {
		u := b[i : i+unit]
		for l, r := 0, unit-1; l < r; l, r = l+1, r-1 {
			u[l], u[r] = u[r], u[l]
		}
	}
}
