package pcftab

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBitmapsRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	f := Format{GlyphPad: 2, ScanUnit: 1, BigEndian: true, MSBitFirst: true}
	bm := &BitmapTable{
		Format:  f,
		Offsets: []uint32{0, 4},
		Sizes:   [4]uint32{4, 8, 16, 32},
		Data:    []byte{0xf0, 0x00, 0x0f, 0x00, 0x81, 0x00, 0x42, 0x00},
	}
	dec, err := DecodeBitmaps(EncodeBitmaps(bm), 0)
	if err != nil {
		t.Fatal(err)
	}
	if dec.SelectedSize() != 8 || !bytes.Equal(dec.Data, bm.Data) {
		t.Fatalf("unexpected bitmap data % x", dec.Data)
	}
	g, err := dec.Glyph(1, 8, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(g, []byte{0x81, 0x42}) {
		t.Errorf("unexpected bitmap for glyph 1: % x", g)
	}
	if _, err := dec.Glyph(2, 8, 2); KindOf(err) != InvalidBitmapData {
		t.Errorf("expected InvalidBitmapData for missing glyph, have %v", err)
	}
	if _, err := dec.Glyph(1, 8, 3); KindOf(err) != InvalidBitmapData {
		t.Errorf("expected InvalidBitmapData for glyph exceeding data, have %v", err)
	}
}

func TestBitmapsScanUnitSwap(t *testing.T) {
	f := Format{GlyphPad: 1, ScanUnit: 2, BigEndian: true}
	w := newTableWriter(f)
	w.i32(1) // count
	w.u32(0) // offset of glyph 0
	for range 4 {
		w.u32(4)
	}
	w.bytes([]byte{1, 2, 3, 4})
	bm, err := DecodeBitmaps(w.Bytes(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bm.Data, []byte{2, 1, 4, 3}) {
		t.Errorf("expected bytes swapped within 2-byte scan units, have % x", bm.Data)
	}
}

func TestBitmapsSizeMismatch(t *testing.T) {
	w := newTableWriter(DefaultFormat)
	w.i32(1)
	w.u32(0)
	w.u32(100) // selected size exceeds table
	w.u32(0)
	w.u32(0)
	w.u32(0)
	w.bytes([]byte{0xff})
	if _, err := DecodeBitmaps(w.Bytes(), 0); KindOf(err) != BitmapSizeMismatch {
		t.Errorf("expected BitmapSizeMismatch, have %v", err)
	}
	w = newTableWriter(DefaultFormat)
	w.i32(-3)
	if _, err := DecodeBitmaps(w.Bytes(), 0); KindOf(err) != InvalidGlyphCount {
		t.Errorf("expected InvalidGlyphCount, have %v", err)
	}
}
