package pcftab

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEncodingGrid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	enc, err := NewEncodingTable([]rune{0x41, 0x142}, 0x41)
	if err != nil {
		t.Fatal(err)
	}
	if enc.Rows() != 2 || enc.Cols() != 2 {
		t.Fatalf("expected grid of 2 × 2, have %d × %d", enc.Rows(), enc.Cols())
	}
	for _, f := range []Format{DefaultFormat, {GlyphPad: 1, ScanUnit: 1, BigEndian: true}} {
		dec, err := DecodeEncoding(EncodeEncoding(enc, f), 0)
		if err != nil {
			t.Fatal(err)
		}
		if dec.MinLow != 0x41 || dec.MaxLow != 0x42 || dec.MinHigh != 0 || dec.MaxHigh != 1 || dec.DefaultChar != 0x41 {
			t.Errorf("unexpected grid bounds: %+v", dec)
		}
		if g, ok := dec.Lookup(0x41).Unwrap(); !ok || g != 0 {
			t.Errorf("expected U+0041 to map to glyph 0")
		}
		if g, ok := dec.Lookup(0x142).Unwrap(); !ok || g != 1 {
			t.Errorf("expected U+0142 to map to glyph 1")
		}
		for _, code := range []rune{0x42, 0x141, 0x40, 0x242, -1, 0x10000} {
			if dec.Lookup(code).IsSome() {
				t.Errorf("expected no glyph for code point %#x", code)
			}
		}
		if dec.CodePoint(3) != 0x142 || dec.CodePoint(1) != 0x42 {
			t.Errorf("unexpected code points for slots 1 and 3: %#x, %#x", dec.CodePoint(1), dec.CodePoint(3))
		}
	}
}

func TestEncodingAbsentSlot(t *testing.T) {
	w := newTableWriter(DefaultFormat)
	for _, v := range []uint16{0x20, 0x22, 0, 0, 0x20} {
		w.u16(v)
	}
	w.u16(0)
	w.u16(0xFFFF)
	w.u16(1)
	enc, err := DecodeEncoding(w.Bytes(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(enc.Slots) != 3 || enc.Slots[1].IsSome() {
		t.Errorf("expected slot 1 to be absent, have %v", enc.Slots)
	}
	if g, ok := enc.Slots[2].Unwrap(); !ok || g != 1 {
		t.Errorf("expected slot 2 to map to glyph 1, have %d", g)
	}
}

func TestEncodingInvalidRange(t *testing.T) {
	tests := []struct {
		name   string
		bounds []uint16
	}{
		{"inverted low bytes", []uint16{0x30, 0x20, 0, 0, 0}},
		{"inverted high bytes", []uint16{0x20, 0x30, 2, 1, 0}},
		{"low byte beyond 255", []uint16{0x20, 0x100, 0, 0, 0}},
		{"high byte beyond 255", []uint16{0x20, 0x30, 0, 0x1000, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTableWriter(DefaultFormat)
			for _, v := range tt.bounds {
				w.u16(v)
			}
			if _, err := DecodeEncoding(w.Bytes(), 0); KindOf(err) != InvalidEncodingRange {
				t.Errorf("expected InvalidEncodingRange, have %v", err)
			}
		})
	}
	// a valid grid with missing indices
	w := newTableWriter(DefaultFormat)
	for _, v := range []uint16{0, 0xff, 0, 0xff, 0} {
		w.u16(v)
	}
	if _, err := DecodeEncoding(w.Bytes(), 0); KindOf(err) != InvalidTableEntry {
		t.Errorf("expected InvalidTableEntry for truncated index array, have %v", err)
	}
}

func TestNewEncodingTableErrors(t *testing.T) {
	if _, err := NewEncodingTable(nil, 0); KindOf(err) != MissingRequired {
		t.Errorf("expected MissingRequired for empty code point list, have %v", err)
	}
	if _, err := NewEncodingTable([]rune{0x10000}, 0); KindOf(err) != InvalidEncodingRange {
		t.Errorf("expected InvalidEncodingRange for code point beyond 16 bits, have %v", err)
	}
	if _, err := NewEncodingTable([]rune{0x41, 0x41}, 0); KindOf(err) != InvalidEncodingRange {
		t.Errorf("expected InvalidEncodingRange for duplicate code point, have %v", err)
	}
}
