package pcftab

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// glyphRows returns the canonical bitmap of test glyph g, 8 × 8 pixels.
func glyphRows(g int) []byte {
	b := make([]byte, 8)
	for y := range b {
		b[y] = byte(g<<4 | y)
	}
	return b
}

// buildTables serializes the tables of a font with glyphs for 'A', 'B' and 'C'.
func buildTables(t *testing.T, f Format) []TableData {
	t.Helper()
	metrics := make([]Metric, 3)
	bm := &BitmapTable{Format: f, Offsets: make([]uint32, 3)}
	for g := range metrics {
		metrics[g] = Metric{RightBearing: 8, Advance: 8, Ascent: 7, Descent: 1}
		rows, err := PadRows(glyphRows(g), 8, 8, f.GlyphPad, f.MSBitFirst)
		if err != nil {
			t.Fatal(err)
		}
		bm.Offsets[g] = uint32(len(bm.Data))
		bm.Data = append(bm.Data, rows...)
	}
	for i := range bm.Sizes {
		bm.Sizes[i] = uint32(3 * 8 * RowStride(8, 1<<i))
	}
	enc, err := NewEncodingTable([]rune{'A', 'B', 'C'}, 'A')
	if err != nil {
		t.Fatal(err)
	}
	props := PropertyList{
		{Name: "FONT", Value: StringValue("synthetic")},
		{Name: "PIXEL_SIZE", Value: IntValue(8)},
	}
	accel := &Accelerator{FontAscent: 7, FontDescent: 1, Bounds: ComputeBounds(metrics)}
	return []TableData{
		{Type: Properties, Format: f, Data: EncodeProperties(props, f)},
		{Type: Accelerators, Format: f, Data: EncodeAccelerator(accel, f)},
		{Type: Metrics, Format: f, Data: EncodeMetrics(metrics, f)},
		{Type: Bitmaps, Format: f, Data: EncodeBitmaps(bm)},
		{Type: Encodings, Format: f, Data: EncodeEncoding(enc, f)},
	}
}

func buildFont(t *testing.T, tables []TableData) []byte {
	t.Helper()
	data, err := WriteContainer(tables)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func without(tables []TableData, tt TableType) []TableData {
	var r []TableData
	for _, t := range tables {
		if t.Type != tt {
			r = append(r, t)
		}
	}
	return r
}

func TestDecodeByteOrderIndependence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	formats := []Format{
		DefaultFormat,
		{GlyphPad: 4, ScanUnit: 1, BigEndian: true, MSBitFirst: true},
		{GlyphPad: 2, ScanUnit: 1, BigEndian: true},
		{GlyphPad: 8, ScanUnit: 1, MSBitFirst: true},
	}
	for _, f := range formats {
		tables, err := Decode(buildFont(t, buildTables(t, f)))
		if err != nil {
			t.Fatalf("format %v: %v", f, err)
		}
		if len(tables.Metrics.Metrics) != 3 {
			t.Errorf("format %v: expected 3 glyphs, have %d", f, len(tables.Metrics.Metrics))
		}
		if g, ok := tables.Encoding.Lookup('B').Unwrap(); !ok || g != 1 {
			t.Errorf("format %v: expected 'B' to map to glyph 1", f)
		}
		for g := range 3 {
			b, err := tables.Bitmaps.Glyph(g, 8, 8)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(b, glyphRows(g)) {
				t.Errorf("format %v: glyph %d = % x; want % x", f, g, b, glyphRows(g))
			}
		}
		if name, _ := tables.Props().String("FONT"); name != "synthetic" {
			t.Errorf("format %v: expected font name 'synthetic', have %q", f, name)
		}
		if a, ok := tables.Accelerator.Unwrap(); !ok || a.FontAscent != 7 || a.FontDescent != 1 {
			t.Errorf("format %v: expected accelerator with ascent 7 and descent 1", f)
		}
		if len(tables.Warnings()) != 0 {
			t.Errorf("format %v: did not expect warnings: %v", f, tables.Warnings())
		}
	}
}

func TestDecodePrefersBDFAccelerators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	bdf := &Accelerator{FontAscent: 6, FontDescent: 2}
	tables := append(buildTables(t, DefaultFormat),
		TableData{Type: BDFAccelerators, Format: DefaultFormat, Data: EncodeAccelerator(bdf, DefaultFormat)})
	dec, err := Decode(buildFont(t, tables))
	if err != nil {
		t.Fatal(err)
	}
	if a, _ := dec.Accelerator.Unwrap(); a == nil || a.FontAscent != 6 {
		t.Errorf("expected BDF accelerators to be preferred, have %v", a)
	}
}

func TestDecodeMissingTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	for _, tt := range []TableType{Metrics, Bitmaps, Encodings} {
		_, err := Decode(buildFont(t, without(buildTables(t, DefaultFormat), tt)))
		if KindOf(err) != MissingRequired {
			t.Errorf("expected MissingRequired without %s table, have %v", tt, err)
		}
	}
	for _, tt := range []TableType{Properties, Accelerators} {
		dec, err := Decode(buildFont(t, without(buildTables(t, DefaultFormat), tt)))
		if err != nil {
			t.Errorf("expected %s table to be optional, have %v", tt, err)
			continue
		}
		if tt == Accelerators && dec.Accelerator.IsSome() {
			t.Errorf("did not expect an accelerator")
		}
	}
}

func TestDecodeBrokenProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	tables := buildTables(t, DefaultFormat)
	binary.LittleEndian.PutUint32(tables[0].Data[8:], 0x7fffffff) // name offset of property 0
	dec, err := Decode(buildFont(t, tables))
	if err != nil {
		t.Fatalf("broken properties have to be recoverable, have %v", err)
	}
	if dec.Properties != nil || dec.Props() != nil {
		t.Errorf("expected properties to be dropped")
	}
	if len(dec.Warnings()) != 1 || dec.Warnings()[0].Table != Properties {
		t.Errorf("expected one warning for properties table, have %v", dec.Warnings())
	}
}

func TestDecodeIgnoredTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	swidths := newTableWriter(DefaultFormat)
	swidths.i32(0)
	tables := append(buildTables(t, DefaultFormat),
		TableData{Type: SWidths, Format: DefaultFormat, Data: swidths.Bytes()},
		TableData{Type: TableType(0x4000), Format: DefaultFormat, Data: []byte{1, 2, 3}})
	dec, err := Decode(buildFont(t, tables))
	if err != nil {
		t.Fatal(err)
	}
	if len(dec.Warnings()) != 2 {
		t.Errorf("expected 2 warnings for uninterpreted tables, have %v", dec.Warnings())
	}
}

func TestDecodeRejectsCorruptTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	data := buildFont(t, buildTables(t, DefaultFormat))
	c, err := ReadContainer(data)
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range c.Entries {
		if e.Type != Bitmaps {
			continue
		}
		corrupt := bytes.Clone(data)
		at := headerSize + i*tocEntrySize + 12
		binary.LittleEndian.PutUint32(corrupt[at:], uint32(len(data))) // offset at end of file
		if _, err := Decode(corrupt); KindOf(err) != TableOffsetOutOfBounds {
			t.Errorf("expected TableOffsetOutOfBounds, have %v", err)
		}
	}
	// bitmaps for only two of three glyphs
	tables := buildTables(t, DefaultFormat)
	bm, err := DecodeBitmaps(tables[3].Data, 0)
	if err != nil {
		t.Fatal(err)
	}
	bm.Offsets = bm.Offsets[:2]
	tables[3].Data = EncodeBitmaps(bm)
	if _, err := Decode(buildFont(t, tables)); KindOf(err) != BitmapSizeMismatch {
		t.Errorf("expected BitmapSizeMismatch, have %v", err)
	}
}
