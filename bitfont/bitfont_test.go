package bitfont_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/pcf/bitfont"
	"github.com/npillmayer/pcf/internal/synth"
	"github.com/npillmayer/pcf/pcftab"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var ignoreProperties = cmpopts.IgnoreFields(bitfont.Font{}, "Properties")

func reload(t *testing.T, f *bitfont.Font, cfg bitfont.EncodeConfig, filter bitfont.Filter) *bitfont.Font {
	t.Helper()
	data, err := bitfont.Encode(f, cfg)
	if err != nil {
		t.Fatal(err)
	}
	tables, err := pcftab.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if w := tables.Warnings(); len(w) != 0 {
		t.Errorf("unexpected warnings: %v", w)
	}
	font, err := bitfont.Assemble(tables, filter)
	if err != nil {
		t.Fatal(err)
	}
	return font
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	fonts := []*bitfont.Font{synth.ThreeGlyphs(), synth.Alphabet(), synth.Sparse(), synth.Proportional()}
	configs := []bitfont.EncodeConfig{
		{},
		{BigEndian: true, MSBitFirst: true, GlyphPad: 4},
		{BigEndian: true, GlyphPad: 2},
		{MSBitFirst: true, GlyphPad: 8, Resolution: 100},
	}
	for _, f := range fonts {
		if err := f.Validate(); err != nil {
			t.Fatalf("synthetic font %s invalid: %v", f.Name, err)
		}
		for _, cfg := range configs {
			reloaded := reload(t, f, cfg, bitfont.AllCodePoints)
			if diff := cmp.Diff(f, reloaded, ignoreProperties); diff != "" {
				t.Errorf("font %s, config %+v: round trip mismatch (-want +got):\n%s", f.Name, cfg, diff)
			}
		}
	}
}

func TestConcreteThreeGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	f := synth.ThreeGlyphs()
	reloaded := reload(t, f, bitfont.EncodeConfig{}, bitfont.AllCodePoints)
	for _, c := range []rune{'A', 'B', 'C'} {
		want, _ := f.CharData(c)
		got, ok := reloaded.CharData(c)
		if !ok || len(got) != 8 || !bytes.Equal(got, want) {
			t.Errorf("char data of %q = % x; want % x", c, got, want)
		}
	}
	if !reloaded.IsDense() || reloaded.Len() != 3 {
		t.Errorf("expected dense font with 3 glyphs, have %v", reloaded.Map)
	}
	if reloaded.Name != "synthetic-8x8" || reloaded.CellWidth != 8 || reloaded.CellHeight != 8 {
		t.Errorf("unexpected font header %q, cell %d × %d", reloaded.Name, reloaded.CellWidth, reloaded.CellHeight)
	}
	if diff := cmp.Diff(synth.Picture(f, 'B'), synth.Picture(reloaded, 'B')); diff != "" {
		t.Errorf("glyph 'B' differs (-want +got):\n%s", diff)
	}
}

func TestFilterSemantics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	filter := bitfont.Ranges(bitfont.Range{First: 65, Last: 67})
	f := reload(t, synth.Alphabet(), bitfont.EncodeConfig{}, filter)
	if diff := cmp.Diff([]rune{65, 66, 67}, f.CodePoints()); diff != "" {
		t.Errorf("unexpected code points (-want +got):\n%s", diff)
	}
	if len(f.Glyphs) != 3 {
		t.Errorf("expected 3 glyphs, have %d", len(f.Glyphs))
	}
	for c := rune(68); c <= 90; c++ {
		if _, ok := f.Glyph(c); ok {
			t.Errorf("did not expect glyph for %q", c)
		}
	}
	want, _ := synth.Alphabet().CharData('C')
	if got, _ := f.CharData('C'); !bytes.Equal(got, want) {
		t.Errorf("char data of 'C' = % x; want % x", got, want)
	}
	// non-contiguous ASCII code points are mapped sparsely
	f = reload(t, synth.Sparse(), bitfont.EncodeConfig{}, bitfont.Ranges(bitfont.Range{First: 0, Last: 0x7f}))
	if f.IsDense() || f.Len() != 3 {
		t.Errorf("expected sparse map of 3 code points, have %v", f.Map)
	}
	f = reload(t, synth.Sparse(), bitfont.EncodeConfig{}, bitfont.Ranges(bitfont.Range{First: 0x100, Last: 0xffff}))
	if diff := cmp.Diff([]rune{0x141, 0x20ac}, f.CodePoints()); diff != "" {
		t.Errorf("unexpected code points (-want +got):\n%s", diff)
	}
}

func TestEncodedProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	data, err := bitfont.Encode(synth.ThreeGlyphs(), bitfont.EncodeConfig{})
	if err != nil {
		t.Fatal(err)
	}
	tables, err := pcftab.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	props := tables.Props()
	ints := map[string]int32{
		"PIXEL_SIZE": 8, "POINT_SIZE": 77, "RESOLUTION_X": 75, "RESOLUTION_Y": 75,
		"FONT_ASCENT": 7, "FONT_DESCENT": 1, "DEFAULT_CHAR": 'A',
	}
	for key, want := range ints {
		if got, ok := props.Int(key); !ok || got != want {
			t.Errorf("property %s = %d; want %d", key, got, want)
		}
	}
	strs := map[string]string{
		"FONT": "synthetic-8x8", "SPACING": "M", "CHARSET_REGISTRY": "ISO10646", "CHARSET_ENCODING": "1",
	}
	for key, want := range strs {
		if got, ok := props.String(key); !ok || got != want {
			t.Errorf("property %s = %q; want %q", key, got, want)
		}
	}
	a, ok := tables.Accelerator.Unwrap()
	if !ok {
		t.Fatal("expected accelerator table")
	}
	if a.MaxOverlap != int32(a.Bounds.Max.RightBearing) || a.MaxOverlap != 8 {
		t.Errorf("expected max overlap to equal max right bearing 8, have %d", a.MaxOverlap)
	}
	if !tables.Container.Has(pcftab.Accelerators) || !tables.Container.Has(pcftab.BDFAccelerators) {
		t.Errorf("expected both accelerator tables")
	}
	if !a.ConstantWidth || !a.TerminalFont {
		t.Errorf("expected accelerator flags for a terminal font: %+v", a)
	}
}

func TestAssembleFallbacks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	data, err := bitfont.Encode(synth.Proportional(), bitfont.EncodeConfig{})
	if err != nil {
		t.Fatal(err)
	}
	tables, err := pcftab.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	tables.Accelerator = pcftab.None[*pcftab.Accelerator]()
	f, err := bitfont.Assemble(tables, bitfont.AllCodePoints)
	if err != nil {
		t.Fatal(err)
	}
	if f.Ascent != 8 || f.Descent != 3 || f.CellWidth != 12 {
		t.Errorf("expected ascent/descent from properties and cell width from metrics, have %d/%d, %d",
			f.Ascent, f.Descent, f.CellWidth)
	}
	tables.Properties = nil
	if f, err = bitfont.Assemble(tables, bitfont.AllCodePoints); err != nil {
		t.Fatal(err)
	}
	if f.Name != "unknown" || f.Ascent != bitfont.DefaultAscent || f.Descent != bitfont.DefaultDescent {
		t.Errorf("expected default name and extent, have %q, %d/%d", f.Name, f.Ascent, f.Descent)
	}
	if f.CellHeight != f.Ascent+f.Descent {
		t.Errorf("expected cell height = ascent + descent")
	}
	g, _ := f.Glyph('W')
	if g.YOffset != bitfont.DefaultAscent-8 {
		t.Errorf("expected glyph placement relative to default ascent, have y offset %d", g.YOffset)
	}
}

func TestEncodeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	//
	f := synth.Sparse()
	f.Map.(bitfont.SparseMap)['Q'] = 99
	if _, err := bitfont.Encode(f, bitfont.EncodeConfig{}); !errors.Is(err, pcftab.MissingRequired) {
		t.Errorf("expected MissingRequired for unresolvable glyph, have %v", err)
	}
	if err := f.Validate(); !errors.Is(err, pcftab.MissingRequired) {
		t.Errorf("expected Validate to report MissingRequired, have %v", err)
	}
	f = synth.ThreeGlyphs()
	f.Glyphs[2].BitmapOffset = uint32(len(f.Bitmap))
	if _, err := bitfont.Encode(f, bitfont.EncodeConfig{}); !errors.Is(err, pcftab.InvalidBitmapData) {
		t.Errorf("expected InvalidBitmapData for bitmap outside buffer, have %v", err)
	}
	if err := f.Validate(); !errors.Is(err, pcftab.InvalidBitmapData) {
		t.Errorf("expected Validate to report InvalidBitmapData, have %v", err)
	}
	f = synth.Sparse()
	f.Map.(bitfont.SparseMap)[0x1f600] = 0
	if _, err := bitfont.Encode(f, bitfont.EncodeConfig{}); !errors.Is(err, pcftab.InvalidEncodingRange) {
		t.Errorf("expected InvalidEncodingRange for code point beyond 16 bits, have %v", err)
	}
	if _, err := bitfont.Encode(synth.ThreeGlyphs(), bitfont.EncodeConfig{GlyphPad: 3}); !errors.Is(err, pcftab.UnsupportedFormat) {
		t.Errorf("expected UnsupportedFormat for glyph padding 3, have %v", err)
	}
	if _, err := bitfont.Encode(&bitfont.Font{Map: bitfont.SparseMap{}}, bitfont.EncodeConfig{}); !errors.Is(err, pcftab.MissingRequired) {
		t.Errorf("expected MissingRequired for empty font, have %v", err)
	}
}
