package pcfquery

import (
	"testing"

	"github.com/npillmayer/pcf/bitfont"
	"github.com/npillmayer/pcf/internal/synth"
	"github.com/npillmayer/pcf/pcftab"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	mono, prop *bitfont.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.pcf")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.pcf").SetTraceLevel(tracing.LevelError)
	env.mono = synth.ThreeGlyphs()
	env.prop = synth.Proportional()
	tracing.Select("font.pcf").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

func withCharset(f *bitfont.Font, registry, encoding string) *bitfont.Font {
	f.Properties = pcftab.PropertyList{
		{Name: "FONT", Value: pcftab.StringValue(f.Name)},
		{Name: "CHARSET_REGISTRY", Value: pcftab.StringValue(registry)},
		{Name: "CHARSET_ENCODING", Value: pcftab.StringValue(encoding)},
	}
	return f
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.mono)
	env.True(m.Monospaced, "expected font of equal advances to be monospaced")
	env.Equal(8, m.MaxAdvance)
	env.Equal(8, m.PixelSize)
	env.Equal(7, m.Ascent)
	env.Equal(1, m.Descent)
	env.Equal(bitfont.DefaultResolution, m.ResolutionY)
	env.InDelta(8*72.27/75, m.PointSize, 0.001)
	//
	m = FontMetrics(env.prop)
	env.False(m.Monospaced, "expected proportional font")
	env.Equal(12, m.MaxAdvance)
	env.Equal(11, m.CellHeight)
}

func (env *InfoTestEnviron) TestFontMetricsFromProperties() {
	f := synth.Proportional()
	f.Properties = append(f.Properties,
		pcftab.Property{Name: "PIXEL_SIZE", Value: pcftab.IntValue(13)},
		pcftab.Property{Name: "POINT_SIZE", Value: pcftab.IntValue(120)},
		pcftab.Property{Name: "RESOLUTION_Y", Value: pcftab.IntValue(100)},
		pcftab.Property{Name: "SPACING", Value: pcftab.StringValue("C")},
	)
	m := FontMetrics(f)
	env.Equal(13, m.PixelSize)
	env.Equal(12.0, m.PointSize)
	env.Equal(100, m.ResolutionY)
	env.Equal(bitfont.DefaultResolution, m.ResolutionX)
	env.True(m.Monospaced, "expected SPACING property to override glyph advances")
}

func (env *InfoTestEnviron) TestGlyphMetrics() {
	m, ok := GlyphMetrics(env.prop, '-')
	env.Require().True(ok, "expected metrics for '-'")
	env.Equal(6, m.Advance)
	env.Equal(1, m.LSB)
	env.Equal(1, m.RSB)
	env.Equal(BoundingBox{MinX: 1, MinY: 3, MaxX: 5, MaxY: 4}, m.BBox)
	env.Equal(m.BBox, m.Ink)
	//
	m, ok = GlyphMetrics(env.prop, 'W')
	env.Require().True(ok, "expected metrics for 'W'")
	env.Equal(BoundingBox{MinX: 0, MinY: 0, MaxX: 11, MaxY: 8}, m.BBox)
	env.Equal(11, m.Ink.Dx())
	env.Equal(8, m.Ink.Dy())
	//
	m, ok = GlyphMetrics(env.prop, 'j')
	env.Require().True(ok, "expected metrics for 'j'")
	env.Less(m.BBox.MinY, 0, "expected descender to reach below the baseline")
	env.Equal(-1, m.LSB)
	//
	m, ok = GlyphMetrics(env.prop, ' ')
	env.Require().True(ok, "expected metrics for space")
	env.True(m.BBox.IsEmpty())
	env.True(m.Ink.IsEmpty())
	env.Equal(4, m.Advance)
	//
	_, ok = GlyphMetrics(env.prop, 'x')
	env.False(ok, "expected no metrics for missing glyph")
}

func (env *InfoTestEnviron) TestNamesRange() {
	var names []string
	for name, value := range NamesRange(env.mono) {
		env.NotEmpty(value)
		names = append(names, name)
	}
	env.Equal([]string{"FONT", "CHARSET_REGISTRY", "CHARSET_ENCODING"}, names)
	count := 0
	for range NamesRange(env.mono) {
		count++
		break
	}
	env.Equal(1, count)
}

func (env *InfoTestEnviron) TestGeneralInfo() {
	f := synth.ThreeGlyphs()
	f.Name = "-misc-fixed-bold-r-normal--8-80-75-75-c-80-iso8859-1"
	f.Properties = pcftab.PropertyList{
		{Name: "FAMILY_NAME", Value: pcftab.StringValue("Fixed")},
		{Name: "COPYRIGHT", Value: pcftab.StringValue("Public domain")},
	}
	info := NameInfo(f)
	env.T().Logf("info = %v", info)
	env.Equal("Fixed", info["family"], "expected property to override XLFD family")
	env.Equal("misc", info["foundry"])
	env.Equal("bold", info["weight"])
	env.Equal("C", info["spacing"])
	env.Equal("iso8859", info["charset-registry"])
	env.Equal("Public domain", info["copyright"])
	env.Equal(f.Name, info["name"])
	//
	info = NameInfo(env.mono)
	env.Equal("synthetic-8x8", info["name"])
	env.Equal("ISO10646", info["charset-registry"])
	_, ok := info["family"]
	env.False(ok, "expected no family for font without XLFD name")
}

func (env *InfoTestEnviron) TestParseXLFD() {
	x, ok := ParseXLFD("-misc-fixed-medium-r-semicondensed--13-120-75-75-c-60-iso10646-1")
	env.Require().True(ok)
	env.Equal("fixed", x.Family)
	env.Equal("semicondensed", x.SetWidth)
	env.Equal("", x.AddStyle)
	env.Equal("13", x.PixelSize)
	env.Equal("60", x.AverageWidth)
	env.Equal("1", x.CharsetEnc)
	_, ok = ParseXLFD("fixed")
	env.False(ok)
	_, ok = ParseXLFD("-misc-fixed-medium")
	env.False(ok)
}

func (env *InfoTestEnviron) TestUnicodeCharset() {
	cs, err := FontCharset(synth.Sparse())
	env.Require().NoError(err)
	env.True(cs.Unicode)
	env.Equal("ISO10646-1", cs.Name)
	r, ok := cs.RuneForCode(0x20ac)
	env.True(ok)
	env.Equal(rune(0x20ac), r)
	g, ok := GlyphForRune(synth.Sparse(), cs, 0x141)
	env.Require().True(ok)
	want, _ := synth.Sparse().Glyph(0x141)
	env.Equal(want, g)
}

func (env *InfoTestEnviron) TestLatinCharsets() {
	latin1 := withCharset(synth.Sparse(), "ISO8859", "1")
	cs, err := FontCharset(latin1)
	env.Require().NoError(err)
	env.False(cs.Unicode)
	code, ok := cs.CodeForRune('é')
	env.True(ok)
	env.Equal(rune(0xe9), code)
	_, ok = cs.CodeForRune('€')
	env.False(ok, "expected Euro sign not to be encodable in Latin-1")
	// unencodable runes fall back to the default character
	g, ok := GlyphForRune(latin1, cs, '€')
	env.Require().True(ok)
	space, _ := latin1.Glyph(' ')
	env.Equal(space, g)
	//
	cs, err = FontCharset(withCharset(synth.Sparse(), "ISO8859", "2"))
	env.Require().NoError(err)
	code, ok = cs.CodeForRune('Ł')
	env.True(ok)
	env.Equal(rune(0xa3), code)
	r, ok := cs.RuneForCode(0xa3)
	env.True(ok)
	env.Equal('Ł', r)
}

func (env *InfoTestEnviron) TestUnsupportedCharset() {
	_, err := FontCharset(withCharset(synth.Sparse(), "NO-SUCH", "CHARSET"))
	env.Error(err)
}
