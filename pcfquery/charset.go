package pcfquery

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/pcf/bitfont"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Charset describes how the code points of a font relate to Unicode.
// Fonts with registry ISO10646 are indexed by Unicode code points directly;
// for all other fonts the Encoding translates font codes to Unicode.
type Charset struct {
	Name     string            // e.g. "ISO8859-1"
	Unicode  bool              // font codes are Unicode code points
	Encoding encoding.Encoding // nil if Unicode
}

// FontCharset determines the character set of a font from its
// CHARSET_REGISTRY and CHARSET_ENCODING properties, or from its XLFD name.
// Fonts without charset information are assumed to use Unicode.
func FontCharset(f *bitfont.Font) (Charset, error) {
	info := NameInfo(f)
	registry, enc := info["charset-registry"], info["charset-encoding"]
	if registry == "" {
		return Charset{Name: "ISO10646-1", Unicode: true}, nil
	}
	cs := Charset{Name: registry + "-" + enc}
	if strings.EqualFold(registry, "ISO10646") {
		cs.Unicode = true
		return cs, nil
	}
	for _, candidate := range charsetCandidates(registry, enc) {
		e, err := ianaindex.IANA.Encoding(candidate)
		if err == nil && e != nil {
			tracer().Debugf("font charset %s maps to IANA %s", cs.Name, candidate)
			cs.Encoding = e
			return cs, nil
		}
	}
	return cs, fmt.Errorf("unsupported font charset %s", cs.Name)
}

// charsetCandidates translates X11 charset names to IANA names.
func charsetCandidates(registry, enc string) []string {
	r := strings.ToUpper(registry)
	switch {
	case strings.HasPrefix(r, "ISO8859"):
		return []string{"ISO-8859-" + enc}
	case r == "ASCII" || r == "ANSI_X3.4-1968":
		return []string{"US-ASCII"}
	case r == "MICROSOFT" && strings.HasPrefix(strings.ToUpper(enc), "CP"):
		return []string{"windows-" + enc[2:]}
	}
	return []string{registry + "-" + enc, registry + enc, registry}
}

// RuneForCode returns the Unicode code point for a font code.
func (cs Charset) RuneForCode(code rune) (rune, bool) {
	if cs.Unicode {
		return code, utf8.ValidRune(code)
	}
	if cs.Encoding == nil || code < 0 || code > 0xffff {
		return 0, false
	}
	b := []byte{byte(code)}
	if code > 0xff {
		b = []byte{byte(code >> 8), byte(code)}
	}
	out, err := cs.Encoding.NewDecoder().Bytes(b)
	if err != nil {
		return 0, false
	}
	r, size := utf8.DecodeRune(out)
	if r == utf8.RuneError || size != len(out) {
		return 0, false
	}
	return r, true
}

// CodeForRune returns the font code for a Unicode code point.
func (cs Charset) CodeForRune(r rune) (rune, bool) {
	if cs.Unicode {
		return r, r >= 0 && r <= 0xffff
	}
	if cs.Encoding == nil {
		return 0, false
	}
	b, err := encoding.HTMLEscapeUnsupported(cs.Encoding.NewEncoder()).Bytes([]byte(string(r)))
	if err != nil {
		return 0, false
	}
	switch len(b) {
	case 1:
		return rune(b[0]), true
	case 2:
		return rune(b[0])<<8 | rune(b[1]), true
	}
	return 0, false
}

// GlyphForRune returns the glyph of a font for a Unicode code point, taking
// the font's charset into account. If the font has no glyph for r, the glyph
// for the font's default character is returned, if present.
func GlyphForRune(f *bitfont.Font, cs Charset, r rune) (bitfont.Glyph, bool) {
	if code, ok := cs.CodeForRune(r); ok {
		if g, ok := f.Glyph(code); ok {
			return g, true
		}
	}
	return f.Glyph(f.DefaultChar)
}
