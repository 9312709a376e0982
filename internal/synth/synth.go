/*
Package synth creates synthetic bitmap fonts for tests.

Glyphs are drawn as ASCII art, one string per pixel row, with '#' for a set
pixel and any other character for a clear one:

	"..##..",
	".#..#.",
	"######",

Fonts are assembled in memory, so tests do not depend on font files.
*/
package synth

import (
	"github.com/npillmayer/pcf/bitfont"
	"github.com/npillmayer/pcf/pcftab"
	"golang.org/x/exp/slices"
)

// Art describes one glyph of a synthetic font.
type Art struct {
	Code    rune
	XOffset int
	YOffset int
	Advance int // 0 means width of the glyph
	Rows    []string
}

// Width returns the width of the glyph in pixels, i.e. the length of its longest row.
func (a Art) Width() int {
	w := 0
	for _, row := range a.Rows {
		w = max(w, len(row))
	}
	return w
}

// Build assembles a font from glyph art. Glyphs are ordered by code point.
// The glyph map is a DenseRange if the code points form a contiguous ASCII
// range, and a SparseMap otherwise.
func Build(name string, ascent, descent, cellWidth int, glyphs ...Art) *bitfont.Font {
	slices.SortFunc(glyphs, func(a, b Art) int { return int(a.Code - b.Code) })
	f := &bitfont.Font{
		Name:        name,
		CellWidth:   cellWidth,
		CellHeight:  ascent + descent,
		Ascent:      ascent,
		Descent:     descent,
		DefaultChar: glyphs[0].Code,
		Properties: pcftab.PropertyList{
			{Name: "FONT", Value: pcftab.StringValue(name)},
			{Name: "CHARSET_REGISTRY", Value: pcftab.StringValue("ISO10646")},
			{Name: "CHARSET_ENCODING", Value: pcftab.StringValue("1")},
		},
	}
	codes := make([]rune, len(glyphs))
	for i, a := range glyphs {
		g := bitfont.Glyph{
			Width:        a.Width(),
			Height:       len(a.Rows),
			XOffset:      a.XOffset,
			YOffset:      a.YOffset,
			Advance:      a.Advance,
			BitmapOffset: uint32(len(f.Bitmap)),
		}
		if g.Advance == 0 {
			g.Advance = g.Width
		}
		f.Bitmap = append(f.Bitmap, Pack(a.Rows, g.Width)...)
		f.Glyphs = append(f.Glyphs, g)
		codes[i] = a.Code
	}
	last := codes[len(codes)-1]
	if last < 128 && int(last-codes[0]) == len(codes)-1 {
		f.Map = bitfont.DenseRange{First: codes[0], Last: last}
	} else {
		m := make(bitfont.SparseMap, len(codes))
		for i, c := range codes {
			m[c] = i
		}
		f.Map = m
	}
	return f
}

// Pack converts ASCII art rows to a bitmap with rows packed to whole bytes,
// LSB first.
func Pack(rows []string, width int) []byte {
	stride := pcftab.RowBytes(width)
	b := make([]byte, stride*len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '#' {
				b[y*stride+x/8] |= 1 << (x % 8)
			}
		}
	}
	return b
}

// Picture renders the bitmap of the glyph for code point r as ASCII art.
func Picture(f *bitfont.Font, r rune) []string {
	g, ok := f.Glyph(r)
	if !ok {
		return nil
	}
	rows := make([]string, g.Height)
	for y := range rows {
		row := make([]byte, g.Width)
		for x := range row {
			row[x] = '.'
			if f.Pixel(g, x, y) {
				row[x] = '#'
			}
		}
		rows[y] = string(row)
	}
	return rows
}

// --- Fonts ------------------------------------------------------------------

// eightRows returns a glyph of 8 × 8 pixels, with a pattern derived from its
// code point.
func eightRows(code rune) Art {
	a := Art{Code: code, Advance: 8, Rows: make([]string, 8)}
	for y := range a.Rows {
		bits := byte(int(code)*(y+1)) ^ byte(0x18<<(y%4))
		row := []byte("........")
		for x := range row {
			if bits&(1<<x) != 0 {
				row[x] = '#'
			}
		}
		a.Rows[y] = string(row)
	}
	return a
}

// ThreeGlyphs returns a font of 8 × 8 pixel glyphs for 'A', 'B' and 'C'.
func ThreeGlyphs() *bitfont.Font {
	return Build("synthetic-8x8", 7, 1, 8, eightRows('A'), eightRows('B'), eightRows('C'))
}

// Alphabet returns a font of 8 × 8 pixel glyphs for 'A' … 'Z'.
func Alphabet() *bitfont.Font {
	var glyphs []Art
	for c := 'A'; c <= 'Z'; c++ {
		glyphs = append(glyphs, eightRows(c))
	}
	return Build("synthetic-alphabet", 7, 1, 8, glyphs...)
}

// Sparse returns a font of 8 × 8 pixel glyphs for code points spread over
// several rows of the encoding grid.
func Sparse() *bitfont.Font {
	return Build("synthetic-sparse", 7, 1, 8,
		eightRows(' '), eightRows('A'), eightRows('z'), eightRows(0xe9),
		eightRows(0x141), eightRows(0x20ac))
}

// Proportional returns a font with glyphs of varying geometry: a wide glyph
// needing two bytes per row, a narrow glyph with a left bearing, a glyph lying
// completely above the baseline, a descender and an empty space glyph.
func Proportional() *bitfont.Font {
	return Build("synthetic-proportional", 8, 3, 12,
		Art{Code: ' ', Advance: 4},
		Art{Code: '-', XOffset: 1, YOffset: 4, Advance: 6, Rows: []string{
			"####",
		}},
		Art{Code: '\'', XOffset: 1, YOffset: 0, Advance: 3, Rows: []string{
			"#",
			"#",
			"#",
		}},
		Art{Code: 'W', YOffset: 0, Advance: 12, Rows: []string{
			"#.........#",
			"#.........#",
			"#....#....#",
			"#...#.#...#",
			"#..#...#..#",
			"#.#.....#.#",
			"##.......##",
			"#.........#",
		}},
		Art{Code: 'j', XOffset: -1, YOffset: 2, Advance: 4, Rows: []string{
			"..#",
			"...",
			"..#",
			"..#",
			"..#",
			"..#",
			"..#",
			"#.#",
			".#.",
		}},
	)
}
