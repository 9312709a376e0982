package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	switch strings.ToLower(topic) {
	case "glyph", "glyphs", "show":
		pterm.Info.Println("Glyphs")
		pterm.Println(`
	Glyphs are addressed by code point, either as a single character or in
	numeric notation: decimal (65), hex (0x41 or U+0041) or octal (0101).

	glyph:A      prints the metrics of the glyph for 'A'
	show:U+00E9  draws the bitmap of the glyph for 'é'
	`)
	case "filter", "ranges":
		pterm.Info.Println("Filter")
		pterm.Println(`
	A filter selects the code points whose glyphs are loaded:
	+-------------------------+
	| first-last,first-last,… |
	+-------------------------+
	filter:0x20-0x7e,0xa0-0xff  keeps Latin-1 only
	filter:all                  loads all glyphs again
	Fonts containing only a contiguous ASCII range use a dense glyph map.
	`)
	case "tables", "props", "properties":
		pterm.Info.Println("Tables and Properties")
		pterm.Println(`
	tables        lists the table of contents of the font file
	props         lists all font properties
	props:FONT    prints a single property
	metrics       prints font-wide metrics
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	tables  props[:NAME]  metrics  glyph:CP  show:CP
	filter:RANGES  save:FILE  help[:TOPIC]  quit
	Steps may be chained on one line, e.g. "filter:0x41-0x5a show:Q".
	`)
	}
}
