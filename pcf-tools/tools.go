package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/pcf"
	"github.com/npillmayer/pcf/bitfont"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("pcf-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for inspecting, converting and rendering PCF bitmap fonts.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("info").
		SetDescription("Print names, metrics and the table of contents of a PCF font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "PCF font file path (may be gzip-compressed)", "").
		AddFlag("ranges,r", "code point ranges to load (e.g. 0x20-0x7e,U+20AC)", commando.String, "all").
		AddFlag("props,p", "print all font properties", commando.Bool, nil).
		AddFlag("warnings,w", "print decoding warnings", commando.Bool, nil).
		SetAction(runInfoCommand)

	commando.
		Register("convert").
		SetDescription("Re-encode a PCF font, optionally reducing it to a set of code point ranges.").
		SetShortDescription("convert font").
		AddArgument("font", "PCF font file path (may be gzip-compressed)", "").
		AddArgument("output", "output file path; a .gz suffix selects gzip compression", "").
		AddFlag("ranges,r", "code point ranges to keep (e.g. 0x20-0x7e,0xa0-0xff)", commando.String, "all").
		AddFlag("big-endian,b", "write tables in big-endian byte order", commando.Bool, nil).
		AddFlag("msb-bit,m", "write bitmaps most significant bit first", commando.Bool, nil).
		AddFlag("pad", "bitmap row padding in bytes: 1, 2, 4 or 8", commando.Int, 4).
		AddFlag("resolution", "resolution in dpi stated in the font's properties", commando.Int, bitfont.DefaultResolution).
		SetAction(runConvertCommand)

	commando.
		Register("view").
		SetDescription("Render text with a PCF font to a PNG image.").
		SetShortDescription("render to image").
		AddArgument("font", "PCF font file path (may be gzip-compressed)", "").
		AddArgument("text...", "text to render", "").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0041,U+00E9)", commando.String, "-").
		AddFlag("output,o", "output PNG file", commando.String, "pcf-tools-view.png").
		AddFlag("scale,s", "integer scale factor of the image", commando.Int, 4).
		AddFlag("margin", "margin around the text in font pixels", commando.Int, 2).
		AddFlag("show-bboxes,B", "draw red bounding-box outlines per rendered glyph", commando.Bool, nil).
		SetAction(runViewCommand)

	commando.Parse(nil)
}

func mustLoadFont(path string, ranges string) *bitfont.Font {
	filter, err := bitfont.ParseFilter(ranges)
	if err != nil {
		fatalf("invalid --ranges flag: %v", err)
	}
	font, err := pcf.Load(path, filter)
	if err != nil {
		fatalf("%v", err)
	}
	return font
}

func fontArg(args map[string]commando.ArgValue) string {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	return fontPath
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "pcf-tools: "+format+"\n", args...)
	os.Exit(1)
}
