package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/pcf"
	"github.com/npillmayer/pcf/bitfont"
	"github.com/npillmayer/pcf/pcfquery"
	"github.com/npillmayer/pcf/pcftab"
	"github.com/thatisuday/commando"
	"golang.org/x/exp/slices"
)

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := fontArg(args)
	font := mustLoadFont(fontPath, mustFlagString(flags["ranges"], "ranges"))

	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Name: %s\n", font.Name)
	names := pcfquery.NameInfo(font)
	if family := names["family"]; family != "" {
		fmt.Printf("Family: %s\n", family)
	}
	if weight := names["weight"]; weight != "" {
		fmt.Printf("Weight: %s\n", weight)
	}
	if cs, err := pcfquery.FontCharset(font); err == nil {
		fmt.Printf("Charset: %s\n", cs.Name)
	} else {
		fmt.Printf("Charset: %v\n", err)
	}
	m := pcfquery.FontMetrics(font)
	fmt.Printf("Size: %dpx %.1fpt (%dx%d dpi)\n", m.PixelSize, m.PointSize, m.ResolutionX, m.ResolutionY)
	fmt.Printf("Cell: %dx%d ascent=%d descent=%d monospaced=%v\n",
		m.CellWidth, m.CellHeight, m.Ascent, m.Descent, m.Monospaced)
	fmt.Printf("Glyphs: %d (%s)\n", font.Len(), describeMap(font))

	tables := mustDecodeTables(fontPath)
	entries := slices.Clone(tables.Container.Entries)
	slices.SortFunc(entries, func(a, b pcftab.TableEntry) int { return int(a.Offset) - int(b.Offset) })
	fmt.Printf("Tables (%d):", len(entries))
	for _, e := range entries {
		fmt.Printf(" %s", e.Type)
	}
	fmt.Println()
	warnings := tables.Warnings()
	fmt.Printf("Issues: warnings=%d\n", len(warnings))

	if mustFlagBool(flags["props"], "props") {
		for name, value := range pcfquery.NamesRange(font) {
			fmt.Printf("%s = %q\n", name, value)
		}
		for _, p := range font.Properties {
			if _, ok := p.Value.(pcftab.IntValue); ok {
				fmt.Printf("%s = %s\n", p.Name, p.Value)
			}
		}
	}
	if mustFlagBool(flags["warnings"], "warnings") {
		for _, w := range warnings {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

func describeMap(font *bitfont.Font) string {
	if d, ok := font.Map.(bitfont.DenseRange); ok {
		return fmt.Sprintf("dense %#x-%#x", d.First, d.Last)
	}
	codes := font.CodePoints()
	if len(codes) == 0 {
		return "empty"
	}
	return fmt.Sprintf("sparse %#x…%#x", codes[0], codes[len(codes)-1])
}

func mustDecodeTables(path string) *pcftab.Tables {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("cannot read font %s: %v", path, err)
	}
	tables, err := pcf.DecodeTables(data)
	if err != nil {
		fatalf("cannot decode font %s: %v", path, err)
	}
	return tables
}

func runConvertCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := fontArg(args)
	outPath := strings.TrimSpace(args["output"].Value)
	if outPath == "" {
		fatalf("output path is required")
	}
	font := mustLoadFont(fontPath, mustFlagString(flags["ranges"], "ranges"))
	cfg := bitfont.EncodeConfig{
		BigEndian:  mustFlagBool(flags["big-endian"], "big-endian"),
		MSBitFirst: mustFlagBool(flags["msb-bit"], "msb-bit"),
		GlyphPad:   mustFlagInt(flags["pad"], "pad"),
		Resolution: mustFlagInt(flags["resolution"], "resolution"),
	}
	if err := pcf.Save(font, outPath, pcf.WithEncodeConfig(cfg)); err != nil {
		if errors.Is(err, pcftab.UnsupportedFormat) {
			fatalf("invalid --pad flag: %v", err)
		}
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s (glyphs=%d)\n", outPath, font.Len())
}
