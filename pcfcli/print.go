package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/pcf/bitfont"
	"github.com/npillmayer/pcf/pcfquery"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	data := [][]string{
		{"Type", "Offset", "Size", "Format"},
	}
	for _, e := range intp.tables.Container.Entries {
		data = append(data, []string{
			e.Type.String(),
			fmt.Sprintf("%d", e.Offset),
			fmt.Sprintf("%d", e.Size),
			fmt.Sprintf("0x%x", e.Format),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if a, ok := intp.tables.Accelerator.Unwrap(); ok {
		pterm.Printf("accelerator: ascent=%d descent=%d max-overlap=%d terminal=%v constant-width=%v\n",
			a.FontAscent, a.FontDescent, a.MaxOverlap, a.TerminalFont, a.ConstantWidth)
	}
	for _, w := range intp.tables.Warnings() {
		pterm.Warning.Println(w.String())
	}
	return nil, false
}

func propsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	data := [][]string{
		{"Property", "Value"},
	}
	for _, p := range intp.font.Properties {
		if op.arg != "" && !strings.EqualFold(op.arg, p.Name) {
			continue
		}
		data = append(data, []string{p.Name, p.Value.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	info := pcfquery.NameInfo(intp.font)
	if family := info["family"]; family != "" {
		pterm.Printf("family: %s\n", family)
	}
	cs, err := pcfquery.FontCharset(intp.font)
	if err != nil {
		pterm.Warning.Println(err.Error())
	} else {
		pterm.Printf("charset: %s (unicode=%v)\n", cs.Name, cs.Unicode)
	}
	return nil, false
}

func metricsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	m := pcfquery.FontMetrics(intp.font)
	pterm.Printf("size: %d px, %.1f pt at %d×%d dpi\n", m.PixelSize, m.PointSize, m.ResolutionX, m.ResolutionY)
	pterm.Printf("cell: %d×%d, ascent=%d descent=%d\n", m.CellWidth, m.CellHeight, m.Ascent, m.Descent)
	pterm.Printf("max advance: %d, monospaced: %v\n", m.MaxAdvance, m.Monospaced)
	if intp.font.IsDense() {
		pterm.Printf("glyph map: dense range %v\n", intp.font.Map)
	} else {
		pterm.Printf("glyph map: sparse, %d code points\n", intp.font.Len())
	}
	return nil, false
}

// codePointArg interprets the argument of an op as a code point, either in
// numeric notation or as a single character.
func codePointArg(op *Op) (rune, error) {
	if op.arg == "" {
		return 0, errors.New("code point missing, e.g. glyph:U+0041 or glyph:A")
	}
	if r := []rune(op.arg); len(r) == 1 {
		return r[0], nil
	}
	return bitfont.ParseCodePoint(op.arg)
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	r, err := codePointArg(op)
	if err != nil {
		return err, false
	}
	m, ok := pcfquery.GlyphMetrics(intp.font, r)
	if !ok {
		return fmt.Errorf("no glyph for U+%04X", r), false
	}
	pterm.Printf("U+%04X %s\n", r, runenames.Name(r))
	pterm.Printf("advance=%d lsb=%d rsb=%d\n", m.Advance, m.LSB, m.RSB)
	pterm.Printf("bbox=(%d,%d)-(%d,%d) ink=(%d,%d)-(%d,%d)\n",
		m.BBox.MinX, m.BBox.MinY, m.BBox.MaxX, m.BBox.MaxY,
		m.Ink.MinX, m.Ink.MinY, m.Ink.MaxX, m.Ink.MaxY)
	return nil, false
}

func showOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	r, err := codePointArg(op)
	if err != nil {
		return err, false
	}
	g, ok := intp.font.Glyph(r)
	if !ok {
		return fmt.Errorf("no glyph for U+%04X", r), false
	}
	ascent := g.Ascent(intp.font.Ascent)
	for y := 0; y < g.Height; y++ {
		sb := strings.Builder{}
		for x := 0; x < g.Width; x++ {
			if intp.font.Pixel(g, x, y) {
				sb.WriteString("██")
			} else {
				sb.WriteString("··")
			}
		}
		if y == ascent-1 {
			sb.WriteString(" ← baseline")
		}
		pterm.Println(sb.String())
	}
	return nil, false
}
