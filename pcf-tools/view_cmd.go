package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/pcf/bitfont"
	"github.com/npillmayer/pcf/face"
	"github.com/thatisuday/commando"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := fontArg(args)
	input, err := parseTextInput(args["text"].Value, mustFlagString(flags["codepoints"], "codepoints"))
	if err != nil {
		fatalf("%v", err)
	}
	if input == "" {
		fatalf("input text is empty")
	}
	outPath, err := flags["output"].GetString()
	if err != nil {
		fatalf("invalid --output flag: %v", err)
	}
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		fatalf("output path is empty")
	}
	scale := mustFlagInt(flags["scale"], "scale")
	margin := mustFlagInt(flags["margin"], "margin")
	showBBoxes := mustFlagBool(flags["show-bboxes"], "show-bboxes")
	if scale <= 0 {
		fatalf("--scale must be > 0")
	}
	if margin < 0 {
		fatalf("--margin must be >= 0")
	}
	bf := mustLoadFont(fontPath, "all")
	if bf.Len() == 0 {
		fatalf("font has no glyphs")
	}
	img := renderText(face.New(bf), input, margin, showBBoxes)
	if err := writePNG(img, outPath, scale); err != nil {
		fatalf("render failed: %v", err)
	}
	fmt.Printf("wrote %s (runes=%d, %dx%d)\n", outPath, len([]rune(input)),
		img.Bounds().Dx()*scale, img.Bounds().Dy()*scale)
}

// renderText draws text black on white, with the baseline at the font's
// ascent below the top margin.
func renderText(f font.Face, text string, margin int, showBBoxes bool) *image.RGBA {
	m := f.Metrics()
	advance := font.MeasureString(f, text)
	width := advance.Ceil() + 2*margin
	height := m.Height.Ceil() + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: f,
		Dot:  fixed.P(margin, margin+m.Ascent.Ceil()),
	}
	if showBBoxes {
		dot := d.Dot
		for _, r := range text {
			bounds, adv, _ := f.GlyphBounds(r)
			drawRectOutline(img,
				(dot.X + bounds.Min.X).Floor(), (dot.Y + bounds.Min.Y).Floor(),
				(dot.X + bounds.Max.X).Ceil(), (dot.Y + bounds.Max.Y).Ceil(),
				color.RGBA{255, 0, 0, 255})
			dot.X += adv
		}
	}
	d.DrawString(text)
	return img
}

func writePNG(img image.Image, outPath string, scale int) error {
	b := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, scaled); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

// parseTextInput returns the text to render: the code points of the
// --codepoints flag if given ("-" means none), else the text argument.
func parseTextInput(text string, codepoints string) (string, error) {
	cp := strings.TrimSpace(codepoints)
	if cp == "-" {
		cp = ""
	}
	if cp != "" {
		runes, err := parseCodepoints(cp)
		if err != nil {
			return "", err
		}
		return string(runes), nil
	}
	// commando joins the parts of variadic arguments with commas
	return strings.ReplaceAll(text, ",", " "), nil
}

func parseCodepoints(spec string) ([]rune, error) {
	parts := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := bitfont.ParseCodePoint(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func drawRectOutline(img *image.RGBA, minX int, minY int, maxX int, maxY int, c color.RGBA) {
	r := image.Rect(minX, minY, maxX, maxY).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}
