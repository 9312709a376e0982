/*
Package pcf loads and saves bitmap fonts in the Portable Compiled Format (PCF).

PCF is the binary font format of the X Window System. Fonts are frequently
distributed gzip-compressed, as *.pcf.gz files. Package pcf reads both forms:

	font, err := pcf.Load("/usr/share/fonts/X11/misc/6x13.pcf.gz", bitfont.AllCodePoints)

A filter restricts the code points loaded:

	latin := bitfont.Ranges(bitfont.Range{First: 0x20, Last: 0x7e})
	font, err := pcf.Load(path, latin)

Fonts are saved with

	err := pcf.Save(font, "out.pcf.gz")

which compresses the font file if the path ends in ".gz".

Loading a font is a pipeline of three steps, each of which is available to
clients on its own: package pcftab decodes the tables of a font file, package
bitfont assembles the glyphs of a font from these tables, and encodes a font
again.

# Status

PCF fonts with more than 65536 glyphs, the BDF text format and rendering of
glyphs beyond a golang.org/x/image/font.Face adapter are not supported.

# Links

The PCF format, as implemented by the X Window System:
https://fontforge.org/docs/techref/pcf-format.html

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package pcf

import (
	"fmt"

	"github.com/npillmayer/pcf/bitfont"
	"github.com/npillmayer/pcf/internal/fontload"
	"github.com/npillmayer/pcf/pcftab"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.pcf'
func tracer() tracing.Trace {
	return tracing.Select("font.pcf")
}

// Load loads a PCF font file, which may be gzip-compressed.
// Only glyphs for code points passing filter are loaded.
func Load(path string, filter bitfont.Filter) (*bitfont.Font, error) {
	data, err := fontload.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading font %s: %w", path, err)
	}
	font, err := Parse(data, filter)
	if err != nil {
		return nil, fmt.Errorf("loading font %s: %w", path, err)
	}
	tracer().Infof("loaded font %q from %s", font.Name, path)
	return font, nil
}

// Parse decodes a PCF font from memory. Gzip-compressed data is detected by
// its magic bytes. The font returned does not reference data.
func Parse(data []byte, filter bitfont.Filter) (*bitfont.Font, error) {
	tables, err := DecodeTables(data)
	if err != nil {
		return nil, err
	}
	for _, w := range tables.Warnings() {
		tracer().Debugf("%s", w)
	}
	return bitfont.Assemble(tables, filter)
}

// DecodeTables decodes the tables of a PCF font, without assembling its glyphs.
// Gzip-compressed data is detected by its magic bytes.
func DecodeTables(data []byte) (*pcftab.Tables, error) {
	data, err := fontload.Unwrap(data)
	if err != nil {
		return nil, err
	}
	return pcftab.Decode(data)
}

// Encode serializes a font to PCF. The result is not compressed.
func Encode(font *bitfont.Font, cfg bitfont.EncodeConfig) ([]byte, error) {
	return bitfont.Encode(font, cfg)
}

// SaveOption configures Save.
type SaveOption func(*saveOptions)

type saveOptions struct {
	config   bitfont.EncodeConfig
	compress *bool
}

// WithEncodeConfig sets the layout of the tables of a saved font.
func WithEncodeConfig(cfg bitfont.EncodeConfig) SaveOption {
	return func(opts *saveOptions) {
		opts.config = cfg
	}
}

// Compressed forces or suppresses gzip compression, independent of the
// file's name.
func Compressed(on bool) SaveOption {
	return func(opts *saveOptions) {
		opts.compress = &on
	}
}

// Save writes a font to a PCF file. If the path ends in ".gz", the file is
// compressed with gzip. Nothing is written if the font cannot be encoded.
func Save(font *bitfont.Font, path string, options ...SaveOption) error {
	opts := saveOptions{}
	for _, option := range options {
		option(&opts)
	}
	compress := fontload.IsCompressedPath(path)
	if opts.compress != nil {
		compress = *opts.compress
	}
	data, err := bitfont.Encode(font, opts.config)
	if err != nil {
		return fmt.Errorf("saving font %s: %w", path, err)
	}
	if err = fontload.WriteFile(path, data, compress); err != nil {
		return fmt.Errorf("saving font %s: %w", path, err)
	}
	tracer().Infof("saved font %q to %s", font.Name, path)
	return nil
}
