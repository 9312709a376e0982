/*
Package pcftab provides access to the tables of fonts in the Portable Compiled
Format (PCF), the binary bitmap font format of the X Window System.

A PCF file is a small container: an 8-byte header, a table of contents and a
number of tables, each of which declares its own layout through a format word.
The format word selects byte order, bit order, row padding of glyph bitmaps
and, for metric tables, whether metrics are stored in a compressed form.
Package `pcftab` will decode the table of contents and the five tables needed
to use a font (properties, accelerators, metrics, encodings and bitmaps) and
will serialize them again. It does not interpret glyph bitmaps; assembling
glyphs into a usable font is the task of package `bitfont`.

PCF files are frequently found in the wild with all kinds of defects, and font
files may be handed to us from untrusted sources. Every table access is
bounds-checked against the file, every count read from a table is checked
against a sanity ceiling, and every field is read through a bounds-checked
view. Errors are reported as *Error, carrying an ErrorKind which clients may
test for with errors.Is:

	if errors.Is(err, pcftab.TableOffsetOutOfBounds) { … }

# Byte order

The table of contents is always little endian. Each table starts with its
format word, again always little endian; the remaining fields of the table use
the byte order stated by that format word.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package pcftab

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.pcf'
func tracer() tracing.Trace {
	return tracing.Select("font.pcf")
}
