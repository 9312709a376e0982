package pcftab

import (
	"encoding/binary"
	"fmt"
)

// Magic is the file signature "\x01fcp", read as a little-endian 32-bit value.
const Magic uint32 = 0x70636601

const (
	headerSize   = 8  // magic + table count
	tocEntrySize = 16 // type + format + size + offset
)

// Maximum reasonable counts for PCF table structures.
// These limits prevent malicious fonts from claiming unreasonably large counts
// that could lead to excessive memory allocation or out-of-bounds reads.
const (
	MaxTableCount    = 64    // Tables: at most 9 types are defined
	MaxPropertyCount = 1000  // Properties: typically < 30
	MaxGlyphCount    = 65536 // Glyphs: one per 16-bit code point
)

// TableType identifies a table in a PCF file. Table types are bit flags.
type TableType uint32

// Table types defined for PCF files.
const (
	Properties      TableType = 1 << 0
	Accelerators    TableType = 1 << 1
	Metrics         TableType = 1 << 2
	Bitmaps         TableType = 1 << 3
	InkMetrics      TableType = 1 << 4
	Encodings       TableType = 1 << 5
	SWidths         TableType = 1 << 6
	GlyphNames      TableType = 1 << 7
	BDFAccelerators TableType = 1 << 8
)

func (t TableType) String() string {
	switch t {
	case Properties:
		return "properties"
	case Accelerators:
		return "accelerators"
	case Metrics:
		return "metrics"
	case Bitmaps:
		return "bitmaps"
	case InkMetrics:
		return "ink-metrics"
	case Encodings:
		return "encodings"
	case SWidths:
		return "swidths"
	case GlyphNames:
		return "glyph-names"
	case BDFAccelerators:
		return "bdf-accelerators"
	}
	return fmt.Sprintf("table(0x%x)", uint32(t))
}

// TableEntry locates one table within a font file.
type TableEntry struct {
	Type   TableType
	Format uint32 // format word as stated in the table of contents
	Size   uint32 // byte size of the table
	Offset uint32 // byte offset of the table from the start of the file
}

func (e TableEntry) String() string {
	return fmt.Sprintf("%s@%d[%d] format=0x%x", e.Type, e.Offset, e.Size, e.Format)
}

// Container is the table of contents of a PCF file, together with the file's data.
// A Container references the font's bytes; they must not change while the
// Container is in use.
type Container struct {
	Entries []TableEntry
	data    binarySegm
}

// ReadContainer checks the file header and reads the table of contents.
// No table content is interpreted.
func ReadContainer(font []byte) (*Container, error) {
	src := binarySegm(font)
	h, err := src.view(0, headerSize)
	if err != nil {
		return nil, newError(InvalidFormat, 0, 0, "file too short for header: %d bytes", len(font))
	}
	if magic := binary.LittleEndian.Uint32(h); magic != Magic {
		return nil, newError(InvalidFormat, 0, 0, "not a PCF file, magic is 0x%08x", magic)
	}
	count := binary.LittleEndian.Uint32(h[4:])
	tracer().Debugf("PCF header: %d tables", count)
	if count == 0 || count > MaxTableCount {
		return nil, newError(InvalidFormat, 0, 4, "table count %d out of range [1…%d]", count, MaxTableCount)
	}
	tocSize, err := checkedMulInt(tocEntrySize, int(count))
	if err != nil {
		return nil, newError(InvalidFormat, 0, 4, "table count too large: %v", err)
	}
	toc, err := src.view(headerSize, tocSize)
	if err != nil {
		return nil, newError(InvalidFormat, 0, headerSize, "table of contents exceeds file size %d", len(font))
	}
	c := &Container{
		Entries: make([]TableEntry, count),
		data:    src,
	}
	for i := range c.Entries {
		b := toc[i*tocEntrySize:]
		c.Entries[i] = TableEntry{
			Type:   TableType(binary.LittleEndian.Uint32(b[0:])),
			Format: binary.LittleEndian.Uint32(b[4:]),
			Size:   binary.LittleEndian.Uint32(b[8:]),
			Offset: binary.LittleEndian.Uint32(b[12:]),
		}
	}
	return c, nil
}

// Len returns the byte size of the font file.
func (c *Container) Len() int {
	return len(c.data)
}

// Entry returns the first table of contents entry for a given table type.
func (c *Container) Entry(t TableType) (TableEntry, bool) {
	for _, e := range c.Entries {
		if e.Type == t {
			return e, true
		}
	}
	return TableEntry{}, false
}

// Has reports whether the font contains a table of type t.
func (c *Container) Has(t TableType) bool {
	_, ok := c.Entry(t)
	return ok
}

// Table returns the bytes of the table of type t, after checking the table's
// bounds against the file. If the font does not contain such a table,
// an error of kind MissingRequired is returned.
func (c *Container) Table(t TableType) ([]byte, TableEntry, error) {
	e, ok := c.Entry(t)
	if !ok {
		return nil, e, newError(MissingRequired, t, 0, "font has no %s table", t)
	}
	b, err := c.TableData(e)
	return b, e, err
}

// TableData returns the bytes of the table located by e, after checking the
// table's bounds against the file.
func (c *Container) TableData(e TableEntry) ([]byte, error) {
	if err := checkBounds(len(c.data), e); err != nil {
		return nil, err
	}
	return c.data[e.Offset : e.Offset+e.Size], nil
}

// checkBounds validates a table entry against the length of the font file.
// It has to be called before any byte of a table is read.
func checkBounds(length int, e TableEntry) error {
	if e.Size == 0 {
		return newError(InvalidTableEntry, e.Type, e.Offset, "table has size 0")
	}
	if uint64(e.Offset) > uint64(length) {
		return newError(TableOffsetOutOfBounds, e.Type, e.Offset,
			"table offset %d exceeds file size %d", e.Offset, length)
	}
	if uint64(e.Size) > uint64(length)-uint64(e.Offset) {
		return newError(TableOffsetOutOfBounds, e.Type, e.Offset,
			"table bounds [%d:%d] exceed file size %d", e.Offset, uint64(e.Offset)+uint64(e.Size), length)
	}
	return nil
}
