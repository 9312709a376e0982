package pcftab

import (
	"encoding/binary"

	"golang.org/x/exp/slices"
)

// maxTableSize limits the size of a single serialized table.
const maxTableSize = 1 << 30

// TableData is a serialized table, ready to be placed into a container.
// Data starts with the table's format word.
type TableData struct {
	Type   TableType
	Format Format
	Data   []byte
}

// WriteContainer assembles a PCF file from serialized tables. Table of contents
// entries are sorted by table type, and every table starts at an offset aligned
// to 4 bytes. Gaps between tables are filled with zeros.
func WriteContainer(tables []TableData) ([]byte, error) {
	if len(tables) == 0 || len(tables) > MaxTableCount {
		return nil, newError(InvalidFormat, 0, 0, "cannot write %d tables", len(tables))
	}
	sorted := slices.Clone(tables)
	slices.SortStableFunc(sorted, func(a, b TableData) int {
		switch {
		case a.Type < b.Type:
			return -1
		case a.Type > b.Type:
			return 1
		}
		return 0
	})
	entries := make([]TableEntry, len(sorted))
	offset := uint32(headerSize + tocEntrySize*len(sorted))
	for i, t := range sorted {
		if len(t.Data) == 0 {
			return nil, newError(InvalidTableEntry, t.Type, 0, "table is empty")
		}
		entries[i] = TableEntry{
			Type:   t.Type,
			Format: t.Format.Word(),
			Size:   uint32(len(t.Data)),
			Offset: offset,
		}
		end, err := checkedAddUint32(offset, uint32(align4(len(t.Data))))
		if err != nil || len(t.Data) > maxTableSize {
			return nil, newError(InvalidTableEntry, t.Type, offset, "font data too large: %v", err)
		}
		offset = end
	}
	out := make([]byte, 0, offset)
	out = binary.LittleEndian.AppendUint32(out, Magic)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(entries)))
	for _, e := range entries {
		out = binary.LittleEndian.AppendUint32(out, uint32(e.Type))
		out = binary.LittleEndian.AppendUint32(out, e.Format)
		out = binary.LittleEndian.AppendUint32(out, e.Size)
		out = binary.LittleEndian.AppendUint32(out, e.Offset)
	}
	for i, t := range sorted {
		out = append(out, t.Data...)
		for len(out) < align4(int(entries[i].Offset)+len(t.Data)) {
			out = append(out, 0)
		}
	}
	tracer().Debugf("wrote PCF container with %d tables, %d bytes", len(entries), len(out))
	return out, nil
}
