package pcftab

import "fmt"

// Tables holds the decoded tables of a font. Tables is an intermediate
// representation, used to assemble a font's glyphs.
type Tables struct {
	Container   *Container
	Properties  *PropertyTable       // nil if missing or broken
	Accelerator Option[*Accelerator] // BDF accelerators preferred
	Metrics     *MetricsTable        // mandatory
	Encoding    *EncodingTable       // mandatory
	Bitmaps     *BitmapTable         // mandatory
	warnings    []Warning
}

// Warnings returns the non-critical issues found during decoding.
func (t *Tables) Warnings() []Warning {
	return t.warnings
}

func (t *Tables) warn(table TableType, offset uint32, format string, args ...any) {
	w := Warning{Table: table, Offset: offset, Issue: fmt.Sprintf(format, args...)}
	tracer().Infof("%s", w)
	t.warnings = append(t.warnings, w)
}

// Decode reads the table of contents of a PCF file and decodes all tables
// needed to assemble the font's glyphs. Metrics, bitmaps and encodings are
// mandatory. A broken properties table is not fatal: it is reported as a
// warning and left out. Tables of other types are ignored.
//
// The tables returned do not reference data.
func Decode(data []byte) (*Tables, error) {
	c, err := ReadContainer(data)
	if err != nil {
		return nil, err
	}
	t := &Tables{Container: c}
	seen := make(map[TableType]bool)
	for _, e := range c.Entries {
		if seen[e.Type] {
			t.warn(e.Type, e.Offset, "duplicate table ignored")
			continue
		}
		seen[e.Type] = true
		switch e.Type {
		case Properties, Accelerators, BDFAccelerators, Metrics, Bitmaps, Encodings:
			if err := checkBounds(c.Len(), e); err != nil {
				if e.Type == Properties {
					t.propertiesFailed(e, err)
					continue
				}
				return nil, err
			}
		default:
			t.warn(e.Type, e.Offset, "table not interpreted")
		}
	}
	if b, e, err := c.Table(Properties); err == nil {
		if t.Properties, err = DecodeProperties(b, e.Offset); err != nil {
			t.propertiesFailed(e, err)
		}
	}
	for _, at := range [...]TableType{BDFAccelerators, Accelerators} {
		b, e, err := c.Table(at)
		if err != nil {
			continue
		}
		a, err := DecodeAccelerator(at, b, e.Offset)
		if err != nil {
			return nil, err
		}
		t.Accelerator = Some(a)
		break
	}
	b, e, err := c.Table(Metrics)
	if err != nil {
		return nil, err
	}
	if t.Metrics, err = DecodeMetrics(b, e.Offset); err != nil {
		return nil, err
	}
	if b, e, err = c.Table(Bitmaps); err != nil {
		return nil, err
	}
	if t.Bitmaps, err = DecodeBitmaps(b, e.Offset); err != nil {
		return nil, err
	}
	if len(t.Bitmaps.Offsets) != len(t.Metrics.Metrics) {
		return nil, newError(BitmapSizeMismatch, Bitmaps, e.Offset,
			"%d bitmaps for %d glyph metrics", len(t.Bitmaps.Offsets), len(t.Metrics.Metrics))
	}
	if b, e, err = c.Table(Encodings); err != nil {
		return nil, err
	}
	if t.Encoding, err = DecodeEncoding(b, e.Offset); err != nil {
		return nil, err
	}
	t.Container = &Container{Entries: c.Entries}
	return t, nil
}

func (t *Tables) propertiesFailed(e TableEntry, err error) {
	tracer().Errorf("properties table unusable: %v", err)
	t.Properties = nil
	t.warn(Properties, e.Offset, "properties table ignored: %v", err)
}

// Props returns the properties of a font, or nil if they are not available.
func (t *Tables) Props() PropertyList {
	if t.Properties == nil {
		return nil
	}
	return t.Properties.Props
}
