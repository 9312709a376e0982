package pcftab

import (
	"bytes"
	"strconv"
)

// PropertyValue is either a StringValue or an IntValue.
type PropertyValue interface {
	isPropertyValue()
	String() string
}

// StringValue is a property value of type string ("atom" in X11 parlance).
type StringValue string

// IntValue is a property value of type integer.
type IntValue int32

func (StringValue) isPropertyValue() {}
func (IntValue) isPropertyValue()    {}

func (v StringValue) String() string { return string(v) }
func (v IntValue) String() string    { return strconv.Itoa(int(v)) }

// Property is a named font property, e.g. FONT_ASCENT or FAMILY_NAME.
type Property struct {
	Name  string
	Value PropertyValue
}

// PropertyList is a list of font properties.
type PropertyList []Property

// Lookup returns the value of the first property with a given name.
func (props PropertyList) Lookup(name string) (PropertyValue, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// String returns the value of a string property.
func (props PropertyList) String(name string) (string, bool) {
	if v, ok := props.Lookup(name); ok {
		if s, ok := v.(StringValue); ok {
			return string(s), true
		}
	}
	return "", false
}

// Int returns the value of an integer property.
func (props PropertyList) Int(name string) (int32, bool) {
	if v, ok := props.Lookup(name); ok {
		if n, ok := v.(IntValue); ok {
			return int32(n), true
		}
	}
	return 0, false
}

// PropertyTable is the properties table of a font.
type PropertyTable struct {
	Format Format
	Props  PropertyList
}

// rawProperty is a property record before its strings are resolved.
type rawProperty struct {
	nameOffset int32
	isString   bool
	value      int32
}

// DecodeProperties decodes a properties table:
//
//	format  nprops  nprops × {name int32, isString uint8, value int32}
//	padding to 4 bytes  stringSize  strings[stringSize]
//
// Names and string values are offsets into the string pool, referencing
// zero-terminated strings.
func DecodeProperties(data []byte, base uint32) (*PropertyTable, error) {
	r, f, err := newTableReader(Properties, data, base)
	if err != nil {
		return nil, err
	}
	count, err := r.count(InvalidTableEntry, MaxPropertyCount, "property")
	if err != nil {
		return nil, err
	}
	raw := make([]rawProperty, count)
	for i := range raw {
		b, err := r.next(9)
		if err != nil {
			return nil, err
		}
		raw[i] = rawProperty{
			nameOffset: int32(r.order.Uint32(b[0:])),
			isString:   b[4] != 0,
			value:      int32(r.order.Uint32(b[5:])),
		}
	}
	if count&3 != 0 {
		if err = r.skip(4 - count&3); err != nil {
			return nil, err
		}
	}
	poolSize, err := r.count(InvalidTableEntry, r.remaining(), "string pool byte")
	if err != nil {
		return nil, err
	}
	pool, err := r.next(poolSize)
	if err != nil {
		return nil, err
	}
	pt := &PropertyTable{Format: f, Props: make(PropertyList, count)}
	for i, rp := range raw {
		name, err := poolString(pool, rp.nameOffset)
		if err != nil {
			return nil, r.fail(InvalidTableEntry, "property %d: name: %v", i, err)
		}
		pt.Props[i].Name = name
		if rp.isString {
			s, err := poolString(pool, rp.value)
			if err != nil {
				return nil, r.fail(InvalidTableEntry, "property %s: value: %v", name, err)
			}
			pt.Props[i].Value = StringValue(s)
		} else {
			pt.Props[i].Value = IntValue(rp.value)
		}
	}
	tracer().Debugf("properties table: %d properties", count)
	return pt, nil
}

// poolString returns the zero-terminated string at offset off within the string pool.
func poolString(pool binarySegm, off int32) (string, error) {
	if off < 0 || int(off) >= len(pool) {
		return "", errBufferBounds
	}
	end := bytes.IndexByte(pool[off:], 0)
	if end < 0 {
		return "", errBufferBounds
	}
	return string(pool[int(off) : int(off)+end]), nil
}

// EncodeProperties serializes a properties table.
func EncodeProperties(props PropertyList, f Format) []byte {
	var pool []byte
	intern := func(s string) int32 {
		off := int32(len(pool))
		pool = append(pool, s...)
		pool = append(pool, 0)
		return off
	}
	w := newTableWriter(f)
	w.i32(int32(len(props)))
	for _, p := range props {
		w.i32(intern(p.Name))
		switch v := p.Value.(type) {
		case StringValue:
			w.u8(1)
			w.i32(intern(string(v)))
		case IntValue:
			w.u8(0)
			w.i32(int32(v))
		default:
			w.u8(0)
			w.i32(0)
		}
	}
	if len(props)&3 != 0 {
		w.zeros(4 - len(props)&3)
	}
	w.i32(int32(len(pool)))
	w.bytes(pool)
	return w.Bytes()
}
