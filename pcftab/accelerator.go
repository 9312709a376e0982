package pcftab

// DrawDirection is the drawing direction of a font.
type DrawDirection uint8

const (
	LeftToRight DrawDirection = 0
	RightToLeft DrawDirection = 1
)

// Bounds holds the minimum and maximum of each metric field over all glyphs.
type Bounds struct {
	Min, Max Metric
}

// Accelerator summarizes the geometry of a font. Accelerator tables are
// optional; fonts may contain an accelerators table, a BDF accelerators table,
// or both.
type Accelerator struct {
	Format          Format
	NoOverlap       bool
	ConstantMetrics bool
	TerminalFont    bool
	ConstantWidth   bool
	InkInside       bool
	InkMetrics      bool
	DrawDirection   DrawDirection
	FontAscent      int32
	FontDescent     int32
	MaxOverlap      int32
	Bounds          Bounds         // min and max bounds of all glyphs
	Ink             Option[Bounds] // ink bounds, if present
}

// DecodeAccelerator decodes an accelerators or BDF accelerators table:
//
//	format  7 × flag (1 byte)  padding (1 byte)  ascent  descent  maxOverlap
//	minBounds  maxBounds  [inkMinBounds  inkMaxBounds]
//
// Metric records are always stored uncompressed.
func DecodeAccelerator(t TableType, data []byte, base uint32) (*Accelerator, error) {
	r, f, err := newTableReader(t, data, base)
	if err != nil {
		return nil, err
	}
	a := &Accelerator{Format: f}
	flags, err := r.next(8)
	if err != nil {
		return nil, err
	}
	a.NoOverlap = flags[0] != 0
	a.ConstantMetrics = flags[1] != 0
	a.TerminalFont = flags[2] != 0
	a.ConstantWidth = flags[3] != 0
	a.InkInside = flags[4] != 0
	a.InkMetrics = flags[5] != 0
	a.DrawDirection = DrawDirection(flags[6])
	if a.FontAscent, err = r.i32(); err != nil {
		return nil, err
	}
	if a.FontDescent, err = r.i32(); err != nil {
		return nil, err
	}
	if a.MaxOverlap, err = r.i32(); err != nil {
		return nil, err
	}
	if a.Bounds.Min, err = readMetric(r); err != nil {
		return nil, err
	}
	if a.Bounds.Max, err = readMetric(r); err != nil {
		return nil, err
	}
	// X11 flags accelerators with ink bounds by bit 8, which for metric tables
	// denotes compressed metrics. Bit 8 alone selects ink bounds only if the
	// table holds the two extra records.
	if f.AccelInkBounds || (f.CompressedMetrics && r.remaining() >= 2*12) {
		var ink Bounds
		if ink.Min, err = readMetric(r); err != nil {
			return nil, err
		}
		if ink.Max, err = readMetric(r); err != nil {
			return nil, err
		}
		a.Ink = Some(ink)
	}
	tracer().Debugf("%s table: ascent=%d descent=%d, ink bounds=%v", t, a.FontAscent, a.FontDescent, a.Ink.IsSome())
	return a, nil
}

// EncodeAccelerator serializes an accelerator table. Ink bounds are written
// if present, and the format word is adapted accordingly.
func EncodeAccelerator(a *Accelerator, f Format) []byte {
	f.CompressedMetrics = false
	f.AccelInkBounds = a.Ink.IsSome()
	w := newTableWriter(f)
	for _, flag := range []bool{a.NoOverlap, a.ConstantMetrics, a.TerminalFont,
		a.ConstantWidth, a.InkInside, a.InkMetrics} {
		if flag {
			w.u8(1)
		} else {
			w.u8(0)
		}
	}
	w.u8(uint8(a.DrawDirection))
	w.u8(0) // padding
	w.i32(a.FontAscent)
	w.i32(a.FontDescent)
	w.i32(a.MaxOverlap)
	writeMetric(w, a.Bounds.Min)
	writeMetric(w, a.Bounds.Max)
	if ink, ok := a.Ink.Unwrap(); ok {
		writeMetric(w, ink.Min)
		writeMetric(w, ink.Max)
	}
	return w.Bytes()
}

// ComputeBounds returns the minimum and maximum of each metric field over metrics.
func ComputeBounds(metrics []Metric) Bounds {
	if len(metrics) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: metrics[0], Max: metrics[0]}
	for _, m := range metrics[1:] {
		b.Min.LeftBearing = min(b.Min.LeftBearing, m.LeftBearing)
		b.Min.RightBearing = min(b.Min.RightBearing, m.RightBearing)
		b.Min.Advance = min(b.Min.Advance, m.Advance)
		b.Min.Ascent = min(b.Min.Ascent, m.Ascent)
		b.Min.Descent = min(b.Min.Descent, m.Descent)
		b.Min.Attributes = min(b.Min.Attributes, m.Attributes)
		b.Max.LeftBearing = max(b.Max.LeftBearing, m.LeftBearing)
		b.Max.RightBearing = max(b.Max.RightBearing, m.RightBearing)
		b.Max.Advance = max(b.Max.Advance, m.Advance)
		b.Max.Ascent = max(b.Max.Ascent, m.Ascent)
		b.Max.Descent = max(b.Max.Descent, m.Descent)
		b.Max.Attributes = max(b.Max.Attributes, m.Attributes)
	}
	return b
}
