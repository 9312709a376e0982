package pcftab

// compressedMetricBias is subtracted from every byte of a compressed metric.
const compressedMetricBias = 0x80

// Metric holds the geometry of one glyph. All values are in pixels.
// Bearings are measured from the glyph origin, ascent upwards and descent
// downwards from the baseline.
type Metric struct {
	LeftBearing  int16
	RightBearing int16
	Advance      int16 // "character width" in X11 parlance
	Ascent       int16
	Descent      int16
	Attributes   uint16
}

// Width returns the width of the glyph's bitmap in pixels.
func (m Metric) Width() int {
	return abs(int(m.RightBearing) - int(m.LeftBearing))
}

// Height returns the height of the glyph's bitmap in pixels.
func (m Metric) Height() int {
	return abs(int(m.Ascent) + int(m.Descent))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// DecodeCompressedValue decodes one byte of a compressed metric.
// Compressed metric values are stored with a bias of 0x80, covering the
// range [-128…127].
func DecodeCompressedValue(b uint8) int16 {
	return int16(b) - compressedMetricBias
}

func readCompressedMetric(r *tableReader) (Metric, error) {
	b, err := r.next(5)
	if err != nil {
		return Metric{}, err
	}
	return Metric{
		LeftBearing:  DecodeCompressedValue(b[0]),
		RightBearing: DecodeCompressedValue(b[1]),
		Advance:      DecodeCompressedValue(b[2]),
		Ascent:       DecodeCompressedValue(b[3]),
		Descent:      DecodeCompressedValue(b[4]),
	}, nil
}

func readMetric(r *tableReader) (m Metric, err error) {
	b, err := r.next(12)
	if err != nil {
		return m, err
	}
	m.LeftBearing = int16(r.order.Uint16(b[0:]))
	m.RightBearing = int16(r.order.Uint16(b[2:]))
	m.Advance = int16(r.order.Uint16(b[4:]))
	m.Ascent = int16(r.order.Uint16(b[6:]))
	m.Descent = int16(r.order.Uint16(b[8:]))
	m.Attributes = r.order.Uint16(b[10:])
	return m, nil
}

func writeMetric(w *tableWriter, m Metric) {
	w.i16(m.LeftBearing)
	w.i16(m.RightBearing)
	w.i16(m.Advance)
	w.i16(m.Ascent)
	w.i16(m.Descent)
	w.u16(m.Attributes)
}

// --- Metrics table ---------------------------------------------------------

// MetricsTable holds the metrics of all glyphs of a font, indexed by glyph index.
type MetricsTable struct {
	Format  Format
	Metrics []Metric
}

// DecodeMetrics decodes a metrics table. Depending on the table's format word,
// metrics are stored either compressed (5 biased bytes per glyph) or
// uncompressed (five signed and one unsigned 16-bit value per glyph).
// base is the table's offset within the font file, used for error messages.
func DecodeMetrics(data []byte, base uint32) (*MetricsTable, error) {
	return decodeMetricsTable(Metrics, data, base)
}

func decodeMetricsTable(t TableType, data []byte, base uint32) (*MetricsTable, error) {
	r, f, err := newTableReader(t, data, base)
	if err != nil {
		if KindOf(err) == UnsupportedFormat {
			return nil, withKind(InvalidMetricsFormat, err)
		}
		return nil, err
	}
	mt := &MetricsTable{Format: f}
	var count int
	if f.CompressedMetrics {
		n, err := r.i16()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, r.fail(InvalidGlyphCount, "negative glyph count %d", n)
		}
		count = int(n)
	} else if count, err = r.count(InvalidGlyphCount, MaxGlyphCount, "glyph"); err != nil {
		return nil, err
	}
	tracer().Debugf("%s table: %d glyphs, compressed=%v", t, count, f.CompressedMetrics)
	recordSize := 12
	if f.CompressedMetrics {
		recordSize = 5
	}
	if size, _ := checkedMulInt(count, recordSize); size > r.remaining() {
		return nil, r.fail(InvalidTableEntry, "%d glyph metrics need %d bytes, table has %d", count, size, r.remaining())
	}
	mt.Metrics = make([]Metric, count)
	for i := range mt.Metrics {
		if f.CompressedMetrics {
			mt.Metrics[i], err = readCompressedMetric(r)
		} else {
			mt.Metrics[i], err = readMetric(r)
		}
		if err != nil {
			return nil, err
		}
	}
	return mt, nil
}

// EncodeMetrics serializes a metrics table. Metrics are always written
// uncompressed; the compressed-metrics flag of f is ignored.
func EncodeMetrics(metrics []Metric, f Format) []byte {
	f.CompressedMetrics = false
	w := newTableWriter(f)
	w.i32(int32(len(metrics)))
	for _, m := range metrics {
		writeMetric(w, m)
	}
	return w.Bytes()
}
