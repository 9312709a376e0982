package fontload

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/pcf/pcftab"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.pcf'
func tracer() tracing.Trace {
	return tracing.Select("font.pcf")
}

// MaxFontDataSize limits the size of decompressed font data.
const MaxFontDataSize = 64 << 20

// IsGzip reports whether data starts with the gzip magic bytes 0x1F 0x8B.
func IsGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// IsCompressedPath reports whether a font file path calls for gzip compression.
func IsCompressedPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

// ReadFile loads a font file. Gzip-compressed files are decompressed,
// independent of the file's name.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("read font file %s: %d bytes", path, len(data))
	return Unwrap(data)
}

// Unwrap decompresses data if it is gzip-compressed, and returns it
// unchanged otherwise.
func Unwrap(data []byte) ([]byte, error) {
	if !IsGzip(data) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, pcftab.NewError(pcftab.InvalidCompression, 0, "malformed gzip header: %v", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, MaxFontDataSize+1))
	if err != nil {
		return nil, pcftab.NewError(pcftab.InvalidCompression, 0, "malformed gzip stream: %v", err)
	}
	if len(out) > MaxFontDataSize {
		return nil, pcftab.NewError(pcftab.InvalidCompression, 0,
			"decompressed font data exceeds %d bytes", MaxFontDataSize)
	}
	tracer().Debugf("decompressed font data: %d → %d bytes", len(data), len(out))
	return out, nil
}

// Wrap compresses data with gzip.
func Wrap(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err = zw.Write(data); err != nil {
		return nil, err
	}
	if err = zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes font data to a file, compressing it with gzip if compress is
// set. Data is written to a temporary file first, which is renamed to path on
// success; a failed write does not leave a partial file behind.
func WriteFile(path string, data []byte, compress bool) (err error) {
	if compress {
		if data, err = Wrap(data); err != nil {
			return fmt.Errorf("compressing font data: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	tracer().Debugf("wrote font file %s: %d bytes, compressed=%v", path, len(data), compress)
	return nil
}
