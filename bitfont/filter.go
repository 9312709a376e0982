package bitfont

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive range of code points.
type Range struct {
	First, Last rune
}

func (r Range) contains(c rune) bool {
	return c >= r.First && c <= r.Last
}

// Filter selects the code points to include when assembling a font.
// The zero value includes all code points.
type Filter struct {
	ranges     []Range
	restricted bool
}

// AllCodePoints is a filter including every code point.
var AllCodePoints = Filter{}

// Ranges creates a filter including the code points of a list of ranges.
// A filter without any range includes no code point at all.
func Ranges(ranges ...Range) Filter {
	return Filter{ranges: append([]Range(nil), ranges...), restricted: true}
}

// Includes reports whether code point c passes the filter.
func (f Filter) Includes(c rune) bool {
	if !f.restricted {
		return true
	}
	for _, r := range f.ranges {
		if r.contains(c) {
			return true
		}
	}
	return false
}

// IsAll reports whether the filter includes every code point.
func (f Filter) IsAll() bool {
	return !f.restricted
}

func (f Filter) String() string {
	if !f.restricted {
		return "all"
	}
	var b strings.Builder
	for i, r := range f.ranges {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%#x-%#x", r.First, r.Last)
	}
	return b.String()
}

// ParseFilter parses a comma-separated list of code points and code point
// ranges, e.g. "0x20-0x7e,0xa0-0xff,0x20ac". Numbers may be given in decimal,
// hex (0x… or U+…) or octal (0…). The empty string and "all" select all code points.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return AllCodePoints, nil
	}
	var ranges []Range
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(item, "-")
		first, err := ParseCodePoint(lo)
		if err != nil {
			return Filter{}, err
		}
		last := first
		if isRange {
			if last, err = ParseCodePoint(hi); err != nil {
				return Filter{}, err
			}
		}
		if last < first {
			return Filter{}, fmt.Errorf("invalid code point range %q", item)
		}
		ranges = append(ranges, Range{First: first, Last: last})
	}
	return Ranges(ranges...), nil
}

// ParseCodePoint parses a single code point in decimal, hex or octal notation.
func ParseCodePoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (s[:2] == "U+" || s[:2] == "u+") {
		s = "0x" + s[2:]
	}
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid code point %q", s)
	}
	return rune(n), nil
}
