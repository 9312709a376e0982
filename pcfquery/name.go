package pcfquery

import (
	"iter"
	"strings"

	"github.com/npillmayer/pcf/bitfont"
)

// NamesRange yields the string-valued properties of a font as
// `(name, value)` pairs, in the order stored in the font.
func NamesRange(f *bitfont.Font) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if f == nil {
			return
		}
		for _, p := range f.Properties {
			if v, ok := f.Properties.String(p.Name); ok && v != "" {
				if !yield(p.Name, v) {
					return
				}
			}
		}
	}
}

// XLFD is a font name following the X Logical Font Description conventions,
// e.g. "-misc-fixed-medium-r-normal--13-120-75-75-c-70-iso10646-1".
type XLFD struct {
	Foundry, Family, Weight, Slant, SetWidth, AddStyle string
	PixelSize, PointSize, ResolutionX, ResolutionY     string
	Spacing, AverageWidth, CharsetRegistry, CharsetEnc string
}

// ParseXLFD splits a font name into its XLFD fields. It returns false if name
// does not consist of 14 fields.
func ParseXLFD(name string) (XLFD, bool) {
	if !strings.HasPrefix(name, "-") {
		return XLFD{}, false
	}
	fields := strings.Split(name[1:], "-")
	if len(fields) != 14 {
		return XLFD{}, false
	}
	return XLFD{
		Foundry: fields[0], Family: fields[1], Weight: fields[2], Slant: fields[3],
		SetWidth: fields[4], AddStyle: fields[5],
		PixelSize: fields[6], PointSize: fields[7], ResolutionX: fields[8], ResolutionY: fields[9],
		Spacing: fields[10], AverageWidth: fields[11],
		CharsetRegistry: fields[12], CharsetEnc: fields[13],
	}, true
}

// propertyKeys maps font properties to keys of NameInfo.
var propertyKeys = map[string]string{
	"FOUNDRY":          "foundry",
	"FAMILY_NAME":      "family",
	"WEIGHT_NAME":      "weight",
	"SLANT":            "slant",
	"SETWIDTH_NAME":    "setwidth",
	"SPACING":          "spacing",
	"COPYRIGHT":        "copyright",
	"NOTICE":           "notice",
	"FACE_NAME":        "face",
	"CHARSET_REGISTRY": "charset-registry",
	"CHARSET_ENCODING": "charset-encoding",
}

// NameInfo returns a map with selected information about a font's name.
// Keys are "name", "family", "foundry", "weight", "slant", "setwidth",
// "spacing", "copyright", "notice", "face", "charset-registry" and
// "charset-encoding". Properties take precedence over fields of an XLFD
// font name.
func NameInfo(f *bitfont.Font) map[string]string {
	info := map[string]string{"name": f.Name}
	if x, ok := ParseXLFD(f.Name); ok {
		for key, value := range map[string]string{
			"foundry": x.Foundry, "family": x.Family, "weight": x.Weight,
			"slant": x.Slant, "setwidth": x.SetWidth, "spacing": strings.ToUpper(x.Spacing),
			"charset-registry": x.CharsetRegistry, "charset-encoding": x.CharsetEnc,
		} {
			if value != "" {
				info[key] = value
			}
		}
	}
	for prop, value := range NamesRange(f) {
		if key, ok := propertyKeys[prop]; ok {
			info[key] = value
		}
	}
	return info
}
