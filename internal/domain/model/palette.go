package model

// Color names exposed by ColorPalette.Map.
const (
	ColorGreen    = "green"
	ColorNavy     = "navy"
	ColorDarkNavy = "darkNavy"
)

// ColorPalette holds the site's theme colors as "#rrggbb" strings.
type ColorPalette struct {
	Green    string
	Navy     string
	DarkNavy string
}

// Map returns the palette keyed by color name.
func (p ColorPalette) Map() map[string]string {
	return map[string]string{
		ColorGreen:    p.Green,
		ColorNavy:     p.Navy,
		ColorDarkNavy: p.DarkNavy,
	}
}

// IsHexColor reports whether s is a '#' followed by exactly six hex digits.
func IsHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, ch := range s[1:] {
		if !isHexDigit(ch) {
			return false
		}
	}
	return true
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}
