package render

import "fmt"

// Style names.
const (
	StyleLightName = "light"
	StyleDarkName  = "dark"
)

// ValidStyles is the set of supported style names.
var ValidStyles = map[string]bool{
	StyleLightName: true,
	StyleDarkName:  true,
}

// Style is a color scheme for the SVG sink.
type Style struct {
	Name       string
	Background string
	EdgeStroke string
	NodeFill   string
	NodeStroke string
	Text       string
	Conflict   string
}

// StyleLight is the default scheme: dark ink on a white background.
var StyleLight = Style{
	Name:       StyleLightName,
	Background: "#ffffff",
	EdgeStroke: "#94a3b8",
	NodeFill:   "#f1f5f9",
	NodeStroke: "#334155",
	Text:       "#0f172a",
	Conflict:   "#dc2626",
}

// StyleDark is the inverted scheme for dark backgrounds.
var StyleDark = Style{
	Name:       StyleDarkName,
	Background: "#0f172a",
	EdgeStroke: "#475569",
	NodeFill:   "#1e293b",
	NodeStroke: "#94a3b8",
	Text:       "#e2e8f0",
	Conflict:   "#f87171",
}

// StyleByName resolves a style name to its scheme.
func StyleByName(name string) (Style, error) {
	switch name {
	case "", StyleLightName:
		return StyleLight, nil
	case StyleDarkName:
		return StyleDark, nil
	default:
		return Style{}, fmt.Errorf("invalid style: %q (must be one of: light, dark)", name)
	}
}

// ValidateStyle checks that a style name is supported.
func ValidateStyle(name string) error {
	_, err := StyleByName(name)
	return err
}
