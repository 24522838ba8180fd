package plot

// Theme holds the visual defaults applied around the data region.
// Zero values select the default theme.
type Theme struct {
	// Border draws a box around each panel when true.
	Border bool `json:"border,omitempty"`
	// AxisColor and TextColor are hex strings ("#RRGGBB"); empty means the
	// terminal default foreground.
	AxisColor string `json:"axis_color,omitempty"`
	TextColor string `json:"text_color,omitempty"`
	// Palette overrides the discrete color cycle with hex strings.
	Palette []string `json:"palette,omitempty"`
	// Grid draws background grid lines at axis breaks when true.
	Grid bool `json:"grid,omitempty"`
}

// DefaultPalette is the discrete color cycle used when the theme does not
// override it. Chosen to stay distinguishable after 16-color quantization.
var DefaultPalette = []string{
	"#4E79A7", // blue
	"#F28E2B", // orange
	"#59A14F", // green
	"#E15759", // red
	"#B07AA1", // purple
	"#76B7B2", // teal
	"#EDC948", // yellow
	"#FF9DA7", // pink
}

// PaletteHex returns the active palette, falling back to DefaultPalette.
func (t Theme) PaletteHex() []string {
	if len(t.Palette) > 0 {
		return t.Palette
	}
	return DefaultPalette
}
