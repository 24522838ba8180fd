package plot

import (
	"github.com/matzehuels/termplot/pkg/errors"
)

// Renderers select the sub-cell encoder used for the plot area.
const (
	RendererBraille = "braille" // 2×4 dot matrix per cell
	RendererBlock   = "block"   // 1×2 half blocks per cell
	RendererSixel   = "sixel"   // accepted, resolves to braille
	RendererAuto    = "auto"
)

// ValidRenderers is the set of accepted renderer names.
var ValidRenderers = map[string]bool{
	RendererBraille: true,
	RendererBlock:   true,
	RendererSixel:   true,
	RendererAuto:    true,
}

// Color modes for the ANSI encoder.
const (
	ColorNone      = "none"
	Color16        = "16"
	Color256       = "256"
	ColorTruecolor = "truecolor"
	ColorAuto      = "auto"
)

// ValidColorModes is the set of accepted color modes.
var ValidColorModes = map[string]bool{
	ColorNone:      true,
	Color16:        true,
	Color256:       true,
	ColorTruecolor: true,
	ColorAuto:      true,
}

// Default output dimensions in cells.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// RenderOptions describes the output surface.
type RenderOptions struct {
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Renderer  string `json:"renderer,omitempty"`
	ColorMode string `json:"color_mode,omitempty"`
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Renderer == "" {
		o.Renderer = RendererAuto
	}
	if !ValidRenderers[o.Renderer] {
		return errors.New(errors.ErrCodeInvalidRenderer,
			"invalid renderer: %q (must be one of: braille, block, sixel, auto)", o.Renderer)
	}
	if o.ColorMode == "" {
		o.ColorMode = ColorAuto
	}
	if !ValidColorModes[o.ColorMode] {
		return errors.New(errors.ErrCodeInvalidColorMode,
			"invalid color mode: %q (must be one of: none, 16, 256, truecolor, auto)", o.ColorMode)
	}
	return nil
}

// ResolveRenderer maps auto and sixel onto a concrete encoder.
// Sixel output needs a pixel device; on a character canvas it resolves to
// braille, the densest sub-cell encoding available.
func (o RenderOptions) ResolveRenderer() string {
	switch o.Renderer {
	case RendererAuto, RendererSixel, "":
		return RendererBraille
	default:
		return o.Renderer
	}
}
