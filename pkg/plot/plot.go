// Package plot defines the shared data model for the termplot engine.
//
// This package holds the types that flow between pipeline stages: data rows,
// aesthetic mappings, layer descriptions, and the normalized position, scale,
// coordinate, and facet specs. Every user-facing spec is normalized exactly
// once at this boundary into a single variant type with per-kind defaults, so
// downstream stages never see the string-or-object dual encoding.
//
// # Data Model
//
// A Row is an opaque field→value record. The core never mutates rows and
// never fails on malformed values: a missing or non-numeric field coerces to
// zero (continuous) or a synthetic "unknown" category (discrete).
//
// # Specs
//
// Spec describes a complete plot: rows, an aesthetic mapping, an ordered
// layer list, optional scale overrides, a coordinate spec, and an optional
// facet spec. RenderOptions describes the output surface: cell dimensions,
// renderer, and color mode.
package plot

// Spec is a complete declarative plot description.
// It is the sole input of the render pipeline next to RenderOptions.
type Spec struct {
	Rows   []Row       `json:"rows"`
	Aes    Aes         `json:"aes"`
	Layers []Layer     `json:"layers"`
	Scales []ScaleSpec `json:"scales,omitempty"`
	Coord  CoordSpec   `json:"coord,omitempty"`
	Facet  *FacetSpec  `json:"facet,omitempty"`
	Theme  Theme       `json:"theme,omitempty"`
	Labels Labels      `json:"labels,omitempty"`
}

// Layer pairs a geometry with a statistic and a position adjustment.
// Params carries geometry-specific options, interpreted only by the
// rasterizer that owns the geometry kind.
type Layer struct {
	Geom     string         `json:"geom"`
	Stat     string         `json:"stat,omitempty"`
	Position PositionSpec   `json:"position,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
	// Aes overrides the plot-level mapping for this layer when non-nil.
	Aes Aes `json:"aes,omitempty"`
}

// Labels holds the textual furniture around the panel area.
type Labels struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Caption  string `json:"caption,omitempty"`
	X        string `json:"x,omitempty"`
	Y        string `json:"y,omitempty"`
}
