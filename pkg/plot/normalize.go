package plot

import (
	"encoding/json"

	"github.com/matzehuels/termplot/pkg/errors"
)

// =============================================================================
// Position specs
// =============================================================================

// Position adjustment kinds.
const (
	PositionIdentity = "identity"
	PositionDodge    = "dodge"
	PositionStack    = "stack"
	PositionFill     = "fill"
	PositionJitter   = "jitter"
)

// ValidPositions is the set of supported position adjustments.
var ValidPositions = map[string]bool{
	PositionIdentity: true,
	PositionDodge:    true,
	PositionStack:    true,
	PositionFill:     true,
	PositionJitter:   true,
}

// PositionSpec is the normalized form of a position adjustment.
// Width/Height only apply to dodge and jitter; Seed only to jitter.
type PositionSpec struct {
	Kind   string  `json:"kind"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Seed   int64   `json:"seed,omitempty"`
	Seeded bool    `json:"seeded,omitempty"`
}

// UnmarshalJSON accepts both encodings of a position spec: a bare kind
// string ("stack") or the object form. Either routes through
// NormalizePosition, so spec files get the same defaults and validation
// as programmatic callers.
func (p *PositionSpec) UnmarshalJSON(data []byte) error {
	var kind string
	if err := json.Unmarshal(data, &kind); err == nil {
		spec, err := NormalizePosition(kind)
		if err != nil {
			return err
		}
		*p = spec
		return nil
	}

	type plain PositionSpec
	var spec plain
	if err := json.Unmarshal(data, &spec); err != nil {
		return err
	}
	normalized, err := NormalizePosition(PositionSpec(spec))
	if err != nil {
		return err
	}
	*p = normalized
	return nil
}

// DefaultPosition returns the default-valued spec for a position kind.
func DefaultPosition(kind string) PositionSpec {
	spec := PositionSpec{Kind: kind}
	switch kind {
	case PositionDodge:
		spec.Width = 0.9
	case PositionJitter:
		spec.Width = 0.4
		spec.Height = 0.4
	case "":
		spec.Kind = PositionIdentity
	}
	return spec
}

// NormalizePosition converts the string-or-object encoding of a position
// spec into a single PositionSpec with defaults applied. Accepted inputs:
// nil, a kind string, a map with "kind" plus options, or a PositionSpec.
func NormalizePosition(v any) (PositionSpec, error) {
	switch p := v.(type) {
	case nil:
		return DefaultPosition(PositionIdentity), nil
	case string:
		if p == "" {
			return DefaultPosition(PositionIdentity), nil
		}
		if !ValidPositions[p] {
			return PositionSpec{}, errors.New(errors.ErrCodeInvalidPosition, "invalid position: %q", p)
		}
		return DefaultPosition(p), nil
	case PositionSpec:
		return normalizePositionSpec(p)
	case *PositionSpec:
		if p == nil {
			return DefaultPosition(PositionIdentity), nil
		}
		return normalizePositionSpec(*p)
	case map[string]any:
		spec := PositionSpec{}
		if kind, ok := p["kind"].(string); ok {
			spec.Kind = kind
		}
		if w, ok := CoerceNum(p["width"]); ok {
			spec.Width = w
		}
		if h, ok := CoerceNum(p["height"]); ok {
			spec.Height = h
		}
		if s, ok := CoerceNum(p["seed"]); ok {
			spec.Seed = int64(s)
			spec.Seeded = true
		}
		return normalizePositionSpec(spec)
	default:
		return PositionSpec{}, errors.New(errors.ErrCodeInvalidPosition, "invalid position spec type %T", v)
	}
}

func normalizePositionSpec(spec PositionSpec) (PositionSpec, error) {
	if spec.Kind == "" {
		spec.Kind = PositionIdentity
	}
	if !ValidPositions[spec.Kind] {
		return PositionSpec{}, errors.New(errors.ErrCodeInvalidPosition, "invalid position: %q", spec.Kind)
	}
	defaults := DefaultPosition(spec.Kind)
	if spec.Width == 0 {
		spec.Width = defaults.Width
	}
	if spec.Height == 0 {
		spec.Height = defaults.Height
	}
	return spec, nil
}

// =============================================================================
// Scale specs
// =============================================================================

// Scale transforms applied to continuous domains before normalization.
const (
	TransformIdentity = "identity"
	TransformLog10    = "log10"
	TransformSqrt     = "sqrt"
	TransformReverse  = "reverse"
)

// ValidTransforms is the set of supported scale transforms.
var ValidTransforms = map[string]bool{
	TransformIdentity: true,
	TransformLog10:    true,
	TransformSqrt:     true,
	TransformReverse:  true,
}

// ScaleSpec overrides the scale resolved for one aesthetic channel.
type ScaleSpec struct {
	Aesthetic string     `json:"aesthetic"`
	Transform string     `json:"transform,omitempty"`
	Limits    *[2]float64 `json:"limits,omitempty"`
	// Discrete forces category treatment even for numeric fields.
	Discrete bool `json:"discrete,omitempty"`
	// Breaks and Labels override computed axis breaks when non-empty.
	Breaks []float64 `json:"breaks,omitempty"`
	Labels []string  `json:"labels,omitempty"`
}

// NormalizeScale converts the string-or-object encoding of a scale override
// into a ScaleSpec. A bare string is a transform name applied to the
// aesthetic it is registered for.
func NormalizeScale(aesthetic string, v any) (ScaleSpec, error) {
	switch s := v.(type) {
	case nil:
		return ScaleSpec{Aesthetic: aesthetic, Transform: TransformIdentity}, nil
	case string:
		spec := ScaleSpec{Aesthetic: aesthetic, Transform: s}
		return normalizeScaleSpec(spec)
	case ScaleSpec:
		if s.Aesthetic == "" {
			s.Aesthetic = aesthetic
		}
		return normalizeScaleSpec(s)
	case map[string]any:
		spec := ScaleSpec{Aesthetic: aesthetic}
		if tr, ok := s["transform"].(string); ok {
			spec.Transform = tr
		}
		if d, ok := s["discrete"].(bool); ok {
			spec.Discrete = d
		}
		if lim, ok := s["limits"].([]any); ok && len(lim) == 2 {
			lo, okLo := CoerceNum(lim[0])
			hi, okHi := CoerceNum(lim[1])
			if okLo && okHi {
				spec.Limits = &[2]float64{lo, hi}
			}
		}
		return normalizeScaleSpec(spec)
	default:
		return ScaleSpec{}, errors.New(errors.ErrCodeInvalidScale, "invalid scale spec type %T", v)
	}
}

func normalizeScaleSpec(spec ScaleSpec) (ScaleSpec, error) {
	if spec.Transform == "" {
		spec.Transform = TransformIdentity
	}
	if !ValidTransforms[spec.Transform] {
		return ScaleSpec{}, errors.New(errors.ErrCodeInvalidScale, "invalid scale transform: %q", spec.Transform)
	}
	return spec, nil
}

// =============================================================================
// Coordinate specs
// =============================================================================

// Coordinate system kinds.
const (
	CoordCartesian = "cartesian"
	CoordFlip      = "flip"
	CoordFixed     = "fixed"
)

// ValidCoords is the set of supported coordinate systems.
var ValidCoords = map[string]bool{
	CoordCartesian: true,
	CoordFlip:      true,
	CoordFixed:     true,
}

// CoordSpec selects and configures the coordinate system.
// XLim/YLim clip (drop) out-of-range points when Clip is true; they never
// distort the scale mapping of in-range points.
type CoordSpec struct {
	Kind  string      `json:"kind,omitempty"`
	Ratio float64     `json:"ratio,omitempty"` // fixed-aspect y/x unit ratio
	XLim  *[2]float64 `json:"xlim,omitempty"`
	YLim  *[2]float64 `json:"ylim,omitempty"`
	Clip  *bool       `json:"clip,omitempty"` // default true
}

// Normalize applies defaults and validates the coordinate kind.
func (c CoordSpec) Normalize() (CoordSpec, error) {
	if c.Kind == "" {
		c.Kind = CoordCartesian
	}
	if !ValidCoords[c.Kind] {
		return CoordSpec{}, errors.New(errors.ErrCodeInvalidSpec, "invalid coord kind: %q", c.Kind)
	}
	if c.Kind == CoordFixed && c.Ratio == 0 {
		c.Ratio = 1
	}
	if c.Clip == nil {
		clip := true
		c.Clip = &clip
	}
	return c, nil
}

// Clipped reports whether out-of-limit points are dropped.
func (c CoordSpec) Clipped() bool {
	return c.Clip == nil || *c.Clip
}

// =============================================================================
// Facet specs
// =============================================================================

// Facet kinds.
const (
	FacetWrap = "wrap"
	FacetGrid = "grid"
)

// Facet scale-sharing modes.
const (
	FacetScalesFixed = "fixed"
	FacetScalesFree  = "free"
	FacetScalesFreeX = "free_x"
	FacetScalesFreeY = "free_y"
)

// ValidFacetScales is the set of supported scale-sharing modes.
var ValidFacetScales = map[string]bool{
	FacetScalesFixed: true,
	FacetScalesFree:  true,
	FacetScalesFreeX: true,
	FacetScalesFreeY: true,
}

// FacetSpec partitions rows into panels.
// Wrap facets on Field with NCol/NRow; grid facets on RowField × ColField.
type FacetSpec struct {
	Kind     string `json:"kind"`
	Field    string `json:"field,omitempty"`
	RowField string `json:"row,omitempty"`
	ColField string `json:"col,omitempty"`
	NCol     int    `json:"ncol,omitempty"`
	NRow     int    `json:"nrow,omitempty"`
	Scales   string `json:"scales,omitempty"`
}

// Normalize applies defaults and validates the facet configuration.
func (f FacetSpec) Normalize() (FacetSpec, error) {
	if f.Scales == "" {
		f.Scales = FacetScalesFixed
	}
	if !ValidFacetScales[f.Scales] {
		return FacetSpec{}, errors.New(errors.ErrCodeInvalidFacet, "invalid facet scales: %q", f.Scales)
	}
	switch f.Kind {
	case FacetWrap:
		if f.Field == "" {
			return FacetSpec{}, errors.New(errors.ErrCodeMissingOption, "facet_wrap requires a field")
		}
	case FacetGrid:
		if f.RowField == "" && f.ColField == "" {
			return FacetSpec{}, errors.New(errors.ErrCodeMissingOption, "facet_grid requires a row or col field")
		}
	default:
		return FacetSpec{}, errors.New(errors.ErrCodeInvalidFacet, "invalid facet kind: %q", f.Kind)
	}
	return f, nil
}
