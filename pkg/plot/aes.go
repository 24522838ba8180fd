package plot

// Aesthetic channel names. An Aes maps these to row field names.
const (
	ChannelX     = "x"
	ChannelY     = "y"
	ChannelColor = "color"
	ChannelFill  = "fill"
	ChannelSize  = "size"
	ChannelGroup = "group"
	ChannelShape = "shape"
	ChannelAlpha = "alpha"
)

// Aes maps aesthetic channels to row field names.
type Aes map[string]string

// Field returns the field bound to channel, or "" when unbound.
func (a Aes) Field(channel string) string {
	return a[channel]
}

// Has reports whether channel is bound to a field.
func (a Aes) Has(channel string) bool {
	return a[channel] != ""
}

// GroupField returns the field used for series grouping: the group channel
// when bound, otherwise color, otherwise fill. Returns "" when nothing
// groups the data.
func (a Aes) GroupField() string {
	for _, ch := range []string{ChannelGroup, ChannelColor, ChannelFill} {
		if f := a[ch]; f != "" {
			return f
		}
	}
	return ""
}

// Merge overlays layer-level mappings onto plot-level ones.
// Channels bound in override win; the receiver is not modified.
func (a Aes) Merge(override Aes) Aes {
	if len(override) == 0 {
		return a
	}
	merged := make(Aes, len(a)+len(override))
	for ch, f := range a {
		merged[ch] = f
	}
	for ch, f := range override {
		merged[ch] = f
	}
	return merged
}
