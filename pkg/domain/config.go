package domain

const (
	// DefaultRowHeight is the pixel height of a single rendered row.
	DefaultRowHeight = 35

	// DefaultIndent is the left margin applied to nested items when the host omits it.
	DefaultIndent = 10
)

// RenderConfig is the inbound host payload for one render pass.
type RenderConfig struct {
	// Options is the ordered item list. A nil slice means the payload carried
	// no options and the pass must be skipped.
	Options []Item `json:"options" mapstructure:"options"`

	// Indent is the left margin, in pixels, applied to every item with level > 0.
	Indent int `json:"indent" mapstructure:"indent"`

	// Style is raw style text appended verbatim to every rendered node.
	Style string `json:"style,omitempty" mapstructure:"style"`

	// CollapsedState, when non-nil, replaces the collapse store before building.
	// nil means the host did not echo any state back.
	CollapsedState []string `json:"collapsedState,omitempty" mapstructure:"collapsedState"`
}

// Renderable reports whether the payload carries an option list.
func (c *RenderConfig) Renderable() bool {
	return c != nil && c.Options != nil
}
