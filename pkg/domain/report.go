package domain

// MessageType names the outbound reports sent to the host.
// The values match the host protocol used by the component frame.
type MessageType string

const (
	MessageReady       MessageType = "componentReady"
	MessageFrameHeight MessageType = "setFrameHeight"
	MessageValue       MessageType = "setComponentValue"
)

// Selection is reported when a leaf label is activated.
type Selection struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Level          int      `json:"level"`
	CollapsedState []string `json:"collapsedState"`
}

// NewSelection combines the original item with the current collapse state.
func NewSelection(item Item, collapsed []string) Selection {
	if collapsed == nil {
		collapsed = []string{}
	}
	return Selection{
		ID:             item.ID,
		Name:           item.Name,
		Level:          item.Level,
		CollapsedState: collapsed,
	}
}

// Message is the envelope for an outbound report.
type Message struct {
	Type   MessageType `json:"type"`
	Height *int        `json:"height,omitempty"`
	Value  *Selection  `json:"value,omitempty"`
}
