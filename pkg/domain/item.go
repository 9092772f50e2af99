package domain

import "strconv"

// Item is one entry of the flat input sequence.
// Order and Level encode the tree implicitly: the sequence is a pre-order
// traversal where Level is the depth from the root.
type Item struct {
	ID    string `json:"id" mapstructure:"id" yaml:"id"`
	Name  string `json:"name" mapstructure:"name" yaml:"name"`
	Level int    `json:"level" mapstructure:"level" yaml:"level"`
}

// Key returns the identity used to track the collapse state of a group.
// Two items sharing id, name and level produce the same key and therefore
// share one collapse state.
func (i Item) Key() string {
	return i.ID + "-" + i.Name + "-" + strconv.Itoa(i.Level)
}
