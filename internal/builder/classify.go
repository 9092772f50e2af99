package builder

import "github.com/aretw0/clicktree/pkg/domain"

// Classify decides whether items[i] opens a group.
// Only the immediate successor is inspected: a deeper successor makes the item
// a group, anything else (including being last) makes it a leaf.
func Classify(items []domain.Item, i int) domain.NodeKind {
	if i < len(items)-1 && items[i+1].Level > items[i].Level {
		return domain.KindGroup
	}
	return domain.KindLeaf
}
