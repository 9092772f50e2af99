package builder

import "github.com/aretw0/clicktree/pkg/domain"

// SiblingGlyph returns the hierarchy marker for items[i].
// Top-level items carry no glyph. A nested item is the last sibling unless a
// later item at the same level appears before one at a strictly lower level.
func SiblingGlyph(items []domain.Item, i int) domain.Glyph {
	level := items[i].Level
	if level <= 0 {
		return domain.GlyphNone
	}
	for j := i + 1; j < len(items); j++ {
		switch {
		case items[j].Level < level:
			return domain.GlyphLast
		case items[j].Level == level:
			return domain.GlyphMid
		}
	}
	return domain.GlyphLast
}
