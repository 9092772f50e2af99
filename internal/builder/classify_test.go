package builder_test

import (
	"testing"

	"github.com/aretw0/clicktree/internal/builder"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.Item
		index int
		want  domain.NodeKind
	}{
		{"single item", items("a", 0), 0, domain.KindLeaf},
		{"followed by deeper", items("a", 0, "b", 1), 0, domain.KindGroup},
		{"followed by same level", items("a", 0, "b", 0), 0, domain.KindLeaf},
		{"followed by shallower", items("a", 0, "b", 1, "c", 0), 1, domain.KindLeaf},
		{"last item at depth", items("a", 0, "b", 1), 1, domain.KindLeaf},
		// Only the immediate successor counts.
		{"deeper item not adjacent", items("a", 0, "b", 0, "c", 1), 0, domain.KindLeaf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, builder.Classify(tt.items, tt.index))
		})
	}
}

func TestSiblingGlyph(t *testing.T) {
	in := items("root", 0, "a", 1, "a1", 2, "a2", 2, "b", 1, "other", 0, "c", 1)

	want := []domain.Glyph{
		domain.GlyphNone, // root
		domain.GlyphMid,  // a: b follows at level 1
		domain.GlyphMid,  // a1: a2 follows
		domain.GlyphLast, // a2: b is shallower
		domain.GlyphLast, // b: "other" is shallower
		domain.GlyphNone, // other
		domain.GlyphLast, // c: end of list
	}
	for i, g := range want {
		assert.Equal(t, g, builder.SiblingGlyph(in, i), "item %d", i)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		items   []domain.Item
		wantIdx int
	}{
		{"empty", nil, -1},
		{"well formed", items("a", 0, "b", 1, "c", 2, "d", 0), -1},
		{"starts deep", items("a", 1), 0},
		{"gap", items("a", 0, "b", 1, "c", 3), 2},
		{"negative", items("a", 0, "b", -1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := builder.Validate(tt.items)
			if tt.wantIdx < 0 {
				assert.NoError(t, err)
				return
			}
			var lvlErr *domain.LevelError
			if assert.ErrorAs(t, err, &lvlErr) {
				assert.Equal(t, tt.wantIdx, lvlErr.Index)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}
