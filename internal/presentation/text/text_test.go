package text_test

import (
	"testing"

	"github.com/aretw0/clicktree/internal/builder"
	"github.com/aretw0/clicktree/internal/presentation/text"
	"github.com/aretw0/clicktree/internal/testutils"
	"github.com/aretw0/clicktree/pkg/collapse"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tree, err := builder.Build(testutils.Methods(), builder.Options{Indent: 10}, nil)
	require.NoError(t, err)

	got := text.String(tree, text.Options{Profile: termenv.Ascii})
	want := "" +
		"▾ Method A\n" +
		"├─ ▾ Method B\n" +
		"   └─ Method C\n" +
		"└─ Method D\n" +
		"Method E\n"
	assert.Equal(t, want, got)
}

func TestString_Collapsed(t *testing.T) {
	store := collapse.New("b-Method B-1")
	tree, err := builder.Build(testutils.Methods(), builder.Options{}, store)
	require.NoError(t, err)

	got := text.String(tree, text.Options{Profile: termenv.Ascii, Indices: true})
	want := "" +
		"  0 ▾ Method A\n" +
		"  1 ├─ ▸ Method B\n" +
		"  3 └─ Method D\n" +
		"  4 Method E\n"
	assert.Equal(t, want, got)
}

func TestString_StripsControlCharacters(t *testing.T) {
	items := testutils.Methods()[:1]
	items[0].Name = "\x1b[2Jboom"
	tree, err := builder.Build(items, builder.Options{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "[2Jboom\n", text.String(tree, text.Options{Profile: termenv.Ascii}))
}

func TestString_Empty(t *testing.T) {
	tree, err := builder.Build(nil, builder.Options{}, nil)
	require.NoError(t, err)
	assert.Empty(t, text.String(tree, text.Options{Profile: termenv.Ascii}))
}
