package inkpot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoColumns(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 3, 4: 2, 7: 2}
	for n, want := range cases {
		assert.Equal(t, want, AutoColumns(n), "batch of %d", n)
	}
}

func positions(layouts []ImageLayout) []int {
	out := make([]int, len(layouts))
	for i, l := range layouts {
		out[i] = l.Position
	}
	return out
}

func imageIDs(l ImageLayout) []string {
	out := make([]string, len(l.Images))
	for i, img := range l.Images {
		out[i] = img.ID
	}
	return out
}

func TestComposerAddLayout(t *testing.T) {
	c := NewComposer(nil, EmptyLayoutKeep)

	first, err := c.AddLayout(2)
	require.NoError(t, err)
	second, err := c.AddLayout(3)
	require.NoError(t, err)

	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
	assert.NotEqual(t, first.ID, second.ID)

	var ve *ValidationError
	_, err = c.AddLayout(0)
	assert.ErrorAs(t, err, &ve)
	_, err = c.AddLayout(5)
	assert.ErrorAs(t, err, &ve)
}

func TestComposerAddImagesNewLayout(t *testing.T) {
	c := NewComposer(nil, EmptyLayoutKeep)

	imgs := []Image{NewImage("a.jpg", ""), NewImage("b.jpg", ""), NewImage("c.jpg", "")}
	layout, err := c.AddImages("", imgs)
	require.NoError(t, err)
	assert.Equal(t, 3, layout.Columns, "implicit layouts pick columns from the batch size")
	assert.Equal(t, 0, layout.Position)
	assert.Len(t, layout.Images, 3)

	// Appending to an existing layout keeps its column count.
	layout, err = c.AddImages(layout.ID, []Image{NewImage("d.jpg", "")})
	require.NoError(t, err)
	assert.Equal(t, 3, layout.Columns)
	assert.Len(t, layout.Images, 4)

	_, err = c.AddImages("no-such-layout", imgs)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComposerRemoveImageKeepMode(t *testing.T) {
	c := NewComposer(nil, EmptyLayoutKeep)
	layout, err := c.AddImages("", []Image{NewImage("a.jpg", "")})
	require.NoError(t, err)

	require.NoError(t, c.RemoveImage(layout.ID, layout.Images[0].ID))

	layouts := c.Layouts()
	require.Len(t, layouts, 1, "keep mode leaves the empty layout in place")
	assert.Empty(t, layouts[0].Images)
}

func TestComposerRemoveImageRemoveMode(t *testing.T) {
	c := NewComposer(nil, EmptyLayoutRemove)
	first, err := c.AddImages("", []Image{NewImage("a.jpg", "")})
	require.NoError(t, err)
	_, err = c.AddImages("", []Image{NewImage("b.jpg", "")})
	require.NoError(t, err)

	require.NoError(t, c.RemoveImage(first.ID, first.Images[0].ID))

	layouts := c.Layouts()
	require.Len(t, layouts, 1, "remove mode drops the emptied layout")
	assert.Equal(t, []int{0}, positions(layouts), "the survivor is renumbered")

	assert.ErrorIs(t, c.RemoveImage(first.ID, "x"), ErrNotFound)
}

func TestComposerMoveImage(t *testing.T) {
	c := NewComposer(nil, EmptyLayoutKeep)
	a := NewImage("a.jpg", "")
	b := NewImage("b.jpg", "")
	x := NewImage("x.jpg", "")
	src, err := c.AddImages("", []Image{x})
	require.NoError(t, err)
	dst, err := c.AddImages("", []Image{a, b})
	require.NoError(t, err)

	// Insert between a and b; their relative order survives.
	require.NoError(t, c.MoveImage(src.ID, x.ID, dst.ID, 1))

	layouts := c.Layouts()
	require.Len(t, layouts, 2, "keep mode retains the emptied source layout")
	assert.Equal(t, []string{a.ID, x.ID, b.ID}, imageIDs(layouts[1]))
	assert.Empty(t, layouts[0].Images)

	// An out-of-range destination index clamps to the end.
	require.NoError(t, c.MoveImage(dst.ID, x.ID, dst.ID, 99))
	assert.Equal(t, []string{a.ID, b.ID, x.ID}, imageIDs(c.Layouts()[1]))
}

func TestComposerMoveImageDropsEmptySource(t *testing.T) {
	c := NewComposer(nil, EmptyLayoutRemove)
	x := NewImage("x.jpg", "")
	src, err := c.AddImages("", []Image{x})
	require.NoError(t, err)
	dst, err := c.AddImages("", []Image{NewImage("a.jpg", "")})
	require.NoError(t, err)

	require.NoError(t, c.MoveImage(src.ID, x.ID, dst.ID, 0))

	layouts := c.Layouts()
	require.Len(t, layouts, 1)
	assert.Len(t, layouts[0].Images, 2)
	assert.Equal(t, []int{0}, positions(layouts))
}

func TestComposerReorderLayouts(t *testing.T) {
	c := NewComposer(nil, EmptyLayoutKeep)
	first, _ := c.AddLayout(1)
	second, _ := c.AddLayout(2)
	third, _ := c.AddLayout(3)

	require.NoError(t, c.ReorderLayouts(2, 0))

	layouts := c.Layouts()
	assert.Equal(t, []string{third.ID, first.ID, second.ID},
		[]string{layouts[0].ID, layouts[1].ID, layouts[2].ID})
	assert.Equal(t, []int{0, 1, 2}, positions(layouts), "positions stay dense after a reorder")

	var ve *ValidationError
	assert.ErrorAs(t, c.ReorderLayouts(0, 3), &ve)
	assert.ErrorAs(t, c.ReorderLayouts(-1, 0), &ve)
}

func TestComposerNormalizesLooseInput(t *testing.T) {
	// Editors may submit sparse or unsorted positions; construction
	// restores a dense ascending sequence.
	loose := []ImageLayout{
		{ID: "b", Position: 7, Columns: 1},
		{ID: "a", Position: 2, Columns: 1},
	}
	layouts := NewComposer(loose, EmptyLayoutKeep).Layouts()
	assert.Equal(t, "a", layouts[0].ID)
	assert.Equal(t, "b", layouts[1].ID)
	assert.Equal(t, []int{0, 1}, positions(layouts))
}

func TestComposerSetColumnsCaptionAlt(t *testing.T) {
	c := NewComposer(nil, EmptyLayoutKeep)
	img := NewImage("a.jpg", "old alt")
	layout, err := c.AddImages("", []Image{img})
	require.NoError(t, err)

	require.NoError(t, c.SetColumns(layout.ID, 4))
	require.NoError(t, c.SetCaption(layout.ID, img.ID, "the caption"))
	require.NoError(t, c.SetAlt(layout.ID, img.ID, "new alt"))

	got := c.Layouts()[0]
	assert.Equal(t, 4, got.Columns)
	assert.Equal(t, "the caption", got.Images[0].Caption)
	assert.Equal(t, "new alt", got.Images[0].Alt)

	var ve *ValidationError
	assert.ErrorAs(t, c.SetColumns(layout.ID, 9), &ve)
	assert.ErrorIs(t, c.SetCaption(layout.ID, "missing", "x"), ErrNotFound)
}

func TestComposerRemoveLayout(t *testing.T) {
	c := NewComposer(nil, EmptyLayoutKeep)
	first, _ := c.AddLayout(1)
	_, _ = c.AddLayout(2)

	require.NoError(t, c.RemoveLayout(first.ID))

	layouts := c.Layouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, []int{0}, positions(layouts))

	assert.ErrorIs(t, c.RemoveLayout(first.ID), ErrNotFound)
}
