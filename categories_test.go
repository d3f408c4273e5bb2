package inkpot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCategories(t *testing.T) *CategoryManager {
	t.Helper()
	m := NewCategoryManager(newMemStore())
	m.now = func() time.Time { return testTime }
	return m
}

func mustCategory(t *testing.T, m *CategoryManager, name, slug string) Category {
	t.Helper()
	cat, err := m.Create(CategoryInput{Name: name, Slug: slug})
	require.NoError(t, err)
	return cat
}

func orderValues(cats []Category) []int {
	out := make([]int, len(cats))
	for i, c := range cats {
		out[i] = c.Order
	}
	return out
}

func TestCategoryCreateAssignsNextOrder(t *testing.T) {
	m := newTestCategories(t)

	mustCategory(t, m, "Tech", "tech")
	mustCategory(t, m, "Life", "life")
	mustCategory(t, m, "Travel", "travel")

	cats := m.ListOrdered()
	require.Len(t, cats, 3)
	assert.Equal(t, []int{1, 2, 3}, orderValues(cats))
	assert.NotEmpty(t, cats[0].ID)
	assert.Equal(t, cats[0].CreatedAt, cats[0].UpdatedAt)
}

func TestCategoryValidation(t *testing.T) {
	m := newTestCategories(t)

	var ve *ValidationError

	_, err := m.Create(CategoryInput{Name: "", Slug: "tech"})
	assert.ErrorAs(t, err, &ve)

	// A slug that normalizes to nothing counts as missing.
	_, err = m.Create(CategoryInput{Name: "Tech", Slug: "!!!"})
	assert.ErrorAs(t, err, &ve)
}

func TestCategorySlugNormalized(t *testing.T) {
	m := newTestCategories(t)

	cat := mustCategory(t, m, "Daily Life", "Daily Life!")
	assert.Equal(t, "dailylife", cat.Slug)

	cat = mustCategory(t, m, "Tech News", "tech-News")
	assert.Equal(t, "tech-news", cat.Slug)
}

func TestCategoryUpdatePreservesOrderAndCreatedAt(t *testing.T) {
	m := newTestCategories(t)

	mustCategory(t, m, "Tech", "tech")
	life := mustCategory(t, m, "Life", "life")

	m.now = func() time.Time { return testTime.Add(time.Hour) }
	updated, err := m.Update(life.ID, CategoryInput{Name: "Lifestyle", Slug: "lifestyle", Color: "#ff0000"})
	require.NoError(t, err)

	assert.Equal(t, "Lifestyle", updated.Name)
	assert.Equal(t, life.Order, updated.Order, "order survives an edit")
	assert.Equal(t, life.CreatedAt, updated.CreatedAt)
	assert.NotEqual(t, life.UpdatedAt, updated.UpdatedAt)

	_, err = m.Update("no-such-id", CategoryInput{Name: "X", Slug: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryDeleteRenumbers(t *testing.T) {
	m := newTestCategories(t)

	mustCategory(t, m, "Tech", "tech")
	life := mustCategory(t, m, "Life", "life")
	mustCategory(t, m, "Travel", "travel")

	require.NoError(t, m.Delete(life.ID))

	cats := m.ListOrdered()
	require.Len(t, cats, 2)
	assert.Equal(t, []int{1, 2}, orderValues(cats), "orders close ranks after a delete")
	assert.Equal(t, "Tech", cats[0].Name)
	assert.Equal(t, "Travel", cats[1].Name)

	assert.ErrorIs(t, m.Delete(life.ID), ErrNotFound)
}

func TestCategoryMove(t *testing.T) {
	m := newTestCategories(t)

	mustCategory(t, m, "Tech", "tech")
	mustCategory(t, m, "Life", "life")

	// Moving Life up swaps the pair and rewrites both orders.
	require.NoError(t, m.MoveUp(1))
	cats := m.ListOrdered()
	assert.Equal(t, "Life", cats[0].Name)
	assert.Equal(t, "Tech", cats[1].Name)
	assert.Equal(t, []int{1, 2}, orderValues(cats))

	require.NoError(t, m.MoveDown(0))
	cats = m.ListOrdered()
	assert.Equal(t, "Tech", cats[0].Name)

	// Boundary moves are accepted no-ops.
	require.NoError(t, m.MoveUp(0))
	require.NoError(t, m.MoveDown(len(cats)-1))
	assert.Equal(t, "Tech", m.ListOrdered()[0].Name)
}

func TestCategoryFindBySlug(t *testing.T) {
	m := newTestCategories(t)
	mustCategory(t, m, "Tech", "tech")

	cat, err := m.FindBySlug("tech")
	require.NoError(t, err)
	assert.Equal(t, "Tech", cat.Name)

	_, err = m.FindBySlug("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
