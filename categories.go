package inkpot

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CategoryInput is the admin submission for creating or updating a
// category. Slug is normalized before validation, so a slug that
// normalizes to nothing is rejected.
type CategoryInput struct {
	Name        string `validate:"required"`
	Slug        string `validate:"required"`
	Description string
	Color       string
}

// CategoryManager owns category CRUD and their manual ordering. Order
// values are kept a dense 1..N permutation at rest by renumbering the
// whole list on every insert, delete, and move.
type CategoryManager struct {
	store Store
	now   func() time.Time
}

func NewCategoryManager(store Store) *CategoryManager {
	return &CategoryManager{store: store, now: time.Now}
}

func (m *CategoryManager) load() []Category {
	return loadJSON(m.store, CollCategories, []Category(nil))
}

// renumber rewrites every order value to index+1 and persists the list.
func (m *CategoryManager) renumber(cats []Category) error {
	for i := range cats {
		cats[i].Order = i + 1
	}
	return saveJSON(m.store, CollCategories, cats)
}

// Create appends a category with the next order value (count+1).
func (m *CategoryManager) Create(in CategoryInput) (Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = NormalizeSlug(in.Slug)
	if err := validate.Struct(in); err != nil {
		return Category{}, &ValidationError{Field: "category", Reason: "name and slug are required"}
	}
	cats := m.load()
	now := m.now().UTC().Format(time.RFC3339)
	cat := Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Color:       in.Color,
		Order:       len(cats) + 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := saveJSON(m.store, CollCategories, append(cats, cat)); err != nil {
		return Category{}, err
	}
	return cat, nil
}

// Update replaces the editable fields of the category with the given id,
// preserving its order and creation timestamp.
func (m *CategoryManager) Update(id string, in CategoryInput) (Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = NormalizeSlug(in.Slug)
	if err := validate.Struct(in); err != nil {
		return Category{}, &ValidationError{Field: "category", Reason: "name and slug are required"}
	}
	cats := m.load()
	for i := range cats {
		if cats[i].ID != id {
			continue
		}
		cats[i].Name = in.Name
		cats[i].Slug = in.Slug
		cats[i].Description = in.Description
		cats[i].Color = in.Color
		cats[i].UpdatedAt = m.now().UTC().Format(time.RFC3339)
		if err := saveJSON(m.store, CollCategories, cats); err != nil {
			return Category{}, err
		}
		return cats[i], nil
	}
	return Category{}, ErrNotFound
}

// Delete removes the category and renumbers the remainder to a dense
// 1..N sequence.
func (m *CategoryManager) Delete(id string) error {
	cats := m.load()
	for i := range cats {
		if cats[i].ID == id {
			return m.renumber(append(cats[:i], cats[i+1:]...))
		}
	}
	return ErrNotFound
}

// MoveUp swaps the category at index with its predecessor. A no-op at
// index 0.
func (m *CategoryManager) MoveUp(index int) error {
	cats := m.ListOrdered()
	if index <= 0 || index >= len(cats) {
		return nil
	}
	cats[index-1], cats[index] = cats[index], cats[index-1]
	return m.renumber(cats)
}

// MoveDown swaps the category at index with its successor. A no-op at
// the last index.
func (m *CategoryManager) MoveDown(index int) error {
	cats := m.ListOrdered()
	if index < 0 || index >= len(cats)-1 {
		return nil
	}
	cats[index], cats[index+1] = cats[index+1], cats[index]
	return m.renumber(cats)
}

// ListOrdered returns all categories sorted by their order value.
func (m *CategoryManager) ListOrdered() []Category {
	cats := m.load()
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Order < cats[j].Order })
	return cats
}

// FindBySlug returns the category with the given slug.
func (m *CategoryManager) FindBySlug(slug string) (Category, error) {
	for _, c := range m.load() {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}
