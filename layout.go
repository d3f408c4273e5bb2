package inkpot

import (
	"sort"

	"github.com/google/uuid"
)

// EmptyLayoutMode decides what happens to a layout whose last image is
// removed or moved away. The original shipped both behaviors in two
// separate editors; here it is one composer with an explicit mode.
type EmptyLayoutMode string

const (
	// EmptyLayoutKeep leaves empty layouts in place until explicitly
	// deleted (full editor behavior).
	EmptyLayoutKeep EmptyLayoutMode = "keep"
	// EmptyLayoutRemove drops a layout as soon as it has no images
	// (quick-add behavior).
	EmptyLayoutRemove EmptyLayoutMode = "remove"
)

// AutoColumns picks a column count for a layout created implicitly from
// a batch of n uploads: one image per column up to three, two columns
// for larger batches. A heuristic default, not configurable beyond
// manual override afterward.
func AutoColumns(n int) int {
	switch {
	case n <= 1:
		return 1
	case n == 2:
		return 2
	case n == 3:
		return 3
	default:
		return 2
	}
}

// NewImage builds an image entry with a fresh id.
func NewImage(src, alt string) Image {
	return Image{ID: uuid.NewString(), Src: src, Alt: alt}
}

// Composer maintains the ordered image layouts of a post draft being
// edited. Positions stay a dense 0..N-1 permutation after every
// structural change; Layouts returns them in ascending position order.
type Composer struct {
	layouts []ImageLayout
	onEmpty EmptyLayoutMode
}

// NewComposer wraps an existing layout list (usually Post.ImageLayouts).
func NewComposer(layouts []ImageLayout, onEmpty EmptyLayoutMode) *Composer {
	if onEmpty == "" {
		onEmpty = EmptyLayoutKeep
	}
	c := &Composer{
		layouts: append([]ImageLayout(nil), layouts...),
		onEmpty: onEmpty,
	}
	sort.SliceStable(c.layouts, func(i, j int) bool {
		return c.layouts[i].Position < c.layouts[j].Position
	})
	c.renumber()
	return c
}

// Layouts returns the current layouts in ascending position order.
func (c *Composer) Layouts() []ImageLayout {
	return append([]ImageLayout(nil), c.layouts...)
}

func (c *Composer) renumber() {
	for i := range c.layouts {
		c.layouts[i].Position = i
	}
}

func (c *Composer) find(layoutID string) int {
	for i := range c.layouts {
		if c.layouts[i].ID == layoutID {
			return i
		}
	}
	return -1
}

func validColumns(columns int) bool {
	return columns >= 1 && columns <= 4
}

// AddLayout appends an empty layout with the next position.
func (c *Composer) AddLayout(columns int) (ImageLayout, error) {
	if !validColumns(columns) {
		return ImageLayout{}, &ValidationError{Field: "columns", Reason: "must be between 1 and 4"}
	}
	layout := ImageLayout{
		ID:       uuid.NewString(),
		Images:   []Image{},
		Columns:  columns,
		Position: len(c.layouts),
	}
	c.layouts = append(c.layouts, layout)
	return layout, nil
}

// AddImages appends images to the layout with the given id, or, when
// layoutID is empty, creates a new layout whose column count is chosen
// by AutoColumns from the batch size.
func (c *Composer) AddImages(layoutID string, images []Image) (ImageLayout, error) {
	if layoutID == "" {
		layout := ImageLayout{
			ID:       uuid.NewString(),
			Images:   append([]Image(nil), images...),
			Columns:  AutoColumns(len(images)),
			Position: len(c.layouts),
		}
		c.layouts = append(c.layouts, layout)
		return layout, nil
	}
	i := c.find(layoutID)
	if i < 0 {
		return ImageLayout{}, ErrNotFound
	}
	c.layouts[i].Images = append(c.layouts[i].Images, images...)
	return c.layouts[i], nil
}

// RemoveImage removes the image from its layout. In remove mode a layout
// left empty disappears and the rest are renumbered.
func (c *Composer) RemoveImage(layoutID, imageID string) error {
	i := c.find(layoutID)
	if i < 0 {
		return ErrNotFound
	}
	imgs := c.layouts[i].Images
	for j := range imgs {
		if imgs[j].ID == imageID {
			c.layouts[i].Images = append(imgs[:j], imgs[j+1:]...)
			c.dropIfEmpty(i)
			return nil
		}
	}
	return ErrNotFound
}

func (c *Composer) dropIfEmpty(i int) {
	if c.onEmpty == EmptyLayoutRemove && len(c.layouts[i].Images) == 0 {
		c.layouts = append(c.layouts[:i], c.layouts[i+1:]...)
		c.renumber()
	}
}

// MoveImage relocates an image to toIndex within the destination layout,
// preserving the relative order of the images already there. A source
// layout left empty is dropped only in remove mode.
func (c *Composer) MoveImage(fromLayoutID, imageID, toLayoutID string, toIndex int) error {
	from := c.find(fromLayoutID)
	if from < 0 {
		return ErrNotFound
	}
	to := c.find(toLayoutID)
	if to < 0 {
		return ErrNotFound
	}
	var moved Image
	found := false
	imgs := c.layouts[from].Images
	for j := range imgs {
		if imgs[j].ID == imageID {
			moved = imgs[j]
			c.layouts[from].Images = append(imgs[:j], imgs[j+1:]...)
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	dest := c.layouts[to].Images
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(dest) {
		toIndex = len(dest)
	}
	dest = append(dest, Image{})
	copy(dest[toIndex+1:], dest[toIndex:])
	dest[toIndex] = moved
	c.layouts[to].Images = dest
	if from != to {
		c.dropIfEmpty(from)
	}
	return nil
}

// ReorderLayouts moves the layout at fromIndex to toIndex and renumbers
// every position densely.
func (c *Composer) ReorderLayouts(fromIndex, toIndex int) error {
	n := len(c.layouts)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return &ValidationError{Field: "index", Reason: "out of range"}
	}
	layout := c.layouts[fromIndex]
	c.layouts = append(c.layouts[:fromIndex], c.layouts[fromIndex+1:]...)
	c.layouts = append(c.layouts[:toIndex], append([]ImageLayout{layout}, c.layouts[toIndex:]...)...)
	c.renumber()
	return nil
}

// SetColumns overrides a layout's column count. Stored images are
// untouched; column degradation on narrow viewports is a rendering
// concern.
func (c *Composer) SetColumns(layoutID string, columns int) error {
	if !validColumns(columns) {
		return &ValidationError{Field: "columns", Reason: "must be between 1 and 4"}
	}
	i := c.find(layoutID)
	if i < 0 {
		return ErrNotFound
	}
	c.layouts[i].Columns = columns
	return nil
}

// SetCaption updates an image's caption.
func (c *Composer) SetCaption(layoutID, imageID, caption string) error {
	return c.updateImage(layoutID, imageID, func(img *Image) { img.Caption = caption })
}

// SetAlt updates an image's alt text.
func (c *Composer) SetAlt(layoutID, imageID, alt string) error {
	return c.updateImage(layoutID, imageID, func(img *Image) { img.Alt = alt })
}

func (c *Composer) updateImage(layoutID, imageID string, fn func(*Image)) error {
	i := c.find(layoutID)
	if i < 0 {
		return ErrNotFound
	}
	for j := range c.layouts[i].Images {
		if c.layouts[i].Images[j].ID == imageID {
			fn(&c.layouts[i].Images[j])
			return nil
		}
	}
	return ErrNotFound
}

// RemoveLayout deletes a layout explicitly, regardless of mode, and
// renumbers the remainder.
func (c *Composer) RemoveLayout(layoutID string) error {
	i := c.find(layoutID)
	if i < 0 {
		return ErrNotFound
	}
	c.layouts = append(c.layouts[:i], c.layouts[i+1:]...)
	c.renumber()
	return nil
}
