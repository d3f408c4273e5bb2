package inkpot

import "encoding/json"

// PostStatus is the single source of truth for a post's lifecycle state.
// The original data format carried two independently-set booleans
// (isDraft, isPublished); Status collapses them into one field while the
// JSON codec below keeps the stored shape bit-compatible.
type PostStatus string

const (
	StatusDraft       PostStatus = "draft"
	StatusPublished   PostStatus = "published"
	StatusUnpublished PostStatus = "unpublished"
)

// Post is the canonical post record. Use the PostManager constructors
// (NewDraft, NewPublished, NewSeed) rather than struct literals so every
// field is populated consistently across creation paths.
type Post struct {
	ID           int64
	Title        string
	Content      string
	Excerpt      string
	Author       string
	Date         string // display-formatted creation date
	Image        string // cover image: data URI or remote URL
	ImageLayouts []ImageLayout
	Category     string // category slug, optional
	Tags         []string
	Status       PostStatus

	// Seed marks built-in example posts that exist before any admin
	// content. Never persisted; set by the manager at read time.
	Seed bool
}

// postJSON is the persisted wire shape. Field names must stay bit-exact
// with the legacy format.
type postJSON struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Excerpt      string        `json:"excerpt,omitempty"`
	Author       string        `json:"author"`
	Date         string        `json:"date"`
	Image        string        `json:"image"`
	ImageLayouts []ImageLayout `json:"imageLayouts,omitempty"`
	Category     string        `json:"category,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	IsDraft      bool          `json:"isDraft"`
	IsPublished  *bool         `json:"isPublished,omitempty"`
}

func (p Post) MarshalJSON() ([]byte, error) {
	published := p.Status == StatusPublished
	return json.Marshal(postJSON{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Excerpt:      p.Excerpt,
		Author:       p.Author,
		Date:         p.Date,
		Image:        p.Image,
		ImageLayouts: p.ImageLayouts,
		Category:     p.Category,
		Tags:         p.Tags,
		IsDraft:      p.Status == StatusDraft,
		IsPublished:  &published,
	})
}

func (p *Post) UnmarshalJSON(data []byte) error {
	var pj postJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	*p = Post{
		ID:           pj.ID,
		Title:        pj.Title,
		Content:      pj.Content,
		Excerpt:      pj.Excerpt,
		Author:       pj.Author,
		Date:         pj.Date,
		Image:        pj.Image,
		ImageLayouts: pj.ImageLayouts,
		Category:     pj.Category,
		Tags:         pj.Tags,
	}
	// Legacy mapping: isDraft wins; otherwise a missing isPublished counts
	// as published, matching the original read predicate
	// (isPublished !== false && !isDraft).
	switch {
	case pj.IsDraft:
		p.Status = StatusDraft
	case pj.IsPublished == nil || *pj.IsPublished:
		p.Status = StatusPublished
	default:
		p.Status = StatusUnpublished
	}
	return nil
}

// Category is a manually-ordered post category. Order values form a dense
// 1..N sequence at rest; the CategoryManager renumbers on every
// structural change.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Order       int    `json:"order"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Comment is an append-only reader comment. PostID is not enforced as a
// foreign key; filtering happens at read time.
type Comment struct {
	ID      int64  `json:"id"`
	PostID  int64  `json:"postId"`
	Author  string `json:"author" validate:"required"`
	Content string `json:"content" validate:"required"`
	Date    string `json:"date"`
	Email   string `json:"email,omitempty"`
}

// Image is a single entry inside an ImageLayout.
type Image struct {
	ID      string `json:"id"`
	Src     string `json:"src"` // data URI or remote URL
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// ImageLayout is an ordered group of images sharing a column count,
// embedded within a post. Position values are dense 0..N-1 among a
// post's layouts.
type ImageLayout struct {
	ID       string  `json:"id"`
	Images   []Image `json:"images"`
	Columns  int     `json:"columns"` // 1..4
	Position int     `json:"position"`
}

// PageContent is the singleton document behind the About and Contact
// pages. Saved wholesale, no history.
type PageContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PageKind selects which singleton page a PageManager call targets.
type PageKind string

const (
	PageAbout   PageKind = "about"
	PageContact PageKind = "contact"
)

// PageMeta carries per-page metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string
	OGType      string // "website" or "article"
}
