package inkpot

import (
	"strings"
	"sync"
	"time"
)

// SeedDeleteMode is the deletion policy for built-in seed posts. The
// original deployments disagreed on this (some refused, some silently
// ignored), so it is configuration rather than behavior baked in.
type SeedDeleteMode string

const (
	SeedDeleteAllow  SeedDeleteMode = "allow"
	SeedDeleteIgnore SeedDeleteMode = "ignore"
	SeedDeleteRefuse SeedDeleteMode = "refuse"
)

// SeedPolicy controls what admins may do to seed posts. When Editable is
// false, editing a seed clones it to a fresh id instead of mutating it.
type SeedPolicy struct {
	Editable bool
	OnDelete SeedDeleteMode
}

// PostInput is the admin submission for creating a post. Tags arrive as
// the raw comma-separated form value.
type PostInput struct {
	Title        string `validate:"required"`
	Content      string `validate:"required"`
	Excerpt      string
	Author       string `validate:"required"`
	Image        string
	Category     string
	Tags         string
	ImageLayouts []ImageLayout
}

// PostPatch carries the fields of an update; nil pointers leave the
// stored value untouched.
type PostPatch struct {
	Title        *string
	Content      *string
	Excerpt      *string
	Author       *string
	Image        *string
	Category     *string
	Tags         *string
	ImageLayouts *[]ImageLayout
	Status       *PostStatus
}

// PostManager owns the post lifecycle: creation, in-place edits,
// draft/publish transitions, seed policy, and the derived fields
// (excerpt, parsed tags).
type PostManager struct {
	store  Store
	seeds  []Post
	seedID map[int64]bool
	policy SeedPolicy

	mu     sync.Mutex
	lastID int64
	now    func() time.Time
}

// NewPostManager creates a PostManager over the given store. seeds are
// the built-in posts returned while the posts collection has never been
// written; the first write materializes them.
func NewPostManager(store Store, seeds []Post, policy SeedPolicy) *PostManager {
	if policy.OnDelete == "" {
		policy.OnDelete = SeedDeleteRefuse
	}
	ids := make(map[int64]bool, len(seeds))
	for i := range seeds {
		seeds[i].Seed = true
		ids[seeds[i].ID] = true
	}
	return &PostManager{
		store:  store,
		seeds:  seeds,
		seedID: ids,
		policy: policy,
		now:    time.Now,
	}
}

// NewSeed builds a fully-populated seed post. Seeds are published and
// carry a derived excerpt like any other post.
func NewSeed(id int64, title, content, author, date, image string) Post {
	return Post{
		ID:      id,
		Title:   title,
		Content: content,
		Excerpt: Excerpt(content),
		Author:  author,
		Date:    date,
		Image:   image,
		Status:  StatusPublished,
		Seed:    true,
	}
}

// nextID returns a millisecond-timestamp id, bumped when two creations
// land in the same millisecond so ids stay unique within the process.
func (m *PostManager) nextID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	return id
}

func (m *PostManager) load() []Post {
	def := append([]Post(nil), m.seeds...)
	posts := loadJSON(m.store, CollPosts, def)
	for i := range posts {
		posts[i].Seed = m.seedID[posts[i].ID]
	}
	return posts
}

func (m *PostManager) save(posts []Post) error {
	return saveJSON(m.store, CollPosts, posts)
}

// build populates a canonical record from an input; the single
// construction path behind NewDraft and NewPublished.
func (m *PostManager) build(in PostInput, status PostStatus) (Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	if err := validate.Struct(in); err != nil {
		return Post{}, &ValidationError{Field: "post", Reason: err.Error()}
	}
	excerpt := in.Excerpt
	if excerpt == "" {
		excerpt = Excerpt(in.Content)
	}
	return Post{
		ID:           m.nextID(),
		Title:        in.Title,
		Content:      in.Content,
		Excerpt:      excerpt,
		Author:       in.Author,
		Date:         DisplayDate(m.now()),
		Image:        in.Image,
		ImageLayouts: in.ImageLayouts,
		Category:     in.Category,
		Tags:         ParseTags(in.Tags),
		Status:       status,
	}, nil
}

// NewDraft constructs a draft post record without persisting it.
func (m *PostManager) NewDraft(in PostInput) (Post, error) {
	return m.build(in, StatusDraft)
}

// NewPublished constructs a published post record without persisting it.
func (m *PostManager) NewPublished(in PostInput) (Post, error) {
	return m.build(in, StatusPublished)
}

// Create validates the input, constructs the post in the requested
// state, and prepends it to the collection (most-recent-first order).
func (m *PostManager) Create(in PostInput, status PostStatus) (Post, error) {
	post, err := m.build(in, status)
	if err != nil {
		return Post{}, err
	}
	posts := append([]Post{post}, m.load()...)
	if err := m.save(posts); err != nil {
		return Post{}, err
	}
	return post, nil
}

// Update merges patch into the post with the given id, recomputing the
// excerpt when content changes without an explicit excerpt. Editing a
// seed post under a non-editable policy clones it to a fresh id and
// leaves the seed untouched.
func (m *PostManager) Update(id int64, patch PostPatch) (Post, error) {
	posts := m.load()
	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Post{}, ErrNotFound
	}

	updated := applyPatch(posts[idx], patch)

	if posts[idx].Seed && !m.policy.Editable {
		updated.ID = m.nextID()
		updated.Seed = false
		posts = append([]Post{updated}, posts...)
	} else {
		posts[idx] = updated
	}
	if err := m.save(posts); err != nil {
		return Post{}, err
	}
	return updated, nil
}

func applyPatch(p Post, patch PostPatch) Post {
	contentChanged := false
	if patch.Title != nil {
		p.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil && *patch.Content != p.Content {
		p.Content = *patch.Content
		contentChanged = true
	}
	if patch.Author != nil {
		p.Author = strings.TrimSpace(*patch.Author)
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Tags != nil {
		p.Tags = ParseTags(*patch.Tags)
	}
	if patch.ImageLayouts != nil {
		p.ImageLayouts = *patch.ImageLayouts
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	switch {
	case patch.Excerpt != nil && *patch.Excerpt != "":
		p.Excerpt = *patch.Excerpt
	case contentChanged:
		p.Excerpt = Excerpt(p.Content)
	}
	return p
}

// Delete removes the post with the given id. Seed posts are subject to
// the configured policy: allowed, silently ignored, or refused.
func (m *PostManager) Delete(id int64) error {
	posts := m.load()
	for i := range posts {
		if posts[i].ID != id {
			continue
		}
		if posts[i].Seed {
			switch m.policy.OnDelete {
			case SeedDeleteIgnore:
				return nil
			case SeedDeleteRefuse:
				return ErrSeedProtected
			}
		}
		return m.save(append(posts[:i], posts[i+1:]...))
	}
	return ErrNotFound
}

// ListPublished returns published posts, most recent first.
func (m *PostManager) ListPublished() []Post {
	var out []Post
	for _, p := range m.load() {
		if p.Status == StatusPublished {
			out = append(out, p)
		}
	}
	return out
}

// ListByCategory returns published posts in the category slug.
func (m *PostManager) ListByCategory(slug string) []Post {
	var out []Post
	for _, p := range m.ListPublished() {
		if p.Category == slug {
			out = append(out, p)
		}
	}
	return out
}

// ListAll returns every post including drafts, for the admin dashboard.
func (m *PostManager) ListAll() []Post {
	return m.load()
}

// FindByID returns the post with the given id.
func (m *PostManager) FindByID(id int64) (Post, error) {
	for _, p := range m.load() {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}
