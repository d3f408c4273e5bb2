package inkpot

import (
	"strings"
	"sync"
	"time"
)

// CommentManager owns the append-only comment collection. Comments are
// stored globally and filtered by post at read time; postId is not
// checked against the posts collection at write time.
type CommentManager struct {
	store Store

	mu     sync.Mutex
	lastID int64
	now    func() time.Time
}

func NewCommentManager(store Store) *CommentManager {
	return &CommentManager{store: store, now: time.Now}
}

func (m *CommentManager) load() []Comment {
	return loadJSON(m.store, CollComments, []Comment(nil))
}

func (m *CommentManager) nextID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	return id
}

// Add appends a comment for the given post. Author and content must be
// non-blank after trimming; email is optional.
func (m *CommentManager) Add(postID int64, author, content, email string) (Comment, error) {
	c := Comment{
		Author:  strings.TrimSpace(author),
		Content: strings.TrimSpace(content),
		Email:   strings.TrimSpace(email),
	}
	if err := validate.Struct(c); err != nil {
		return Comment{}, &ValidationError{Field: "comment", Reason: "author and content are required"}
	}
	c.ID = m.nextID()
	c.PostID = postID
	c.Date = DisplayDate(m.now())
	if err := saveJSON(m.store, CollComments, append(m.load(), c)); err != nil {
		return Comment{}, err
	}
	return c, nil
}

// ListForPost returns the comments whose postId matches, in insertion
// order. No pagination.
func (m *CommentManager) ListForPost(postID int64) []Comment {
	var out []Comment
	for _, c := range m.load() {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out
}

// ListAll returns every comment across all posts, for admin moderation.
func (m *CommentManager) ListAll() []Comment {
	return m.load()
}

// Delete removes the comment with the given id from the global
// collection. Confirmation is the caller's concern.
func (m *CommentManager) Delete(id int64) error {
	comments := m.load()
	for i := range comments {
		if comments[i].ID == id {
			return saveJSON(m.store, CollComments, append(comments[:i], comments[i+1:]...))
		}
	}
	return ErrNotFound
}
