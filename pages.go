package inkpot

// Built-in documents served until an admin saves their own.
var defaultPages = map[PageKind]PageContent{
	PageAbout: {
		Title:   "About",
		Content: "Welcome to the blog. Edit this page from the admin area.",
	},
	PageContact: {
		Title:   "Contact",
		Content: "Contact details go here. Edit this page from the admin area.",
	},
}

func pageCollection(kind PageKind) string {
	if kind == PageContact {
		return CollContact
	}
	return CollAbout
}

// PageManager owns the singleton About and Contact documents. Saves
// overwrite the document wholesale; there is no history.
type PageManager struct {
	store Store
}

func NewPageManager(store Store) *PageManager {
	return &PageManager{store: store}
}

// Get returns the stored document for the page, or its built-in default
// when nothing has been saved yet.
func (m *PageManager) Get(kind PageKind) PageContent {
	return loadJSON(m.store, pageCollection(kind), defaultPages[kind])
}

// Set overwrites the page document.
func (m *PageManager) Set(kind PageKind, content PageContent) error {
	return saveJSON(m.store, pageCollection(kind), content)
}
