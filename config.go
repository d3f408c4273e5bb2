package inkpot

// SiteConfig holds all configuration for an inkpot site. Backend
// selection happens here, once, at startup: a configured RemoteDSN picks
// the remote relational store, otherwise content lives in the local
// embedded store under DataDir.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Default post author

	Addr      string // Listen address (default ":3000")
	DataDir   string // Local store path (default "data/content")
	RemoteDSN string // When set, use the remote store at this DSN

	AdminUser         string // Admin login name (default "admin")
	AdminPasswordHash string // Required: bcrypt hash of the admin password
	SessionSecret     string // Required: session encryption secret
	CookieSecure      bool   // Set true for HTTPS

	UploadEndpoint string // Optional external upload fallback ({url} contract)
	MaxImageWidth  int    // Compression bound (default 1200)
	JPEGQuality    int    // Re-encode quality (default 80)

	SeedPosts    []Post          // Built-in posts served before any admin content
	Seeds        SeedPolicy      // What admins may do to seed posts
	EmptyLayouts EmptyLayoutMode // Composer behavior for emptied layouts
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DataDir == "" {
		c.DataDir = "data/content"
	}
	if c.AdminUser == "" {
		c.AdminUser = "admin"
	}
	if c.MaxImageWidth == 0 {
		c.MaxImageWidth = DefaultMaxImageWidth
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = DefaultJPEGQuality
	}
	if c.Seeds.OnDelete == "" {
		c.Seeds.OnDelete = SeedDeleteRefuse
	}
	if c.EmptyLayouts == "" {
		c.EmptyLayouts = EmptyLayoutKeep
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance
// before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStore injects a pre-built content store, bypassing the
// DataDir/RemoteDSN selection. Tests use this to run against a
// throwaway store.
func WithStore(s Store) Option {
	return func(a *App) {
		a.Store = s
	}
}
