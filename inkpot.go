// Package inkpot is a small blog/CMS engine built with Go, Echo, and
// templ: a public site rendering posts, categories, comments, and static
// pages, plus an admin area for managing them. Content lives in named
// collections behind a pluggable Store: an embedded local database by
// default, a remote relational backend when configured.
package inkpot

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components the engine calls when rendering
// pages. DefaultViews supplies plain-HTML fallbacks; sites override any
// of them to own their markup.
type ViewFuncs struct {
	Home           func(posts []Post, cats []Category, activeCategory string, meta PageMeta) templ.Component
	Post           func(post Post, comments []Comment, cats []Category, meta PageMeta, csrfToken string) templ.Component
	Page           func(kind PageKind, content PageContent, meta PageMeta) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []Post, message string, csrfToken string) templ.Component
	AdminPostForm  func(post Post, cats []Category, csrfToken string) templ.Component
	AdminCats      func(cats []Category, csrfToken string) templ.Component
	AdminComments  func(comments []Comment, csrfToken string) templ.Component
	AdminPage      func(kind PageKind, content PageContent, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central inkpot application. It wires together the store,
// entity managers, handlers, middleware, and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  Store
	Views  ViewFuncs

	Posts      *PostManager
	Categories *CategoryManager
	Comments   *CommentManager
	Pages      *PageManager
	Uploader   *UploadClient

	loginLimiter *loginLimiter
	customRoutes []func(*App)
}

// New creates an inkpot App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the store, builds the managers, and registers middleware
// and routes. Separated from Start so tests can drive the Echo instance
// without a listening socket.
func (a *App) Init() error {
	if a.Config.AdminPasswordHash == "" {
		return fmt.Errorf("inkpot: AdminPasswordHash is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkpot: SessionSecret is required")
	}

	if a.Store == nil {
		store, err := openStore(a.Config)
		if err != nil {
			return err
		}
		a.Store = store
	}

	// Record which backend this deployment runs on. The legacy format
	// kept this preference next to the content, so later tooling can
	// tell the two apart.
	remote := "false"
	if a.Config.RemoteDSN != "" {
		remote = "true"
	}
	if err := a.Store.Set(CollBackendFlag, []byte(remote)); err != nil {
		return fmt.Errorf("inkpot: record backend flag: %w", err)
	}

	a.Posts = NewPostManager(a.Store, a.Config.SeedPosts, a.Config.Seeds)
	a.Categories = NewCategoryManager(a.Store)
	a.Comments = NewCommentManager(a.Store)
	a.Pages = NewPageManager(a.Store)
	if a.Config.UploadEndpoint != "" {
		a.Uploader = NewUploadClient(a.Config.UploadEndpoint)
	}
	a.loginLimiter = newLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and runs the HTTP server until it is shut
// down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func openStore(cfg SiteConfig) (Store, error) {
	if cfg.RemoteDSN != "" {
		store, err := NewRemoteStore(cfg.RemoteDSN)
		if err != nil {
			return nil, fmt.Errorf("inkpot: init remote store: %w", err)
		}
		return store, nil
	}
	store, err := NewLocalStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("inkpot: init local store: %w", err)
	}
	return store, nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Public routes
	e.GET("/", a.handleHome)
	e.GET("/posts/:id/", a.handlePost)
	e.POST("/posts/:id/comments/", a.handleAddComment)
	e.GET("/category/:slug/", a.handleCategory)
	e.GET("/about/", a.handlePage(PageAbout))
	e.GET("/contact/", a.handlePage(PageContact))
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/posts/new/", a.handleAdminPostNew)
	e.GET("/admin/posts/:id/", a.handleAdminPostEdit)
	e.POST("/admin/posts/save/", a.handleAdminPostSave)
	e.DELETE("/admin/posts/:id/", a.handleAdminPostDelete)
	e.GET("/admin/categories/", a.handleAdminCategories)
	e.POST("/admin/categories/save/", a.handleAdminCategorySave)
	e.POST("/admin/categories/:id/move/", a.handleAdminCategoryMove)
	e.DELETE("/admin/categories/:id/", a.handleAdminCategoryDelete)
	e.GET("/admin/comments/", a.handleAdminComments)
	e.DELETE("/admin/comments/:id/", a.handleAdminCommentDelete)
	e.GET("/admin/pages/:kind/", a.handleAdminPageEdit)
	e.POST("/admin/pages/:kind/", a.handleAdminPageSave)
	e.POST("/admin/images/upload/", a.handleAdminImageUpload)
}

// Close cleans up resources. Call when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback
// if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkpot: required environment variable %s is not set", key)
	}
	return v
}
