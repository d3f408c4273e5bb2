package inkpot

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) handleHome(c echo.Context) error {
	active := c.QueryParam("category")
	var posts []Post
	if active == "" {
		posts = a.Posts.ListPublished()
	} else {
		posts = a.Posts.ListByCategory(active)
	}
	cats := a.Categories.ListOrdered()
	meta := PageMeta{
		Title:       a.Config.Name,
		Description: a.Config.Description,
		URL:         a.Config.URL,
		OGType:      "website",
	}
	return Render(c, a.Views.Home(posts, cats, active, meta))
}

func (a *App) handlePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	post, err := a.Posts.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	// Drafts and unpublished posts are admin-only.
	if post.Status != StatusPublished && !IsAdmin(c) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	comments := a.Comments.ListForPost(id)
	cats := a.Categories.ListOrdered()
	meta := PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		URL:         a.Config.URL + "/posts/" + strconv.FormatInt(id, 10) + "/",
		OGType:      "article",
	}
	return Render(c, a.Views.Post(post, comments, cats, meta, CsrfToken(c)))
}

func (a *App) handleAddComment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	_, err = a.Comments.Add(id,
		c.FormValue("author"),
		c.FormValue("content"),
		c.FormValue("email"),
	)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.Redirect(http.StatusSeeOther,
				"/posts/"+strconv.FormatInt(id, 10)+"/?err="+url.QueryEscape(ve.Reason))
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/posts/"+strconv.FormatInt(id, 10)+"/")
}

func (a *App) handleCategory(c echo.Context) error {
	slug := c.Param("slug")
	cat, err := a.Categories.FindBySlug(slug)
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	posts := a.Posts.ListByCategory(cat.Slug)
	cats := a.Categories.ListOrdered()
	meta := PageMeta{
		Title:       cat.Name + " | " + a.Config.Name,
		Description: cat.Description,
		URL:         a.Config.URL + "/category/" + cat.Slug + "/",
		OGType:      "website",
	}
	return Render(c, a.Views.Home(posts, cats, cat.Slug, meta))
}

func (a *App) handlePage(kind PageKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		content := a.Pages.Get(kind)
		meta := PageMeta{
			Title:       content.Title + " | " + a.Config.Name,
			Description: a.Config.Description,
			URL:         a.Config.URL + "/" + string(kind) + "/",
			OGType:      "website",
		}
		return Render(c, a.Views.Page(kind, content, meta))
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
