package inkpot

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	user := c.FormValue("username")
	pass := c.FormValue("password")
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.Config.AdminUser)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(a.Config.AdminPasswordHash), []byte(pass)) == nil
	if userOK && passOK {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	return Render(c, a.Views.AdminDashboard(a.Posts.ListAll(), msg, CsrfToken(c)))
}

func adminMsg(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape(msg))
}

// Posts

func (a *App) handleAdminPostNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminPostForm(Post{Author: a.Config.Author}, a.Categories.ListOrdered(), CsrfToken(c)))
}

func (a *App) handleAdminPostEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	post, err := a.Posts.FindByID(id)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	return Render(c, a.Views.AdminPostForm(post, a.Categories.ListOrdered(), CsrfToken(c)))
}

// parseLayouts decodes the hidden imageLayouts form field and runs it
// through the composer so positions come back dense no matter what the
// editor sent.
func (a *App) parseLayouts(raw string) ([]ImageLayout, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var layouts []ImageLayout
	if err := json.Unmarshal([]byte(raw), &layouts); err != nil {
		return nil, err
	}
	return NewComposer(layouts, a.Config.EmptyLayouts).Layouts(), nil
}

func (a *App) handleAdminPostSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	layouts, err := a.parseLayouts(c.FormValue("imageLayouts"))
	if err != nil {
		return adminMsg(c, "Invalid image layout data.")
	}
	status := StatusDraft
	switch c.FormValue("action") {
	case "publish":
		status = StatusPublished
	case "unpublish":
		status = StatusUnpublished
	}

	if rawID := c.FormValue("id"); rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return c.NoContent(http.StatusNotFound)
		}
		patch := PostPatch{
			Title:    formPtr(c, "title"),
			Content:  formPtr(c, "content"),
			Excerpt:  formPtr(c, "excerpt"),
			Author:   formPtr(c, "author"),
			Image:    formPtr(c, "image"),
			Category: formPtr(c, "category"),
			Tags:     formPtr(c, "tags"),
			Status:   &status,
		}
		if layouts != nil {
			patch.ImageLayouts = &layouts
		}
		if _, err := a.Posts.Update(id, patch); err != nil {
			return a.adminSaveError(c, err)
		}
		return adminMsg(c, "saved")
	}

	in := PostInput{
		Title:        c.FormValue("title"),
		Content:      c.FormValue("content"),
		Excerpt:      c.FormValue("excerpt"),
		Author:       c.FormValue("author"),
		Image:        c.FormValue("image"),
		Category:     c.FormValue("category"),
		Tags:         c.FormValue("tags"),
		ImageLayouts: layouts,
	}
	if in.Author == "" {
		in.Author = a.Config.Author
	}
	if _, err := a.Posts.Create(in, status); err != nil {
		return a.adminSaveError(c, err)
	}
	return adminMsg(c, "saved")
}

// adminSaveError turns manager errors into user-visible messages. Quota
// failures get their actionable message verbatim; everything else is
// surfaced for a retry/cancel decision, never retried here.
func (a *App) adminSaveError(c echo.Context, err error) error {
	var qe *QuotaExceededError
	var ve *ValidationError
	switch {
	case errors.As(err, &qe):
		return adminMsg(c, qe.Error())
	case errors.As(err, &ve):
		return adminMsg(c, ve.Error())
	case errors.Is(err, ErrNotFound):
		return c.NoContent(http.StatusNotFound)
	default:
		return err
	}
}

func (a *App) handleAdminPostDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	if err := a.Posts.Delete(id); err != nil {
		if errors.Is(err, ErrSeedProtected) {
			return adminMsg(c, "Built-in posts cannot be deleted.")
		}
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return adminMsg(c, "deleted")
}

// Categories

func (a *App) handleAdminCategories(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminCats(a.Categories.ListOrdered(), CsrfToken(c)))
}

func (a *App) handleAdminCategorySave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	in := CategoryInput{
		Name:        c.FormValue("name"),
		Slug:        c.FormValue("slug"),
		Description: c.FormValue("description"),
		Color:       c.FormValue("color"),
	}
	var err error
	if id := c.FormValue("id"); id != "" {
		_, err = a.Categories.Update(id, in)
	} else {
		_, err = a.Categories.Create(in)
	}
	if err != nil {
		return a.adminSaveError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/categories/")
}

func (a *App) handleAdminCategoryMove(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	cats := a.Categories.ListOrdered()
	index := -1
	for i, cat := range cats {
		if cat.ID == c.Param("id") {
			index = i
			break
		}
	}
	if index < 0 {
		return c.NoContent(http.StatusNotFound)
	}
	var err error
	if c.FormValue("direction") == "up" {
		err = a.Categories.MoveUp(index)
	} else {
		err = a.Categories.MoveDown(index)
	}
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/categories/")
}

func (a *App) handleAdminCategoryDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Categories.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/categories/")
}

// Comments

func (a *App) handleAdminComments(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminComments(a.Comments.ListAll(), CsrfToken(c)))
}

func (a *App) handleAdminCommentDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	if err := a.Comments.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/comments/")
}

// Pages

func pageKindParam(c echo.Context) (PageKind, bool) {
	switch c.Param("kind") {
	case "about":
		return PageAbout, true
	case "contact":
		return PageContact, true
	}
	return "", false
}

func (a *App) handleAdminPageEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	kind, ok := pageKindParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return Render(c, a.Views.AdminPage(kind, a.Pages.Get(kind), CsrfToken(c)))
}

func (a *App) handleAdminPageSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	kind, ok := pageKindParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	content := PageContent{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Content: c.FormValue("content"),
	}
	if err := a.Pages.Set(kind, content); err != nil {
		return a.adminSaveError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/pages/"+string(kind)+"/")
}

// Images

type uploadResult struct {
	Name    string `json:"name"`
	DataURI string `json:"dataUri,omitempty"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleAdminImageUpload compresses every file of a multipart batch and
// answers per-file results. A file that fails to decode or encode is
// reported by name without aborting the rest.
func (a *App) handleAdminImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusUnauthorized)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return c.String(http.StatusBadRequest, "No files provided")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return c.String(http.StatusBadRequest, "No files provided")
	}

	results := make([]uploadResult, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			results = append(results, uploadResult{Name: fh.Filename, Error: err.Error()})
			continue
		}
		uri, err := Compress(src, a.Config.MaxImageWidth, a.Config.JPEGQuality)
		src.Close()
		if err != nil {
			// Formats the local pipeline cannot re-encode go to the
			// external endpoint when one is configured.
			if a.Uploader != nil {
				if hosted, upErr := a.uploadRaw(fh); upErr == nil {
					results = append(results, uploadResult{Name: fh.Filename, URL: hosted})
					continue
				}
			}
			results = append(results, uploadResult{Name: fh.Filename, Error: err.Error()})
			continue
		}
		results = append(results, uploadResult{Name: fh.Filename, DataURI: uri})
	}
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}

func (a *App) uploadRaw(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return a.Uploader.Upload(fh.Filename, src)
}

func formPtr(c echo.Context, field string) *string {
	if _, ok := c.Request().Form[field]; !ok {
		return nil
	}
	v := c.FormValue(field)
	return &v
}
