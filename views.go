package inkpot

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// DefaultViews returns plain-HTML fallback components for every view the
// engine renders. Sites that want their own markup replace any subset of
// ViewFuncs; these exist so the engine runs standalone.
func DefaultViews(cfg SiteConfig) ViewFuncs {
	return ViewFuncs{
		Home:           func(posts []Post, cats []Category, active string, meta PageMeta) templ.Component { return homeView(cfg, posts, cats, active, meta) },
		Post:           func(post Post, comments []Comment, cats []Category, meta PageMeta, csrf string) templ.Component { return postView(cfg, post, comments, meta, csrf) },
		Page:           func(kind PageKind, content PageContent, meta PageMeta) templ.Component { return pageView(cfg, content, meta) },
		AdminLogin:     adminLoginView,
		AdminDashboard: adminDashboardView,
		AdminPostForm:  adminPostFormView,
		AdminCats:      adminCatsView,
		AdminComments:  adminCommentsView,
		AdminPage:      adminPageView,
		NotFound:       notFoundView,
		ServerError:    serverErrorView,
	}
}

func esc(s string) string { return html.EscapeString(s) }

type renderFn func(w io.Writer)

func component(fn renderFn) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fn(w)
		return nil
	})
}

func shell(w io.Writer, title string, body renderFn) {
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>%s</title></head><body>", esc(title))
	body(w)
	io.WriteString(w, "</body></html>")
}

func writeLayouts(w io.Writer, layouts []ImageLayout) {
	for _, layout := range layouts {
		fmt.Fprintf(w, "<div class=\"grid %s\">", esc(ColumnClass(layout.Columns)))
		for _, img := range layout.Images {
			fmt.Fprintf(w, `<figure><img src="%s" alt="%s">`, esc(img.Src), esc(img.Alt))
			if img.Caption != "" {
				fmt.Fprintf(w, "<figcaption>%s</figcaption>", esc(img.Caption))
			}
			io.WriteString(w, "</figure>")
		}
		io.WriteString(w, "</div>")
	}
}

func homeView(cfg SiteConfig, posts []Post, cats []Category, active string, meta PageMeta) templ.Component {
	return component(func(w io.Writer) {
		shell(w, meta.Title, func(w io.Writer) {
			fmt.Fprintf(w, "<h1>%s</h1><nav>", esc(cfg.Name))
			fmt.Fprint(w, "<a href=\"/\">All</a>")
			for _, cat := range cats {
				fmt.Fprintf(w, " <a href=\"/category/%s/\">%s</a>", cat.Slug, esc(cat.Name))
			}
			io.WriteString(w, " <a href=\"/about/\">About</a> <a href=\"/contact/\">Contact</a></nav><main>")
			for _, p := range posts {
				fmt.Fprintf(w, "<article><h2><a href=\"/posts/%d/\">%s</a></h2><p>%s</p><small>%s — %s</small></article>",
					p.ID, esc(p.Title), esc(p.Excerpt), esc(p.Author), esc(p.Date))
			}
			if len(posts) == 0 {
				io.WriteString(w, "<p>No posts yet.</p>")
			}
			io.WriteString(w, "</main>")
		})
	})
}

func postView(cfg SiteConfig, post Post, comments []Comment, meta PageMeta, csrf string) templ.Component {
	return component(func(w io.Writer) {
		shell(w, meta.Title, func(w io.Writer) {
			fmt.Fprintf(w, "<article><h1>%s</h1><small>%s — %s</small>", esc(post.Title), esc(post.Author), esc(post.Date))
			if post.Image != "" {
				fmt.Fprintf(w, `<img src="%s" alt="%s">`, esc(post.Image), esc(post.Title))
			}
			fmt.Fprintf(w, "<div>%s</div>", RenderMarkdown(post.Content))
			writeLayouts(w, post.ImageLayouts)
			for _, t := range post.Tags {
				fmt.Fprintf(w, "<span class=\"tag\">%s</span> ", esc(t))
			}
			io.WriteString(w, "</article><section><h2>Comments</h2>")
			for _, cm := range comments {
				fmt.Fprintf(w, "<div class=\"comment\"><strong>%s</strong> <small>%s</small><p>%s</p></div>",
					esc(cm.Author), esc(cm.Date), esc(cm.Content))
			}
			fmt.Fprintf(w, `<form method="post" action="/posts/%d/comments/">`, post.ID)
			fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s">`, esc(csrf))
			io.WriteString(w, `<input name="author" placeholder="Name"><input name="email" placeholder="Email (optional)"><textarea name="content"></textarea><button type="submit">Post comment</button></form></section>`)
		})
	})
}

func pageView(cfg SiteConfig, content PageContent, meta PageMeta) templ.Component {
	return component(func(w io.Writer) {
		shell(w, meta.Title, func(w io.Writer) {
			fmt.Fprintf(w, "<h1>%s</h1><div>%s</div>", esc(content.Title), RenderMarkdown(content.Content))
		})
	})
}

func adminLoginView(showError bool, csrf string) templ.Component {
	return component(func(w io.Writer) {
		shell(w, "Admin login", func(w io.Writer) {
			if showError {
				io.WriteString(w, "<p class=\"error\">Invalid credentials.</p>")
			}
			fmt.Fprintf(w, `<form method="post" action="/admin/login/"><input type="hidden" name="_csrf" value="%s"><input name="username" placeholder="Username"><input type="password" name="password" placeholder="Password"><button type="submit">Log in</button></form>`, esc(csrf))
		})
	})
}

func adminDashboardView(posts []Post, message, csrf string) templ.Component {
	return component(func(w io.Writer) {
		shell(w, "Admin", func(w io.Writer) {
			if message != "" {
				fmt.Fprintf(w, "<p class=\"msg\">%s</p>", esc(message))
			}
			io.WriteString(w, `<nav><a href="/admin/posts/new/">New post</a> <a href="/admin/categories/">Categories</a> <a href="/admin/comments/">Comments</a> <a href="/admin/pages/about/">About</a> <a href="/admin/pages/contact/">Contact</a></nav><table>`)
			for _, p := range posts {
				fmt.Fprintf(w, "<tr><td><a href=\"/admin/posts/%d/\">%s</a></td><td>%s</td><td>%s</td></tr>",
					p.ID, esc(p.Title), esc(string(p.Status)), esc(p.Date))
			}
			io.WriteString(w, "</table>")
		})
	})
}

func adminPostFormView(post Post, cats []Category, csrf string) templ.Component {
	return component(func(w io.Writer) {
		shell(w, "Edit post", func(w io.Writer) {
			io.WriteString(w, `<form method="post" action="/admin/posts/save/">`)
			fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s">`, esc(csrf))
			if post.ID != 0 {
				fmt.Fprintf(w, `<input type="hidden" name="id" value="%d">`, post.ID)
			}
			fmt.Fprintf(w, `<input name="title" value="%s" placeholder="Title">`, esc(post.Title))
			fmt.Fprintf(w, `<input name="author" value="%s" placeholder="Author">`, esc(post.Author))
			io.WriteString(w, `<select name="category"><option value="">No category</option>`)
			for _, cat := range cats {
				sel := ""
				if cat.Slug == post.Category {
					sel = " selected"
				}
				fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(cat.Slug), sel, esc(cat.Name))
			}
			io.WriteString(w, `</select>`)
			fmt.Fprintf(w, `<input name="tags" value="%s" placeholder="Tags, comma, separated">`, esc(JoinTags(post.Tags)))
			fmt.Fprintf(w, `<input name="image" value="%s" placeholder="Cover image URL or data URI">`, esc(post.Image))
			fmt.Fprintf(w, `<textarea name="content">%s</textarea>`, esc(post.Content))
			io.WriteString(w, `<button name="action" value="draft">Save draft</button><button name="action" value="publish">Publish</button></form>`)
		})
	})
}

func adminCatsView(cats []Category, csrf string) templ.Component {
	return component(func(w io.Writer) {
		shell(w, "Categories", func(w io.Writer) {
			io.WriteString(w, "<table>")
			for _, cat := range cats {
				fmt.Fprintf(w, "<tr><td>%d</td><td>%s</td><td>%s</td></tr>", cat.Order, esc(cat.Name), esc(cat.Slug))
			}
			io.WriteString(w, "</table>")
			fmt.Fprintf(w, `<form method="post" action="/admin/categories/save/"><input type="hidden" name="_csrf" value="%s"><input name="name" placeholder="Name"><input name="slug" placeholder="slug"><input name="color" type="color"><textarea name="description"></textarea><button type="submit">Add</button></form>`, esc(csrf))
		})
	})
}

func adminCommentsView(comments []Comment, csrf string) templ.Component {
	return component(func(w io.Writer) {
		shell(w, "Comments", func(w io.Writer) {
			io.WriteString(w, "<table>")
			for _, cm := range comments {
				fmt.Fprintf(w, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>",
					cm.PostID, esc(cm.Author), esc(cm.Content), esc(cm.Date))
			}
			io.WriteString(w, "</table>")
		})
	})
}

func adminPageView(kind PageKind, content PageContent, csrf string) templ.Component {
	return component(func(w io.Writer) {
		shell(w, "Edit "+string(kind), func(w io.Writer) {
			fmt.Fprintf(w, `<form method="post" action="/admin/pages/%s/">`, kind)
			fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s">`, esc(csrf))
			fmt.Fprintf(w, `<input name="title" value="%s">`, esc(content.Title))
			fmt.Fprintf(w, `<textarea name="content">%s</textarea>`, esc(content.Content))
			io.WriteString(w, `<button type="submit">Save</button></form>`)
		})
	})
}

func notFoundView() templ.Component {
	return component(func(w io.Writer) {
		shell(w, "Not found", func(w io.Writer) {
			io.WriteString(w, "<h1>404</h1><p>Page not found.</p><a href=\"/\">Home</a>")
		})
	})
}

func serverErrorView() templ.Component {
	return component(func(w io.Writer) {
		shell(w, "Error", func(w io.Writer) {
			io.WriteString(w, "<h1>Something went wrong</h1><a href=\"/\">Home</a>")
		})
	})
}

// JoinTags joins tags with ", " for form display.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
