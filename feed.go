package inkpot

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	GUID        string `xml:"guid"`
}

func (a *App) postURL(id int64) string {
	return fmt.Sprintf("%s/posts/%d/", a.Config.URL, id)
}

func (a *App) handleFeed(c echo.Context) error {
	posts := a.Posts.ListPublished()
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		u := a.postURL(p.ID)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        u,
			Description: p.Excerpt,
			GUID:        u,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        a.Config.URL,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

func (a *App) handleSitemap(c echo.Context) error {
	urls := []sitemapURL{
		{Loc: a.Config.URL + "/"},
		{Loc: a.Config.URL + "/about/"},
		{Loc: a.Config.URL + "/contact/"},
	}
	for _, p := range a.Posts.ListPublished() {
		urls = append(urls, sitemapURL{Loc: a.postURL(p.ID)})
	}
	for _, cat := range a.Categories.ListOrdered() {
		urls = append(urls, sitemapURL{Loc: a.Config.URL + "/category/" + cat.Slug + "/"})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
