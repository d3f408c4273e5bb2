package inkpot

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// validate backs required-field checks on manager inputs. Inputs are
// whitespace-trimmed before validation so blank-only fields fail too.
var validate = validator.New()

// excerptRunes is how much of the content becomes the derived excerpt
// when none is supplied explicitly.
const excerptRunes = 150

// Excerpt derives a post excerpt: the first 150 characters of content.
// Counted in runes so multibyte text is not cut mid-character.
func Excerpt(content string) string {
	r := []rune(content)
	if len(r) <= excerptRunes {
		return content
	}
	return string(r[:excerptRunes])
}

// ParseTags splits a comma-separated tag string, trimming each entry and
// dropping empties.
func ParseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// NormalizeSlug lowercases a slug and strips every character outside
// [a-z0-9-].
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ColumnClass maps a layout's column count to its responsive grid
// classes. A pure display rule: wide layouts degrade to fewer columns on
// narrow viewports.
func ColumnClass(columns int) string {
	switch columns {
	case 1:
		return "grid-cols-1"
	case 2:
		return "grid-cols-1 sm:grid-cols-2"
	case 3:
		return "grid-cols-1 sm:grid-cols-2 lg:grid-cols-3"
	default:
		return "grid-cols-1 sm:grid-cols-2 lg:grid-cols-3 xl:grid-cols-4"
	}
}

// FormatBytes renders a byte count in human-readable form (1536 -> "1.5 KB").
func FormatBytes(n int64) string {
	if n == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d Bytes", n)
	}
	return fmt.Sprintf("%.2f %s", v, units[i])
}

// DisplayDate formats a timestamp the way stored post and comment dates
// are displayed.
func DisplayDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// markdown renderer shared by post and page bodies. GFM for tables and
// task lists, Linkify for bare URLs, unsafe passthrough because admin
// content may embed raw HTML.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(),
	),
)

// RenderMarkdown converts markdown content to HTML.
func RenderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
