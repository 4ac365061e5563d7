// Package views provides the default templ components for the Lumière
// course pages, studio, and error screens. Applications can replace any of
// them through lumiere.ViewFuncs.
package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/kristoffermer/Lumiere"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image
}

// Default returns the built-in view set.
func Default() lumiere.ViewFuncs {
	return lumiere.ViewFuncs{
		Home:        Home,
		CoursePage:  CoursePage,
		StudioLogin: StudioLogin,
		StudioPage:  StudioPage,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

// component wraps a buffer-producing function as a templ component.
func component(fn func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		fn(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

func writeHead(buf *bytes.Buffer, cfg lumiere.SiteConfig, meta PageMeta, jsonLD string) {
	title := meta.Title
	if title == "" {
		title = cfg.Name
	}
	desc := meta.Description
	if desc == "" {
		desc = cfg.Description
	}
	ogType := meta.OGType
	if ogType == "" {
		ogType = "website"
	}
	buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	buf.WriteString(`<title>` + esc(title) + `</title>`)
	buf.WriteString(`<meta name="description" content="` + esc(desc) + `"/>`)
	buf.WriteString(`<meta property="og:title" content="` + esc(title) + `"/>`)
	buf.WriteString(`<meta property="og:description" content="` + esc(desc) + `"/>`)
	buf.WriteString(`<meta property="og:type" content="` + esc(ogType) + `"/>`)
	if meta.URL != "" {
		buf.WriteString(`<link rel="canonical" href="` + esc(meta.URL) + `"/>`)
		buf.WriteString(`<meta property="og:url" content="` + esc(meta.URL) + `"/>`)
	}
	if meta.Image != "" {
		buf.WriteString(`<meta property="og:image" content="` + esc(meta.Image) + `"/>`)
	}
	if jsonLD != "" {
		buf.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
	}
	buf.WriteString(`<link rel="stylesheet" href="/public/lumiere.css"/>`)
	buf.WriteString(`</head><body>`)
}

func writeFoot(buf *bytes.Buffer) {
	buf.WriteString(`</body></html>`)
}
