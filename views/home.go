package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/kristoffermer/Lumiere"
)

// Home renders the course library landing page.
func Home(courses []lumiere.Course, ident *lumiere.Identity, cfg lumiere.SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeHead(buf, cfg, PageMeta{URL: lumiere.BuildURL(cfg.URL)}, lumiere.WebsiteJsonLD(cfg))

		buf.WriteString(`<header class="site-header">`)
		buf.WriteString(`<h1 class="site-title">` + esc(cfg.Name) + `</h1>`)
		if cfg.Description != "" {
			buf.WriteString(`<p class="site-tagline">` + esc(cfg.Description) + `</p>`)
		}
		if ident != nil {
			buf.WriteString(`<nav class="site-nav"><span>` + esc(ident.DisplayName) + `</span> <a href="/studio/">Studio</a></nav>`)
		} else {
			buf.WriteString(`<nav class="site-nav"><a href="/studio/">Sign in</a></nav>`)
		}
		buf.WriteString(`</header>`)

		buf.WriteString(`<main class="library">`)
		for _, course := range courses {
			writeCourseCard(buf, course, ident != nil)
		}
		buf.WriteString(`</main>`)

		writeFoot(buf)
	})
}

func writeCourseCard(buf *bytes.Buffer, course lumiere.Course, creator bool) {
	buf.WriteString(`<div class="course-card">`)
	buf.WriteString(`<a class="course-card-link" href="/course/` + esc(course.ID) + `/">`)
	if course.CoverImage != "" {
		buf.WriteString(`<img class="course-cover" src="` + esc(course.CoverImage) + `" alt="" loading="lazy"/>`)
	}
	buf.WriteString(`<div class="course-card-body">`)
	if course.Category != "" {
		buf.WriteString(`<span class="course-category">` + esc(course.Category) + `</span>`)
	}
	buf.WriteString(`<h2>` + esc(course.Title) + `</h2>`)
	buf.WriteString(`<p>` + esc(course.Description) + `</p>`)
	buf.WriteString(`</div></a>`)
	if creator {
		buf.WriteString(`<a class="course-edit" href="/studio/edit/` + esc(course.ID) + `/">Edit</a>`)
	}
	buf.WriteString(`</div>`)
}
