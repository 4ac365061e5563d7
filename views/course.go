package views

import (
	"bytes"
	"strconv"

	"github.com/a-h/templ"

	"github.com/kristoffermer/Lumiere"
	"github.com/kristoffermer/Lumiere/markdown"
)

// sectionThemes is the repeating background palette. Section N uses theme
// N modulo the palette size.
var sectionThemes = []string{"neutral", "warm", "earthy", "cool", "soft"}

func sectionTheme(styleIndex int) string {
	return sectionThemes[styleIndex%len(sectionThemes)]
}

// CoursePage renders a published course as the scroll-driven viewing
// experience: hero, themed sections, chapter navigation, progress bar, and
// the cinematic overlay shell.
func CoursePage(course lumiere.Course, sections []lumiere.CourseSection, cfg lumiere.SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		meta := PageMeta{
			Title:       course.Title + " | " + cfg.Name,
			Description: course.Description,
			URL:         lumiere.BuildURL(cfg.URL, "course", course.ID),
			OGType:      "article",
			Image:       course.CoverImage,
		}
		writeHead(buf, cfg, meta, lumiere.CourseJsonLD(course, cfg))

		buf.WriteString(`<div class="course-view" data-course-id="` + esc(course.ID) + `">`)

		// Reading progress bar across the top.
		buf.WriteString(`<div class="progress-track"><div class="progress-bar" data-progress-bar></div></div>`)

		writeChapterNav(buf, sections)
		writeHero(buf, course)

		for i, section := range sections {
			writeSection(buf, section, i)
		}

		// Closing container, tracked like a section so the final nav dot
		// can light up.
		buf.WriteString(`<section class="course-end" data-scroll-section><p class="fin">Fin.</p>`)
		buf.WriteString(`<a class="back-link" href="/">Back to library</a></section>`)

		// Cinematic overlay shell, filled in by the client when a video
		// expands to full viewport.
		buf.WriteString(`<div class="cinematic-overlay" data-cinematic hidden>`)
		buf.WriteString(`<button class="cinematic-exit" data-cinematic-exit aria-label="Exit">&times;</button>`)
		buf.WriteString(`<div class="cinematic-frame" data-cinematic-frame></div>`)
		buf.WriteString(`</div>`)

		buf.WriteString(`</div>`)
		buf.WriteString(`<script src="/public/viewer.js" defer></script>`)
		writeFoot(buf)
	})
}

func writeChapterNav(buf *bytes.Buffer, sections []lumiere.CourseSection) {
	buf.WriteString(`<nav class="chapter-nav" aria-label="Chapters">`)
	for i, label := range lumiere.NavLabels(sections) {
		writeNavDot(buf, i, label)
	}
	buf.WriteString(`</nav>`)
}

func writeNavDot(buf *bytes.Buffer, index int, label string) {
	idx := strconv.Itoa(index)
	buf.WriteString(`<button class="nav-dot" data-nav-dot="` + idx + `" title="` + esc(label) + `">`)
	buf.WriteString(`<span class="nav-label">` + esc(label) + `</span></button>`)
}

func writeHero(buf *bytes.Buffer, course lumiere.Course) {
	buf.WriteString(`<section class="course-hero" data-scroll-section`)
	if course.CoverImage != "" {
		buf.WriteString(` style="background-image: url('` + esc(course.CoverImage) + `')"`)
	}
	buf.WriteString(`>`)
	buf.WriteString(`<div class="hero-scrim"></div><div class="hero-content">`)
	if course.Category != "" {
		buf.WriteString(`<span class="course-category">` + esc(course.Category) + `</span>`)
	}
	buf.WriteString(`<h1>` + esc(course.Title) + `</h1>`)
	buf.WriteString(`<p>` + esc(course.Description) + `</p>`)
	buf.WriteString(`<span class="scroll-hint">Scroll to begin</span>`)
	buf.WriteString(`</div></section>`)
}

func writeSection(buf *bytes.Buffer, section lumiere.CourseSection, index int) {
	theme := sectionTheme(section.StyleIndex)
	buf.WriteString(`<section class="course-section theme-` + theme + `" data-scroll-section data-section-index="` + strconv.Itoa(index) + `">`)
	buf.WriteString(`<div class="section-blobs"><div class="blob blob-1"></div><div class="blob blob-2"></div></div>`)

	if section.Header != nil {
		hm := section.Header.HeaderMeta()
		buf.WriteString(`<header class="section-header"`)
		if hm.BackgroundImage != "" {
			buf.WriteString(` style="background-image: url('` + esc(hm.BackgroundImage) + `')"`)
		}
		buf.WriteString(`><h2>` + esc(section.Header.Content) + `</h2>`)
		if hm.Description != "" {
			buf.WriteString(`<p>` + esc(hm.Description) + `</p>`)
		}
		buf.WriteString(`</header>`)
	}

	buf.WriteString(`<div class="section-body">`)
	for _, block := range section.Blocks {
		writeBlock(buf, block)
	}
	buf.WriteString(`</div></section>`)
}

// writeBlock dispatches on block type. Types without a renderer contribute
// nothing to the page.
func writeBlock(buf *bytes.Buffer, block lumiere.CourseBlock) {
	switch lumiere.BlockRenderKind(block.Type) {
	case lumiere.RenderText:
		buf.WriteString(`<div class="prose reveal">`)
		markdown.RenderHTML(buf, markdown.Parse(block.Content))
		buf.WriteString(`</div>`)
	case lumiere.RenderImage:
		writeImageBlock(buf, block)
	case lumiere.RenderVideo:
		writeVideoBlock(buf, block)
	case lumiere.RenderTabs:
		writeTabsBlock(buf, block)
	}
}

func writeImageBlock(buf *bytes.Buffer, block lumiere.CourseBlock) {
	if block.Content == "" {
		return
	}
	im := block.ImageMeta()
	buf.WriteString(`<figure class="image-block reveal">`)
	buf.WriteString(`<img src="` + esc(block.Content) + `" alt="` + esc(im.Title) + `" loading="lazy"/>`)
	if im.Caption != "" {
		buf.WriteString(`<figcaption>` + esc(im.Caption) + `</figcaption>`)
	}
	buf.WriteString(`</figure>`)
}

func writeVideoBlock(buf *bytes.Buffer, block lumiere.CourseBlock) {
	videoID := lumiere.VideoID(block.Content)
	vm := block.VideoMeta()
	buf.WriteString(`<div class="video-block reveal"`)
	if videoID != "" {
		buf.WriteString(` data-video-id="` + esc(videoID) + `"`)
	}
	buf.WriteString(`>`)
	thumb := vm.Thumbnail
	if thumb == "" && videoID != "" {
		thumb = "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
	}
	buf.WriteString(`<div class="video-poster">`)
	if thumb != "" {
		buf.WriteString(`<img src="` + esc(thumb) + `" alt="" loading="lazy"/>`)
	}
	if videoID != "" {
		buf.WriteString(`<button class="video-play" data-cinematic-open aria-label="Play">&#9658;</button>`)
	}
	buf.WriteString(`</div>`)
	if vm.Title != "" {
		buf.WriteString(`<h3>` + esc(vm.Title) + `</h3>`)
	}
	if vm.Description != "" {
		buf.WriteString(`<p>` + esc(vm.Description) + `</p>`)
	}
	buf.WriteString(`</div>`)
}

func writeTabsBlock(buf *bytes.Buffer, block lumiere.CourseBlock) {
	items := lumiere.DecodeTabs(block.Content)
	if len(items) == 0 {
		return
	}
	buf.WriteString(`<div class="tabs-block reveal" data-tabs>`)
	buf.WriteString(`<div class="tab-strip" role="tablist">`)
	for i, item := range items {
		idx := strconv.Itoa(i)
		cls := "tab-button"
		if i == 0 {
			cls += " active"
		}
		buf.WriteString(`<button class="` + cls + `" role="tab" data-tab="` + idx + `">`)
		if item.Icon != "" {
			buf.WriteString(`<span class="tab-icon">` + esc(item.Icon) + `</span>`)
		}
		buf.WriteString(esc(item.Label) + `</button>`)
	}
	buf.WriteString(`</div>`)
	for i, item := range items {
		idx := strconv.Itoa(i)
		cls := "tab-panel"
		if item.Variant == "light" {
			cls += " tab-light"
		}
		if i == 0 {
			cls += " active"
		}
		buf.WriteString(`<div class="` + cls + `" role="tabpanel" data-tab-panel="` + idx + `">`)
		if item.Image != "" {
			buf.WriteString(`<img class="tab-image" src="` + esc(item.Image) + `" alt="" loading="lazy"/>`)
		}
		buf.WriteString(`<div class="prose">`)
		markdown.RenderHTML(buf, markdown.Parse(item.Content))
		buf.WriteString(`</div></div>`)
	}
	buf.WriteString(`</div>`)
}
