package views

import (
	"bytes"
	"strconv"

	"github.com/a-h/templ"

	"github.com/kristoffermer/Lumiere"
)

// StudioLogin renders the creator sign-in form.
func StudioLogin(showError bool, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		buf.WriteString(`<title>Studio Login</title>`)
		buf.WriteString(`<link rel="stylesheet" href="/public/lumiere.css"/></head><body>`)
		buf.WriteString(`<main class="login-page"><h1>Creator Studio</h1>`)
		if showError {
			buf.WriteString(`<p class="login-error">Sign-in failed. Check your email and password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/studio/login/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
		buf.WriteString(`<label>Email <input type="email" name="email" required autofocus/></label>`)
		buf.WriteString(`<label>Password <input type="password" name="password" required/></label>`)
		buf.WriteString(`<button type="submit">Sign in</button>`)
		buf.WriteString(`</form></main></body></html>`)
	})
}

// StudioPage renders the course editor for the current draft.
func StudioPage(draft lumiere.Course, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		buf.WriteString(`<title>Studio</title>`)
		buf.WriteString(`<meta name="csrf-token" content="` + esc(csrfToken) + `"/>`)
		buf.WriteString(`<link rel="stylesheet" href="/public/lumiere.css"/></head><body class="studio">`)

		buf.WriteString(`<header class="studio-header"><h1>Creator Studio</h1>`)
		buf.WriteString(`<form method="post" action="/studio/logout/" class="inline">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<button type="submit">Sign out</button></form></header>`)

		writeDraftMeta(buf, draft, csrfToken)
		writeArchitect(buf, csrfToken)

		buf.WriteString(`<section class="block-list">`)
		for i, block := range draft.Blocks {
			writeEditorBlock(buf, block, i, csrfToken)
		}
		buf.WriteString(`</section>`)

		writeBlockPalette(buf, csrfToken)

		buf.WriteString(`<form method="post" action="/studio/publish/" class="publish-form">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<button type="submit" class="publish">Publish course</button></form>`)

		buf.WriteString(`<script src="/public/studio.js" defer></script>`)
		buf.WriteString(`</body></html>`)
	})
}

func writeCsrf(buf *bytes.Buffer, token string) {
	buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(token) + `"/>`)
}

func writeDraftMeta(buf *bytes.Buffer, draft lumiere.Course, csrfToken string) {
	buf.WriteString(`<form method="post" action="/studio/meta/" class="draft-meta">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<label>Title <input name="title" value="` + esc(draft.Title) + `"/></label>`)
	buf.WriteString(`<label>Description <textarea name="description">` + esc(draft.Description) + `</textarea></label>`)
	buf.WriteString(`<label>Category <input name="category" value="` + esc(draft.Category) + `"/></label>`)
	buf.WriteString(`<button type="submit">Save details</button></form>`)

	buf.WriteString(`<div class="cover-tools">`)
	if draft.CoverImage != "" {
		buf.WriteString(`<img class="cover-preview" src="` + esc(draft.CoverImage) + `" alt=""/>`)
	}
	buf.WriteString(`<form method="post" action="/studio/cover/upload/" enctype="multipart/form-data" class="inline">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<input type="file" name="image" accept="image/*"/><button type="submit">Upload cover</button></form>`)
	buf.WriteString(`<form method="post" action="/studio/cover/generate/" class="inline">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<input name="prompt" placeholder="Describe a cover image"/><button type="submit">Generate</button></form>`)
	buf.WriteString(`</div>`)
}

func writeArchitect(buf *bytes.Buffer, csrfToken string) {
	buf.WriteString(`<form method="post" action="/studio/architect/" class="architect">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<input name="topic" placeholder="Topic to structure"/>`)
	buf.WriteString(`<button type="submit">Suggest structure</button></form>`)
}

func writeBlockPalette(buf *bytes.Buffer, csrfToken string) {
	buf.WriteString(`<div class="block-palette">`)
	for _, t := range []lumiere.BlockType{lumiere.BlockText, lumiere.BlockHeader, lumiere.BlockImage, lumiere.BlockTabs} {
		buf.WriteString(`<form method="post" action="/studio/blocks/append/" class="inline">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<input type="hidden" name="type" value="` + esc(string(t)) + `"/>`)
		buf.WriteString(`<button type="submit">+ ` + esc(string(t)) + `</button></form>`)
	}
	buf.WriteString(`<form method="post" action="/studio/blocks/video/" class="inline">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<input name="url" placeholder="Video URL"/><button type="submit">+ VIDEO</button></form>`)
	buf.WriteString(`</div>`)
}

func writeEditorBlock(buf *bytes.Buffer, block lumiere.CourseBlock, index int, csrfToken string) {
	idx := strconv.Itoa(index)
	buf.WriteString(`<article class="editor-block" draggable="true" data-block-id="` + esc(block.ID) + `" data-block-index="` + idx + `">`)
	buf.WriteString(`<header class="block-head"><span class="block-type">` + esc(string(block.Type)) + `</span>`)
	buf.WriteString(`<span class="drag-handle" title="Drag to reorder">&#8942;&#8942;</span>`)
	buf.WriteString(`<form method="post" action="/studio/blocks/` + esc(block.ID) + `/delete/" class="inline">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<button type="submit" class="danger">Remove</button></form></header>`)

	switch block.Type {
	case lumiere.BlockText:
		writeMarkdownToolbar(buf, block.ID, csrfToken)
		writeContentForm(buf, block, csrfToken)
	case lumiere.BlockHeader:
		writeContentForm(buf, block, csrfToken)
		writeMetaForm(buf, block, "description", "Act description", csrfToken)
		writeMetaForm(buf, block, "backgroundImage", "Background image URL", csrfToken)
	case lumiere.BlockVideo:
		writeContentForm(buf, block, csrfToken)
		writeMetaForm(buf, block, "title", "Video title", csrfToken)
		writeMetaForm(buf, block, "description", "Video description", csrfToken)
	case lumiere.BlockImage:
		buf.WriteString(`<form method="post" action="/studio/blocks/` + esc(block.ID) + `/image/" enctype="multipart/form-data" class="inline">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<input type="file" name="image" accept="image/*"/><button type="submit">Upload image</button></form>`)
		writeMetaForm(buf, block, "caption", "Caption", csrfToken)
	case lumiere.BlockTabs:
		writeTabsEditor(buf, block, csrfToken)
	}
	buf.WriteString(`</article>`)
}

func writeMarkdownToolbar(buf *bytes.Buffer, blockID, csrfToken string) {
	buf.WriteString(`<div class="md-toolbar">`)
	for _, name := range []string{"bold", "italic", "strike", "heading", "list", "task", "quote", "code", "table", "divider", "link"} {
		buf.WriteString(`<form method="post" action="/studio/blocks/` + esc(blockID) + `/snippet/" class="inline">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<input type="hidden" name="snippet" value="` + esc(name) + `"/>`)
		buf.WriteString(`<button type="submit">` + esc(name) + `</button></form>`)
	}
	buf.WriteString(`</div>`)
}

func writeContentForm(buf *bytes.Buffer, block lumiere.CourseBlock, csrfToken string) {
	buf.WriteString(`<form method="post" action="/studio/blocks/` + esc(block.ID) + `/content/">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<textarea name="content">` + esc(block.Content) + `</textarea>`)
	buf.WriteString(`<button type="submit">Save</button></form>`)
}

func writeMetaForm(buf *bytes.Buffer, block lumiere.CourseBlock, field, label, csrfToken string) {
	value := ""
	if block.Metadata != nil {
		switch field {
		case "title":
			value = block.Metadata.Title
		case "description":
			value = block.Metadata.Description
		case "caption":
			value = block.Metadata.Caption
		case "backgroundImage":
			value = block.Metadata.BackgroundImage
		}
	}
	buf.WriteString(`<form method="post" action="/studio/blocks/` + esc(block.ID) + `/meta/" class="meta-form">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<input type="hidden" name="field" value="` + esc(field) + `"/>`)
	buf.WriteString(`<label>` + esc(label) + ` <input name="value" value="` + esc(value) + `"/></label>`)
	buf.WriteString(`<button type="submit">Save</button></form>`)
}

func writeTabsEditor(buf *bytes.Buffer, block lumiere.CourseBlock, csrfToken string) {
	items := lumiere.DecodeTabs(block.Content)
	for i, item := range items {
		idx := strconv.Itoa(i)
		buf.WriteString(`<fieldset class="tab-editor"><legend>Tab ` + idx + `</legend>`)
		for _, f := range []struct{ field, label, value string }{
			{"label", "Label", item.Label},
			{"icon", "Icon", item.Icon},
			{"image", "Image URL", item.Image},
			{"variant", "Variant", item.Variant},
		} {
			buf.WriteString(`<form method="post" action="/studio/blocks/` + esc(block.ID) + `/tabs/` + idx + `/" class="inline">`)
			writeCsrf(buf, csrfToken)
			buf.WriteString(`<input type="hidden" name="field" value="` + f.field + `"/>`)
			buf.WriteString(`<label>` + f.label + ` <input name="value" value="` + esc(f.value) + `"/></label>`)
			buf.WriteString(`<button type="submit">Save</button></form>`)
		}
		buf.WriteString(`<form method="post" action="/studio/blocks/` + esc(block.ID) + `/tabs/` + idx + `/" class="tab-content-form">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<input type="hidden" name="field" value="content"/>`)
		buf.WriteString(`<textarea name="value">` + esc(item.Content) + `</textarea>`)
		buf.WriteString(`<button type="submit">Save content</button></form>`)
		if i > 0 {
			writeTabMove(buf, block.ID, idx, i-1, "↑", csrfToken)
		}
		if i < len(items)-1 {
			writeTabMove(buf, block.ID, idx, i+1, "↓", csrfToken)
		}
		buf.WriteString(`<form method="post" action="/studio/blocks/` + esc(block.ID) + `/tabs/` + idx + `/delete/" class="inline">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<button type="submit" class="danger">Delete tab</button></form>`)
		buf.WriteString(`</fieldset>`)
	}
	buf.WriteString(`<form method="post" action="/studio/blocks/` + esc(block.ID) + `/tabs/add/" class="inline">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<button type="submit">+ Tab</button></form>`)
}

func writeTabMove(buf *bytes.Buffer, blockID, idx string, to int, arrow, csrfToken string) {
	buf.WriteString(`<form method="post" action="/studio/blocks/` + esc(blockID) + `/tabs/` + idx + `/move/" class="inline">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<input type="hidden" name="to" value="` + strconv.Itoa(to) + `"/>`)
	buf.WriteString(`<button type="submit">` + arrow + `</button></form>`)
}
