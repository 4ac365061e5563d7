package views

import (
	"bytes"

	"github.com/a-h/templ"
)

func errorPage(title, message string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		buf.WriteString(`<title>` + esc(title) + `</title>`)
		buf.WriteString(`<link rel="stylesheet" href="/public/lumiere.css"/></head><body>`)
		buf.WriteString(`<main class="error-page"><h1>` + esc(title) + `</h1>`)
		buf.WriteString(`<p>` + esc(message) + `</p>`)
		buf.WriteString(`<a href="/">Back to library</a></main></body></html>`)
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return errorPage("Not Found", "That course does not exist, or hasn't premiered yet.")
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return errorPage("Something went wrong", "An unexpected error occurred. Please try again.")
}
