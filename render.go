package dispatch

import (
	"regexp"
	"strings"
)

// Fixed styling for rendered messages. Rendering output is part of the
// compatibility surface, so these are constants rather than knobs.
const (
	accentColor    = "#2f6fed"
	paragraphStyle = "margin:0 0 12px;line-height:1.6;"
	containerStyle = "max-width:600px;margin:0 auto;padding:24px;font-family:Arial,Helvetica,sans-serif;color:#1f2933;"
	separatorStyle = "border:none;border-top:1px solid #e4e7eb;margin:24px 0 12px;"
	footerStyle    = "margin:0;font-size:12px;color:#9aa5b1;"
	attribution    = "Sent via Business Manager"

	lineBreak = "<br>"
)

// urlPattern matches HTTP/HTTPS URL tokens within a line.
var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// RenderBody transforms a plain text body into styled markup.
// The transformation is referentially transparent: the same body always
// yields the same markup, and no external state is consulted.
//
// Each line is trimmed; empty lines become a line break, non-empty
// lines become a styled paragraph with URL tokens wrapped as styled
// hyperlinks. The fragments are concatenated in order and embedded in
// a fixed-width centered container with a footer separator and a
// static attribution line.
func RenderBody(body string) string {
	var b strings.Builder
	b.WriteString(`<div style="` + containerStyle + `">`)
	b.WriteString(renderLines(body))
	b.WriteString(`<hr style="` + separatorStyle + `">`)
	b.WriteString(`<p style="` + footerStyle + `">` + attribution + `</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

// renderLines produces the per-line fragments, concatenated without
// separators.
func renderLines(body string) string {
	var b strings.Builder
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			b.WriteString(lineBreak)
			continue
		}
		b.WriteString(`<p style="` + paragraphStyle + `">`)
		b.WriteString(linkify(line))
		b.WriteString(`</p>`)
	}
	return b.String()
}

// linkify wraps every URL token in line as a styled hyperlink, leaving
// the surrounding text untouched.
func linkify(line string) string {
	return urlPattern.ReplaceAllStringFunc(line, func(url string) string {
		return `<a href="` + url + `" style="color:` + accentColor + `;">` + url + `</a>`
	})
}
