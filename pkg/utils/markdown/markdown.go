package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// Markdown wraps markdown source and renders it to sanitized HTML.
// Rendering is cached; the zero value of Source renders to "".
type Markdown struct {
	// Source is the markdown source code.
	Source string
	// renderedHTML caches the HTML content rendered from the markdown source.
	renderedHTML *template.HTML
	// renderedText is the plain text content rendered from the markdown source.
	renderedText *template.HTML
}

var (
	bfRenderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink | blackfriday.NofollowLinks | blackfriday.HrefTargetBlank | blackfriday.Smartypants | blackfriday.SmartypantsFractions | blackfriday.SmartypantsDashes | blackfriday.SmartypantsLatexDashes | blackfriday.SmartypantsAngledQuotes | blackfriday.SmartypantsQuotesNBSP,
	})
	bfExtensions = blackfriday.NoIntraEmphasis | blackfriday.Tables | blackfriday.FencedCode | blackfriday.Autolink | blackfriday.Strikethrough | blackfriday.SpaceHeadings | blackfriday.NoEmptyLineBeforeBlock | blackfriday.HeadingIDs | blackfriday.AutoHeadingIDs | blackfriday.DefinitionLists
	policy       = bluemonday.UGCPolicy()
)

func New(source string) *Markdown {
	md := &Markdown{Source: source}
	if source != "" {
		md.Render()
	}
	return md
}

// Render converts the Markdown Source into sanitized HTML.
func (m *Markdown) Render() template.HTML {
	if m.renderedHTML != nil {
		return *m.renderedHTML
	}

	unsafe := blackfriday.Run([]byte(m.Source),
		blackfriday.WithRenderer(bfRenderer),
		blackfriday.WithExtensions(bfExtensions),
	)
	safe := policy.SanitizeBytes(unsafe)
	html := template.HTML(bytes.TrimSpace(safe))
	m.renderedHTML = &html
	return html
}

// PlainText strips all markup, for summaries and titles.
func (m *Markdown) PlainText() template.HTML {
	if m.renderedText != nil {
		return *m.renderedText
	}

	unsafe := blackfriday.Run([]byte(m.Source),
		blackfriday.WithRenderer(bfRenderer),
		blackfriday.WithExtensions(bfExtensions),
	)

	safe := bytes.TrimSpace(bluemonday.StrictPolicy().SanitizeBytes(unsafe))
	h := template.HTML(safe)
	m.renderedText = &h

	return *m.renderedText
}
