package content

import (
	"fmt"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"
	"syng.no/allsang/pkg/utils/markdown"
	"syng.no/allsang/static"
)

const markdownShell = `<!doctype html>
<html lang="no">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s – Allsang</title>
  <link rel="stylesheet" href="/static/dist/main.css">
</head>
<body>
  <main class="prose">
%s
    <p class="muted"><a href="/">Tilbake</a></p>
  </main>
</body>
</html>`

// HandleMarkdownPage renders an embedded markdown document inside the site shell.
// Rendered HTML is cached on the Markdown value, so the file is parsed once.
func HandleMarkdownPage(title, contentPath string) echo.HandlerFunc {
	body, err := static.FS.ReadFile(contentPath)
	if err != nil {
		return func(c echo.Context) error {
			return echo.ErrNotFound
		}
	}
	md := markdown.New(string(body))

	return func(c echo.Context) error {
		page := fmt.Sprintf(markdownShell, html.EscapeString(title), md.Render())
		return c.HTML(http.StatusOK, page)
	}
}
