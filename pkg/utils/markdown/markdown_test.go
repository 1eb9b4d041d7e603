package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Empty(t *testing.T) {
	md := New("")
	require.NotNil(t, md)
	require.Equal(t, "", md.Source)
	require.Equal(t, "", strings.TrimSpace(string(md.Render())))
}

func TestMarkdown_Render_Sanitizes(t *testing.T) {
	md := New("hei <script>alert(1)</script> **verden**")

	html := string(md.Render())
	require.NotContains(t, strings.ToLower(html), "<script")
	require.Contains(t, html, "verden")

	// caching path
	html2 := string(md.Render())
	require.Equal(t, html, html2)
}

func TestMarkdown_Render_Headings(t *testing.T) {
	md := New("# Om oss\n\nAllsang på skjermen.")

	html := string(md.Render())
	require.Contains(t, html, "<h1")
	require.Contains(t, html, "Om oss")
}

func TestMarkdown_PlainText(t *testing.T) {
	md := New("hei **verden**")

	text := string(md.PlainText())
	require.Contains(t, text, "hei")
	require.Contains(t, text, "verden")
	require.NotContains(t, text, "<strong>")
}
