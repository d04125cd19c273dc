package orders

import (
	"html"
	"strings"
)

// FormatMetadataHTML renders a stored metadata value for HTML display,
// escaping the content and preserving its line breaks.
func FormatMetadataHTML(value string) string {
	escaped := html.EscapeString(value)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br />")
}
