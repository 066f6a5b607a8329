// Package share builds the outbound links behind the share button.
package share

import (
	"net/url"
	"strings"
)

// WhatsAppEndpoint is the click-to-chat endpoint that accepts a prefilled message.
const WhatsAppEndpoint = "https://api.whatsapp.com/send"

// WhatsAppURL returns a click-to-chat link whose text is message followed by
// pageURL. Either part may be empty.
func WhatsAppURL(message, pageURL string) string {
	parts := make([]string, 0, 2)
	if m := strings.TrimSpace(message); m != "" {
		parts = append(parts, m)
	}
	if u := strings.TrimSpace(pageURL); u != "" {
		parts = append(parts, u)
	}
	return WhatsAppEndpoint + "?text=" + url.QueryEscape(strings.Join(parts, " "))
}

// PageURL joins the public site URL and a calculator path.
func PageURL(siteURL, path string) string {
	base := strings.TrimRight(strings.TrimSpace(siteURL), "/")
	if base == "" {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
