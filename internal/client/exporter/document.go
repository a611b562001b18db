// Package exporter turns an artifact into a standalone HTML document and
// stores it in a local directory or an S3-compatible bucket.
package exporter

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/dmitrijs2005/screenmock/internal/client/repositories/history"
)

const viewportMeta = `<meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no">`

const baseStyle = `html, body {
  margin: 0;
  padding: 0;
  width: 100%;
  height: 100%;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  background-color: #fff;
  overflow: hidden;
}
* { box-sizing: border-box; }
`

// statusBarPadding is the top padding reserved for the system status bar.
func statusBarPadding(platform string) int {
	if strings.EqualFold(platform, "android") {
		return 24
	}
	return 44
}

// Document wraps markup so it previews like it would on the device.
// Markup that already is a full document is returned unchanged.
func Document(markup, platform string) string {
	trimmed := strings.TrimSpace(markup)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		return markup
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString(viewportMeta)
	b.WriteString("\n<style>\n")
	b.WriteString(baseStyle)
	fmt.Fprintf(&b, ".status-bar-spacer { padding-top: %dpx; }\n", statusBarPadding(platform))
	b.WriteString("</style>\n</head>\n<body>\n<div class=\"status-bar-spacer\">\n")
	b.WriteString(trimmed)
	b.WriteString("\n</div>\n</body>\n</html>\n")
	return b.String()
}

// Key is the object name an artifact is exported under. The digest suffix
// keeps successive exports of the same screen apart.
func Key(a *models.Artifact) string {
	digest := history.Digest(a.Markup)
	return fmt.Sprintf("mockups/%s-%s.html", sanitize(a.ScreenID), digest[:12])
}

func sanitize(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "unnamed"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
