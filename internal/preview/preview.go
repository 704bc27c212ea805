// Package preview renders generated article content for terminal display.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
)

// RenderHTML converts article markdown to HTML. It backs the preview path
// when a result carries markdown but the HTML is missing or unwanted.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Excerpt extracts the plain text from article HTML, normalizes whitespace,
// and truncates to at most maxRunes runes. Used as a fallback when the
// server omits an excerpt.
func Excerpt(html string, maxRunes int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	text := cleanWhitespace(doc.Find("body").Text())

	if maxRunes <= 0 {
		return text, nil
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text, nil
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "...", nil
}

// cleanWhitespace collapses runs of whitespace into single spaces.
func cleanWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
