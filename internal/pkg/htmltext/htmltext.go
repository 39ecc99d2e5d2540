// Package htmltext turns an HTML page into the plain text used for indexing.
package htmltext

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boilerplate lists elements whose text never reaches the index.
const boilerplate = "script, style, nav, header, footer"

// Extract parses r as HTML, drops boilerplate elements and returns the body text
// with every whitespace run collapsed to a single space.
func Extract(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html failed: %w", err)
	}
	doc.Find(boilerplate).Remove()
	return CollapseSpace(doc.Find("body").Text()), nil
}

// CollapseSpace replaces runs of whitespace with one space and trims both ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
