// Package markup exposes the small query surface the conjugation builder
// needs from a parsed page, backed by goquery.
package markup

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a single node of a parsed document.
type Element interface {
	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// LeadingText returns the element's first child when that child is a
	// text node, and "" otherwise.
	LeadingText() string

	// LinkTargets returns the href of every anchor below the element, in
	// document order.
	LinkTargets() []string
}

// Document is a queryable parsed page.
type Document interface {
	// FindByID returns the first element carrying the given id.
	FindByID(id string) (Element, bool)

	// FindByAttr returns the first element whose attribute name equals value.
	FindByAttr(name, value string) (Element, bool)

	// HasAttr reports whether any element's attribute name equals value.
	HasAttr(name, value string) bool
}

// HTMLDocument implements Document over an HTML page.
type HTMLDocument struct {
	doc *goquery.Document
	ids map[string]*goquery.Selection
}

// Parse reads and parses an HTML document.
func Parse(r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	d := &HTMLDocument{
		doc: doc,
		ids: make(map[string]*goquery.Selection),
	}
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if _, seen := d.ids[id]; !seen {
			d.ids[id] = s
		}
	})

	return d, nil
}

// ParseString parses an HTML document held in memory.
func ParseString(s string) (*HTMLDocument, error) {
	return Parse(bytes.NewBufferString(s))
}

func (d *HTMLDocument) FindByID(id string) (Element, bool) {
	sel, ok := d.ids[id]
	if !ok {
		return nil, false
	}
	return element{sel: sel}, true
}

func (d *HTMLDocument) FindByAttr(name, value string) (Element, bool) {
	sel := d.withAttr(name, value).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return element{sel: sel}, true
}

func (d *HTMLDocument) HasAttr(name, value string) bool {
	return d.withAttr(name, value).Length() > 0
}

func (d *HTMLDocument) withAttr(name, value string) *goquery.Selection {
	return d.doc.Find("[" + name + "]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr(name)
		return v == value
	})
}

type element struct {
	sel *goquery.Selection
}

func (e element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e element) LeadingText() string {
	if len(e.sel.Nodes) == 0 {
		return ""
	}
	first := e.sel.Nodes[0].FirstChild
	if first == nil || first.Type != html.TextNode {
		return ""
	}
	return first.Data
}

func (e element) LinkTargets() []string {
	var targets []string
	e.sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			targets = append(targets, strings.TrimSpace(href))
		}
	})
	return targets
}
