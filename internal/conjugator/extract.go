// Package conjugator builds conjugation records from pages of the
// conjugation site.
package conjugator

import (
	"strings"

	"github.com/darkstorm/cooljigate/internal/conj"
	"github.com/darkstorm/cooljigate/internal/markup"
)

const (
	attrSource     = "data-default"
	attrTranslated = "data-translated"
	// Second spelling tried for the translation.
	// TODO: confirm the intended name with the site markup; an HTML parser
	// never yields an attribute name containing '='.
	attrTranslatedAlt = "data=stressed"

	unaccentedSuffix = "_no_accent"
)

// Extract returns the entry stored under id. The unaccented variant of the
// identifier is preferred when the page carries it. An element without both
// texts yields no entry.
func Extract(doc markup.Document, id string) (conj.Entry, bool) {
	el, ok := doc.FindByID(id + unaccentedSuffix)
	if !ok {
		el, ok = doc.FindByID(id)
	}
	if !ok {
		return conj.Entry{}, false
	}

	translated := attr(el, attrTranslated)
	if translated == "" {
		translated = attr(el, attrTranslatedAlt)
	}
	source := attr(el, attrSource)
	if translated == "" || source == "" {
		return conj.Entry{}, false
	}

	return conj.Entry{Translated: translated, Source: source}, true
}

// ExtractTense extracts every form of tense found in doc. Forms the page
// does not carry are left out.
func ExtractTense(doc markup.Document, tense conj.Tense) conj.FormTable {
	table := make(conj.FormTable)
	for _, fid := range conj.Forms(tense) {
		if entry, ok := Extract(doc, fid.ID); ok {
			table[fid.Form] = entry
		}
	}
	return table
}

func attr(el markup.Element, name string) string {
	v, _ := el.Attr(name)
	return strings.TrimSpace(v)
}
