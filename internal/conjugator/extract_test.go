package conjugator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darkstorm/cooljigate/internal/conj"
	"github.com/darkstorm/cooljigate/internal/markup"
)

// fakeElement and fakeDocument let tests describe pages as plain maps.
type fakeElement struct {
	attrs map[string]string
	text  string
	links []string
}

func (e fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e fakeElement) LeadingText() string   { return e.text }
func (e fakeElement) LinkTargets() []string { return e.links }

type fakeDocument map[string]fakeElement

func (d fakeDocument) FindByID(id string) (markup.Element, bool) {
	el, ok := d[id]
	if !ok {
		return nil, false
	}
	return el, true
}

func (d fakeDocument) FindByAttr(name, value string) (markup.Element, bool) {
	for _, el := range d {
		if el.attrs[name] == value {
			return el, true
		}
	}
	return nil, false
}

func (d fakeDocument) HasAttr(name, value string) bool {
	_, ok := d.FindByAttr(name, value)
	return ok
}

func entryEl(translated, source string) fakeElement {
	return fakeElement{attrs: map[string]string{
		"data-translated": translated,
		"data-default":    source,
	}}
}

func TestExtract_PrefersUnaccented(t *testing.T) {
	doc := fakeDocument{
		"present1":           entryEl("speak", "говорю́"),
		"present1_no_accent": entryEl("speak", "говорю"),
	}

	entry, ok := Extract(doc, "present1")
	assert.True(t, ok)
	assert.Equal(t, conj.Entry{Translated: "speak", Source: "говорю"}, entry)
}

func TestExtract_FallsBackToAccented(t *testing.T) {
	doc := fakeDocument{"present2": entryEl("you speak", "говори́шь")}

	entry, ok := Extract(doc, "present2")
	assert.True(t, ok)
	assert.Equal(t, "говори́шь", entry.Source)
}

func TestExtract_Missing(t *testing.T) {
	_, ok := Extract(fakeDocument{}, "present1")
	assert.False(t, ok)
}

func TestExtract_TranslationFallbackAttribute(t *testing.T) {
	doc := fakeDocument{"past_plur": {attrs: map[string]string{
		"data-translated": "",
		"data=stressed":   "spoke",
		"data-default":    "говорили",
	}}}

	entry, ok := Extract(doc, "past_plur")
	assert.True(t, ok)
	assert.Equal(t, conj.Entry{Translated: "spoke", Source: "говорили"}, entry)
}

func TestExtract_RequiresBothTexts(t *testing.T) {
	doc := fakeDocument{
		"no_source":      entryEl("spoke", ""),
		"no_translation": entryEl("", "говорил"),
		"blank_source":   entryEl("spoke", "   "),
		"no_attrs":       {attrs: map[string]string{}},
	}

	for id := range doc {
		_, ok := Extract(doc, id)
		assert.False(t, ok, id)
	}
}

func TestExtract_UnaccentedWithoutTextDoesNotFallBack(t *testing.T) {
	doc := fakeDocument{
		"present3_no_accent": entryEl("", ""),
		"present3":           entryEl("speaks", "говори́т"),
	}

	_, ok := Extract(doc, "present3")
	assert.False(t, ok)
}

func TestExtractTense_KeysMatchFoundIdentifiers(t *testing.T) {
	doc := fakeDocument{
		"imperative2":           entryEl("speak!", "говори"),
		"past_singM":            entryEl("spoke", "говорил"),
		"past_singF_no_accent":  entryEl("spoke", "говорила"),
		"future5":               entryEl("will speak", "будете говорить"),
		"conditional_plur":      entryEl("would speak", "говорили бы"),
		"participle_active_pst": entryEl("having spoken", "говоривший"),
	}

	assert.Equal(t, conj.FormTable{
		conj.FormMasc: {Translated: "spoke", Source: "говорил"},
		conj.FormFem:  {Translated: "spoke", Source: "говорила"},
	}, ExtractTense(doc, conj.TensePast))

	assert.Equal(t, conj.FormTable{
		conj.FormYou: {Translated: "speak!", Source: "говори"},
	}, ExtractTense(doc, conj.TenseImperative))

	assert.Equal(t, conj.FormTable{
		conj.FormYouPlural: {Translated: "will speak", Source: "будете говорить"},
	}, ExtractTense(doc, conj.TenseFuture))

	assert.Len(t, ExtractTense(doc, conj.TenseConditional), 1)
	assert.Empty(t, ExtractTense(doc, conj.TensePresent))
}
