package conj

// FormID pairs a grammatical form with the markup identifier the
// conjugation site uses for it.
type FormID struct {
	Form Form
	ID   string
}

// Tenses lists every tense in output order.
var Tenses = []Tense{
	TensePresent,
	TenseFuture,
	TensePast,
	TenseConditional,
	TenseImperative,
}

// Table order is the output order within a tense.
var (
	presentForms = []FormID{
		{FormI, "present1"},
		{FormYou, "present2"},
		{FormHe, "present3"},
		{FormWe, "present4"},
		{FormYouPlural, "present5"},
		{FormThey, "present6"},
	}

	pastForms = []FormID{
		{FormMasc, "past_singM"},
		{FormFem, "past_singF"},
		{FormNeuter, "past_singN"},
		{FormPlural, "past_plur"},
	}

	futureForms = []FormID{
		{FormI, "future1"},
		{FormYou, "future2"},
		{FormHe, "future3"},
		{FormWe, "future4"},
		{FormYouPlural, "future5"},
		{FormThey, "future6"},
	}

	imperativeForms = []FormID{
		{FormYou, "imperative2"},
		{FormYouPlural, "imperative5"},
	}

	conditionalForms = []FormID{
		{FormMasc, "conditional_singM"},
		{FormFem, "conditional_singF"},
		{FormNeuter, "conditional_singN"},
		{FormPlural, "conditional_plur"},
	}
)

var tenseForms = map[Tense][]FormID{
	TensePresent:     presentForms,
	TensePast:        pastForms,
	TenseFuture:      futureForms,
	TenseImperative:  imperativeForms,
	TenseConditional: conditionalForms,
}

// Forms returns the forms and markup identifiers for t in declared order.
// The returned slice must not be modified.
func Forms(t Tense) []FormID {
	return tenseForms[t]
}

// HasForm reports whether f is a legal form for t.
func HasForm(t Tense, f Form) bool {
	for _, fid := range tenseForms[t] {
		if fid.Form == f {
			return true
		}
	}
	return false
}

var aspectTags = map[Aspect]string{
	AspectImperfective: "нсв",
	AspectPerfective:   "св",
}

// AspectTag is the short postfix for an aspect. Unknown aspect has no tag.
func AspectTag(a Aspect) string {
	return aspectTags[a]
}

var tenseTags = map[Tense]string{
	TensePresent:     "pres",
	TenseConditional: "cond",
	TenseFuture:      "future",
	TensePast:        "past",
	TenseImperative:  "imp",
}

// TenseTag is the short postfix for a tense.
func TenseTag(t Tense) string {
	return tenseTags[t]
}

var pronouns = map[Form]string{
	FormI:         "я",
	FormHe:        "он/она",
	FormYou:       "ты",
	FormWe:        "мы",
	FormYouPlural: "вы",
	FormThey:      "они",
	FormFem:       "она",
	FormMasc:      "он",
	FormNeuter:    "оно",
	FormPlural:    "они",
}

// Pronoun returns the Russian pronoun label for a form.
func Pronoun(f Form) string {
	return pronouns[f]
}

// FormalityTag returns the imperative formality postfix.
func FormalityTag(f Form) string {
	if f == FormYouPlural {
		return "formal"
	}
	return "informal"
}

// counterpartTense maps a tense of one aspect onto the tense that carries the
// matching forms in the opposite aspect. Perfective verbs have no present
// tense, so their future stands in for it.
var counterpartTense = map[Tense]Tense{
	TensePresent: TenseFuture,
}

// CounterpartTense returns the tense to look up on the opposite-aspect verb
// when pairing it with t.
func CounterpartTense(t Tense) Tense {
	if shifted, ok := counterpartTense[t]; ok {
		return shifted
	}
	return t
}

// ShortForms is the reduced person subset emitted in short mode.
var ShortForms = []Form{FormI, FormHe, FormYou, FormThey}

// IsShortForm reports whether f belongs to ShortForms.
func IsShortForm(f Form) bool {
	for _, s := range ShortForms {
		if s == f {
			return true
		}
	}
	return false
}
