// Package conj provides the core types for Russian verb conjugation records.
package conj

// Form identifies a person/gender/number slot a conjugated word occupies.
type Form int

const (
	FormUnknown   Form = iota
	FormI              // я
	FormYou            // ты
	FormHe             // он/она
	FormWe             // мы
	FormYouPlural      // вы, also the formal imperative
	FormThey           // они
	FormMasc           // past/conditional masculine singular
	FormFem            // past/conditional feminine singular
	FormNeuter         // past/conditional neuter singular
	FormPlural         // past/conditional plural
)

var formNames = map[Form]string{
	FormI:         "I",
	FormYou:       "you",
	FormHe:        "he",
	FormWe:        "we",
	FormYouPlural: "you (pl.)",
	FormThey:      "they",
	FormMasc:      "masculine",
	FormFem:       "feminine",
	FormNeuter:    "neuter",
	FormPlural:    "plural",
}

func (f Form) String() string {
	if s, ok := formNames[f]; ok {
		return s
	}
	return "unknown"
}

// Tense is a grammatical time/mood category.
type Tense int

const (
	TenseUnknown Tense = iota
	TensePresent
	TensePast
	TenseFuture
	TenseImperative
	TenseConditional
)

func (t Tense) String() string {
	switch t {
	case TensePresent:
		return "present"
	case TensePast:
		return "past"
	case TenseFuture:
		return "future"
	case TenseImperative:
		return "imperative"
	case TenseConditional:
		return "conditional"
	default:
		return "unknown"
	}
}

// Aspect distinguishes completed (perfective) from ongoing (imperfective) action.
type Aspect int

const (
	AspectUnknown Aspect = iota
	AspectPerfective
	AspectImperfective
)

func (a Aspect) String() string {
	switch a {
	case AspectPerfective:
		return "perfective"
	case AspectImperfective:
		return "imperfective"
	default:
		return "unknown"
	}
}

// Entry is one conjugated word form: the translated text and the Russian text.
type Entry struct {
	Translated string `json:"translated"`
	Source     string `json:"source"`
}

// FormTable maps the forms present in a tense to their entries.
// Keys are always a subset of Forms(tense).
type FormTable map[Form]Entry

// Conjugation is the aggregate for one verb.
//
// A Conjugation is built once from a fetched document and is read-only
// afterwards.
type Conjugation struct {
	Verb     string   `json:"verb"`
	Aspect   Aspect   `json:"aspect"`
	Meanings []string `json:"meanings"`

	// OtherAspect lists verb slugs linked from the usage section,
	// the first of which is the opposite-aspect counterpart.
	OtherAspect []string `json:"other_aspect,omitempty"`

	Tenses map[Tense]FormTable `json:"tenses"`
}

// NewConjugation returns an empty record for verb.
func NewConjugation(verb string) *Conjugation {
	return &Conjugation{
		Verb:   verb,
		Tenses: make(map[Tense]FormTable),
	}
}

// Tense returns the form table for t, or nil if the tense was not populated.
func (c *Conjugation) Tense(t Tense) FormTable {
	if c == nil {
		return nil
	}
	return c.Tenses[t]
}

// Meaning returns the primary meaning, or "" when none was found.
func (c *Conjugation) Meaning() string {
	if len(c.Meanings) == 0 {
		return ""
	}
	return c.Meanings[0]
}

// Counterpart returns the first opposite-aspect verb, if any.
func (c *Conjugation) Counterpart() (string, bool) {
	if len(c.OtherAspect) == 0 {
		return "", false
	}
	return c.OtherAspect[0], true
}
