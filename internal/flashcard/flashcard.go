// Package flashcard renders conjugation records as flashcard import lines.
//
// Each line has the shape
//
//	<translated> (<postfix>), <source>
//
// which spaced-repetition tools import as a two-field note split on the
// first ", ".
package flashcard

import (
	"fmt"
	"strings"

	"github.com/darkstorm/cooljigate/internal/conj"
	"github.com/darkstorm/cooljigate/internal/textutil"
)

// Options controls how lines are rendered.
type Options struct {
	// Short limits output to the я, ты, он/она and они forms.
	Short bool

	// Cloze wraps each conjugation as a numbered [[ocN::...]] deletion for
	// the Cloze Overlapper add-on. Numbering is shared by the whole output.
	Cloze bool

	// SuppressPostfix drops the bracketed aspect/tense postfix.
	SuppressPostfix bool

	// IncludeVerb prefixes every line with the infinitive and its aspect.
	IncludeVerb bool

	// Extra postfix tokens appended after the built-in tags.
	Extra []string
}

// Card is one rendered flashcard.
type Card struct {
	Tense conj.Tense
	Form  conj.Form

	// Front is the translated side including any postfix and verb prefix.
	Front string
	// Back is the Russian side.
	Back string
}

// Line renders c as a single output line.
func (c Card) Line() string {
	return c.Front + ", " + c.Back + "\n"
}

// ExtraPostfix combines a free-form postfix with the unidirectional and
// multidirectional markers for motion verbs.
func ExtraPostfix(postfix string, uni, multi bool) []string {
	var tokens []string
	if postfix = strings.TrimSpace(postfix); postfix != "" {
		tokens = append(tokens, postfix)
	}
	if uni {
		tokens = append(tokens, "uni")
	}
	if multi {
		tokens = append(tokens, "multi")
	}
	return tokens
}

// Cards renders primary in tense order, then form order within a tense.
// When secondary is given and cloze mode is off, the matching form of the
// opposite-aspect verb is appended to each Russian side.
func Cards(primary, secondary *conj.Conjugation, opts Options) []Card {
	var cards []Card
	clozeID := 0

	for _, tense := range conj.Tenses {
		entries := primary.Tense(tense)
		if entries == nil {
			continue
		}

		var counterpart conj.FormTable
		if secondary != nil {
			counterpart = secondary.Tense(conj.CounterpartTense(tense))
		}

		for _, fid := range conj.Forms(tense) {
			entry, ok := entries[fid.Form]
			if !ok {
				continue
			}
			if opts.Short && !conj.IsShortForm(fid.Form) {
				continue
			}

			var back strings.Builder
			if tense != conj.TenseImperative {
				if p := conj.Pronoun(fid.Form); p != "" {
					back.WriteString(p + " ")
				}
			}

			if opts.Cloze {
				fmt.Fprintf(&back, "[[oc%d::%s]]", clozeID, entry.Source)
				clozeID++
			} else {
				back.WriteString(entry.Source)
				if other, ok := counterpart[fid.Form]; ok {
					back.WriteString(" / " + other.Source)
				}
			}

			front := entry.Translated
			if !opts.SuppressPostfix {
				front += " (" + postfix(primary.Aspect, tense, fid.Form, opts.Extra) + ")"
			}
			if opts.IncludeVerb {
				front = verbPrefix(primary) + front
			}

			cards = append(cards, Card{
				Tense: tense,
				Form:  fid.Form,
				Front: front,
				Back:  back.String(),
			})
		}
	}

	return cards
}

// Format renders primary (and optionally its counterpart) as output lines.
func Format(primary, secondary *conj.Conjugation, opts Options) []string {
	cards := Cards(primary, secondary, opts)
	lines := make([]string, len(cards))
	for i, c := range cards {
		lines[i] = c.Line()
	}
	return lines
}

// Render returns the concatenated output of Format.
func Render(primary, secondary *conj.Conjugation, opts Options) string {
	return strings.Join(Format(primary, secondary, opts), "")
}

// Header returns the two summary lines printed before the conjugations.
func Header(primary, secondary *conj.Conjugation) []string {
	meaning := primary.Meaning()
	if meaning == "" {
		meaning = primary.Verb
	}

	var tags []string
	verbs := primary.Verb
	for _, c := range []*conj.Conjugation{primary, secondary} {
		if c == nil {
			continue
		}
		if tag := conj.AspectTag(c.Aspect); tag != "" {
			tags = append(tags, tag)
		}
	}
	if secondary != nil {
		verbs += " / " + secondary.Verb
	}

	title := "to " + meaning
	if len(tags) > 0 {
		title += " (" + strings.Join(tags, ", ") + ")"
	}

	return []string{title, verbs}
}

// Filename returns the name used when writing the output of c to disk.
func Filename(c *conj.Conjugation) string {
	meanings := c.Meanings
	if len(meanings) == 0 {
		meanings = []string{c.Verb}
	}
	return textutil.SafeName("to "+strings.Join(meanings, "/")) + ".txt"
}

func postfix(aspect conj.Aspect, tense conj.Tense, form conj.Form, extra []string) string {
	parts := make([]string, 0, 3+len(extra))
	if tag := conj.AspectTag(aspect); tag != "" {
		parts = append(parts, tag)
	}
	parts = append(parts, conj.TenseTag(tense))
	if tense == conj.TenseImperative {
		parts = append(parts, conj.FormalityTag(form))
	}
	parts = append(parts, extra...)
	return strings.Join(parts, "|")
}

func verbPrefix(c *conj.Conjugation) string {
	if tag := conj.AspectTag(c.Aspect); tag != "" {
		return fmt.Sprintf("%s (%s), ", c.Verb, tag)
	}
	return c.Verb + ", "
}
