package conjugator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/darkstorm/cooljigate/internal/conj"
	"github.com/darkstorm/cooljigate/internal/markup"
)

const (
	attrTooltip = "data-tooltip"

	imperfectiveMarker = "Expresses incomplete action."
	perfectiveMarker   = "Expresses complete action."
	meaningMarker      = "This verb can also mean the following: "

	usageInfoID = "usage-info"
)

// ErrNoVerb is returned when asked to build an empty verb.
var ErrNoVerb = errors.New("no verb given")

// Fetcher returns the raw page for a verb.
type Fetcher interface {
	Fetch(ctx context.Context, verb string) (string, error)
}

// Options controls which tenses are populated.
type Options struct {
	Conditionals bool
}

// Builder turns fetched pages into conjugation records.
type Builder struct {
	fetcher Fetcher
	log     *slog.Logger
}

// NewBuilder creates a Builder reading pages from fetcher.
func NewBuilder(fetcher Fetcher, logger *slog.Logger) *Builder {
	return &Builder{
		fetcher: fetcher,
		log:     logger.With("component", "conjugator"),
	}
}

// Build fetches and parses the page for verb.
func (b *Builder) Build(ctx context.Context, verb string, opts Options) (*conj.Conjugation, error) {
	verb = strings.TrimSpace(verb)
	if verb == "" {
		return nil, ErrNoVerb
	}

	text, err := b.fetcher.Fetch(ctx, verb)
	if err != nil {
		return nil, err
	}

	doc, err := markup.ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("parsing page for %s: %w", verb, err)
	}

	return b.FromDocument(doc, verb, opts), nil
}

// FromDocument populates a record for verb from an already parsed page.
// Missing markers are logged and leave the matching field at its default.
func (b *Builder) FromDocument(doc markup.Document, verb string, opts Options) *conj.Conjugation {
	log := b.log.With("verb", verb)
	result := conj.NewConjugation(verb)

	switch {
	case doc.HasAttr(attrTooltip, imperfectiveMarker):
		result.Aspect = conj.AspectImperfective
	case doc.HasAttr(attrTooltip, perfectiveMarker):
		result.Aspect = conj.AspectPerfective
	default:
		log.Warn("no aspect found")
	}

	if meaning, ok := primaryMeaning(doc, verb); ok {
		result.Meanings = append(result.Meanings, meaning)
	}

	usage, ok := doc.FindByID(usageInfoID)
	if !ok {
		log.Warn("no usage info found")
	} else {
		result.OtherAspect = otherAspectVerbs(usage)

		meanings, ok := otherMeanings(usage)
		if !ok {
			log.Warn("no meanings found")
		}
		result.Meanings = append(result.Meanings, meanings...)
	}

	for _, tense := range []conj.Tense{conj.TensePast, conj.TensePresent, conj.TenseFuture, conj.TenseImperative} {
		result.Tenses[tense] = ExtractTense(doc, tense)
	}
	if opts.Conditionals {
		result.Tenses[conj.TenseConditional] = ExtractTense(doc, conj.TenseConditional)
	}

	log.Debug("built conjugation",
		slog.String("aspect", result.Aspect.String()),
		slog.Any("meanings", result.Meanings),
		slog.Any("other_aspect", result.OtherAspect),
	)

	return result
}

// primaryMeaning reads the parenthesized meaning next to the verb itself,
// e.g. "говорить (speak)".
func primaryMeaning(doc markup.Document, verb string) (string, bool) {
	el, ok := doc.FindByAttr(attrSource, verb)
	if !ok {
		return "", false
	}

	body := el.LeadingText()
	open := strings.Index(body, "(")
	closing := strings.LastIndex(body, ")")
	if open < 0 || closing <= open {
		return "", false
	}

	meaning := strings.TrimSpace(body[open+1 : closing])
	return meaning, meaning != ""
}

func otherMeanings(usage markup.Element) ([]string, bool) {
	text := usage.LeadingText()
	if !strings.HasPrefix(text, meaningMarker) {
		return nil, false
	}

	var meanings []string
	for _, part := range strings.Split(text[len(meaningMarker):], ",") {
		if part = strings.TrimSpace(part); part != "" {
			meanings = append(meanings, part)
		}
	}
	return meanings, true
}

// otherAspectVerbs returns the verb slug at the end of every usage link.
func otherAspectVerbs(usage markup.Element) []string {
	var verbs []string
	for _, href := range usage.LinkTargets() {
		slug := href[strings.LastIndex(href, "/")+1:]
		if unescaped, err := url.PathUnescape(slug); err == nil {
			slug = unescaped
		}
		if slug != "" {
			verbs = append(verbs, slug)
		}
	}
	return verbs
}
