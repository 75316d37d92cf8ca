package conjugator

import (
	"context"
	"fmt"

	"github.com/darkstorm/cooljigate/internal/conj"
)

// Pair builds verb and, when its page links one, the opposite-aspect
// counterpart. The imperfective record is always returned first; secondary
// is nil when verb has no counterpart.
func (b *Builder) Pair(ctx context.Context, verb string, opts Options) (primary, secondary *conj.Conjugation, err error) {
	primary, err = b.Build(ctx, verb, opts)
	if err != nil {
		return nil, nil, err
	}

	other, ok := primary.Counterpart()
	if !ok {
		return primary, nil, nil
	}

	secondary, err = b.Build(ctx, other, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("building counterpart %s: %w", other, err)
	}

	if primary.Aspect == conj.AspectPerfective {
		primary, secondary = secondary, primary
	}

	return primary, secondary, nil
}
