package reflection

import "math/rand"

// Generator selects canned reflections and mirror quotes from the template
// bank. The randomness source is injected so selection is deterministic
// under a fixed seed.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator builds a Generator around the given source. A nil rng gets
// a fixed-seed source, which keeps zero-value-ish construction usable in
// tests.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Generator{rng: rng}
}

// GenerateReflection returns the template pair for (category, locale).
// When several phrasings exist one is picked uniformly at random. A
// missing (category, locale) slot falls back to the Neutral pair for the
// locale, then to the generic pair; the result never has an empty field.
func (g *Generator) GenerateReflection(cat Category, loc Locale) Reflection {
	byCategory, ok := templateBank[loc]
	if !ok {
		byCategory = templateBank[LocaleFR]
	}
	set := byCategory[cat]
	if len(set) == 0 {
		set = byCategory[CategoryNeutral]
	}
	if len(set) == 0 {
		return GenericReflection(loc)
	}
	return set[g.rng.Intn(len(set))]
}

// GenerateMirrorQuote returns one short mirror sentence for
// (category, locale), with the same Neutral-then-generic fallback.
func (g *Generator) GenerateMirrorQuote(cat Category, loc Locale) string {
	byCategory, ok := quoteBank[loc]
	if !ok {
		byCategory = quoteBank[LocaleFR]
	}
	set := byCategory[cat]
	if len(set) == 0 {
		set = byCategory[CategoryNeutral]
	}
	if len(set) == 0 {
		return GenericQuote(loc)
	}
	return set[g.rng.Intn(len(set))]
}

// GenericReflection is the hard-coded last-resort pair for the locale.
func GenericReflection(loc Locale) Reflection {
	if r, ok := genericReflection[loc]; ok {
		return r
	}
	return genericReflection[LocaleFR]
}

// GenericQuote is the hard-coded last-resort mirror sentence.
func GenericQuote(loc Locale) string {
	byCategory, ok := quoteBank[loc]
	if !ok {
		byCategory = quoteBank[LocaleFR]
	}
	set := byCategory[CategoryNeutral]
	if len(set) == 0 {
		set = quoteBank[LocaleFR][CategoryNeutral]
	}
	return set[0]
}
