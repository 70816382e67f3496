package reflection

import "strings"

// Category is the emotional bucket assigned to a piece of user text.
type Category string

const (
	CategoryTired   Category = "tired"
	CategoryLost    Category = "lost"
	CategoryBlocked Category = "blocked"
	CategoryHopeful Category = "hopeful"
	CategoryNeutral Category = "neutral"
)

// Categories lists every category in classification priority order.
// Tired (which folds in the overwhelmed markers) is checked first, then
// Lost, Blocked, Hopeful; Neutral is the default when nothing matches.
var Categories = []Category{CategoryTired, CategoryLost, CategoryBlocked, CategoryHopeful, CategoryNeutral}

// markers holds the substring stems per category and locale. Stems stay
// unaccent-sensitive on purpose: the lists carry the accented French forms
// the users actually type, and lowercasing is the only normalization.
var markers = map[Locale]map[Category][]string{
	LocaleFR: {
		CategoryTired:   {"fatigu", "épuis", "burn out", "burnout", "pression", "stress", "surmen", "vidé"},
		CategoryLost:    {"perdu", "sens", "direction", "tourne en rond"},
		CategoryBlocked: {"bloqu", "peur", "coincé", "hésit"},
		CategoryHopeful: {"espoir", "envie", "motivé", "changer", "avancer"},
	},
	LocaleEN: {
		CategoryTired:   {"tired", "exhaust", "burn out", "burnout", "overwhelmed", "stress", "drained", "anxi"},
		CategoryLost:    {"lost", "meaning", "direction", "in circles"},
		CategoryBlocked: {"block", "stuck", "fear", "afraid", "hesitat"},
		CategoryHopeful: {"hope", "motivated", "change", "ready to", "excited"},
	},
	LocaleAR: {
		CategoryTired:   {"تعب", "مرهق", "إرهاق", "ضغط", "توتر"},
		CategoryLost:    {"ضائع", "تائه", "اتجاه", "معنى"},
		CategoryBlocked: {"عالق", "خوف", "متردد"},
		CategoryHopeful: {"أمل", "حماس", "تغيير", "متحمس"},
	},
}

// Classify maps free text onto exactly one category for the given locale.
// It is a short-circuiting OR of substring containment tests in a fixed
// priority order; the first category with a matching marker wins. The
// function is total: empty or unmatched text falls through to Neutral
// (callers are expected to reject empty input before getting here).
func Classify(text string, loc Locale) Category {
	t := strings.ToLower(text)
	byCategory, ok := markers[loc]
	if !ok {
		byCategory = markers[LocaleFR]
	}
	for _, cat := range Categories {
		for _, stem := range byCategory[cat] {
			if strings.Contains(t, stem) {
				return cat
			}
		}
	}
	return CategoryNeutral
}
