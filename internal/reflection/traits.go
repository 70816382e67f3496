package reflection

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxTraits caps how many traits can be active at once.
const MaxTraits = 3

// Trait is one self-descriptive tag from the fixed catalog, with its
// localized labels.
type Trait struct {
	ID string `yaml:"id" json:"id"`
	FR string `yaml:"fr" json:"fr"`
	EN string `yaml:"en" json:"en"`
	AR string `yaml:"ar" json:"ar"`
}

// Label returns the trait label for the locale.
func (t Trait) Label(loc Locale) string {
	switch loc {
	case LocaleEN:
		return t.EN
	case LocaleAR:
		return t.AR
	default:
		return t.FR
	}
}

// defaultTraits is the built-in catalog.
var defaultTraits = []Trait{
	{ID: "sensitive", FR: "Sensible", EN: "Sensitive", AR: "حسّاس"},
	{ID: "ambitious", FR: "Ambitieux(se)", EN: "Ambitious", AR: "طموح"},
	{ID: "tired", FR: "Fatigué(e)", EN: "Tired", AR: "متعب"},
	{ID: "lost", FR: "Perdu(e)", EN: "Lost", AR: "تائه"},
	{ID: "creative", FR: "Créatif(ve)", EN: "Creative", AR: "مبدع"},
	{ID: "control", FR: "Dans le contrôle", EN: "Controlling", AR: "مسيطر"},
}

// TraitCatalog is the active catalog. Immutable after LoadTraitCatalog.
type TraitCatalog struct {
	traits []Trait
	byID   map[string]Trait
}

// DefaultTraitCatalog returns the built-in catalog.
func DefaultTraitCatalog() *TraitCatalog {
	return newCatalog(defaultTraits)
}

// LoadTraitCatalog reads a YAML catalog override from path. An empty path
// returns the built-in catalog.
func LoadTraitCatalog(path string) (*TraitCatalog, error) {
	if path == "" {
		return DefaultTraitCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read trait catalog: %w", err)
	}
	var loaded struct {
		Traits []Trait `yaml:"traits"`
	}
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return nil, fmt.Errorf("could not parse trait catalog: %w", err)
	}
	if len(loaded.Traits) == 0 {
		return nil, fmt.Errorf("trait catalog at %s is empty", path)
	}
	for _, t := range loaded.Traits {
		if t.ID == "" {
			return nil, fmt.Errorf("trait catalog at %s has an entry without id", path)
		}
	}
	return newCatalog(loaded.Traits), nil
}

func newCatalog(traits []Trait) *TraitCatalog {
	byID := make(map[string]Trait, len(traits))
	for _, t := range traits {
		byID[t.ID] = t
	}
	return &TraitCatalog{traits: traits, byID: byID}
}

// Traits returns the catalog entries in declaration order.
func (c *TraitCatalog) Traits() []Trait {
	return c.traits
}

// Known reports whether id is in the catalog.
func (c *TraitCatalog) Known(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Labels resolves the given trait ids to labels for the locale, skipping
// ids not in the catalog.
func (c *TraitCatalog) Labels(ids []string, loc Locale) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, ok := c.byID[id]; ok {
			labels = append(labels, t.Label(loc))
		}
	}
	return labels
}

// Toggle flips one trait in a selection. A selected trait is always
// removed; an unselected trait is added only while the selection is under
// MaxTraits, otherwise the selection is returned unchanged.
func Toggle(selected []string, id string) []string {
	for i, s := range selected {
		if s == id {
			out := make([]string, 0, len(selected)-1)
			out = append(out, selected[:i]...)
			out = append(out, selected[i+1:]...)
			return out
		}
	}
	if len(selected) >= MaxTraits {
		return selected
	}
	out := make([]string, 0, len(selected)+1)
	out = append(out, selected...)
	out = append(out, id)
	return out
}
