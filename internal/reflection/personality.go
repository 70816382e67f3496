package reflection

import "strings"

// MinSessionsForCard is the number of completed analyses required on a
// device before a personality card is synthesized.
const MinSessionsForCard = 2

type cardStrings struct {
	preamble    string
	traitsLabel string
	noTraits    string
	energy      string
	direction   string
	trajectory  string
	closing     string
}

var cardBank = map[Locale]cardStrings{
	LocaleFR: {
		preamble:    "Carte de personnalité actuelle :\n\nTu es quelqu’un de plus conscient(e) que tu ne le crois. Tu observes déjà tes schémas au lieu de les subir complètement.",
		traitsLabel: "Traits dominants : ",
		noTraits:    "aucun trait sélectionné.",
		energy:      "Énergie : souvent en mode survie, tu portes beaucoup sans toujours t’autoriser à relâcher.",
		direction:   "Direction : tu es entre deux versions de toi, celle qui rassure tout le monde et celle qui te ressemble vraiment.",
		trajectory:  "Trajectoire : quelque chose en toi refuse que ta vie reste en mode pilote automatique, même si tu avances doucement.",
		closing:     "Cette carte évolue chaque fois que tu reviens. Plus tu reviens, plus elle devient précise.",
	},
	LocaleEN: {
		preamble:    "Current personality card:\n\nYou’re more self-aware than you think. You’re already observing your patterns instead of fully enduring them.",
		traitsLabel: "Dominant traits: ",
		noTraits:    "no trait selected.",
		energy:      "Energy: you often run in survival mode, carrying a lot without always allowing yourself to release.",
		direction:   "Direction: you’re between two versions of yourself, the one that reassures everyone and the one that truly feels like you.",
		trajectory:  "Trajectory: something in you refuses to let your life stay on autopilot, even if you move slowly.",
		closing:     "This card evolves every time you come back. The more you return, the more precise it gets.",
	},
	LocaleAR: {
		preamble:    "بطاقة شخصيتك الحالية:\n\nأنت أكثر وعياً بنفسك مما تظن. أنت تراقب أنماطك بالفعل بدل أن تكتفي بتحمّلها.",
		traitsLabel: "السمات الغالبة: ",
		noTraits:    "لم تُختر أي سمة.",
		energy:      "الطاقة: كثيراً ما تعيش في وضع البقاء، تحمل الكثير دون أن تسمح لنفسك دائماً بالتخفف.",
		direction:   "الاتجاه: أنت بين نسختين من نفسك، تلك التي تطمئن الجميع وتلك التي تشبهك حقاً.",
		trajectory:  "المسار: شيء ما في داخلك يرفض أن تبقى حياتك على الطيار الآلي، حتى لو كنت تتقدم ببطء.",
		closing:     "هذه البطاقة تتطور في كل مرة تعود فيها. كلما عدت أكثر، أصبحت أدق.",
	},
}

// BuildPersonalityCard synthesizes the multi-paragraph personality card
// from the latest classification and the active trait labels. It returns
// ok=false until sessionCount reaches MinSessionsForCard. The category
// comes straight from the classifier; earlier page variants re-derived it
// by pattern-matching the generated future text, which silently coupled
// the card to template wording.
func BuildPersonalityCard(cat Category, traitLabels []string, loc Locale, sessionCount int) (string, bool) {
	if sessionCount < MinSessionsForCard {
		return "", false
	}

	s, ok := cardBank[loc]
	if !ok {
		s = cardBank[LocaleFR]
	}

	var b strings.Builder
	b.WriteString(s.preamble)

	b.WriteString("\n\n")
	b.WriteString(s.traitsLabel)
	if len(traitLabels) == 0 {
		b.WriteString(s.noTraits)
	} else {
		b.WriteString(strings.Join(traitLabels, " • "))
		b.WriteString(".")
	}

	switch cat {
	case CategoryTired:
		b.WriteString("\n\n")
		b.WriteString(s.energy)
	case CategoryLost, CategoryBlocked:
		b.WriteString("\n\n")
		b.WriteString(s.direction)
	case CategoryHopeful:
		b.WriteString("\n\n")
		b.WriteString(s.trajectory)
	}

	b.WriteString("\n\n")
	b.WriteString(s.closing)
	return b.String(), true
}
