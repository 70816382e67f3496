package reflection

// Reflection is the generated mirror pair shown after an analysis:
// Future is the "life echo" (probable trajectory) and Shadow the
// "shadowtalk" (what the inner shadow is saying).
type Reflection struct {
	Future string `json:"future"`
	Shadow string `json:"shadow"`
}

// templateBank holds the canned reflection pairs per locale and category.
var templateBank = map[Locale]map[Category][]Reflection{
	LocaleFR: {
		CategoryTired: {{
			Future: "Si tu continues à tout porter comme maintenant, tu avanceras, mais en te vidant peu à peu de ton énergie. Tu risques de dire oui par réflexe, même quand ton corps et ton cœur te crient stop.",
			Shadow: "Ta conscience te murmure : « Tu sais que tu es fatigué(e), mais tu te forces encore à jouer le rôle de celui/celle qui encaisse tout. Tu as peur de décevoir si tu poses des limites, pourtant c’est toi que tu laisses tomber quand tu ne dis rien. »",
		}},
		CategoryLost: {{
			Future: "Si tu continues à avancer sans clarifier ce que tu veux vraiment, tu peux te retrouver dans une vie qui a l’air correcte de l’extérieur mais creuse à l’intérieur.",
			Shadow: "Ta conscience te dit : « Tu sens déjà que quelque chose ne colle plus, mais tu repousses le moment de l’admettre. Tu as peur de tout recommencer ou de décevoir, alors tu restes dans une zone floue qui t’épuise. »",
		}},
		CategoryBlocked: {{
			Future: "En restant dans cette hésitation permanente, tu verras passer des opportunités avec la sensation d’avoir toujours été “presque prêt(e)”.",
			Shadow: "Ta conscience te souffle : « Tu te protèges tellement de l’échec que tu te prives aussi d’une vraie transformation. Tant que tu attends de ne plus avoir peur, tu attends surtout que ta vie change sans toi. »",
		}},
		CategoryHopeful: {{
			Future: "Si tu continues à écouter cette petite voix qui veut mieux pour toi, tu peux doucement créer une trajectoire plus alignée avec ce que tu ressens vraiment.",
			Shadow: "Ta conscience te confie : « Tu n’as plus envie de jouer le personnage qui s’adapte à tout. Tu as peur d’être ‘trop’ si tu assumes tes vrais besoins, mais rester à l’étroit n’est plus possible pour toi. »",
		}},
		CategoryNeutral: {{
			Future: "Si tu continues exactement comme maintenant, tu peux rester dans une zone tiède : rien n’est catastrophique, mais rien ne nourrit vraiment ton feu intérieur.",
			Shadow: "Ta conscience te dit : « Tu minimises ce que tu ressens pour ne pas faire de vagues. À force, tu t’éloignes de ce que tu veux vraiment vivre. »",
		}},
	},
	LocaleEN: {
		CategoryTired: {{
			Future: "If you keep carrying everything the way you do now, you’ll move forward but slowly drain your own energy. You may keep saying yes by reflex, even when your body and heart are begging you to stop.",
			Shadow: "Your inner voice whispers: “You know you’re tired, but you still push yourself to play the one who can handle everything. You’re afraid to disappoint if you set boundaries, yet each time you stay silent, you disappoint yourself first.”",
		}},
		CategoryLost: {{
			Future: "If you keep moving without clarifying what you truly want, you might end up in a life that looks fine on the outside but feels hollow on the inside.",
			Shadow: "Your inner voice says: “You already feel that something doesn’t fit anymore, but you delay the moment you fully admit it. You’re afraid of starting over or disappointing people, so you remain in a blurry zone that quietly drains you.”",
		}},
		CategoryBlocked: {{
			Future: "By staying in this constant hesitation, you may watch opportunities pass while feeling like you were always ‘almost ready’.",
			Shadow: "Your inner voice tells you: “You’re protecting yourself so much from failure that you also shut the door on real transformation. As long as you wait to not be afraid anymore, you’re mostly waiting for life to change without you.”",
		}},
		CategoryHopeful: {{
			Future: "If you keep listening to that small voice that wants better for you, you can slowly create a more aligned trajectory.",
			Shadow: "Your inner voice confides: “You don’t want to keep playing the character who always adjusts to everything. You’re afraid of being ‘too much’ if you own your real needs, yet you also know that staying small is no longer an option.”",
		}},
		CategoryNeutral: {{
			Future: "If you keep going exactly like this, you might stay in a lukewarm space: nothing is truly catastrophic, but nothing deeply feeds you either.",
			Shadow: "Your inner voice says: “You downplay what you feel to avoid making waves. But each time you ignore yourself, you move a little further away from who you are.”",
		}},
	},
	LocaleAR: {
		CategoryTired: {{
			Future: "إذا واصلت حمل كل شيء كما تفعل الآن، ستتقدم لكن طاقتك ستستنزف شيئاً فشيئاً. قد تستمر في قول نعم بدافع العادة، حتى عندما يصرخ جسدك وقلبك بأن تتوقف.",
			Shadow: "صوتك الداخلي يهمس: «أنت تعرف أنك متعب، لكنك ما زلت تجبر نفسك على لعب دور من يتحمّل كل شيء. تخاف أن تخيّب أحداً إذا وضعت حدوداً، لكن في كل مرة تصمت فيها، أنت من تخذله أولاً.»",
		}},
		CategoryLost: {{
			Future: "إذا واصلت التقدم دون أن توضّح ما تريده حقاً، قد تجد نفسك في حياة تبدو جيدة من الخارج لكنها فارغة من الداخل.",
			Shadow: "صوتك الداخلي يقول: «أنت تشعر أصلاً أن شيئاً ما لم يعد مناسباً، لكنك تؤجل لحظة الاعتراف به. تخاف من البدء من جديد، فتبقى في منطقة ضبابية تستنزفك بهدوء.»",
		}},
		CategoryBlocked: {{
			Future: "بالبقاء في هذا التردد الدائم، قد ترى الفرص تمرّ أمامك وأنت تشعر أنك كنت دائماً «شبه جاهز».",
			Shadow: "صوتك الداخلي يخبرك: «أنت تحمي نفسك من الفشل لدرجة أنك تغلق الباب أمام تحول حقيقي. ما دمت تنتظر أن يزول الخوف، فأنت تنتظر أن تتغير حياتك من دونك.»",
		}},
		CategoryHopeful: {{
			Future: "إذا واصلت الإصغاء لذلك الصوت الصغير الذي يريد الأفضل لك، يمكنك أن تبني بهدوء مساراً أكثر انسجاماً مع ما تشعر به حقاً.",
			Shadow: "صوتك الداخلي يسرّ لك: «لم تعد تريد لعب دور الشخصية التي تتكيف مع كل شيء. تخاف أن تكون ‹أكثر من اللازم› إذا تمسكت باحتياجاتك الحقيقية، لكنك تعرف أن البقاء صغيراً لم يعد خياراً.»",
		}},
		CategoryNeutral: {{
			Future: "إذا واصلت تماماً كما أنت الآن، قد تبقى في منطقة فاترة: لا شيء كارثي، لكن لا شيء يغذي نارك الداخلية حقاً.",
			Shadow: "صوتك الداخلي يقول: «أنت تقلل مما تشعر به كي لا تثير الأمواج. ومع الوقت، تبتعد قليلاً قليلاً عما تريد أن تعيشه حقاً.»",
		}},
	},
}

// quoteBank holds the short mirror sentences used by the Soulset flow.
var quoteBank = map[Locale]map[Category][]string{
	LocaleFR: {
		CategoryTired: {
			"Tu n’as rien à prouver ce soir : déposer ce que tu portes est déjà un acte de courage.",
			"Ton corps te demande une trêve, pas une excuse.",
		},
		CategoryLost: {
			"Être perdu(e), c’est parfois la première étape honnête vers un chemin qui te ressemble.",
		},
		CategoryBlocked: {
			"La porte n’est pas fermée : tu apprends juste à oser tourner la poignée.",
		},
		CategoryHopeful: {
			"Cette petite envie qui persiste, c’est ta direction qui se précise.",
		},
		CategoryNeutral: {
			"Même au milieu du chaos, tu restes capable de choisir le prochain pas.",
		},
	},
	LocaleEN: {
		CategoryTired: {
			"You have nothing to prove tonight: putting down what you carry is already courage.",
			"Your body is asking for a truce, not an excuse.",
		},
		CategoryLost: {
			"Feeling lost is sometimes the first honest step toward a path that fits you.",
		},
		CategoryBlocked: {
			"The door is not locked: you are just learning to dare turn the handle.",
		},
		CategoryHopeful: {
			"That small persistent longing is your direction getting clearer.",
		},
		CategoryNeutral: {
			"Even in the middle of chaos, you can still choose your next step.",
		},
	},
	LocaleAR: {
		CategoryTired: {
			"ليس عليك أن تثبت شيئاً الليلة: أن تضع ما تحمله جانباً هو بحد ذاته شجاعة.",
		},
		CategoryLost: {
			"أن تشعر بالضياع هو أحياناً أول خطوة صادقة نحو طريق يشبهك.",
		},
		CategoryBlocked: {
			"الباب ليس مقفلاً: أنت فقط تتعلم أن تجرؤ على إدارة المقبض.",
		},
		CategoryHopeful: {
			"تلك الرغبة الصغيرة التي لا تزول هي اتجاهك وهو يتّضح.",
		},
		CategoryNeutral: {
			"حتى في وسط الفوضى، ما زلت قادراً على اختيار خطوتك التالية.",
		},
	},
}

// genericReflection is the hard-coded last-resort pair per locale, served
// when every other path (remote call, parse, template lookup) has failed.
var genericReflection = map[Locale]Reflection{
	LocaleFR: {
		Future: "Ta trajectoire se dessine à partir de ce que tu répètes chaque jour. Rien n’est figé : le prochain pas t’appartient encore.",
		Shadow: "Ton ombre te rappelle simplement ce que tu préfères ne pas regarder. L’écouter quelques minutes vaut mieux que la fuir toute une vie.",
	},
	LocaleEN: {
		Future: "Your trajectory is drawn by what you repeat every day. Nothing is fixed: the next step is still yours.",
		Shadow: "Your shadow only points at what you prefer not to look at. Listening to it for a few minutes beats running from it for a lifetime.",
	},
	LocaleAR: {
		Future: "مسارك يُرسم مما تكرره كل يوم. لا شيء نهائي: الخطوة التالية ما زالت لك.",
		Shadow: "ظلك يشير فقط إلى ما تفضّل ألا تنظر إليه. أن تصغي إليه دقائق خير من أن تهرب منه عمراً كاملاً.",
	},
}
