package sentiment

// category is either a sentiment polarity or a tone.
type category string

const (
	catPositive category = Positive
	catNegative category = Negative
)

type Lexicon map[category][]string

var englishLexicon = Lexicon{
	catPositive: {
		"good", "great", "excellent", "success", "successful", "growth", "improve", "improved",
		"improvement", "benefit", "gain", "profit", "strong", "love", "happy", "win", "progress",
		"achieve", "achieved", "opportunity", "positive", "efficient", "innovative", "record high",
	},
	catNegative: {
		"bad", "poor", "fail", "failed", "failure", "loss", "losses", "decline", "crisis", "problem",
		"weak", "hate", "angry", "risk", "threat", "damage", "delay", "delayed", "negative",
		"layoff", "layoffs", "shortage", "lawsuit", "record low",
	},
	Formal: {
		"therefore", "furthermore", "moreover", "hereby", "pursuant", "accordingly", "consequently",
		"respectively", "in accordance with", "shall",
	},
	Informal: {
		"gonna", "wanna", "yeah", "hey", "kinda", "cool", "awesome", "lol", "stuff", "guys",
	},
	Optimistic: {
		"hope", "hopeful", "confident", "promising", "bright future", "expect growth", "outlook improves",
		"looking forward",
	},
	Pessimistic: {
		"doubt", "unlikely", "worry", "worried", "concern", "concerns", "bleak", "downturn", "uncertain",
	},
	Joyful: {
		"joy", "delighted", "celebrate", "celebration", "wonderful", "thrilled", "cheerful", "glad",
	},
	Sad: {
		"sad", "grief", "sorrow", "tragic", "mourn", "regret", "lonely", "heartbroken",
	},
}

var frenchLexicon = Lexicon{
	catPositive: {
		"bon", "bonne", "excellent", "succès", "réussite", "croissance", "amélioration", "bénéfice",
		"gain", "fort", "heureux", "progrès", "opportunité", "positif", "efficace", "innovant",
	},
	catNegative: {
		"mauvais", "mauvaise", "échec", "perte", "pertes", "déclin", "crise", "problème", "faible",
		"risque", "menace", "dommage", "retard", "négatif", "licenciement", "pénurie",
	},
	Formal: {
		"par conséquent", "en outre", "de surcroît", "conformément", "néanmoins", "ainsi",
	},
	Informal: {
		"ouais", "trop cool", "sympa", "truc", "bref", "genre", "super",
	},
	Optimistic: {
		"espoir", "confiant", "prometteur", "perspectives favorables",
	},
	Pessimistic: {
		"doute", "inquiétude", "incertain", "morose", "ralentissement",
	},
	Joyful: {
		"joie", "ravi", "célébrer", "fête", "formidable", "merveilleux",
	},
	Sad: {
		"triste", "chagrin", "tragique", "deuil", "regret", "tristesse",
	},
}
