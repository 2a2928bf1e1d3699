package translation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// phrasebook maps common itinerary words per target language.
var phrasebook = map[string]map[string]string{
	"es": {
		"day": "día", "morning": "mañana", "afternoon": "tarde", "evening": "noche",
		"breakfast": "desayuno", "lunch": "almuerzo", "dinner": "cena", "hotel": "hotel",
		"museum": "museo", "tips": "consejos", "welcome": "bienvenido", "trip": "viaje",
		"arrival": "llegada", "departure": "salida", "visit": "visita", "budget": "presupuesto",
	},
	"fr": {
		"day": "jour", "morning": "matin", "afternoon": "après-midi", "evening": "soir",
		"breakfast": "petit-déjeuner", "lunch": "déjeuner", "dinner": "dîner", "hotel": "hôtel",
		"museum": "musée", "tips": "conseils", "welcome": "bienvenue", "trip": "voyage",
		"arrival": "arrivée", "departure": "départ", "visit": "visite", "budget": "budget",
	},
	"de": {
		"day": "Tag", "morning": "Morgen", "afternoon": "Nachmittag", "evening": "Abend",
		"breakfast": "Frühstück", "lunch": "Mittagessen", "dinner": "Abendessen", "hotel": "Hotel",
		"museum": "Museum", "tips": "Tipps", "welcome": "willkommen", "trip": "Reise",
		"arrival": "Ankunft", "departure": "Abreise", "visit": "Besuch", "budget": "Budget",
	},
	"it": {
		"day": "giorno", "morning": "mattina", "afternoon": "pomeriggio", "evening": "sera",
		"breakfast": "colazione", "lunch": "pranzo", "dinner": "cena", "hotel": "albergo",
		"museum": "museo", "tips": "consigli", "welcome": "benvenuto", "trip": "viaggio",
		"arrival": "arrivo", "departure": "partenza", "visit": "visita", "budget": "budget",
	},
	"pt": {
		"day": "dia", "morning": "manhã", "afternoon": "tarde", "evening": "noite",
		"breakfast": "café da manhã", "lunch": "almoço", "dinner": "jantar", "hotel": "hotel",
		"museum": "museu", "tips": "dicas", "welcome": "bem-vindo", "trip": "viagem",
		"arrival": "chegada", "departure": "partida", "visit": "visita", "budget": "orçamento",
	},
}

var phraseWord = regexp.MustCompile(`(?i)\b(day|morning|afternoon|evening|breakfast|lunch|dinner|hotel|museum|tips|welcome|trip|arrival|departure|visit|budget)\b`)

// MockTranslate substitutes phrasebook words for the supported targets. Any
// other target returns text unchanged with Translated=false.
func MockTranslate(text, target, source string) Translation {
	if source == "" {
		source = "auto"
	}
	t := Translation{
		OriginalText:   text,
		TranslatedText: text,
		SourceLanguage: source,
		TargetLanguage: target,
	}
	words, ok := phrasebook[strings.ToLower(target)]
	if !ok || (source != "auto" && source != "en") {
		return t
	}
	t.TranslatedText = phraseWord.ReplaceAllStringFunc(text, func(m string) string {
		return matchCase(m, words[strings.ToLower(m)])
	})
	t.SourceLanguage = "en"
	t.Translated = true
	return t
}

func matchCase(orig, repl string) string {
	first, _ := utf8.DecodeRuneInString(orig)
	if !unicode.IsUpper(first) {
		return repl
	}
	r, size := utf8.DecodeRuneInString(repl)
	return string(unicode.ToUpper(r)) + repl[size:]
}

var detectKeywords = []struct {
	lang  string
	words []string
}{
	{"en", []string{"hello", "welcome", "travel", "trip"}},
	{"es", []string{"hola", "bienvenido", "viaje"}},
	{"fr", []string{"bonjour", "bienvenue", "voyage"}},
}

func MockDetect(text string) Detection {
	lower := strings.ToLower(text)
	lang := "en"
outer:
	for _, kw := range detectKeywords {
		for _, w := range kw.words {
			if strings.Contains(lower, w) {
				lang = kw.lang
				break outer
			}
		}
	}
	return Detection{Text: text, DetectedLanguage: lang, Confidence: 0.8}
}

func MockLanguages() []Language {
	return []Language{
		{Code: "en", Name: "English"},
		{Code: "es", Name: "Spanish"},
		{Code: "fr", Name: "French"},
		{Code: "de", Name: "German"},
		{Code: "it", Name: "Italian"},
		{Code: "pt", Name: "Portuguese"},
		{Code: "ru", Name: "Russian"},
		{Code: "ja", Name: "Japanese"},
		{Code: "ko", Name: "Korean"},
		{Code: "zh", Name: "Chinese"},
	}
}
