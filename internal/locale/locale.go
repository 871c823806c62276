// Package locale holds the static copy tables for the UI. English is the
// default; Turkish matches the city the default map view points at.
package locale

import "github.com/atlaschat/atlaschat/internal/models"

const (
	English = "en"
	Turkish = "tr"
)

// Copy is the full set of user-visible strings for one language.
type Copy struct {
	InputPlaceholder string
	StatusReady      string
	StatusThinking   string
	StatusErrPrefix  string
	ModelsLoading    string
	ModelsFailed     string
	PickerTitle      string
	PlacesTitle      string
	PlaceNoCoords    string
	MapPlaceholder   string
	HelpLine         string

	SeedGreeting string
	SeedQuery    string
	SeedReply    string
}

var table = map[string]Copy{
	English: {
		InputPlaceholder: "Ask about places, e.g. \"best coffee in Kadıköy\"",
		StatusReady:      "Ready",
		StatusThinking:   "Thinking",
		StatusErrPrefix:  "Error: ",
		ModelsLoading:    "Loading models...",
		ModelsFailed:     "Could not load model list",
		PickerTitle:      "Select model",
		PlacesTitle:      "Places",
		PlaceNoCoords:    "no location",
		MapPlaceholder:   "Preparing map...",
		HelpLine:         "enter send · tab map · ctrl+p model · ctrl+l language · ctrl+r restart · ctrl+c quit",

		SeedGreeting: "Hi! I can find places for you on the map. Ask me anything.",
		SeedQuery:    "Where are the best restaurants in Kadıköy?",
		SeedReply:    "Here are a few well-rated restaurants around Kadıköy. Pick one and I can tell you more.",
	},
	Turkish: {
		InputPlaceholder: "Mekan sorun, örn. \"Kadıköy'de en iyi kahveciler\"",
		StatusReady:      "Hazır",
		StatusThinking:   "Düşünüyor",
		StatusErrPrefix:  "Hata: ",
		ModelsLoading:    "Modeller yükleniyor...",
		ModelsFailed:     "Model listesi yüklenemedi",
		PickerTitle:      "Model seç",
		PlacesTitle:      "Mekanlar",
		PlaceNoCoords:    "konum yok",
		MapPlaceholder:   "Harita hazırlanıyor...",
		HelpLine:         "enter gönder · tab harita · ctrl+p model · ctrl+l dil · ctrl+r yeniden · ctrl+c çıkış",

		SeedGreeting: "Merhaba! Haritada sizin için mekan bulabilirim. Bana bir şey sorun.",
		SeedQuery:    "Kadıköy'deki en iyi restoranlar nerede?",
		SeedReply:    "Kadıköy çevresinden beğenilen birkaç restoran listeledim. Birini seçerseniz daha fazlasını anlatabilirim.",
	},
}

// For returns the copy table for lang, falling back to English for any
// unknown language code.
func For(lang string) Copy {
	if c, ok := table[lang]; ok {
		return c
	}
	return table[English]
}

// Toggle cycles between the supported languages.
func Toggle(lang string) string {
	if lang == Turkish {
		return English
	}
	return Turkish
}

// SeedTranscript builds the scripted three-message exchange shown before the
// user's first real submission. Pure: the caller replaces the transcript with
// the result, never appends to it.
func SeedTranscript(lang string) []models.ChatMessage {
	c := For(lang)
	return []models.ChatMessage{
		{Role: models.Agent, Text: c.SeedGreeting},
		{Role: models.User, Text: c.SeedQuery},
		{Role: models.Agent, Text: c.SeedReply},
	}
}
