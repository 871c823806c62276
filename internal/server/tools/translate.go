package tools

import "strings"

// trToEn maps Turkish place type keywords to the English terms Nominatim
// indexes better.
var trToEn = map[string]string{
	"restoran": "restaurant", "restoranlar": "restaurant",
	"kafe": "cafe", "kafeler": "cafe", "kahve": "cafe",
	"bar": "bar", "barlar": "bar",
	"fırın": "bakery", "pastane": "bakery",
	"otel": "hotel", "oteller": "hotel",
	"hastane": "hospital", "eczane": "pharmacy",
	"market": "supermarket", "süpermarket": "supermarket",
	"park": "park", "müze": "museum",
	"okul": "school", "üniversite": "university",
}

// amenityTypes maps English place type keywords to Nominatim amenity tags.
var amenityTypes = map[string]string{
	"cafe": "cafe", "cafes": "cafe", "coffee": "cafe",
	"restaurant": "restaurant", "restaurants": "restaurant",
	"bar": "bar", "bars": "bar",
	"bakery": "bakery", "bakeries": "bakery",
	"pub": "pub", "pubs": "pub",
	"fast_food": "fast_food",
	"pharmacy": "pharmacy", "pharmacies": "pharmacy",
	"hospital": "hospital", "hospitals": "hospital",
	"school": "school", "schools": "school",
	"bank": "bank", "banks": "bank",
	"hotel": "hotel", "hotels": "hotel",
}

// TranslateQuery rewrites Turkish place type keywords to English, word by
// word. Unknown words pass through unchanged, so area names survive.
func TranslateQuery(query string) string {
	words := strings.Fields(query)
	translated := make([]string, 0, len(words))
	for _, w := range words {
		lower := strings.ToLower(w)
		if en, ok := trToEn[lower]; ok {
			translated = append(translated, en)
			continue
		}
		// Stem match handles Turkish suffixes, e.g. "restoranları".
		matched := false
		for tr, en := range trToEn {
			if strings.HasPrefix(lower, tr) {
				translated = append(translated, en)
				matched = true
				break
			}
		}
		if !matched {
			translated = append(translated, w)
		}
	}
	return strings.Join(translated, " ")
}

// ExtractAmenity returns the Nominatim amenity tag for the first place type
// keyword found in the query, or "" when none matches. Scans in query word
// order so multi-keyword queries resolve predictably.
func ExtractAmenity(query string) string {
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if amenity, ok := amenityTypes[strings.Trim(w, ",.!?")]; ok {
			return amenity
		}
	}
	return ""
}

// StripAmenityKeywords removes all known place type keywords from the
// query, leaving the area name for a structured amenity+city search.
func StripAmenityKeywords(query string) string {
	words := strings.Fields(query)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := amenityTypes[strings.ToLower(strings.Trim(w, ","))]; ok {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Trim(strings.TrimSpace(strings.Join(kept, " ")), ",")
}

// AmenityTag normalizes a free-form place type to a Nominatim amenity tag,
// falling back to the input itself.
func AmenityTag(placeType string) string {
	if amenity, ok := amenityTypes[strings.ToLower(placeType)]; ok {
		return amenity
	}
	return placeType
}
