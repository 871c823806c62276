package tools

import (
	"context"
	"fmt"
	"strings"
)

// RegisterMapTools builds the map toolset for one agent run. Every tool
// that produces coordinates also records them in the collector, so the
// handler gets structured places without re-parsing tool output.
func RegisterMapTools(registry *Registry, osm *OSMClient, collector *Collector) {
	registry.Register(&SearchPlacesTool{osm: osm, collector: collector})
	registry.Register(&NearbyPlacesTool{osm: osm, collector: collector})
	registry.Register(&GeocodeTool{osm: osm, collector: collector})
	registry.Register(&PlaceDetailsTool{osm: osm})
}

// SearchPlacesTool performs text-based place search via Nominatim
type SearchPlacesTool struct {
	osm       *OSMClient
	collector *Collector
}

func (t *SearchPlacesTool) Name() string {
	return "search_places_by_text"
}

func (t *SearchPlacesTool) Description() string {
	return "Search for places by free text, e.g. 'Kadıköy restaurants' or 'Taksim pizza'. Use English place types for best results."
}

func (t *SearchPlacesTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"type":        "string",
			"description": "Search text combining an area and a place type",
		},
	}
}

func (t *SearchPlacesTool) RequiredParameters() []string {
	return []string{"query"}
}

func (t *SearchPlacesTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, ok := args["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query parameter must be a non-empty string")
	}

	translated := TranslateQuery(query)
	amenity := ExtractAmenity(translated)
	if amenity == "" {
		amenity = ExtractAmenity(query)
	}

	var results []NominatimPlace
	var err error

	// Structured amenity+city search first when the query names a place
	// type, then progressively looser free-text fallbacks.
	area := ""
	if amenity != "" {
		area = StripAmenityKeywords(translated)
		if area != "" {
			results, err = t.osm.SearchAmenity(ctx, amenity, area)
		}
	}
	if len(results) == 0 {
		results, err = t.osm.SearchText(ctx, translated)
	}
	if len(results) == 0 && translated != query {
		results, err = t.osm.SearchText(ctx, query)
	}
	if len(results) == 0 && amenity != "" && area != "" {
		results, err = t.osm.SearchText(ctx, amenity+" "+area)
	}
	if err != nil && len(results) == 0 {
		return "", err
	}
	if len(results) == 0 {
		return fmt.Sprintf("No results found for '%s'.", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Places found for '%s':\n\n", query)
	for i, place := range results {
		lat, lon, ok := place.Coords()
		if !ok {
			continue
		}
		t.collector.Add(CollectedPlace{
			Name:    place.ShortName(),
			Lat:     lat,
			Lon:     lon,
			Address: place.DisplayName,
			Source:  "nominatim",
		})
		fmt.Fprintf(&b, "%d. %s\n   Coordinates: %f, %f\n   Address: %s\n   Category: %s / %s\n   OSM: %s/%d\n\n",
			i+1, place.ShortName(), lat, lon, place.DisplayName, place.Class, place.Type, place.OSMType, place.OSMID)
	}
	return b.String(), nil
}

// NearbyPlacesTool searches around coordinates via Overpass, falling back
// to a bounded Nominatim search
type NearbyPlacesTool struct {
	osm       *OSMClient
	collector *Collector
}

func (t *NearbyPlacesTool) Name() string {
	return "search_nearby_places"
}

func (t *NearbyPlacesTool) Description() string {
	return "Search for places of a given type around specific coordinates"
}

func (t *NearbyPlacesTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"latitude": map[string]interface{}{
			"type":        "number",
			"description": "Latitude, e.g. 41.0082",
		},
		"longitude": map[string]interface{}{
			"type":        "number",
			"description": "Longitude, e.g. 28.9784",
		},
		"place_type": map[string]interface{}{
			"type":        "string",
			"description": "Place type: restaurant, cafe, bar, bakery, etc.",
		},
		"radius": map[string]interface{}{
			"type":        "number",
			"description": "Search radius in meters (default: 1500)",
		},
	}
}

func (t *NearbyPlacesTool) RequiredParameters() []string {
	return []string{"latitude", "longitude", "place_type"}
}

func (t *NearbyPlacesTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	lat, okLat := args["latitude"].(float64)
	lon, okLon := args["longitude"].(float64)
	placeType, okType := args["place_type"].(string)
	if !okLat || !okLon || !okType {
		return "", fmt.Errorf("latitude, longitude and place_type are required")
	}

	radius := 1500
	if val, exists := args["radius"]; exists {
		if r, ok := val.(float64); ok && r > 0 {
			radius = int(r)
		}
	}

	query := fmt.Sprintf(`
	[out:json][timeout:20];
	(
	  node["amenity"=%q](around:%d,%f,%f);
	  way["amenity"=%q](around:%d,%f,%f);
	  relation["amenity"=%q](around:%d,%f,%f);
	);
	out center 20;
	`, placeType, radius, lat, lon, placeType, radius, lat, lon, placeType, radius, lat, lon)

	elements, err := t.osm.Overpass(ctx, query)
	if err != nil {
		elements = nil
	}

	if len(elements) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "'%s' places near (%f, %f) within %dm:\n\n", placeType, lat, lon, radius)
		for i, e := range elements {
			if i >= 20 {
				break
			}
			eLat, eLon := e.Coords()
			t.collector.Add(CollectedPlace{
				Name:    e.Name(),
				Lat:     eLat,
				Lon:     eLon,
				Address: e.Address(),
				Source:  "overpass",
			})
			fmt.Fprintf(&b, "%d. %s\n   Address: %s\n   Coordinates: %f, %f\n   OSM: %s/%d\n\n",
				i+1, e.Name(), e.Address(), eLat, eLon, e.Type, e.ID)
		}
		return b.String(), nil
	}

	// Overpass failed or came back empty, fall back to Nominatim.
	amenity := AmenityTag(placeType)
	results, err := t.osm.SearchAmenityBounded(ctx, amenity, lat, lon, radius)
	if len(results) == 0 {
		results, err = t.osm.SearchText(ctx, fmt.Sprintf("%s near %f,%f", amenity, lat, lon))
	}
	if err != nil && len(results) == 0 {
		return "", err
	}
	if len(results) == 0 {
		return fmt.Sprintf("No '%s' found within %dm of (%f, %f).", placeType, radius, lat, lon), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "'%s' places near (%f, %f):\n\n", placeType, lat, lon)
	for i, place := range results {
		pLat, pLon, ok := place.Coords()
		if !ok {
			continue
		}
		t.collector.Add(CollectedPlace{
			Name:    place.ShortName(),
			Lat:     pLat,
			Lon:     pLon,
			Address: place.DisplayName,
			Source:  "nominatim",
		})
		fmt.Fprintf(&b, "%d. %s\n   Coordinates: %f, %f\n   Address: %s\n\n",
			i+1, place.ShortName(), pLat, pLon, place.DisplayName)
	}
	return b.String(), nil
}

// GeocodeTool converts an address or area name to coordinates
type GeocodeTool struct {
	osm       *OSMClient
	collector *Collector
}

func (t *GeocodeTool) Name() string {
	return "geocode_location"
}

func (t *GeocodeTool) Description() string {
	return "Convert an address or area name to coordinates, e.g. 'Kadıköy, Istanbul'"
}

func (t *GeocodeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"address": map[string]interface{}{
			"type":        "string",
			"description": "Address or area name to geocode",
		},
	}
}

func (t *GeocodeTool) RequiredParameters() []string {
	return []string{"address"}
}

func (t *GeocodeTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	address, ok := args["address"].(string)
	if !ok || strings.TrimSpace(address) == "" {
		return "", fmt.Errorf("address parameter must be a non-empty string")
	}

	place, err := t.osm.Geocode(ctx, address)
	if err != nil {
		return "", err
	}
	if place == nil {
		return fmt.Sprintf("No coordinates found for '%s'.", address), nil
	}

	lat, lon, ok := place.Coords()
	if !ok {
		return fmt.Sprintf("No coordinates found for '%s'.", address), nil
	}
	t.collector.Add(CollectedPlace{
		Name:    place.ShortName(),
		Lat:     lat,
		Lon:     lon,
		Address: place.DisplayName,
		Source:  "nominatim",
	})

	return fmt.Sprintf("%s\n   Latitude: %f\n   Longitude: %f", place.DisplayName, lat, lon), nil
}

// PlaceDetailsTool fetches OSM details for a single element
type PlaceDetailsTool struct {
	osm *OSMClient
}

func (t *PlaceDetailsTool) Name() string {
	return "get_place_details"
}

func (t *PlaceDetailsTool) Description() string {
	return "Get detailed information about a place by its OSM identifier, e.g. 'node/123'"
}

func (t *PlaceDetailsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"place_id": map[string]interface{}{
			"type":        "string",
			"description": "OSM identifier in the form 'node/123', 'way/456' or 'relation/789'",
		},
	}
}

func (t *PlaceDetailsTool) RequiredParameters() []string {
	return []string{"place_id"}
}

func (t *PlaceDetailsTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	placeID, ok := args["place_id"].(string)
	if !ok {
		return "", fmt.Errorf("place_id parameter must be a string")
	}

	osmType, osmID, found := strings.Cut(placeID, "/")
	if !found || (osmType != "node" && osmType != "way" && osmType != "relation") {
		return "Place id must be in the form 'node/123', 'way/456' or 'relation/789'.", nil
	}

	query := fmt.Sprintf("[out:json];\n%s(%s);\nout body;", osmType, osmID)
	elements, err := t.osm.Overpass(ctx, query)
	if err != nil {
		return "", err
	}
	if len(elements) == 0 {
		return fmt.Sprintf("No place details found for '%s'.", placeID), nil
	}

	e := elements[0]
	phone := e.Tags["phone"]
	if phone == "" {
		phone = "No phone"
	}
	website := e.Tags["website"]
	if website == "" {
		website = "No website"
	}
	category := e.Tags["amenity"]
	if category == "" {
		category = "place"
	}

	return fmt.Sprintf("%s\n   Address: %s\n   Category: %s\n   Phone: %s\n   Website: %s",
		e.Name(), e.Address(), category, phone, website), nil
}
