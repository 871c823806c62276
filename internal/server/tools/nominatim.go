package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const nominatimBase = "https://nominatim.openstreetmap.org"

// Overpass mirrors, tried in order until one succeeds.
var overpassMirrors = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://maps.mail.ru/osm/tools/overpass/api/interpreter",
}

// OSMClient talks to the OpenStreetMap services: Nominatim for geocoding
// and text search, Overpass for radius and detail queries.
type OSMClient struct {
	baseURL    string
	overpass   []string
	userAgent  string
	httpClient *http.Client
}

func NewOSMClient(userAgent string) *OSMClient {
	return &OSMClient{
		baseURL:   nominatimBase,
		overpass:  overpassMirrors,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

// NewOSMClientWithBase points the client at alternate endpoints, used by
// tests.
func NewOSMClientWithBase(userAgent, baseURL string, overpass []string, httpClient *http.Client) *OSMClient {
	c := NewOSMClient(userAgent)
	c.baseURL = baseURL
	c.overpass = overpass
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// NominatimPlace is one result row from a Nominatim search.
type NominatimPlace struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Class       string            `json:"class"`
	Type        string            `json:"type"`
	OSMID       int64             `json:"osm_id"`
	OSMType     string            `json:"osm_type"`
	NameDetails map[string]string `json:"namedetails"`
}

// ShortName picks the best human name: local names first, then the first
// segment of the display name.
func (p NominatimPlace) ShortName() string {
	if n := p.NameDetails["name"]; n != "" {
		return n
	}
	if n := p.NameDetails["name:tr"]; n != "" {
		return n
	}
	if n := p.NameDetails["name:en"]; n != "" {
		return n
	}
	if p.DisplayName != "" {
		return strings.TrimSpace(strings.SplitN(p.DisplayName, ",", 2)[0])
	}
	return "Unknown"
}

// Coords parses the string coordinates Nominatim returns.
func (p NominatimPlace) Coords() (lat, lon float64, ok bool) {
	lat, errLat := strconv.ParseFloat(p.Lat, 64)
	lon, errLon := strconv.ParseFloat(p.Lon, 64)
	return lat, lon, errLat == nil && errLon == nil
}

func (c *OSMClient) get(ctx context.Context, path string, params url.Values) ([]NominatimPlace, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var places []NominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	return places, nil
}

func searchParams() url.Values {
	return url.Values{
		"format":         {"json"},
		"addressdetails": {"1"},
		"namedetails":    {"1"},
		"limit":          {"20"},
	}
}

// SearchText runs a free-text Nominatim search.
func (c *OSMClient) SearchText(ctx context.Context, query string) ([]NominatimPlace, error) {
	params := searchParams()
	params.Set("q", query)
	return c.get(ctx, "/search", params)
}

// SearchAmenity runs a structured amenity+city search.
func (c *OSMClient) SearchAmenity(ctx context.Context, amenity, city string) ([]NominatimPlace, error) {
	params := searchParams()
	params.Set("amenity", amenity)
	params.Set("city", city)
	return c.get(ctx, "/search", params)
}

// SearchAmenityBounded searches an amenity inside a bounding box around the
// given point, roughly radius metres on each side.
func (c *OSMClient) SearchAmenityBounded(ctx context.Context, amenity string, lat, lon float64, radius int) ([]NominatimPlace, error) {
	degOffset := float64(radius) / 111000
	viewbox := fmt.Sprintf("%f,%f,%f,%f", lon-degOffset, lat+degOffset, lon+degOffset, lat-degOffset)

	params := searchParams()
	params.Set("amenity", amenity)
	params.Set("viewbox", viewbox)
	params.Set("bounded", "1")
	return c.get(ctx, "/search", params)
}

// Geocode resolves an address to its best single match.
func (c *OSMClient) Geocode(ctx context.Context, address string) (*NominatimPlace, error) {
	params := url.Values{
		"q":      {address},
		"format": {"json"},
		"limit":  {"1"},
	}
	places, err := c.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, nil
	}
	return &places[0], nil
}

// OverpassElement is one element from an Overpass response.
type OverpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coords returns the element position, preferring the computed center for
// ways and relations.
func (e OverpassElement) Coords() (lat, lon float64) {
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon
	}
	return e.Lat, e.Lon
}

func (e OverpassElement) Name() string {
	if n := e.Tags["name"]; n != "" {
		return n
	}
	if n := e.Tags["name:tr"]; n != "" {
		return n
	}
	if n := e.Tags["name:en"]; n != "" {
		return n
	}
	return "Unknown"
}

// Address assembles a short address line from OSM tags.
func (e OverpassElement) Address() string {
	parts := []string{
		e.Tags["addr:street"],
		e.Tags["addr:housenumber"],
		e.Tags["addr:city"],
		e.Tags["addr:district"],
		e.Tags["addr:postcode"],
	}
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return "No address"
	}
	return strings.Join(kept, ", ")
}

// Overpass posts a query to each mirror in order and returns the first
// successful result.
func (c *OSMClient) Overpass(ctx context.Context, query string) ([]OverpassElement, error) {
	var lastErr error
	for _, mirror := range c.overpass {
		elements, err := c.overpassOne(ctx, mirror, query)
		if err != nil {
			lastErr = err
			continue
		}
		return elements, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no overpass mirrors configured")
	}
	return nil, lastErr
}

func (c *OSMClient) overpassOne(ctx context.Context, mirror, query string) ([]OverpassElement, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mirror, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var payload struct {
		Elements []OverpassElement `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}
	return payload.Elements, nil
}

// StructuredSearch returns dedup-ready collected places for a free-text
// query, used for the direct fallback when the agent itself fails.
func (c *OSMClient) StructuredSearch(ctx context.Context, query string) ([]CollectedPlace, error) {
	results, err := c.SearchText(ctx, query)
	if err != nil {
		return nil, err
	}

	places := make([]CollectedPlace, 0, len(results))
	for _, p := range results {
		lat, lon, ok := p.Coords()
		if !ok {
			continue
		}
		places = append(places, CollectedPlace{
			Name:    p.ShortName(),
			Lat:     lat,
			Lon:     lon,
			Address: p.DisplayName,
			Source:  "nominatim",
		})
	}
	return places, nil
}
