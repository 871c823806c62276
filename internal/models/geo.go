package models

// Center is a geographic focal point for the map view.
type Center struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}

// Place is a candidate location returned by the agent. Lat/Lon are pointers
// because the agent may return places without usable coordinates; those are
// kept in the list but never drawn on the map.
type Place struct {
	Name    string   `json:"name"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	Address string   `json:"address,omitempty"`
}

// Renderable reports whether the place carries both coordinates.
func (p Place) Renderable() bool {
	return p.Lat != nil && p.Lon != nil
}

// Marker is a map-drawable point derived from a renderable Place.
type Marker struct {
	Name string
	Lat  float64
	Lon  float64
}

// MapView is the resolved pair the render surface draws from: a view center
// and the marker list. It is always internally consistent, both fields come
// from the same agent response.
type MapView struct {
	Center  Center
	Markers []Marker
}

// ModelOption is one selectable backing model from the registry.
type ModelOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
