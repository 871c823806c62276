// Package geo resolves an agent response's optional center and place list
// into the concrete view the map surface draws.
package geo

import "github.com/atlaschat/atlaschat/internal/models"

// DefaultMarkerLabel names the synthetic marker shown when a response has no
// renderable places.
const DefaultMarkerLabel = "İstanbul"

// DefaultCenter is the fallback view center when no valid center is supplied.
var DefaultCenter = models.Center{Lat: 41.0082, Lon: 28.9784, Label: "İstanbul"}

// Resolve computes the map view for one response: the supplied center when
// valid, DefaultCenter otherwise, plus one marker per renderable place.
// The map is never empty; with no renderable places a single default marker
// is synthesized at the fallback center. Pure, no accumulation across calls.
func Resolve(center *models.Center, places []models.Place) models.MapView {
	view := models.MapView{Center: DefaultCenter}
	if center != nil {
		view.Center = *center
	}

	view.Markers = Markers(places)
	if len(view.Markers) == 0 {
		view.Markers = []models.Marker{{
			Name: DefaultMarkerLabel,
			Lat:  DefaultCenter.Lat,
			Lon:  DefaultCenter.Lon,
		}}
	}
	return view
}

// Markers filters places down to the renderable ones. Places missing either
// coordinate are dropped from the marker list, never from the place list.
func Markers(places []models.Place) []models.Marker {
	markers := make([]models.Marker, 0, len(places))
	for _, p := range places {
		if !p.Renderable() {
			continue
		}
		markers = append(markers, models.Marker{
			Name: p.Name,
			Lat:  *p.Lat,
			Lon:  *p.Lon,
		})
	}
	return markers
}
