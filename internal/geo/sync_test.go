package geo

import (
	"reflect"
	"testing"

	"github.com/atlaschat/atlaschat/internal/models"
)

func f(v float64) *float64 { return &v }

func TestResolve_FiltersPlacesWithoutCoordinates(t *testing.T) {
	center := &models.Center{Lat: 41.05, Lon: 29.00}
	places := []models.Place{
		{Name: "A", Lat: f(41.05), Lon: f(29.00)},
		{Name: "B"},
	}

	view := Resolve(center, places)

	if view.Center != *center {
		t.Errorf("view center = %+v, want %+v", view.Center, *center)
	}
	if len(view.Markers) != 1 || view.Markers[0].Name != "A" {
		t.Fatalf("markers = %+v, want exactly [A]", view.Markers)
	}
}

func TestResolve_HalfCoordinateIsNotRenderable(t *testing.T) {
	places := []models.Place{{Name: "lat only", Lat: f(41.0)}}
	view := Resolve(nil, places)
	if view.Markers[0].Name != DefaultMarkerLabel {
		t.Errorf("place with only one coordinate must not become a marker, got %+v", view.Markers)
	}
}

func TestResolve_EmptyPlacesSynthesizesDefaultMarker(t *testing.T) {
	view := Resolve(nil, nil)

	if view.Center != DefaultCenter {
		t.Errorf("view center = %+v, want default %+v", view.Center, DefaultCenter)
	}
	if len(view.Markers) != 1 {
		t.Fatalf("markers = %d, want exactly one default marker", len(view.Markers))
	}
	m := view.Markers[0]
	if m.Name != DefaultMarkerLabel || m.Lat != DefaultCenter.Lat || m.Lon != DefaultCenter.Lon {
		t.Errorf("default marker = %+v", m)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	center := &models.Center{Lat: 40.0, Lon: 29.1, Label: "Bursa"}
	places := []models.Place{
		{Name: "A", Lat: f(40.01), Lon: f(29.11)},
		{Name: "B", Lat: f(40.02), Lon: f(29.12)},
	}

	first := Resolve(center, places)
	second := Resolve(center, places)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Resolve is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestMarkers_PreservesOrder(t *testing.T) {
	places := []models.Place{
		{Name: "first", Lat: f(1), Lon: f(1)},
		{Name: "skip"},
		{Name: "second", Lat: f(2), Lon: f(2)},
	}
	markers := Markers(places)
	if len(markers) != 2 || markers[0].Name != "first" || markers[1].Name != "second" {
		t.Errorf("markers = %+v", markers)
	}
}
