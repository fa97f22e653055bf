package maps

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"googlemaps.github.io/maps"
)

func newTestGeocoder(t *testing.T, body string) *GeocodeService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/geocode/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("address"); got != "Paris" {
			t.Errorf("unexpected address %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	svc, err := NewGeocodeService("test-key", maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new geocoder: %v", err)
	}
	return svc
}

func TestGeocode(t *testing.T) {
	svc := newTestGeocoder(t, `{
		"status": "OK",
		"results": [{
			"formatted_address": "Paris, France",
			"geometry": {"location": {"lat": 48.8566, "lng": 2.3522}}
		}]
	}`)

	loc, err := svc.Geocode(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if loc.FormattedAddress != "Paris, France" || loc.Lat != 48.8566 || loc.Lng != 2.3522 {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestGeocodeNoResults(t *testing.T) {
	svc := newTestGeocoder(t, `{"status": "OK", "results": []}`)

	_, err := svc.Geocode(context.Background(), "Paris")
	if !errors.Is(err, ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}
}

func TestGeocodeAPIError(t *testing.T) {
	svc := newTestGeocoder(t, `{"status": "REQUEST_DENIED", "error_message": "bad key", "results": []}`)

	if _, err := svc.Geocode(context.Background(), "Paris"); err == nil {
		t.Fatal("expected error for denied request")
	}
}
