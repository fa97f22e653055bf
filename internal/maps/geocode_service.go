// README: Geocoding wrapper used for the optional destination hint.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"wanderplan/internal/itinerary"
)

// ErrNoLocation is returned when the address does not resolve to any place.
var ErrNoLocation = errors.New("no location found")

// GeocodeService handles interactions with the Google Geocoding API.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a new GeocodeService with the given API Key. Extra client options
// (base URL, HTTP client) are applied after the key.
func NewGeocodeService(apiKey string, opts ...maps.ClientOption) (*GeocodeService, error) {
	all := append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// Geocode resolves a free-text destination to its best match.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (*itinerary.Location, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoLocation
	}

	best := results[0]
	return &itinerary.Location{
		FormattedAddress: best.FormattedAddress,
		Lat:              best.Geometry.Location.Lat,
		Lng:              best.Geometry.Location.Lng,
	}, nil
}
