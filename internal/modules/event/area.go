// README: Area classification strategies for event scoping.
package event

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"fareflow/internal/types"
)

// AreaClassifier resolves a coordinate to an area tag used for event matching.
type AreaClassifier interface {
	Classify(ctx context.Context, p types.Point) (string, error)
}

type boundingBox struct {
	area           string
	minLat, maxLat float64
	minLng, maxLng float64
}

// BoundingBoxClassifier maps coordinates to area tags with fixed boxes.
// A placeholder geofencing scheme; anything outside the boxes is suburban.
type BoundingBoxClassifier struct {
	boxes []boundingBox
}

func NewBoundingBoxClassifier() *BoundingBoxClassifier {
	return &BoundingBoxClassifier{
		boxes: []boundingBox{
			{area: "downtown", minLat: 40.70, maxLat: 40.76, minLng: -74.02, maxLng: -73.97},
			{area: "airport", minLat: 40.63, maxLat: 40.66, minLng: -73.82, maxLng: -73.75},
			{area: "midtown", minLat: 40.74, maxLat: 40.77, minLng: -73.99, maxLng: -73.95},
		},
	}
}

func (c *BoundingBoxClassifier) Classify(_ context.Context, p types.Point) (string, error) {
	for _, b := range c.boxes {
		if p.Lat >= b.minLat && p.Lat <= b.maxLat && p.Lng >= b.minLng && p.Lng <= b.maxLng {
			return b.area, nil
		}
	}
	return "suburban", nil
}

// GeocodeAreaClassifier resolves areas through the Google Maps reverse
// geocoding API, tagging by neighborhood (falling back to locality). Errors
// fall back to the bounding-box scheme so pricing never fails on a maps outage.
type GeocodeAreaClassifier struct {
	client   *maps.Client
	fallback AreaClassifier
}

func NewGeocodeAreaClassifier(apiKey string, fallback AreaClassifier) (*GeocodeAreaClassifier, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GeocodeAreaClassifier{client: client, fallback: fallback}, nil
}

func (c *GeocodeAreaClassifier) Classify(ctx context.Context, p types.Point) (string, error) {
	results, err := c.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
	})
	if err != nil || len(results) == 0 {
		return c.fallback.Classify(ctx, p)
	}
	for _, r := range results {
		for _, comp := range r.AddressComponents {
			for _, t := range comp.Types {
				if t == "neighborhood" || t == "locality" {
					return normalizeArea(comp.LongName), nil
				}
			}
		}
	}
	return c.fallback.Classify(ctx, p)
}

func normalizeArea(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}
