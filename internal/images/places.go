// README: Destination photo lookup via Google Places.
package images

import (
	"context"
	"fmt"
	"net/url"

	"googlemaps.github.io/maps"
)

const maxPhotos = 3

// PlacesSource resolves a destination to a handful of place photo URLs.
// It backs the planner's image defaulting when a Maps key is configured.
type PlacesSource struct {
	client *maps.Client
	apiKey string
}

// NewPlacesSource creates a PlacesSource with the given API key.
func NewPlacesSource(apiKey string) (*PlacesSource, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesSource{client: client, apiKey: apiKey}, nil
}

// PhotosFor text-searches the destination and returns photo URLs from the
// top results, at most maxPhotos. An empty slice with nil error means the
// destination simply has no photos.
func (s *PlacesSource) PhotosFor(ctx context.Context, destination string) ([]string, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: destination})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var urls []string
	for _, result := range resp.Results {
		for _, photo := range result.Photos {
			urls = append(urls, s.photoURL(photo.PhotoReference))
			if len(urls) >= maxPhotos {
				return urls, nil
			}
		}
	}
	return urls, nil
}

func (s *PlacesSource) photoURL(ref string) string {
	q := url.Values{}
	q.Set("maxwidth", "800")
	q.Set("photoreference", ref)
	q.Set("key", s.apiKey)
	return "https://maps.googleapis.com/maps/api/place/photo?" + q.Encode()
}
