// README: Accommodation adapter over Google Places lodging search with mock fallback.
package maps

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"googlemaps.github.io/maps"

	"journeo/internal/types"
)

type Address struct {
	Street      *string `json:"street"`
	HouseNumber *string `json:"housenumber"`
	Postcode    *string `json:"postcode"`
	City        *string `json:"city"`
}

type Contact struct {
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
	Email   *string `json:"email"`
}

type Amenities struct {
	Wifi      bool `json:"wifi"`
	Parking   bool `json:"parking"`
	Breakfast bool `json:"breakfast"`
}

// Accommodation represents a simplified lodging result.
type Accommodation struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Name             string    `json:"name"`
	TourismType      string    `json:"tourism_type"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Address          Address   `json:"address"`
	Contact          Contact   `json:"contact"`
	Amenities        Amenities `json:"amenities"`
	Stars            *int      `json:"stars"`
	Rooms            *int      `json:"rooms"`
	Rating           float32   `json:"rating,omitempty"`
	UserRatingsTotal int       `json:"user_ratings_total,omitempty"`
}

type CityAccommodations struct {
	City           string          `json:"city"`
	Accommodations []Accommodation `json:"accommodations"`
	Count          int             `json:"count"`
}

type NearbyAccommodations struct {
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	Radius         float64         `json:"radius"`
	Accommodations []Accommodation `json:"accommodations"`
	Count          int             `json:"count"`
}

type placesClient interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client  placesClient
	timeout time.Duration
	logger  *slog.Logger
}

// NewPlacesService creates a PlacesService. An empty apiKey yields a mock-only service.
func NewPlacesService(apiKey string, timeout time.Duration, logger *slog.Logger) (*PlacesService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &PlacesService{timeout: timeout, logger: logger}
	if apiKey == "" {
		return s, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	s.client = client
	return s, nil
}

// ByCity searches lodging in city, returning at most limit entries.
func (s *PlacesService) ByCity(ctx context.Context, city string, limit int) types.Result[CityAccommodations] {
	resp, err := s.search(ctx, func(ctx context.Context) (maps.PlacesSearchResponse, error) {
		return s.client.TextSearch(ctx, &maps.TextSearchRequest{
			Query: "hotels in " + city,
			Type:  maps.PlaceTypeLodging,
		})
	})
	if err != nil {
		s.logger.Warn("accommodations fallback", "city", city, "error", err)
		return types.Fallback(MockByCity(city, limit), err)
	}
	list := toAccommodations(resp.Results, limit)
	return types.Live(CityAccommodations{City: city, Accommodations: list, Count: len(list)})
}

// ByCoordinates searches lodging within radius metres of lat/lon.
func (s *PlacesService) ByCoordinates(ctx context.Context, lat, lon, radius float64, limit int) types.Result[NearbyAccommodations] {
	resp, err := s.search(ctx, func(ctx context.Context) (maps.PlacesSearchResponse, error) {
		return s.client.NearbySearch(ctx, &maps.NearbySearchRequest{
			Location: &maps.LatLng{Lat: lat, Lng: lon},
			Radius:   uint(radius),
			Type:     maps.PlaceTypeLodging,
		})
	})
	if err != nil {
		s.logger.Warn("accommodations fallback", "lat", lat, "lon", lon, "error", err)
		return types.Fallback(MockByCoordinates(lat, lon, radius, limit), err)
	}
	list := toAccommodations(resp.Results, limit)
	return types.Live(NearbyAccommodations{Latitude: lat, Longitude: lon, Radius: radius, Accommodations: list, Count: len(list)})
}

func (s *PlacesService) search(ctx context.Context, call func(context.Context) (maps.PlacesSearchResponse, error)) (maps.PlacesSearchResponse, error) {
	if s.client == nil {
		return maps.PlacesSearchResponse{}, ErrNoClient
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	resp, err := call(ctx)
	if err != nil {
		return maps.PlacesSearchResponse{}, fmt.Errorf("places api error: %w", err)
	}
	return resp, nil
}

func toAccommodations(results []maps.PlacesSearchResult, limit int) []Accommodation {
	out := make([]Accommodation, 0, max(0, min(limit, len(results))))
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		if len(out) >= limit {
			break
		}
		if seen[r.PlaceID] {
			continue
		}
		seen[r.PlaceID] = true

		addr := r.FormattedAddress
		if addr == "" {
			addr = r.Vicinity
		}
		a := Accommodation{
			ID:               r.PlaceID,
			Type:             "place",
			Name:             r.Name,
			TourismType:      lodgingKind(r.Types),
			Latitude:         r.Geometry.Location.Lat,
			Longitude:        r.Geometry.Location.Lng,
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
		}
		if a.Name == "" {
			a.Name = "Unnamed"
		}
		if addr != "" {
			a.Address.Street = &addr
		}
		out = append(out, a)
	}
	return out
}

func lodgingKind(kinds []string) string {
	for _, k := range kinds {
		switch k {
		case "lodging", "hotel", "guest_house", "hostel", "campground", "rv_park":
			return k
		}
	}
	return "unknown"
}

var cityMockNames = []string{
	"Grand Hotel", "City Center Hotel", "Riverside Inn", "Mountain View Lodge",
	"Seaside Resort", "Business Hotel", "Boutique Hotel", "Heritage Inn",
	"Modern Suites", "Cozy Guesthouse",
}

var coordMockNames = []string{
	"Central Hotel", "Downtown Inn", "Metro Lodge", "Urban Resort",
	"City Hotel", "Business Center", "Executive Suites", "Premium Inn",
}

func MockByCity(city string, limit int) CityAccommodations {
	kinds := []string{"hotel", "guest_house", "hostel"}
	n := min(max(limit, 0), len(cityMockNames))
	list := make([]Accommodation, n)
	for i := range list {
		list[i] = Accommodation{
			ID:          "mock_" + strconv.Itoa(i),
			Type:        "node",
			Name:        cityMockNames[i],
			TourismType: kinds[i%len(kinds)],
			Latitude:    40.7128 + float64(i)*0.01,
			Longitude:   -74.006 + float64(i)*0.01,
			Address: Address{
				Street:      ptr(fmt.Sprintf("Main Street %d", i+1)),
				HouseNumber: ptr(strconv.Itoa(100 + i)),
				Postcode:    ptr("10001"),
				City:        ptr(city),
			},
			Contact: Contact{
				Phone:   ptr(fmt.Sprintf("+1-555-%d", 1000+i)),
				Website: ptr(fmt.Sprintf("https://example%d.com", i)),
				Email:   ptr(fmt.Sprintf("info@example%d.com", i)),
			},
			Amenities: Amenities{Wifi: true, Parking: i%2 == 0, Breakfast: true},
			Stars:     ptr(i%5 + 1),
			Rooms:     ptr(20 + i*5),
		}
	}
	return CityAccommodations{City: city, Accommodations: list, Count: n}
}

func MockByCoordinates(lat, lon, radius float64, limit int) NearbyAccommodations {
	n := min(max(limit, 0), len(coordMockNames))
	list := make([]Accommodation, n)
	for i := range list {
		list[i] = Accommodation{
			ID:          "mock_coord_" + strconv.Itoa(i),
			Type:        "node",
			Name:        coordMockNames[i],
			TourismType: "hotel",
			Latitude:    lat + float64(i)*0.001,
			Longitude:   lon + float64(i)*0.001,
			Address: Address{
				Street:      ptr(fmt.Sprintf("Downtown Street %d", i+1)),
				HouseNumber: ptr(strconv.Itoa(200 + i)),
				Postcode:    ptr("10001"),
				City:        ptr("Unknown"),
			},
			Contact: Contact{
				Phone:   ptr(fmt.Sprintf("+1-555-%d", 2000+i)),
				Website: ptr(fmt.Sprintf("https://downtown%d.com", i)),
				Email:   ptr(fmt.Sprintf("info@downtown%d.com", i)),
			},
			Amenities: Amenities{Wifi: true, Parking: true, Breakfast: i%2 == 0},
			Stars:     ptr(i%4 + 2),
			Rooms:     ptr(30 + i*3),
		}
	}
	return NearbyAccommodations{Latitude: lat, Longitude: lon, Radius: radius, Accommodations: list, Count: n}
}

func ptr[T any](v T) *T { return &v }
