// README: Route adapter over Google Directions with per-mode mock fallback and multimodal fan-out.
package maps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"googlemaps.github.io/maps"

	"journeo/internal/types"
)

var ErrNoClient = errors.New("maps: api key not configured")

type Mode string

const (
	ModeDriving Mode = "driving"
	ModeWalking Mode = "walking"
	ModeCycling Mode = "cycling"
	ModeTransit Mode = "transit"
)

// ParseMode accepts the four supported modes; empty means driving.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeDriving, true
	case ModeDriving, ModeWalking, ModeCycling, ModeTransit:
		return m, true
	}
	return "", false
}

func (m Mode) travelMode() maps.Mode {
	switch m {
	case ModeWalking:
		return maps.TravelModeWalking
	case ModeCycling:
		return maps.TravelModeBicycling
	case ModeTransit:
		return maps.TravelModeTransit
	}
	return maps.TravelModeDriving
}

type Instruction struct {
	Instruction string  `json:"instruction"`
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Type        string  `json:"type"`
}

// Route distance is in km, duration in minutes, coordinates as [lon, lat].
type Route struct {
	Start        string        `json:"start"`
	End          string        `json:"end"`
	Mode         Mode          `json:"mode"`
	Distance     float64       `json:"distance"`
	Duration     float64       `json:"duration"`
	Coordinates  [][2]float64  `json:"coordinates"`
	Instructions []Instruction `json:"instructions"`
}

type MultimodalRoute struct {
	Start   string                `json:"start"`
	End     string                `json:"end"`
	Routes  map[Mode]Route        `json:"routes"`
	Sources map[Mode]types.Source `json:"sources"`
}

type directionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// RouteService handles interactions with Google Maps Directions.
type RouteService struct {
	client  directionsClient
	timeout time.Duration
	logger  *slog.Logger
}

// NewRouteService creates a RouteService. An empty apiKey yields a mock-only service.
func NewRouteService(apiKey string, timeout time.Duration, logger *slog.Logger) (*RouteService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &RouteService{timeout: timeout, logger: logger}
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

// Route returns the route from start to end for mode.
func (s *RouteService) Route(ctx context.Context, start, end string, mode Mode) types.Result[Route] {
	r, err := s.directions(ctx, start, end, mode)
	if err != nil {
		s.logger.Warn("route fallback", "start", start, "end", end, "mode", mode, "error", err)
		return types.Fallback(MockRoute(start, end, mode), err)
	}
	return types.Live(r)
}

// Multimodal fetches driving, walking and cycling routes concurrently.
func (s *RouteService) Multimodal(ctx context.Context, start, end string) MultimodalRoute {
	modes := []Mode{ModeDriving, ModeWalking, ModeCycling}
	results := make([]types.Result[Route], len(modes))

	var g errgroup.Group
	for i, m := range modes {
		g.Go(func() error {
			results[i] = s.Route(ctx, start, end, m)
			return nil
		})
	}
	_ = g.Wait()

	out := MultimodalRoute{
		Start:   start,
		End:     end,
		Routes:  make(map[Mode]Route, len(modes)),
		Sources: make(map[Mode]types.Source, len(modes)),
	}
	for i, m := range modes {
		out.Routes[m] = results[i].Value
		out.Sources[m] = results[i].Source()
	}
	return out
}

func (s *RouteService) directions(ctx context.Context, start, end string, mode Mode) (Route, error) {
	if s.client == nil {
		return Route{}, ErrNoClient
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	req := &maps.DirectionsRequest{
		Origin:      start,
		Destination: end,
		Mode:        mode.travelMode(),
	}
	routes, _, err := s.client.Directions(ctx, req)
	if err != nil {
		return Route{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Route{}, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	r := Route{
		Start:       start,
		End:         end,
		Mode:        mode,
		Distance:    float64(leg.Distance.Meters) / 1000,
		Duration:    leg.Duration.Minutes(),
		Coordinates: [][2]float64{{leg.StartLocation.Lng, leg.StartLocation.Lat}},
	}
	for _, step := range leg.Steps {
		r.Coordinates = append(r.Coordinates, [2]float64{step.EndLocation.Lng, step.EndLocation.Lat})
		kind := step.Maneuver
		if kind == "" {
			kind = "unknown"
		}
		r.Instructions = append(r.Instructions, Instruction{
			Instruction: step.HTMLInstructions,
			Distance:    float64(step.Distance.Meters),
			Duration:    step.Duration.Seconds(),
			Type:        kind,
		})
	}
	return r, nil
}

var mockLegs = map[Mode]struct{ km, min float64 }{
	ModeDriving: {15.5, 25},
	ModeWalking: {2.1, 30},
	ModeCycling: {2.1, 12},
	ModeTransit: {15.5, 35},
}

func MockRoute(start, end string, mode Mode) Route {
	d, ok := mockLegs[mode]
	if !ok {
		d = mockLegs[ModeDriving]
	}
	return Route{
		Start:       start,
		End:         end,
		Mode:        mode,
		Distance:    d.km,
		Duration:    d.min,
		Coordinates: [][2]float64{{-74.006, 40.7128}, {-73.935242, 40.730610}},
		Instructions: []Instruction{
			{Instruction: "Start from " + start, Type: "start"},
			{Instruction: "Travel to " + end, Distance: d.km, Duration: d.min, Type: "travel"},
		},
	}
}
