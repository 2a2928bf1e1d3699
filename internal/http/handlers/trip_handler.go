// README: Trip handlers for plan/list/get/delete.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"journeo/internal/modules/currency"
	"journeo/internal/modules/trip"
	"journeo/internal/modules/weather"
)

type TripPlanner interface {
	Plan(ctx context.Context, req trip.Request) (trip.Record, error)
}

type TripHandler struct {
	planner TripPlanner
	store   trip.Store
	timeout time.Duration
}

// NewTripHandler bounds every Plan call by timeout; zero means no extra bound.
func NewTripHandler(planner TripPlanner, store trip.Store, timeout time.Duration) *TripHandler {
	return &TripHandler{planner: planner, store: store, timeout: timeout}
}

type planTripReq struct {
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	Budget      *float64       `json:"budget"`
	TravelType  string         `json:"travel_type"`
	Preferences map[string]any `json:"preferences"`
	Language    string         `json:"language"`
}

type planResponse struct {
	TripID              string            `json:"trip_id,omitempty"`
	Itinerary           string            `json:"itinerary"`
	TranslatedItinerary *string           `json:"translated_itinerary"`
	Weather             *weather.Current  `json:"weather"`
	Forecast            *weather.Forecast `json:"forecast"`
	CurrencyInfo        *currency.Rates   `json:"currency_info"`
	Sources             trip.Sources      `json:"sources"`
	Success             bool              `json:"success"`
}

func newPlanResponse(rec trip.Record) planResponse {
	return planResponse{
		TripID:              rec.ID,
		Itinerary:           rec.Itinerary,
		TranslatedItinerary: rec.TranslatedItinerary,
		Weather:             rec.Weather,
		Forecast:            rec.Forecast,
		CurrencyInfo:        rec.CurrencyInfo,
		Sources:             rec.Sources,
		Success:             rec.Success,
	}
}

func (r planTripReq) toRequest() (trip.Request, error) {
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return trip.Request{}, err
	}
	end, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return trip.Request{}, err
	}
	return trip.Request{
		Source:      r.Source,
		Destination: r.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      r.Budget,
		TravelType:  r.TravelType,
		Preferences: r.Preferences,
		Language:    r.Language,
	}, nil
}

// Plan handles POST /api/trips/plan.
func (h *TripHandler) Plan(c *gin.Context) {
	var body planTripReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}
	req, err := body.toRequest()
	if err != nil {
		writeTripError(c, err)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	rec, err := h.planner.Plan(ctx, req)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, newPlanResponse(rec))
}

// List handles GET /api/trips/.
func (h *TripHandler) List(c *gin.Context) {
	recs, err := h.store.List(c.Request.Context())
	if err != nil {
		writeTripError(c, err)
		return
	}
	if recs == nil {
		recs = []trip.Record{}
	}
	writeJSON(c, http.StatusOK, recs)
}

// Get handles GET /api/trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusNotFound, "trip not found")
		return
	}
	rec, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rec)
}

// Delete handles DELETE /api/trips/:id.
func (h *TripHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusNotFound, "trip not found")
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"message": "Trip deleted successfully"})
}
