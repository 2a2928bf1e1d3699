// README: Trip request, composite plan and persisted record.
package trip

import (
	"time"

	"journeo/internal/modules/currency"
	"journeo/internal/modules/weather"
	"journeo/internal/types"
)

type Request struct {
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Budget      *float64       `json:"budget"`
	TravelType  string         `json:"travel_type,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
	Language    string         `json:"language,omitempty"`
}

// Sources records, per dependency, whether plan data is live, degraded or skipped.
type Sources struct {
	Itinerary   types.Source `json:"itinerary"`
	Weather     types.Source `json:"weather"`
	Forecast    types.Source `json:"forecast"`
	Currency    types.Source `json:"currency"`
	Translation types.Source `json:"translation"`
}

type Plan struct {
	Itinerary           string            `json:"itinerary"`
	TranslatedItinerary *string           `json:"translated_itinerary"`
	Weather             *weather.Current  `json:"weather"`
	Forecast            *weather.Forecast `json:"forecast"`
	CurrencyInfo        *currency.Rates   `json:"currency_info"`
	Sources             Sources           `json:"sources"`
	Success             bool              `json:"success"`
}

// Record is a persisted plan. ID and CreatedAt are assigned by the store.
type Record struct {
	ID string `json:"id"`
	Request
	Plan
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
