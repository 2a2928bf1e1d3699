// README: Itinerary request/result types.
package itinerary

import (
	"time"

	"journeo/internal/types"
)

// MaxDays bounds trip length; longer requests are rejected before generation.
const MaxDays = 60

type Request struct {
	Source      string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      *float64
	TravelType  string
	Preferences map[string]any
}

// Itinerary is always non-empty; Source tells whether an LLM wrote it.
type Itinerary struct {
	Text   string
	Source types.Source
}

// Days counts calendar days, inclusive of both ends, minimum 1.
func (r Request) Days() int {
	n := civilDay(r.EndDate) - civilDay(r.StartDate) + 1
	if n < 1 {
		return 1
	}
	return n
}

// civilDay numbers t's calendar date in its own location, counting from 1970-01-01.
// Unlike time.Duration it does not saturate for far-apart dates.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	if m <= time.February {
		y--
	}
	era := y / 400
	if y < 0 && y%400 != 0 {
		era--
	}
	yoe := y - era*400
	mp := (int(m) + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}
