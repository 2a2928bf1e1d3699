// README: Trip planning orchestrator: validate, fan out to providers, translate, assemble, persist.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"journeo/internal/modules/currency"
	"journeo/internal/modules/itinerary"
	"journeo/internal/modules/trip"
	"journeo/internal/modules/weather"
	"journeo/internal/types"
)

const (
	defaultLanguage = "en"
	currencyBase    = "USD"
)

type ItineraryGenerator interface {
	Generate(ctx context.Context, r itinerary.Request) itinerary.Itinerary
}

type WeatherProvider interface {
	Current(ctx context.Context, city, countryCode string) types.Result[weather.Current]
	Forecast(ctx context.Context, city, countryCode string) types.Result[weather.Forecast]
}

type CurrencyProvider interface {
	Rates(ctx context.Context, base string) types.Result[currency.Rates]
}

// TripPlanner orchestrates itinerary generation, weather, currency and
// translation into one persisted plan.
type TripPlanner struct {
	itinerary  ItineraryGenerator
	weather    WeatherProvider
	currency   CurrencyProvider
	translator Translator
	store      trip.Store
	logger     *slog.Logger
}

// NewTripPlanner creates a TripPlanner with initialized dependencies.
func NewTripPlanner(gen ItineraryGenerator, wx WeatherProvider, fx CurrencyProvider, tr Translator, store trip.Store, logger *slog.Logger) *TripPlanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &TripPlanner{
		itinerary:  gen,
		weather:    wx,
		currency:   fx,
		translator: tr,
		store:      store,
		logger:     logger,
	}
}

// Plan validates req, gathers every dependency concurrently and saves the
// assembled plan. Provider failures never surface here; only validation,
// cancellation and persistence errors do.
func (p *TripPlanner) Plan(ctx context.Context, req trip.Request) (trip.Record, error) {
	req, err := Validate(req)
	if err != nil {
		return trip.Record{}, err
	}
	start := time.Now()

	var (
		itin       itinerary.Itinerary
		translated *ItineraryTranslation
		current    types.Result[weather.Current]
		forecast   types.Result[weather.Forecast]
		rates      *types.Result[currency.Rates]
	)

	var g errgroup.Group
	g.Go(func() error {
		itin = p.itinerary.Generate(ctx, itinerary.Request{
			Source:      req.Source,
			Destination: req.Destination,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Budget:      req.Budget,
			TravelType:  req.TravelType,
			Preferences: req.Preferences,
		})
		if req.Language != defaultLanguage {
			tx := TranslateItinerary(ctx, p.translator, itin.Text, req.Language, p.logger)
			translated = &tx
		}
		return nil
	})
	g.Go(func() error {
		current = p.weather.Current(ctx, req.Destination, "")
		return nil
	})
	g.Go(func() error {
		forecast = p.weather.Forecast(ctx, req.Destination, "")
		return nil
	})
	if req.Budget != nil {
		g.Go(func() error {
			r := p.currency.Rates(ctx, currencyBase)
			rates = &r
			return nil
		})
	}
	_ = g.Wait()

	rec := trip.Record{Request: req, Plan: assemble(itin, translated, current, forecast, rates)}

	if err := ctx.Err(); err != nil {
		p.logger.Warn("trip plan abandoned before save", "destination", req.Destination, "error", err)
		return trip.Record{}, err
	}

	saved, err := p.store.Save(ctx, rec)
	if err != nil {
		p.logger.Error("trip plan save failed", "destination", req.Destination, "error", err)
		return trip.Record{}, &PersistenceError{Plan: rec, Err: err}
	}
	p.logger.Info("trip planned",
		"trip_id", saved.ID,
		"destination", req.Destination,
		"itinerary", saved.Sources.Itinerary,
		"weather", saved.Sources.Weather,
		"currency", saved.Sources.Currency,
		"translation", saved.Sources.Translation,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return saved, nil
}

func assemble(
	itin itinerary.Itinerary,
	translated *ItineraryTranslation,
	current types.Result[weather.Current],
	forecast types.Result[weather.Forecast],
	rates *types.Result[currency.Rates],
) trip.Plan {
	plan := trip.Plan{
		Itinerary: itin.Text,
		Weather:   &current.Value,
		Forecast:  &forecast.Value,
		Success:   true,
		Sources: trip.Sources{
			Itinerary:   itin.Source,
			Weather:     current.Source(),
			Forecast:    forecast.Source(),
			Currency:    types.SourceSkipped,
			Translation: types.SourceSkipped,
		},
	}
	if rates != nil {
		plan.CurrencyInfo = &rates.Value
		plan.Sources.Currency = rates.Source()
	}
	if translated != nil {
		switch {
		case !translated.Success:
			plan.Sources.Translation = types.SourceDegraded
		case translated.Degraded:
			text := translated.TranslatedItinerary
			plan.TranslatedItinerary = &text
			plan.Sources.Translation = types.SourceDegraded
		default:
			text := translated.TranslatedItinerary
			plan.TranslatedItinerary = &text
			plan.Sources.Translation = types.SourceLive
		}
	}
	return plan
}

// Validate checks req and returns it normalised: trimmed text fields and a
// lower-case base language code defaulting to "en".
func Validate(req trip.Request) (trip.Request, error) {
	req.Source = strings.TrimSpace(req.Source)
	req.Destination = strings.TrimSpace(req.Destination)
	switch {
	case req.Source == "":
		return req, &ValidationError{Field: "source", Message: "must not be empty"}
	case req.Destination == "":
		return req, &ValidationError{Field: "destination", Message: "must not be empty"}
	case req.StartDate.IsZero():
		return req, &ValidationError{Field: "start_date", Message: "is required"}
	case req.EndDate.IsZero():
		return req, &ValidationError{Field: "end_date", Message: "is required"}
	case req.StartDate.After(req.EndDate):
		return req, &ValidationError{Field: "end_date", Message: "must not be before start_date"}
	case itinerary.Request{StartDate: req.StartDate, EndDate: req.EndDate}.Days() > itinerary.MaxDays:
		return req, &ValidationError{Field: "end_date", Message: fmt.Sprintf("trip must not exceed %d days", itinerary.MaxDays)}
	}
	if req.Budget != nil && (*req.Budget < 0 || math.IsNaN(*req.Budget) || math.IsInf(*req.Budget, 0)) {
		return req, &ValidationError{Field: "budget", Message: "must be a non-negative number"}
	}

	lang := strings.TrimSpace(req.Language)
	if lang == "" {
		req.Language = defaultLanguage
		return req, nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return req, &ValidationError{Field: "language", Message: "unknown language code " + lang}
	}
	base, _ := tag.Base()
	req.Language = base.String()
	return req, nil
}
