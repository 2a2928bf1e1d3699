// README: Wires config into stores, AI provider, adapters and the trip planner.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"journeo/internal/ai"
	"journeo/internal/config"
	httptransport "journeo/internal/http"
	"journeo/internal/infra"
	"journeo/internal/maps"
	"journeo/internal/modules/currency"
	"journeo/internal/modules/itinerary"
	"journeo/internal/modules/translation"
	"journeo/internal/modules/trip"
	"journeo/internal/modules/weather"
	"journeo/internal/service"
)

type App struct {
	Store       trip.Store
	Planner     *service.TripPlanner
	Weather     *weather.Service
	Currency    *currency.Service
	Translation *translation.Service
	Routes      *maps.RouteService
	Places      *maps.PlacesService

	closers []func()
}

// New builds every collaborator from cfg. Close releases pools and clients.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	a := &App{}

	store, err := a.openStore(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store

	provider, err := a.openProvider(ctx, cfg.AI)
	if err != nil {
		a.Close()
		return nil, err
	}

	p := cfg.Providers
	a.Weather = weather.NewService(p.OpenWeatherKey, p.OpenWeatherURL, p.Timeout, logger)
	a.Currency = currency.NewService(p.ExchangeRateURL, p.Timeout, logger)
	a.Translation = translation.NewService(p.LibreTranslateURL, p.Timeout, logger)
	if a.Routes, err = maps.NewRouteService(p.GoogleMapsKey, p.Timeout, logger); err != nil {
		a.Close()
		return nil, fmt.Errorf("app: routes: %w", err)
	}
	if a.Places, err = maps.NewPlacesService(p.GoogleMapsKey, p.Timeout, logger); err != nil {
		a.Close()
		return nil, fmt.Errorf("app: places: %w", err)
	}

	gen := itinerary.NewService(provider, cfg.AI.Timeout, logger)
	a.Planner = service.NewTripPlanner(gen, a.Weather, a.Currency, a.Translation, store, logger)
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (trip.Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		if err := infra.Migrate(ctx, cfg.DB.DSN); err != nil {
			return nil, err
		}
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		logger.Info("trip store ready", "backend", cfg.Store)
		return trip.NewPostgresStore(pool), nil
	case config.StoreRedis:
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		logger.Info("trip store ready", "backend", cfg.Store, "addr", cfg.Redis.Addr)
		return trip.NewRedisStore(rdb), nil
	case config.StoreMemory:
		logger.Warn("trip store is in-memory; records are lost on restart")
		return trip.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("app: unknown store %q", cfg.Store)
}

// openProvider returns nil when no AI provider is configured; the generator then
// always uses its template itinerary.
func (a *App) openProvider(ctx context.Context, cfg config.AIConfig) (ai.LLMProvider, error) {
	switch cfg.Provider {
	case config.AIGemini:
		p, err := ai.NewGeminiProvider(ctx, cfg.GeminiKey)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, p.Close)
		return p, nil
	case config.AIGroq:
		return ai.NewGroqProvider(cfg.GroqKey, ai.GroqBaseURL), nil
	case config.AINone:
		return nil, nil
	}
	return nil, errors.New("app: unknown ai provider " + cfg.Provider)
}

// RouterDeps exposes the collaborators the HTTP layer needs.
func (a *App) RouterDeps(cfg config.Config, verifier infra.TokenVerifier, logger *slog.Logger) httptransport.RouterDeps {
	return httptransport.RouterDeps{
		Planner:      a.Planner,
		Trips:        a.Store,
		Weather:      a.Weather,
		Currency:     a.Currency,
		Translation:  a.Translation,
		Routes:       a.Routes,
		Places:       a.Places,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		PlanTimeout:  cfg.PlanTimeout,
		Verifier:     verifier,
		Logger:       logger,
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
