package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"journeo/internal/config"
	"journeo/internal/modules/trip"
)

var discard = slog.New(slog.DiscardHandler)

func offlineConfig() config.Config {
	var cfg config.Config
	cfg.Store = config.StoreMemory
	cfg.AI = config.AIConfig{Provider: config.AINone, Timeout: time.Second}
	cfg.Providers = config.ProviderConfig{
		OpenWeatherURL:    "http://127.0.0.1:1",
		ExchangeRateURL:   "http://127.0.0.1:1",
		LibreTranslateURL: "http://127.0.0.1:1",
		Timeout:           time.Second,
	}
	cfg.PlanTimeout = 5 * time.Second
	return cfg
}

func TestNewMemoryStorePlansOffline(t *testing.T) {
	a, err := New(context.Background(), offlineConfig(), discard)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	require.IsType(t, &trip.MemoryStore{}, a.Store)
	rec, err := a.Planner.Plan(context.Background(), trip.Request{
		Source:      "Lisbon",
		Destination: "Porto",
		StartDate:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Contains(t, rec.Itinerary, "Porto")

	deps := a.RouterDeps(offlineConfig(), nil, discard)
	require.Nil(t, deps.Verifier)
	require.Same(t, a.Planner, deps.Planner)
}

func TestNewRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := offlineConfig()
	cfg.Store = config.StoreRedis
	cfg.Redis.Addr = mr.Addr()

	a, err := New(context.Background(), cfg, discard)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	require.IsType(t, &trip.RedisStore{}, a.Store)
}

func TestNewRejectsUnknownBackends(t *testing.T) {
	cfg := offlineConfig()
	cfg.Store = "sqlite"
	_, err := New(context.Background(), cfg, discard)
	require.ErrorContains(t, err, "unknown store")

	cfg = offlineConfig()
	cfg.AI.Provider = "claude"
	_, err = New(context.Background(), cfg, discard)
	require.ErrorContains(t, err, "unknown ai provider")
}
