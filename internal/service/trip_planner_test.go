package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"journeo/internal/modules/currency"
	"journeo/internal/modules/itinerary"
	"journeo/internal/modules/translation"
	"journeo/internal/modules/trip"
	"journeo/internal/modules/weather"
	"journeo/internal/types"
)

var discard = slog.New(slog.DiscardHandler)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func budget(v float64) *float64 { return &v }

func romeRequest() trip.Request {
	return trip.Request{
		Source:      "Paris",
		Destination: "Rome",
		StartDate:   day("2024-06-01"),
		EndDate:     day("2024-06-05"),
		Budget:      budget(800),
		Language:    "es",
	}
}

// deadURL returns the address of a server that has already shut down.
func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()
	return url
}

type fakeItinerary struct {
	text  string
	calls atomic.Int32
}

func (f *fakeItinerary) Generate(context.Context, itinerary.Request) itinerary.Itinerary {
	f.calls.Add(1)
	return itinerary.Itinerary{Text: f.text, Source: types.SourceLive}
}

type fakeWeather struct{ calls atomic.Int32 }

func (f *fakeWeather) Current(_ context.Context, city, _ string) types.Result[weather.Current] {
	f.calls.Add(1)
	return types.Live(weather.MockCurrent(city))
}

func (f *fakeWeather) Forecast(_ context.Context, city, _ string) types.Result[weather.Forecast] {
	f.calls.Add(1)
	return types.Live(weather.MockForecast(city))
}

type fakeCurrency struct{ calls atomic.Int32 }

func (f *fakeCurrency) Rates(_ context.Context, base string) types.Result[currency.Rates] {
	f.calls.Add(1)
	return types.Live(currency.MockRates(base))
}

// fakeTranslator upper-cases text and fails any paragraph containing failOn.
type fakeTranslator struct {
	failOn string
	calls  atomic.Int32
}

func (f *fakeTranslator) Translate(_ context.Context, text, target, source string) types.Result[translation.Translation] {
	f.calls.Add(1)
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return types.Fallback(translation.Translation{OriginalText: text, TranslatedText: text, TargetLanguage: target}, errors.New("upstream 503"))
	}
	return types.Live(translation.Translation{
		OriginalText:   text,
		TranslatedText: strings.ToUpper(text),
		SourceLanguage: source,
		TargetLanguage: target,
		Translated:     true,
	})
}

type failingStore struct {
	trip.Store
	err   error
	saves atomic.Int32
}

func (s *failingStore) Save(context.Context, trip.Record) (trip.Record, error) {
	s.saves.Add(1)
	return trip.Record{}, s.err
}

type fixture struct {
	itin  *fakeItinerary
	wx    *fakeWeather
	fx    *fakeCurrency
	tr    *fakeTranslator
	store trip.Store
}

func newFixture() *fixture {
	return &fixture{
		itin:  &fakeItinerary{text: "Day 1: Colosseum\n\nDay 2: Vatican\n\nTips: book ahead"},
		wx:    &fakeWeather{},
		fx:    &fakeCurrency{},
		tr:    &fakeTranslator{},
		store: trip.NewMemoryStore(),
	}
}

func (f *fixture) planner() *TripPlanner {
	return NewTripPlanner(f.itin, f.wx, f.fx, f.tr, f.store, discard)
}

func TestPlanWithEveryAdapterFailing(t *testing.T) {
	store := trip.NewMemoryStore()
	planner := NewTripPlanner(
		itinerary.NewService(nil, time.Second, discard),
		weather.NewService("", deadURL(t), time.Second, discard),
		currency.NewService(deadURL(t), time.Second, discard),
		translation.NewService(deadURL(t), time.Second, discard),
		store,
		discard,
	)

	rec, err := planner.Plan(context.Background(), romeRequest())

	require.NoError(t, err)
	require.True(t, rec.Success)
	require.NotEmpty(t, rec.ID)
	require.Contains(t, rec.Itinerary, "Rome")
	require.Equal(t, "Rome", rec.Weather.City)
	require.Equal(t, "Rome", rec.Forecast.City)
	require.Equal(t, "USD", rec.CurrencyInfo.BaseCurrency)
	require.NotEmpty(t, rec.CurrencyInfo.Rates)
	require.NotNil(t, rec.TranslatedItinerary)
	require.Contains(t, *rec.TranslatedItinerary, "Día 1")
	require.Equal(t, trip.Sources{
		Itinerary:   types.SourceDegraded,
		Weather:     types.SourceDegraded,
		Forecast:    types.SourceDegraded,
		Currency:    types.SourceDegraded,
		Translation: types.SourceDegraded,
	}, rec.Sources)

	stored, err := store.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.Itinerary, stored.Itinerary)
}

func TestPlanLiveDependencies(t *testing.T) {
	f := newFixture()

	rec, err := f.planner().Plan(context.Background(), romeRequest())

	require.NoError(t, err)
	require.Equal(t, f.itin.text, rec.Itinerary)
	require.Equal(t, "DAY 1: COLOSSEUM\n\nDAY 2: VATICAN\n\nTIPS: BOOK AHEAD", *rec.TranslatedItinerary)
	require.Equal(t, types.SourceLive, rec.Sources.Itinerary)
	require.Equal(t, types.SourceLive, rec.Sources.Translation)
	require.Equal(t, int32(3), f.tr.calls.Load())
}

func TestPlanPartialTranslationKeepsFailedParagraph(t *testing.T) {
	f := newFixture()
	f.tr.failOn = "Vatican"

	rec, err := f.planner().Plan(context.Background(), romeRequest())

	require.NoError(t, err)
	require.NotNil(t, rec.TranslatedItinerary)
	parts := strings.Split(*rec.TranslatedItinerary, "\n\n")
	require.Equal(t, []string{"DAY 1: COLOSSEUM", "Day 2: Vatican", "TIPS: BOOK AHEAD"}, parts)
	require.Equal(t, types.SourceDegraded, rec.Sources.Translation)
}

func TestPlanTranslationTotalFailureOmitsTranslation(t *testing.T) {
	f := newFixture()
	f.itin.text = "Colosseum"
	f.tr.failOn = "Colosseum"

	rec, err := f.planner().Plan(context.Background(), romeRequest())

	require.NoError(t, err)
	require.Nil(t, rec.TranslatedItinerary)
	require.Equal(t, "Colosseum", rec.Itinerary)
	require.Equal(t, types.SourceDegraded, rec.Sources.Translation)
}

func TestPlanUnsupportedFallbackLanguageOmitsTranslation(t *testing.T) {
	req := romeRequest()
	req.Language = "ja"
	planner := NewTripPlanner(
		&fakeItinerary{text: "Day 1: Colosseum"},
		&fakeWeather{},
		&fakeCurrency{},
		translation.NewService(deadURL(t), time.Second, discard),
		trip.NewMemoryStore(),
		discard,
	)

	rec, err := planner.Plan(context.Background(), req)

	require.NoError(t, err)
	require.Nil(t, rec.TranslatedItinerary)
	require.Equal(t, "ja", rec.Language)
}

func TestPlanEnglishSkipsTranslation(t *testing.T) {
	for _, lang := range []string{"", "en", "EN", "en-GB"} {
		t.Run("lang="+lang, func(t *testing.T) {
			f := newFixture()
			req := romeRequest()
			req.Language = lang

			rec, err := f.planner().Plan(context.Background(), req)

			require.NoError(t, err)
			require.Nil(t, rec.TranslatedItinerary)
			require.Equal(t, "en", rec.Language)
			require.Equal(t, types.SourceSkipped, rec.Sources.Translation)
			require.Zero(t, f.tr.calls.Load())
		})
	}
}

func TestPlanBudgetControlsCurrency(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		f := newFixture()
		req := romeRequest()
		req.Budget = nil

		rec, err := f.planner().Plan(context.Background(), req)

		require.NoError(t, err)
		require.Nil(t, rec.CurrencyInfo)
		require.Equal(t, types.SourceSkipped, rec.Sources.Currency)
		require.Zero(t, f.fx.calls.Load())
	})

	t.Run("present", func(t *testing.T) {
		f := newFixture()
		req := romeRequest()
		req.Budget = budget(500)

		rec, err := f.planner().Plan(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, rec.CurrencyInfo)
		require.Equal(t, "USD", rec.CurrencyInfo.BaseCurrency)
		require.NotEmpty(t, rec.CurrencyInfo.Rates)
		require.Equal(t, types.SourceLive, rec.Sources.Currency)
	})

	t.Run("zero still counts as present", func(t *testing.T) {
		f := newFixture()
		req := romeRequest()
		req.Budget = budget(0)

		rec, err := f.planner().Plan(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, rec.CurrencyInfo)
	})
}

func TestPlanValidationCallsNothing(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(r *trip.Request)
		field string
	}{
		{"empty source", func(r *trip.Request) { r.Source = "  " }, "source"},
		{"empty destination", func(r *trip.Request) { r.Destination = "" }, "destination"},
		{"missing start", func(r *trip.Request) { r.StartDate = time.Time{} }, "start_date"},
		{"missing end", func(r *trip.Request) { r.EndDate = time.Time{} }, "end_date"},
		{"end before start", func(r *trip.Request) { r.EndDate = day("2024-05-30") }, "end_date"},
		{"one day too long", func(r *trip.Request) { r.EndDate = r.StartDate.AddDate(0, 0, itinerary.MaxDays) }, "end_date"},
		{"century long", func(r *trip.Request) { r.EndDate = day("2124-05-31") }, "end_date"},
		{"negative budget", func(r *trip.Request) { r.Budget = budget(-1) }, "budget"},
		{"bad language", func(r *trip.Request) { r.Language = "not a language" }, "language"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := romeRequest()
			tt.mut(&req)

			_, err := f.planner().Plan(context.Background(), req)

			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
			require.Zero(t, f.itin.calls.Load())
			require.Zero(t, f.wx.calls.Load())
			require.Zero(t, f.fx.calls.Load())
			require.Zero(t, f.tr.calls.Load())
			list, err := f.store.List(context.Background())
			require.NoError(t, err)
			require.Empty(t, list)
		})
	}
}

func TestPlanSameDayTripIsValid(t *testing.T) {
	f := newFixture()
	req := romeRequest()
	req.EndDate = req.StartDate

	_, err := f.planner().Plan(context.Background(), req)

	require.NoError(t, err)
}

func TestPlanLongestTripIsValid(t *testing.T) {
	f := newFixture()
	req := romeRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, itinerary.MaxDays-1)

	_, err := f.planner().Plan(context.Background(), req)

	require.NoError(t, err)
	require.EqualValues(t, 1, f.itin.calls.Load())
}

func TestPlanPersistenceErrorCarriesPlan(t *testing.T) {
	f := newFixture()
	storeErr := errors.New("disk full")
	store := &failingStore{err: storeErr}
	f.store = store

	rec, err := f.planner().Plan(context.Background(), romeRequest())

	require.Empty(t, rec.ID)
	require.ErrorIs(t, err, ErrPersistence)
	require.ErrorIs(t, err, storeErr)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, f.itin.text, perr.Plan.Itinerary)
	require.Equal(t, "Rome", perr.Plan.Destination)
	require.NotNil(t, perr.Plan.Weather)
	require.Equal(t, int32(1), store.saves.Load())
}

func TestPlanCancelledPersistsNothing(t *testing.T) {
	f := newFixture()
	store := &failingStore{err: errors.New("must not be called")}
	f.store = store
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.planner().Plan(ctx, romeRequest())

	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, store.saves.Load())
}

func TestPlanConcurrentRequestsGetDistinctIDs(t *testing.T) {
	f := newFixture()
	planner := f.planner()
	const n = 10
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := planner.Plan(context.Background(), romeRequest())
			if err == nil {
				ids[i] = rec.ID
			}
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		require.NotEmpty(t, id)
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestTranslateItineraryPreservesParagraphStructure(t *testing.T) {
	text := "# Trip\n\nDay 1\n\n\n\nDay 2\n\nTips"
	tr := &fakeTranslator{}

	got := TranslateItinerary(context.Background(), tr, text, "fr", discard)

	require.True(t, got.Success)
	in := strings.Split(text, "\n\n")
	out := strings.Split(got.TranslatedItinerary, "\n\n")
	require.Len(t, out, len(in))
	for i := range in {
		require.Equal(t, strings.ToUpper(in[i]), out[i])
	}
	require.Equal(t, int32(4), tr.calls.Load())
}

func TestTranslateItineraryKeepsSurroundingWhitespace(t *testing.T) {
	tr := &fakeTranslator{}

	got := TranslateItinerary(context.Background(), tr, "a\n\n\nb \n\n  c", "fr", discard)

	require.Equal(t, "A\n\n\nB \n\n  C", got.TranslatedItinerary)
	require.Equal(t, int32(3), tr.calls.Load())
}

func TestTranslateItineraryCountsUntranslated(t *testing.T) {
	tr := &fakeTranslator{failOn: "b"}

	got := TranslateItinerary(context.Background(), tr, "a\n\nb\n\nc", "de", discard)

	require.True(t, got.Success)
	require.True(t, got.Degraded)
	require.Equal(t, 1, got.Untranslated)
	require.Equal(t, "A\n\nb\n\nC", got.TranslatedItinerary)
}

func TestValidateNormalisesLanguage(t *testing.T) {
	req := romeRequest()
	req.Language = "es-MX"

	got, err := Validate(req)

	require.NoError(t, err)
	require.Equal(t, "es", got.Language)
}
