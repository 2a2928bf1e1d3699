// README: Bench cases: environment, trip lifecycle, provider pass-throughs, concurrency and load.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"journeo/internal/infra"
)

const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusPending = "PENDING"
	StatusSkip    = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func planBody(dest string) map[string]any {
	return map[string]any{
		"source":      "Paris",
		"destination": dest,
		"start_date":  "2025-06-01",
		"end_date":    "2025-06-03",
		"budget":      800,
		"language":    "es",
	}
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "DB reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "dsn not set"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "Redis reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis addr not set"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "goose up with embedded migrations",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: StatusSkip, Note: "apply-migration=false"}
				}
				if r.cfg.DSN == "" {
					return Result{Status: StatusFail, Note: "dsn not set"}
				}
				if err := infra.Migrate(ctx, r.cfg.DSN); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Migration: trips table exists",
			Focus: "schema present",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "dsn not set"}
				}
				var exists bool
				err := r.db.QueryRow(ctx,
					"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
					"trips",
				).Scan(&exists)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if !exists {
					return Result{Status: StatusFail, Note: "missing table: trips"}
				}
				return Result{Status: StatusPass}
			},
		},

		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),
		httpCaseMethod("API: banner", http.MethodGet, base+"/", nil, []int{200}, nil),

		// Trips
		{
			Name:  "Trips: plan, get, delete round trip",
			Focus: "persisted record readable then gone",
			Run: func(ctx context.Context, r *Runner) Result {
				return tripLifecycle(ctx, r, base)
			},
		},
		httpCase("Trips: plan missing fields -> 422", base+"/api/trips/plan", map[string]any{"source": "Paris"}, []int{422}, nil),
		httpCase("Trips: plan end before start -> 422", base+"/api/trips/plan", map[string]any{
			"source": "Paris", "destination": "Rome", "start_date": "2025-06-05", "end_date": "2025-06-01",
		}, []int{422}, nil),
		httpCaseMethod("Trips: list", http.MethodGet, base+"/api/trips/", nil, []int{200}, []int{401}),
		httpCaseMethod("Trips: get unknown -> 404", http.MethodGet, base+"/api/trips/00000000-0000-4000-8000-000000000000", nil, []int{404}, []int{401}),
		httpCaseMethod("Trips: delete unknown -> 404", http.MethodDelete, base+"/api/trips/00000000-0000-4000-8000-000000000000", nil, []int{404}, []int{401}),

		// Providers
		httpCaseMethod("Weather: current", http.MethodGet, base+"/api/weather/Rome", nil, []int{200}, nil),
		httpCaseMethod("Weather: forecast", http.MethodGet, base+"/api/weather/Rome/forecast", nil, []int{200}, nil),
		httpCaseMethod("Currency: convert", http.MethodGet, base+"/api/currency/convert?from_currency=USD&to_currency=EUR&amount=10", nil, []int{200}, nil),
		httpCaseMethod("Currency: rates", http.MethodGet, base+"/api/currency/rates", nil, []int{200}, nil),
		httpCaseMethod("Currency: historical bad date -> 400", http.MethodGet, base+"/api/currency/historical/not-a-date", nil, []int{400}, nil),
		httpCase("Translate: text", base+"/api/translate/", map[string]any{"text": "Welcome", "target_language": "fr"}, []int{200}, nil),
		httpCaseMethod("Translate: languages", http.MethodGet, base+"/api/translate/languages", nil, []int{200}, nil),
		httpCaseMethod("Routes: driving", http.MethodGet, base+"/api/routes/?start=Rome&end=Florence", nil, []int{200}, nil),
		httpCaseMethod("Routes: multimodal", http.MethodGet, base+"/api/routes/multimodal?start=Rome&end=Florence", nil, []int{200}, nil),
		httpCaseMethod("Accommodations: by city", http.MethodGet, base+"/api/accommodations/Rome?limit=5", nil, []int{200}, nil),
		httpCaseMethod("Accommodations: by coordinates", http.MethodGet, base+"/api/accommodations/coordinates/41.9/12.5", nil, []int{200}, nil),

		manualCase("Error: store down -> 500 with plan", "stop the DB or Redis and plan a trip"),

		// Concurrency
		{
			Name:  "Concurrency: parallel plans get distinct ids",
			Focus: "store never collides on ids",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentPlans(ctx, r, base+"/api/trips/plan")
			},
		},

		// Load
		{
			Name:  "Perf: weather throughput",
			Focus: "adapter path under load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/api/weather/Rome", nil)
			},
		},
	}
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, _, err := r.do(ctx, method, url, body)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			return classify(status, time.Since(start), okStatuses, pendingStatuses)
		},
	}
}

func classify(status int, latency time.Duration, okStatuses, pendingStatuses []int) Result {
	note := fmt.Sprintf("status=%d", status)
	switch {
	case contains(okStatuses, status):
		return Result{Status: StatusPass, Latency: latency, Note: note}
	case contains(pendingStatuses, status):
		return Result{Status: StatusPending, Latency: latency, Note: note}
	}
	return Result{Status: StatusFail, Latency: latency, Note: note}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	return resp.StatusCode, b, err
}

func manualCase(name, note string) TestCase {
	return TestCase{
		Name:  name,
		Focus: "Manual",
		Run: func(context.Context, *Runner) Result {
			return Result{Status: StatusSkip, Note: note}
		},
	}
}

func tripLifecycle(ctx context.Context, r *Runner, base string) Result {
	start := time.Now()
	status, body, err := r.do(ctx, http.MethodPost, base+"/api/trips/plan", planBody("Rome"))
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if status == http.StatusUnauthorized {
		return Result{Status: StatusPending, Note: "auth enabled"}
	}
	if status != http.StatusOK {
		return Result{Status: StatusFail, Note: fmt.Sprintf("plan status=%d", status)}
	}
	var plan struct {
		TripID  string            `json:"trip_id"`
		Sources map[string]string `json:"sources"`
	}
	if err := json.Unmarshal(body, &plan); err != nil || plan.TripID == "" {
		return Result{Status: StatusFail, Note: "plan response without trip_id"}
	}
	latency := time.Since(start)

	if status, _, err = r.do(ctx, http.MethodGet, base+"/api/trips/"+plan.TripID, nil); err != nil || status != http.StatusOK {
		return Result{Status: StatusFail, Note: fmt.Sprintf("get status=%d err=%v", status, err)}
	}
	if status, _, err = r.do(ctx, http.MethodDelete, base+"/api/trips/"+plan.TripID, nil); err != nil || status != http.StatusOK {
		return Result{Status: StatusFail, Note: fmt.Sprintf("delete status=%d err=%v", status, err)}
	}
	if status, _, err = r.do(ctx, http.MethodGet, base+"/api/trips/"+plan.TripID, nil); err != nil || status != http.StatusNotFound {
		return Result{Status: StatusFail, Note: fmt.Sprintf("get after delete status=%d err=%v", status, err)}
	}
	return Result{Status: StatusPass, Latency: latency, Note: fmt.Sprintf("sources=%v", plan.Sources)}
}

func concurrentPlans(ctx context.Context, r *Runner, url string) Result {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ids     = map[string]int{}
		failed  int
		pending int
	)
	for range r.cfg.Concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, body, err := r.do(ctx, http.MethodPost, url, planBody("Lisbon"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				failed++
			case status == http.StatusUnauthorized:
				pending++
			case status != http.StatusOK:
				failed++
			default:
				var plan struct {
					TripID string `json:"trip_id"`
				}
				if json.Unmarshal(body, &plan) != nil || plan.TripID == "" {
					failed++
					return
				}
				ids[plan.TripID]++
			}
		}()
	}
	wg.Wait()

	if pending == r.cfg.Concurrency {
		return Result{Status: StatusPending, Note: "auth enabled"}
	}
	for id, n := range ids {
		if n > 1 {
			return Result{Status: StatusFail, Note: "duplicate id " + id}
		}
	}
	if failed > 0 {
		return Result{Status: StatusFail, Note: fmt.Sprintf("failed=%d ok=%d", failed, len(ids))}
	}
	return Result{Status: StatusPass, Note: fmt.Sprintf("distinct=%d", len(ids))}
}

func perfLoad(ctx context.Context, r *Runner, method, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for range r.cfg.Concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				if _, _, err := r.do(ctx, method, url, payload); err != nil {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}
