package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves just enough of the trip API for the lifecycle and concurrency cases.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	deleted := map[string]bool{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/trips/plan", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"trip_id": uuid.NewString(), "sources": map[string]string{"weather": "degraded"}})
	})
	mux.HandleFunc("GET /api/trips/{id}", func(w http.ResponseWriter, r *http.Request) {
		if deleted[r.PathValue("id")] {
			w.WriteHeader(http.StatusNotFound)
		}
	})
	mux.HandleFunc("DELETE /api/trips/{id}", func(_ http.ResponseWriter, r *http.Request) {
		deleted[r.PathValue("id")] = true
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClassify(t *testing.T) {
	require.Equal(t, StatusPass, classify(200, time.Millisecond, []int{200}, nil).Status)
	require.Equal(t, StatusPending, classify(401, 0, []int{200}, []int{401}).Status)
	require.Equal(t, StatusFail, classify(500, 0, []int{200}, []int{401}).Status)
}

func TestTally(t *testing.T) {
	pass, fail, pending, skipped := tally([]Result{
		{Status: StatusPass}, {Status: StatusPass}, {Status: StatusFail}, {Status: StatusSkip},
	})
	require.Equal(t, []int{2, 1, 0, 1}, []int{pass, fail, pending, skipped})
}

func TestTripLifecycleAgainstFake(t *testing.T) {
	srv := fakeAPI(t)
	r := NewRunner(Config{BaseURL: srv.URL, Concurrency: 1})

	res := tripLifecycle(context.Background(), r, srv.URL)

	require.Equal(t, StatusPass, res.Status, res.Note)
}

func TestConcurrentPlansAgainstFake(t *testing.T) {
	srv := fakeAPI(t)
	r := NewRunner(Config{BaseURL: srv.URL, Concurrency: 4})

	res := concurrentPlans(context.Background(), r, srv.URL+"/api/trips/plan")

	require.Equal(t, StatusPass, res.Status, res.Note)
	require.Equal(t, "distinct=4", res.Note)
}
