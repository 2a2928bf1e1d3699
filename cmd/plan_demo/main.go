// README: One-shot CLI that plans a trip with the configured providers and prints the record as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"journeo/internal/app"
	"journeo/internal/config"
	"journeo/internal/modules/trip"
)

const dateLayout = "2006-01-02"

type planFlags struct {
	source      string
	destination string
	start       string
	end         string
	budget      float64
	travelType  string
	language    string
	preferences map[string]string
	store       string
	verbose     bool
}

func newRootCmd(f *planFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan_demo",
		Short: "Plan a trip once and print the saved record",
		Example: `  plan_demo --from Paris --to Rome --start 2025-06-01 --end 2025-06-05 --budget 800 --lang es
  plan_demo --from Oslo --to Bergen --start 2025-07-10 --end 2025-07-12 --pref pace=slow --pref food=seafood`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := f.request(cmd.Flags().Changed("budget"))
			if err != nil {
				return err
			}
			return run(cmd.Context(), *f, req)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.source, "from", "", "departure city")
	fl.StringVar(&f.destination, "to", "", "destination city")
	fl.StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	fl.StringVar(&f.end, "end", "", "end date (YYYY-MM-DD)")
	fl.Float64Var(&f.budget, "budget", 0, "budget in USD; currency rates are fetched only when set")
	fl.StringVar(&f.travelType, "type", "", "travel type, e.g. leisure or business")
	fl.StringVar(&f.language, "lang", "en", "itinerary language")
	fl.StringToStringVar(&f.preferences, "pref", nil, "preference as key=value, repeatable")
	fl.StringVar(&f.store, "store", "", "override JOURNEO_STORE (memory|postgres|redis)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log provider fallbacks to stderr")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func (f planFlags) request(withBudget bool) (trip.Request, error) {
	start, err := time.Parse(dateLayout, f.start)
	if err != nil {
		return trip.Request{}, fmt.Errorf("--start: %w", err)
	}
	end, err := time.Parse(dateLayout, f.end)
	if err != nil {
		return trip.Request{}, fmt.Errorf("--end: %w", err)
	}
	req := trip.Request{
		Source:      f.source,
		Destination: f.destination,
		StartDate:   start,
		EndDate:     end,
		TravelType:  f.travelType,
		Language:    f.language,
	}
	if withBudget {
		b := f.budget
		req.Budget = &b
	}
	if len(f.preferences) > 0 {
		req.Preferences = make(map[string]any, len(f.preferences))
		for k, v := range f.preferences {
			req.Preferences[k] = v
		}
	}
	return req, nil
}

func run(ctx context.Context, f planFlags, req trip.Request) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if f.store != "" {
		cfg.Store = f.store
	}

	level := slog.LevelError
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.PlanTimeout)
	defer cancel()
	rec, err := a.Planner.Plan(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func main() {
	if err := newRootCmd(&planFlags{}).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
