package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists records in the trips table (see migrations/).
type PostgresStore struct {
	db db
}

func NewPostgresStore(db db) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectColumns = `
	id, source, destination, start_date, end_date, budget, travel_type, preferences, language,
	itinerary, translated_itinerary, weather, forecast, currency_info, sources, success,
	created_at, updated_at`

func (s *PostgresStore) Save(ctx context.Context, rec Record) (Record, error) {
	rec = stamp(rec)

	enc, err := encodeJSON(rec)
	if err != nil {
		return Record{}, fmt.Errorf("trip.PostgresStore.Save: %w", err)
	}

	const q = `
		INSERT INTO trips (
			id, source, destination, start_date, end_date, budget, travel_type, preferences, language,
			itinerary, translated_itinerary, weather, forecast, currency_info, sources, success, created_at
		) VALUES (
			@id, @source, @destination, @start_date, @end_date, @budget, @travel_type, @preferences, @language,
			@itinerary, @translated_itinerary, @weather, @forecast, @currency_info, @sources, @success, @created_at
		)`

	args := pgx.NamedArgs{
		"id":                   rec.ID,
		"source":               rec.Source,
		"destination":          rec.Destination,
		"start_date":           rec.StartDate,
		"end_date":             rec.EndDate,
		"budget":               rec.Budget,
		"travel_type":          rec.TravelType,
		"preferences":          enc.preferences,
		"language":             rec.Language,
		"itinerary":            rec.Itinerary,
		"translated_itinerary": rec.TranslatedItinerary,
		"weather":              enc.weather,
		"forecast":             enc.forecast,
		"currency_info":        enc.currency,
		"sources":              enc.sources,
		"success":              rec.Success,
		"created_at":           rec.CreatedAt,
	}
	if _, err := s.db.Exec(ctx, q, args); err != nil {
		return Record{}, fmt.Errorf("trip.PostgresStore.Save: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.Query(ctx, `SELECT `+selectColumns+` FROM trips ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("trip.PostgresStore.List: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("trip.PostgresStore.List: scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trip.PostgresStore.List: rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Record, error) {
	if !validID(id) {
		return Record{}, ErrNotFound
	}
	row := s.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM trips WHERE id = @id`, pgx.NamedArgs{"id": id})
	rec, err := scanRecord(row)
	if err != nil {
		return Record{}, fmt.Errorf("trip.PostgresStore.Get: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("trip.PostgresStore.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trip.PostgresStore.Delete: %w", ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

type jsonColumns struct {
	preferences, weather, forecast, currency, sources []byte
}

// encodeJSON marshals the jsonb columns; nil values stay nil so they land as NULL.
func encodeJSON(rec Record) (jsonColumns, error) {
	var (
		c   jsonColumns
		err error
	)
	if rec.Preferences != nil {
		if c.preferences, err = json.Marshal(rec.Preferences); err != nil {
			return c, err
		}
	}
	if rec.Weather != nil {
		if c.weather, err = json.Marshal(rec.Weather); err != nil {
			return c, err
		}
	}
	if rec.Forecast != nil {
		if c.forecast, err = json.Marshal(rec.Forecast); err != nil {
			return c, err
		}
	}
	if rec.CurrencyInfo != nil {
		if c.currency, err = json.Marshal(rec.CurrencyInfo); err != nil {
			return c, err
		}
	}
	c.sources, err = json.Marshal(rec.Sources)
	return c, err
}

func scanRecord(s scanner) (Record, error) {
	var (
		rec Record
		c   jsonColumns
	)
	err := s.Scan(
		&rec.ID, &rec.Source, &rec.Destination, &rec.StartDate, &rec.EndDate, &rec.Budget,
		&rec.TravelType, &c.preferences, &rec.Language,
		&rec.Itinerary, &rec.TranslatedItinerary, &c.weather, &c.forecast, &c.currency, &c.sources, &rec.Success,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if err := decodeJSON(c, &rec); err != nil {
		return Record{}, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

func decodeJSON(c jsonColumns, rec *Record) error {
	if len(c.preferences) > 0 {
		if err := json.Unmarshal(c.preferences, &rec.Preferences); err != nil {
			return fmt.Errorf("decode preferences: %w", err)
		}
	}
	if len(c.weather) > 0 {
		if err := json.Unmarshal(c.weather, &rec.Weather); err != nil {
			return fmt.Errorf("decode weather: %w", err)
		}
	}
	if len(c.forecast) > 0 {
		if err := json.Unmarshal(c.forecast, &rec.Forecast); err != nil {
			return fmt.Errorf("decode forecast: %w", err)
		}
	}
	if len(c.currency) > 0 {
		if err := json.Unmarshal(c.currency, &rec.CurrencyInfo); err != nil {
			return fmt.Errorf("decode currency_info: %w", err)
		}
	}
	if len(c.sources) > 0 {
		if err := json.Unmarshal(c.sources, &rec.Sources); err != nil {
			return fmt.Errorf("decode sources: %w", err)
		}
	}
	return nil
}
