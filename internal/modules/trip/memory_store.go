package trip

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore keeps records in process memory. Records are copied on the way in
// and out, so callers never share maps or pointers with the stored copy.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]Record
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]Record)}
}

func (s *MemoryStore) Save(ctx context.Context, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	rec = stamp(rec)
	s.mu.Lock()
	s.byID[rec.ID] = cloneRecord(rec)
	s.order = append(s.order, rec.ID)
	s.mu.Unlock()
	return rec, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneRecord(s.byID[id]))
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneRecord(rec Record) Record {
	rec.Budget = clonePtr(rec.Budget)
	rec.Preferences = cloneMap(rec.Preferences)
	rec.TranslatedItinerary = clonePtr(rec.TranslatedItinerary)
	rec.Weather = clonePtr(rec.Weather)
	if rec.Forecast != nil {
		f := *rec.Forecast
		f.Forecast = slices.Clone(f.Forecast)
		rec.Forecast = &f
	}
	if rec.CurrencyInfo != nil {
		c := *rec.CurrencyInfo
		c.Rates = maps.Clone(c.Rates)
		c.Timestamp = clonePtr(c.Timestamp)
		rec.CurrencyInfo = &c
	}
	rec.UpdatedAt = clonePtr(rec.UpdatedAt)
	return rec
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}
