// README: Trip record store contract shared by the memory, Postgres and Redis backends.
package trip

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("trip not found")

// Store persists trip records. Implementations are safe for concurrent use.
type Store interface {
	// Save assigns ID and CreatedAt and returns the stored record.
	Save(ctx context.Context, rec Record) (Record, error)
	// List returns all records in insertion order.
	List(ctx context.Context) ([]Record, error)
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (Record, error)
	// Delete returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
}

func stamp(rec Record) Record {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	rec.UpdatedAt = nil
	return rec
}

// validID rejects malformed ids before they reach a backend.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
