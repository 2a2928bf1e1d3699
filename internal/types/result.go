// README: Provider result envelope shared by every adapter (live vs degraded data).
package types

// Source records where a piece of plan data came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceDegraded Source = "degraded"
	SourceSkipped  Source = "skipped"
)

// Result is what every provider adapter returns instead of an error.
// Degraded is true when Value is a substituted mock rather than live data;
// Reason then carries the failure that caused the substitution.
type Result[T any] struct {
	Value    T
	Degraded bool
	Reason   string
}

// Live wraps data obtained from the remote provider.
func Live[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fallback wraps mock data substituted because err prevented a live fetch.
func Fallback[T any](v T, err error) Result[T] {
	r := Result[T]{Value: v, Degraded: true}
	if err != nil {
		r.Reason = err.Error()
	}
	return r
}

// Source maps the result onto the plan-level provenance flag.
func (r Result[T]) Source() Source {
	if r.Degraded {
		return SourceDegraded
	}
	return SourceLive
}
