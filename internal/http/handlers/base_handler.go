// README: Base handler utilities (JSON helpers, provenance header, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"journeo/internal/modules/trip"
	"journeo/internal/service"
	"journeo/internal/types"
)

// SourceHeader tells pass-through callers whether the body is live or mock data.
const SourceHeader = "X-Data-Source"

const dateLayout = "2006-01-02"

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// isValidID accepts the UUIDs issued by the trip store.
func isValidID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeResult[T any](c *gin.Context, r types.Result[T]) {
	c.Header(SourceHeader, string(r.Source()))
	writeJSON(c, http.StatusOK, r.Value)
}

func writeBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(c, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(c, http.StatusBadRequest, "invalid json")
}

func writeTripError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var perr *service.PersistenceError
	switch {
	case errors.As(err, &verr):
		writeJSON(c, http.StatusUnprocessableEntity, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.As(err, &perr):
		writeJSON(c, http.StatusInternalServerError, map[string]any{
			"error": service.ErrPersistence.Error(),
			"plan":  newPlanResponse(perr.Plan),
		})
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, "trip not found")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "trip planning timed out")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// parseDate accepts YYYY-MM-DD or RFC 3339. An empty value yields the zero time.
func parseDate(field, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, &service.ValidationError{Field: field, Message: "must be YYYY-MM-DD or RFC 3339"}
	}
	return t, nil
}
