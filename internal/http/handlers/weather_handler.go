// README: Weather pass-through handlers.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"journeo/internal/modules/weather"
	"journeo/internal/types"
)

type WeatherProvider interface {
	Current(ctx context.Context, city, countryCode string) types.Result[weather.Current]
	Forecast(ctx context.Context, city, countryCode string) types.Result[weather.Forecast]
}

type WeatherHandler struct {
	weather WeatherProvider
}

func NewWeatherHandler(svc WeatherProvider) *WeatherHandler {
	return &WeatherHandler{weather: svc}
}

type weatherReq struct {
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
}

// Current handles GET /api/weather/:city.
func (h *WeatherHandler) Current(c *gin.Context) {
	city := strings.TrimSpace(c.Param("city"))
	if city == "" {
		writeError(c, http.StatusBadRequest, "missing city")
		return
	}
	writeResult(c, h.weather.Current(c.Request.Context(), city, c.Query("country_code")))
}

// Forecast handles GET /api/weather/:city/forecast.
func (h *WeatherHandler) Forecast(c *gin.Context) {
	city := strings.TrimSpace(c.Param("city"))
	if city == "" {
		writeError(c, http.StatusBadRequest, "missing city")
		return
	}
	writeResult(c, h.weather.Forecast(c.Request.Context(), city, c.Query("country_code")))
}

// Both handles POST /api/weather/ and returns current conditions plus forecast.
func (h *WeatherHandler) Both(c *gin.Context) {
	var req weatherReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	req.City = strings.TrimSpace(req.City)
	if req.City == "" {
		writeError(c, http.StatusBadRequest, "missing city")
		return
	}
	ctx := c.Request.Context()
	cur := h.weather.Current(ctx, req.City, req.CountryCode)
	fc := h.weather.Forecast(ctx, req.City, req.CountryCode)

	source := types.SourceLive
	if cur.Degraded || fc.Degraded {
		source = types.SourceDegraded
	}
	c.Header(SourceHeader, string(source))
	writeJSON(c, http.StatusOK, map[string]any{"current": cur.Value, "forecast": fc.Value})
}
