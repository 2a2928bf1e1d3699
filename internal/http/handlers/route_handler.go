// README: Route and accommodation pass-through handlers backed by Google Maps.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"journeo/internal/maps"
	"journeo/internal/types"
)

const (
	defaultPlacesLimit  = 10
	maxPlacesLimit      = 50
	defaultPlacesRadius = 5000.0
)

type RouteProvider interface {
	Route(ctx context.Context, start, end string, mode maps.Mode) types.Result[maps.Route]
	Multimodal(ctx context.Context, start, end string) maps.MultimodalRoute
}

type PlacesProvider interface {
	ByCity(ctx context.Context, city string, limit int) types.Result[maps.CityAccommodations]
	ByCoordinates(ctx context.Context, lat, lon, radius float64, limit int) types.Result[maps.NearbyAccommodations]
}

type RouteHandler struct {
	routes RouteProvider
}

func NewRouteHandler(svc RouteProvider) *RouteHandler {
	return &RouteHandler{routes: svc}
}

type routeReq struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Mode  string `json:"mode"`
}

func (h *RouteHandler) route(c *gin.Context, req routeReq) {
	req.Start, req.End = strings.TrimSpace(req.Start), strings.TrimSpace(req.End)
	if req.Start == "" || req.End == "" {
		writeError(c, http.StatusBadRequest, "missing start or end")
		return
	}
	mode, ok := maps.ParseMode(req.Mode)
	if !ok {
		writeError(c, http.StatusBadRequest, "mode must be driving, walking, cycling or transit")
		return
	}
	writeResult(c, h.routes.Route(c.Request.Context(), req.Start, req.End, mode))
}

// Get handles GET /api/routes/.
func (h *RouteHandler) Get(c *gin.Context) {
	h.route(c, routeReq{Start: c.Query("start"), End: c.Query("end"), Mode: c.Query("mode")})
}

// Post handles POST /api/routes/.
func (h *RouteHandler) Post(c *gin.Context) {
	var req routeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	h.route(c, req)
}

// Multimodal handles GET /api/routes/multimodal.
func (h *RouteHandler) Multimodal(c *gin.Context) {
	start, end := strings.TrimSpace(c.Query("start")), strings.TrimSpace(c.Query("end"))
	if start == "" || end == "" {
		writeError(c, http.StatusBadRequest, "missing start or end")
		return
	}
	writeJSON(c, http.StatusOK, h.routes.Multimodal(c.Request.Context(), start, end))
}

type AccommodationHandler struct {
	places PlacesProvider
}

func NewAccommodationHandler(svc PlacesProvider) *AccommodationHandler {
	return &AccommodationHandler{places: svc}
}

// ByCity handles GET /api/accommodations/:city.
func (h *AccommodationHandler) ByCity(c *gin.Context) {
	city := strings.TrimSpace(c.Param("city"))
	if city == "" {
		writeError(c, http.StatusBadRequest, "missing city")
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	writeResult(c, h.places.ByCity(c.Request.Context(), city, limit))
}

// ByCoordinates handles GET /api/accommodations/coordinates/:lat/:lon.
func (h *AccommodationHandler) ByCoordinates(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		writeError(c, http.StatusBadRequest, "invalid lat")
		return
	}
	lon, err := strconv.ParseFloat(c.Param("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		writeError(c, http.StatusBadRequest, "invalid lon")
		return
	}
	radius := defaultPlacesRadius
	if v := c.Query("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			writeError(c, http.StatusBadRequest, "invalid radius")
			return
		}
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	writeResult(c, h.places.ByCoordinates(c.Request.Context(), lat, lon, radius, limit))
}

func queryLimit(c *gin.Context) (int, bool) {
	v := c.Query("limit")
	if v == "" {
		return defaultPlacesLimit, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxPlacesLimit {
		writeError(c, http.StatusBadRequest, "limit must be between 1 and 50")
		return 0, false
	}
	return n, true
}
