// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"journeo/internal/http/handlers"
	"journeo/internal/http/middleware"
	"journeo/internal/infra"
	"journeo/internal/modules/trip"
)

const apiVersion = "1.0.0"

type RouterDeps struct {
	Planner     handlers.TripPlanner
	Trips       trip.Store
	Weather     handlers.WeatherProvider
	Currency    handlers.CurrencyProvider
	Translation handlers.TranslationProvider
	Routes      handlers.RouteProvider
	Places      handlers.PlacesProvider

	// Verifier guards /api/trips when set.
	Verifier     infra.TokenVerifier
	CORSOrigins  []string
	MaxBodyBytes int64
	PlanTimeout  time.Duration
	Logger       *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.MaxBodySize(deps.MaxBodyBytes),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Journeo API", "version": apiVersion})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Journeo API is running"})
	})

	api := r.Group("/api")

	trips := api.Group("/trips")
	if deps.Verifier != nil {
		trips.Use(middleware.Auth(deps.Verifier))
	}
	tripHandler := handlers.NewTripHandler(deps.Planner, deps.Trips, deps.PlanTimeout)
	trips.POST("/plan", tripHandler.Plan)
	trips.GET("/", tripHandler.List)
	trips.GET("/:id", tripHandler.Get)
	trips.DELETE("/:id", tripHandler.Delete)

	weatherHandler := handlers.NewWeatherHandler(deps.Weather)
	api.GET("/weather/:city", weatherHandler.Current)
	api.GET("/weather/:city/forecast", weatherHandler.Forecast)
	api.POST("/weather/", weatherHandler.Both)

	currencyHandler := handlers.NewCurrencyHandler(deps.Currency)
	api.GET("/currency/convert", currencyHandler.Convert)
	api.POST("/currency/convert", currencyHandler.ConvertJSON)
	api.GET("/currency/rates", currencyHandler.Rates)
	api.GET("/currency/historical/:date", currencyHandler.Historical)
	api.GET("/currency/currencies", currencyHandler.Currencies)

	translateHandler := handlers.NewTranslateHandler(deps.Translation, logger)
	api.POST("/translate/", translateHandler.Translate)
	api.POST("/translate/itinerary", translateHandler.Itinerary)
	api.GET("/translate/languages", translateHandler.Languages)
	api.POST("/translate/detect", translateHandler.Detect)

	routeHandler := handlers.NewRouteHandler(deps.Routes)
	api.GET("/routes/", routeHandler.Get)
	api.POST("/routes/", routeHandler.Post)
	api.GET("/routes/multimodal", routeHandler.Multimodal)

	accommodationHandler := handlers.NewAccommodationHandler(deps.Places)
	api.GET("/accommodations/:city", accommodationHandler.ByCity)
	api.GET("/accommodations/coordinates/:lat/:lon", accommodationHandler.ByCoordinates)

	return middleware.NewCORSHandler(deps.CORSOrigins)(r)
}
