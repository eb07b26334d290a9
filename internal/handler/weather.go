package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/passforge/passforge-go/internal/middleware"
	"github.com/passforge/passforge-go/internal/model"
	"github.com/passforge/passforge-go/internal/service"
)

// WeatherHandler handles HTTP requests for weather lookups.
type WeatherHandler struct {
	service *service.WeatherService
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(svc *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{service: svc}
}

// HandleWeather handles GET /api/v1/weather?city=... or ?lat=...&lon=... requests.
func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := model.WeatherQuery{
		City:    q.Get("city"),
		Lat:     q.Get("lat"),
		Lon:     q.Get("lon"),
		CitySet: q.Has("city"),
	}
	if msg := validationMessage(query); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse(msg))
		return
	}

	report, err := h.service.Lookup(r.Context(), query)
	if err != nil {
		clientID, _ := middleware.ClientIDFromContext(r.Context())
		switch {
		case errors.Is(err, service.ErrLocationRequired), errors.Is(err, service.ErrCoordinatesIncomplete):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrLocationNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrWeatherUnavailable):
			slog.Warn("weather upstream unavailable", "client_id", clientID, "error", err)
			writeJSON(w, http.StatusBadGateway, errorResponse(service.ErrWeatherUnavailable.Error()))
		default:
			slog.Error("weather lookup failed", "client_id", clientID, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, report)
}
