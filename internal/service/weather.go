package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/passforge/passforge-go/internal/model"
	"github.com/passforge/passforge-go/internal/weather"
)

const iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"

var (
	ErrLocationRequired      = errors.New("please enter a city name")
	ErrCoordinatesIncomplete = errors.New("both lat and lon are required for a coordinate lookup")
	ErrLocationNotFound      = errors.New("city not found")
	ErrWeatherUnavailable    = errors.New("failed to fetch weather data, please try again later")
)

// WeatherFetcher is the upstream weather source.
type WeatherFetcher interface {
	FetchByCity(ctx context.Context, city string) (*weather.Response, error)
	FetchByCoords(ctx context.Context, lat, lon float64) (*weather.Response, error)
}

// WeatherService resolves a query to a location and reports its current weather.
type WeatherService struct {
	client      WeatherFetcher
	defaultCity string
}

// NewWeatherService creates a new WeatherService. An empty defaultCity makes a location mandatory.
func NewWeatherService(client WeatherFetcher, defaultCity string) *WeatherService {
	return &WeatherService{client: client, defaultCity: strings.TrimSpace(defaultCity)}
}

// Lookup returns the current weather for the queried city or coordinates. A query with
// neither uses the default city.
func (s *WeatherService) Lookup(ctx context.Context, q model.WeatherQuery) (model.WeatherReport, error) {
	var (
		resp *weather.Response
		err  error
	)

	city := strings.TrimSpace(q.City)
	switch {
	case city != "":
		resp, err = s.client.FetchByCity(ctx, city)
	case q.Lat != "" || q.Lon != "":
		lat, lon, perr := parseCoords(q.Lat, q.Lon)
		if perr != nil {
			return model.WeatherReport{}, perr
		}
		resp, err = s.client.FetchByCoords(ctx, lat, lon)
	case q.CitySet:
		// A blank search never falls back to the default city.
		return model.WeatherReport{}, ErrLocationRequired
	case s.defaultCity != "":
		resp, err = s.client.FetchByCity(ctx, s.defaultCity)
	default:
		return model.WeatherReport{}, ErrLocationRequired
	}
	if err != nil {
		return model.WeatherReport{}, upstreamError(err)
	}

	return toReport(resp), nil
}

func parseCoords(latStr, lonStr string) (float64, float64, error) {
	if latStr == "" || lonStr == "" {
		return 0, 0, ErrCoordinatesIncomplete
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid lat %q", ErrCoordinatesIncomplete, latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid lon %q", ErrCoordinatesIncomplete, lonStr)
	}
	return lat, lon, nil
}

func upstreamError(err error) error {
	var apiErr *weather.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return ErrLocationNotFound
	}
	slog.Warn("weather lookup failed", "error", err)
	return fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
}

func toReport(resp *weather.Response) model.WeatherReport {
	report := model.WeatherReport{
		Location:    resp.Name,
		Temperature: int(math.Round(resp.Main.Temp)),
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
	}
	if resp.Sys.Country != "" {
		report.Location = resp.Name + ", " + resp.Sys.Country
	}
	if len(resp.Weather) > 0 {
		report.Description = resp.Weather[0].Description
		if icon := resp.Weather[0].Icon; icon != "" {
			report.IconURL = fmt.Sprintf(iconURLFormat, icon)
		}
	}
	return report
}
