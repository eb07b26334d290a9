package model

// WeatherQuery selects a location either by city name or by coordinates.
// Coordinates are kept as strings so they can be validated before parsing.
type WeatherQuery struct {
	City string `json:"city" validate:"omitempty,max=100"`
	Lat  string `json:"lat" validate:"omitempty,latitude"`
	Lon  string `json:"lon" validate:"omitempty,longitude"`

	// CitySet is true when the caller sent a city parameter, even a blank one.
	CitySet bool `json:"-"`
}

// WeatherReport is the display-ready current weather for a location.
type WeatherReport struct {
	Location    string  `json:"location"`
	Temperature int     `json:"temperature"` // rounded °C
	FeelsLike   float64 `json:"feels_like"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	IconURL     string  `json:"icon_url,omitempty"`
}
