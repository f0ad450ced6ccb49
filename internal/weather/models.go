package weather

import (
	"time"
)

// Location is a geocoded place. Only the resolver produces it.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Conditions holds the normalized weather fields shared by current readings
// and forecast entries.
type Conditions struct {
	TemperatureC     float64 `json:"temperatureC"`
	Description      string  `json:"description"`
	PrecipitationMm  float64 `json:"precipitationMm"` // 0 when the provider omits rain
	WindSpeedMs      float64 `json:"windSpeedMs"`
	WindDirectionDeg float64 `json:"windDirectionDeg"`
	WindIcon         string  `json:"windIcon"` // see Compass.IconKey
	ConditionCode    int     `json:"conditionCode"`
	IconSlug         string  `json:"iconSlug"`
	IconKey          string  `json:"iconKey"`
	IconURL          string  `json:"iconUrl,omitempty"`
}

// WindDirection classifies the wind bearing.
func (c Conditions) WindDirection() Compass {
	return ClassifyWind(c.WindDirectionDeg)
}

// WeatherRecord is the current weather at a resolved location.
type WeatherRecord struct {
	Location Location `json:"location"`
	Conditions
	ObservedAt time.Time `json:"observedAt"`
}

// ForecastEntry is one slot of a daily or hourly forecast.
// Daily entries set Date, MinTempC and MaxTempC; hourly entries set Hour and
// TemperatureC.
type ForecastEntry struct {
	Conditions
	Date     time.Time `json:"date,omitzero"`
	Hour     time.Time `json:"hour,omitzero"`
	MinTempC float64   `json:"minTempC"`
	MaxTempC float64   `json:"maxTempC"`
}

// IsDaily reports whether the entry came from the daily forecast.
func (e ForecastEntry) IsDaily() bool {
	return !e.Date.IsZero()
}

// Report bundles everything fetched for one location query.
type Report struct {
	Location Location        `json:"location"`
	Current  WeatherRecord   `json:"current"`
	Daily    []ForecastEntry `json:"daily"`
	Hourly   []ForecastEntry `json:"hourly"`
}
