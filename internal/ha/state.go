package ha

import (
	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/weather"
)

// WeatherState is the weather-entity state payload. Field order is the
// published key order; HA reads the document structurally, so the keys
// must stay exactly as they are.
type WeatherState struct {
	Temperature float64         `json:"temperature"`
	Humidity    *int            `json:"humidity"`
	WindSpeed   *float64        `json:"wind_speed"`
	WindBearing *string         `json:"wind_bearing"`
	Pressure    *float64        `json:"pressure"`
	Visibility  *float64        `json:"visibility"`
	Condition   string          `json:"condition"`
	Forecast    []ForecastEntry `json:"forecast"`
}

// ForecastEntry is one day inside the state's forecast attribute,
// using the attribute names HA's weather platform expects. Day-half
// values are used; for the current day these go null in the afternoon.
type ForecastEntry struct {
	Datetime                 string   `json:"datetime"`
	Temperature              *float64 `json:"temperature"`
	TempLow                  *float64 `json:"templow"`
	Condition                string   `json:"condition"`
	PrecipitationProbability *int     `json:"precipitation_probability"`
	Precipitation            *float64 `json:"precipitation"`
	WindSpeed                *float64 `json:"wind_speed"`
	WindBearing              *string  `json:"wind_bearing"`
	Humidity                 *int     `json:"humidity"`
}

// BuildState projects fetched weather data onto the HA weather entity.
func BuildState(data weather.WeatherData) WeatherState {
	state := WeatherState{
		Temperature: data.Current.Temperature,
		Humidity:    data.Current.Humidity,
		WindSpeed:   data.Current.WindSpeed,
		WindBearing: data.Current.WindDirection,
		Pressure:    data.Current.Pressure,
		Visibility:  data.Current.Visibility,
		Condition:   Condition(data.Current.IconCode),
		Forecast:    make([]ForecastEntry, 0, len(data.Forecast)),
	}

	for _, day := range data.Forecast {
		state.Forecast = append(state.Forecast, ForecastEntry{
			Datetime:                 day.Date,
			Temperature:              day.TempMax,
			TempLow:                  day.TempMin,
			Condition:                Condition(day.IconCodeDay),
			PrecipitationProbability: day.PrecipChanceDay,
			Precipitation:            day.Qpf,
			WindSpeed:                day.WindSpeedDay,
			WindBearing:              day.WindDirectionDay,
			Humidity:                 day.HumidityDay,
		})
	}

	return state
}
