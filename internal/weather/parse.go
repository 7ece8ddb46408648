package weather

import (
	"encoding/json"
	"fmt"
	"time"
)

// wuTimeLayout matches the API's validTimeLocal format, e.g.
// "2026-02-03T14:35:59+0100".
const wuTimeLayout = "2006-01-02T15:04:05-0700"

const isoDateLayout = "2006-01-02"

// forecastDays is the published forecast length. The API often returns
// six calendar days (today plus five); everything past the fifth is
// dropped.
const forecastDays = 5

type currentResponse struct {
	Temperature           *float64 `json:"temperature"`
	TemperatureFeelsLike  *float64 `json:"temperatureFeelsLike"`
	RelativeHumidity      *int     `json:"relativeHumidity"`
	WindSpeed             *float64 `json:"windSpeed"`
	WindDirectionCardinal *string  `json:"windDirectionCardinal"`
	UVIndex               *int     `json:"uvIndex"`
	WxPhraseLong          *string  `json:"wxPhraseLong"`
	IconCode              *int     `json:"iconCode"`
	PressureAltimeter     *float64 `json:"pressureAltimeter"`
	Visibility            *float64 `json:"visibility"`
	ValidTimeLocal        string   `json:"validTimeLocal"`
}

type forecastResponse struct {
	DayOfWeek                 []string   `json:"dayOfWeek"`
	ValidTimeLocal            []string   `json:"validTimeLocal"`
	CalendarDayTemperatureMax []*float64 `json:"calendarDayTemperatureMax"`
	CalendarDayTemperatureMin []*float64 `json:"calendarDayTemperatureMin"`
	Narrative                 []*string  `json:"narrative"`
	Qpf                       []*float64 `json:"qpf"`
	Daypart                   []daypart  `json:"daypart"`
}

// daypart carries the half-day forecast arrays. Index i*2 is the day
// half of calendar day i, i*2+1 the night half.
type daypart struct {
	PrecipChance          []*int     `json:"precipChance"`
	WxPhraseLong          []*string  `json:"wxPhraseLong"`
	IconCode              []*int     `json:"iconCode"`
	RelativeHumidity      []*int     `json:"relativeHumidity"`
	WindSpeed             []*float64 `json:"windSpeed"`
	WindDirectionCardinal []*string  `json:"windDirectionCardinal"`
	UVIndex               []*int     `json:"uvIndex"`
}

type hourlyResponse struct {
	ValidTimeLocal []string   `json:"validTimeLocal"`
	Temperature    []*float64 `json:"temperature"`
	WxPhraseLong   []*string  `json:"wxPhraseLong"`
	IconCode       []*int     `json:"iconCode"`
	Qpf            []*float64 `json:"qpf"`
}

func parseCurrent(body []byte) (CurrentConditions, error) {
	var resp currentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return CurrentConditions{}, fmt.Errorf("%w: decode current conditions: %v", ErrData, err)
	}
	if resp.Temperature == nil {
		return CurrentConditions{}, fmt.Errorf("%w: current conditions missing temperature", ErrData)
	}

	return CurrentConditions{
		Temperature:   *resp.Temperature,
		FeelsLike:     resp.TemperatureFeelsLike,
		Humidity:      resp.RelativeHumidity,
		WindSpeed:     resp.WindSpeed,
		WindDirection: resp.WindDirectionCardinal,
		UVIndex:       resp.UVIndex,
		Condition:     resp.WxPhraseLong,
		IconCode:      resp.IconCode,
		Pressure:      resp.PressureAltimeter,
		Visibility:    resp.Visibility,
		ObservedAt:    resp.ValidTimeLocal,
	}, nil
}

func parseForecast(body []byte) ([]DayForecast, error) {
	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode forecast: %v", ErrData, err)
	}

	n := len(resp.DayOfWeek)
	if n < forecastDays {
		return nil, fmt.Errorf("%w: forecast has %d days, want at least %d", ErrData, n, forecastDays)
	}
	if len(resp.ValidTimeLocal) < forecastDays {
		return nil, fmt.Errorf("%w: forecast has %d dates for %d days", ErrData, len(resp.ValidTimeLocal), n)
	}

	var dp daypart
	if len(resp.Daypart) > 0 {
		dp = resp.Daypart[0]
	}

	days := make([]DayForecast, 0, forecastDays)
	for i := 0; i < forecastDays; i++ {
		date, err := localDate(resp.ValidTimeLocal[i])
		if err != nil {
			return nil, err
		}

		narrative := ""
		if p := at(resp.Narrative, i); p != nil {
			narrative = *p
		}

		dayIdx, nightIdx := i*2, i*2+1
		days = append(days, DayForecast{
			DayOfWeek:          resp.DayOfWeek[i],
			Date:               date,
			TempMax:            at(resp.CalendarDayTemperatureMax, i),
			TempMin:            at(resp.CalendarDayTemperatureMin, i),
			Narrative:          narrative,
			PrecipChanceDay:    at(dp.PrecipChance, dayIdx),
			PrecipChanceNight:  at(dp.PrecipChance, nightIdx),
			ConditionDay:       at(dp.WxPhraseLong, dayIdx),
			ConditionNight:     at(dp.WxPhraseLong, nightIdx),
			IconCodeDay:        at(dp.IconCode, dayIdx),
			IconCodeNight:      at(dp.IconCode, nightIdx),
			HumidityDay:        at(dp.RelativeHumidity, dayIdx),
			HumidityNight:      at(dp.RelativeHumidity, nightIdx),
			WindSpeedDay:       at(dp.WindSpeed, dayIdx),
			WindSpeedNight:     at(dp.WindSpeed, nightIdx),
			WindDirectionDay:   at(dp.WindDirectionCardinal, dayIdx),
			WindDirectionNight: at(dp.WindDirectionCardinal, nightIdx),
			Qpf:                at(resp.Qpf, i),
			UVIndexDay:         at(dp.UVIndex, dayIdx),
		})
	}

	// ISO dates compare chronologically as strings.
	for i := 1; i < len(days); i++ {
		if days[i].Date <= days[i-1].Date {
			return nil, fmt.Errorf("%w: forecast dates out of order: %s then %s", ErrData, days[i-1].Date, days[i].Date)
		}
	}

	return days, nil
}

func parseHourly(body []byte) ([]HourForecast, error) {
	var resp hourlyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode hourly forecast: %v", ErrData, err)
	}
	if len(resp.ValidTimeLocal) == 0 {
		return nil, fmt.Errorf("%w: hourly forecast is empty", ErrData)
	}

	today, err := localDate(resp.ValidTimeLocal[0])
	if err != nil {
		return nil, err
	}

	var hours []HourForecast
	for i, ts := range resp.ValidTimeLocal {
		t, err := time.Parse(wuTimeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: bad validTimeLocal %q: %v", ErrData, ts, err)
		}
		// Entries are chronological, so the first entry past
		// midnight ends today's slice.
		if t.Format(isoDateLayout) != today {
			break
		}
		hours = append(hours, HourForecast{
			TimeLocal:   ts,
			Hour:        t.Hour(),
			Temperature: at(resp.Temperature, i),
			Condition:   at(resp.WxPhraseLong, i),
			IconCode:    at(resp.IconCode, i),
			Qpf:         at(resp.Qpf, i),
		})
	}

	return hours, nil
}

func localDate(validTime string) (string, error) {
	t, err := time.Parse(wuTimeLayout, validTime)
	if err != nil {
		return "", fmt.Errorf("%w: bad validTimeLocal %q: %v", ErrData, validTime, err)
	}
	return t.Format(isoDateLayout), nil
}

// at is bounds-safe parallel-array indexing; out of range reads nil.
func at[T any](xs []*T, i int) *T {
	if i < 0 || i >= len(xs) {
		return nil
	}
	return xs[i]
}
