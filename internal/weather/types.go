package weather

// CurrentConditions is a single weather observation. Optional readings
// are pointers since the API returns JSON nulls for stations that do
// not report them. Field order is the published key order.
type CurrentConditions struct {
	Temperature   float64  `json:"temperature"`
	FeelsLike     *float64 `json:"feels_like"`
	Humidity      *int     `json:"humidity"`
	WindSpeed     *float64 `json:"wind_speed"`
	WindDirection *string  `json:"wind_direction"`
	UVIndex       *int     `json:"uv_index"`
	Condition     *string  `json:"condition"`
	IconCode      *int     `json:"icon_code"`
	Pressure      *float64 `json:"pressure"`
	Visibility    *float64 `json:"visibility"`
	ObservedAt    string   `json:"observed_at"`
}

// DayForecast is one calendar day of the daily forecast. The daypart
// fields split into day and night halves; the day half of the current
// day goes null in the afternoon, as does temp_max.
type DayForecast struct {
	DayOfWeek          string   `json:"day_of_week"`
	Date               string   `json:"date"`
	TempMax            *float64 `json:"temp_max"`
	TempMin            *float64 `json:"temp_min"`
	Narrative          string   `json:"narrative"`
	PrecipChanceDay    *int     `json:"precip_chance_day"`
	PrecipChanceNight  *int     `json:"precip_chance_night"`
	ConditionDay       *string  `json:"condition_day"`
	ConditionNight     *string  `json:"condition_night"`
	IconCodeDay        *int     `json:"icon_code_day"`
	IconCodeNight      *int     `json:"icon_code_night"`
	HumidityDay        *int     `json:"humidity_day"`
	HumidityNight      *int     `json:"humidity_night"`
	WindSpeedDay       *float64 `json:"wind_speed_day"`
	WindSpeedNight     *float64 `json:"wind_speed_night"`
	WindDirectionDay   *string  `json:"wind_direction_day"`
	WindDirectionNight *string  `json:"wind_direction_night"`
	Qpf                *float64 `json:"qpf"`
	UVIndexDay         *int     `json:"uv_index_day"`
}

// HourForecast is one hour of the hourly forecast, local time.
type HourForecast struct {
	TimeLocal   string   `json:"time_local"`
	Hour        int      `json:"hour"`
	Temperature *float64 `json:"temperature"`
	Condition   *string  `json:"condition"`
	IconCode    *int     `json:"icon_code"`
	Qpf         *float64 `json:"qpf"`
}

// WeatherData bundles everything one run fetches.
type WeatherData struct {
	Current     CurrentConditions
	Forecast    []DayForecast
	HourlyToday []HourForecast
}
