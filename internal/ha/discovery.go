package ha

import (
	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/config"
	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/units"
)

const (
	deviceID   = "wu_mqtt_bridge"
	deviceName = "WU MQTT Bridge"
)

// DeviceInfo is the HA device registry block shared by every entity
// this bridge announces, so they group under one device.
type DeviceInfo struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Model        string   `json:"model"`
	Manufacturer string   `json:"manufacturer"`
}

// WeatherConfig is the MQTT discovery payload for the weather entity.
// The unit fields are stamped from the configured unit system so the
// declared units always match the payloads on the state topic.
type WeatherConfig struct {
	Name                  string     `json:"name"`
	UniqueID              string     `json:"unique_id"`
	ObjectID              string     `json:"object_id"`
	StateTopic            string     `json:"state_topic"`
	TemperatureUnit       string     `json:"temperature_unit"`
	WindSpeedUnit         string     `json:"wind_speed_unit"`
	PressureUnit          string     `json:"pressure_unit"`
	VisibilityUnit        string     `json:"visibility_unit"`
	PrecipitationUnit     string     `json:"precipitation_unit"`
	TemperatureTemplate   string     `json:"temperature_template"`
	HumidityTemplate      string     `json:"humidity_template"`
	WindSpeedTemplate     string     `json:"wind_speed_template"`
	WindBearingTemplate   string     `json:"wind_bearing_template"`
	PressureTemplate      string     `json:"pressure_template"`
	VisibilityTemplate    string     `json:"visibility_template"`
	ConditionTemplate     string     `json:"condition_template"`
	ForecastDailyTopic    string     `json:"forecast_daily_topic"`
	ForecastDailyTemplate string     `json:"forecast_daily_template"`
	Device                DeviceInfo `json:"device"`
}

// SensorConfig is the MQTT discovery payload for one sensor entity
// reading a single field off the current-conditions topic. Field is
// the payload key the sensor reads and names its discovery topic.
type SensorConfig struct {
	Field             string     `json:"-"`
	Name              string     `json:"name"`
	UniqueID          string     `json:"unique_id"`
	ObjectID          string     `json:"object_id"`
	StateTopic        string     `json:"state_topic"`
	ValueTemplate     string     `json:"value_template"`
	DeviceClass       string     `json:"device_class,omitempty"`
	UnitOfMeasurement string     `json:"unit_of_measurement,omitempty"`
	StateClass        string     `json:"state_class,omitempty"`
	Device            DeviceInfo `json:"device"`
}

// sensorField describes one current-conditions field announced as its
// own sensor entity.
type sensorField struct {
	key         string
	name        string
	deviceClass string
	unit        func(units.System) string
}

var sensorFields = []sensorField{
	{key: "temperature", name: "Temperature", deviceClass: "temperature", unit: units.System.Temperature},
	{key: "feels_like", name: "Feels like", deviceClass: "temperature", unit: units.System.Temperature},
	{key: "humidity", name: "Humidity", deviceClass: "humidity", unit: func(units.System) string { return "%" }},
	{key: "wind_speed", name: "Wind speed", deviceClass: "wind_speed", unit: units.System.WindSpeed},
	{key: "uv_index", name: "UV index"},
	{key: "pressure", name: "Pressure", deviceClass: "pressure", unit: units.System.Pressure},
	{key: "visibility", name: "Visibility", unit: units.System.Visibility},
}

// BuildWeatherConfig builds the weather-entity discovery payload.
func BuildWeatherConfig(cfg config.Config) WeatherConfig {
	stateTopic := cfg.MQTTTopicPrefix + "/ha_state"
	return WeatherConfig{
		Name:                  "Weather Underground",
		UniqueID:              "wu_mqtt_bridge_weather",
		ObjectID:              deviceID,
		StateTopic:            stateTopic,
		TemperatureUnit:       cfg.Units.Temperature(),
		WindSpeedUnit:         cfg.Units.WindSpeed(),
		PressureUnit:          cfg.Units.Pressure(),
		VisibilityUnit:        cfg.Units.Visibility(),
		PrecipitationUnit:     cfg.Units.Precipitation(),
		TemperatureTemplate:   "{{ value_json.temperature }}",
		HumidityTemplate:      "{{ value_json.humidity }}",
		WindSpeedTemplate:     "{{ value_json.wind_speed }}",
		WindBearingTemplate:   "{{ value_json.wind_bearing }}",
		PressureTemplate:      "{{ value_json.pressure }}",
		VisibilityTemplate:    "{{ value_json.visibility }}",
		ConditionTemplate:     "{{ value_json.condition }}",
		ForecastDailyTopic:    stateTopic,
		ForecastDailyTemplate: "{{ value_json.forecast | tojson }}",
		Device:                device(),
	}
}

// BuildSensorConfigs builds one discovery payload per announced
// current-conditions field, in a fixed order.
func BuildSensorConfigs(cfg config.Config) []SensorConfig {
	stateTopic := cfg.MQTTTopicPrefix + "/current"
	configs := make([]SensorConfig, 0, len(sensorFields))
	for _, f := range sensorFields {
		sc := SensorConfig{
			Field:         f.key,
			Name:          f.name,
			UniqueID:      deviceID + "_" + f.key,
			ObjectID:      deviceID + "_" + f.key,
			StateTopic:    stateTopic,
			ValueTemplate: "{{ value_json." + f.key + " }}",
			DeviceClass:   f.deviceClass,
			StateClass:    "measurement",
			Device:        device(),
		}
		if f.unit != nil {
			sc.UnitOfMeasurement = f.unit(cfg.Units)
		}
		configs = append(configs, sc)
	}
	return configs
}

// WeatherConfigTopic is the discovery topic announcing the weather
// entity under the given discovery prefix.
func WeatherConfigTopic(prefix string) string {
	return prefix + "/weather/" + deviceID + "/config"
}

// SensorConfigTopic is the discovery topic announcing the sensor
// entity for one current-conditions field.
func SensorConfigTopic(prefix, field string) string {
	return prefix + "/sensor/" + deviceID + "/" + field + "/config"
}

func device() DeviceInfo {
	return DeviceInfo{
		Identifiers:  []string{deviceID},
		Name:         deviceName,
		Model:        "wu-mqtt-bridge",
		Manufacturer: "wu-mqtt-bridge",
	}
}
