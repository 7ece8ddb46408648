package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/units"
)

// DefaultAPIKey is the public API key embedded in the Weather
// Underground frontend JS. It is not a secret.
const DefaultAPIKey = "e1f10a1e78da46f5b10a1e78da96f525"

// DefaultBaseURL is the Weather Underground / weather.com v3 API root.
const DefaultBaseURL = "https://api.weather.com/v3/wx"

// Geocode is the latitude,longitude pair identifying the forecast
// location.
type Geocode struct {
	Lat float64
	Lon float64
}

// ParseGeocode parses a "latitude,longitude" string and validates the
// coordinate ranges.
func ParseGeocode(s string) (Geocode, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Geocode{}, fmt.Errorf("geocode must be 'latitude,longitude' (e.g. '48.86,2.35'), got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Geocode{}, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Geocode{}, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	if lat < -90 || lat > 90 {
		return Geocode{}, fmt.Errorf("latitude must be -90..90, got %v", lat)
	}
	if lon < -180 || lon > 180 {
		return Geocode{}, fmt.Errorf("longitude must be -180..180, got %v", lon)
	}
	return Geocode{Lat: lat, Lon: lon}, nil
}

// String renders the geocode the way the API expects it as a query
// parameter.
func (g Geocode) String() string {
	return strconv.FormatFloat(g.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(g.Lon, 'f', -1, 64)
}

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	DryRun   bool

	Geocode     Geocode
	APIKey      string
	Language    string
	Units       units.System
	BaseURL     string
	FetchHourly bool
	HTTPTimeout time.Duration

	MQTTHost        string
	MQTTPort        int
	MQTTUsername    string
	MQTTPassword    string
	MQTTTopicPrefix string
	MQTTClientID    string
	MQTTRetain      bool
	MQTTTimeout     time.Duration

	HADiscovery       bool
	HADiscoveryPrefix string
}

// LoadFromEnv reads the full bridge configuration from environment
// variables, applying defaults and validating before any I/O happens.
// WU_GEOCODE is the only required variable.
func LoadFromEnv() (Config, error) {
	appEnv := getenvDefault("APP_ENV", "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	dryRun, err := getenvBool("DRY_RUN", false)
	if err != nil {
		return Config{}, err
	}

	geocodeStr := strings.TrimSpace(os.Getenv("WU_GEOCODE"))
	if geocodeStr == "" {
		return Config{}, fmt.Errorf("WU_GEOCODE is required (latitude,longitude, e.g. '48.86,2.35')")
	}
	geocode, err := ParseGeocode(geocodeStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid WU_GEOCODE: %w", err)
	}

	unitSystem, err := units.Parse(getenvDefault("WU_UNITS", "m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid WU_UNITS: %w", err)
	}

	fetchHourly, err := getenvBool("WU_HOURLY", true)
	if err != nil {
		return Config{}, err
	}

	httpTimeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	mqttPortStr := getenvDefault("MQTT_PORT", "1883")
	mqttPort, err := strconv.Atoi(mqttPortStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %q: %w", mqttPortStr, err)
	}
	if mqttPort < 1 || mqttPort > 65535 {
		return Config{}, fmt.Errorf("MQTT_PORT must be 1..65535, got %d", mqttPort)
	}

	mqttRetain, err := getenvBool("MQTT_RETAIN", true)
	if err != nil {
		return Config{}, err
	}

	mqttTimeout, err := getenvDuration("MQTT_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	haDiscovery, err := getenvBool("MQTT_HA_DISCOVERY", true)
	if err != nil {
		return Config{}, err
	}

	return Config{
		AppEnv:   appEnv,
		LogLevel: level,
		DryRun:   dryRun,

		Geocode:     geocode,
		APIKey:      getenvDefault("WU_API_KEY", DefaultAPIKey),
		Language:    getenvDefault("WU_LANGUAGE", "fr-FR"),
		Units:       unitSystem,
		BaseURL:     strings.TrimRight(getenvDefault("WU_BASE_URL", DefaultBaseURL), "/"),
		FetchHourly: fetchHourly,
		HTTPTimeout: httpTimeout,

		MQTTHost:        getenvDefault("MQTT_HOST", "localhost"),
		MQTTPort:        mqttPort,
		MQTTUsername:    strings.TrimSpace(os.Getenv("MQTT_USERNAME")),
		MQTTPassword:    os.Getenv("MQTT_PASSWORD"),
		MQTTTopicPrefix: getenvDefault("MQTT_TOPIC_PREFIX", "weather"),
		MQTTClientID:    strings.TrimSpace(os.Getenv("MQTT_CLIENT_ID")),
		MQTTRetain:      mqttRetain,
		MQTTTimeout:     mqttTimeout,

		HADiscovery:       haDiscovery,
		HADiscoveryPrefix: getenvDefault("MQTT_HA_DISCOVERY_PREFIX", "homeassistant"),
	}, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
