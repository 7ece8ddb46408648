package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable LoadFromEnv reads so tests only see
// what they set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "DRY_RUN",
		"WU_GEOCODE", "WU_API_KEY", "WU_LANGUAGE", "WU_UNITS", "WU_BASE_URL", "WU_HOURLY",
		"HTTP_TIMEOUT",
		"MQTT_HOST", "MQTT_PORT", "MQTT_USERNAME", "MQTT_PASSWORD",
		"MQTT_TOPIC_PREFIX", "MQTT_CLIENT_ID", "MQTT_RETAIN", "MQTT_TIMEOUT",
		"MQTT_HA_DISCOVERY", "MQTT_HA_DISCOVERY_PREFIX",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("WU_GEOCODE", "48.86,2.35")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.AppEnv != "dev" {
		t.Errorf("AppEnv = %q, want %q", cfg.AppEnv, "dev")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
	if cfg.DryRun {
		t.Error("DryRun = true, want false")
	}
	if cfg.Geocode.Lat != 48.86 || cfg.Geocode.Lon != 2.35 {
		t.Errorf("Geocode = %+v, want {48.86 2.35}", cfg.Geocode)
	}
	if cfg.APIKey != DefaultAPIKey {
		t.Errorf("APIKey = %q, want default", cfg.APIKey)
	}
	if cfg.Language != "fr-FR" {
		t.Errorf("Language = %q, want %q", cfg.Language, "fr-FR")
	}
	if cfg.Units != "m" {
		t.Errorf("Units = %q, want %q", cfg.Units, "m")
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if !cfg.FetchHourly {
		t.Error("FetchHourly = false, want true")
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, 10*time.Second)
	}
	if cfg.MQTTHost != "localhost" {
		t.Errorf("MQTTHost = %q, want %q", cfg.MQTTHost, "localhost")
	}
	if cfg.MQTTPort != 1883 {
		t.Errorf("MQTTPort = %d, want 1883", cfg.MQTTPort)
	}
	if cfg.MQTTTopicPrefix != "weather" {
		t.Errorf("MQTTTopicPrefix = %q, want %q", cfg.MQTTTopicPrefix, "weather")
	}
	if cfg.MQTTClientID != "" {
		t.Errorf("MQTTClientID = %q, want empty", cfg.MQTTClientID)
	}
	if !cfg.MQTTRetain {
		t.Error("MQTTRetain = false, want true")
	}
	if cfg.MQTTTimeout != 5*time.Second {
		t.Errorf("MQTTTimeout = %v, want %v", cfg.MQTTTimeout, 5*time.Second)
	}
	if !cfg.HADiscovery {
		t.Error("HADiscovery = false, want true")
	}
	if cfg.HADiscoveryPrefix != "homeassistant" {
		t.Errorf("HADiscoveryPrefix = %q, want %q", cfg.HADiscoveryPrefix, "homeassistant")
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WU_GEOCODE", "-33.87,151.21")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("WU_API_KEY", "deadbeef")
	t.Setenv("WU_LANGUAGE", "en-US")
	t.Setenv("WU_UNITS", "e")
	t.Setenv("WU_BASE_URL", "http://127.0.0.1:9999/v3/wx/")
	t.Setenv("WU_HOURLY", "false")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("MQTT_HOST", "broker.local")
	t.Setenv("MQTT_PORT", "8883")
	t.Setenv("MQTT_USERNAME", "bridge")
	t.Setenv("MQTT_PASSWORD", "s3cret")
	t.Setenv("MQTT_TOPIC_PREFIX", "home/weather")
	t.Setenv("MQTT_CLIENT_ID", "bridge-test")
	t.Setenv("MQTT_RETAIN", "false")
	t.Setenv("MQTT_TIMEOUT", "1s")
	t.Setenv("MQTT_HA_DISCOVERY", "false")
	t.Setenv("MQTT_HA_DISCOVERY_PREFIX", "ha")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.AppEnv != "prod" {
		t.Errorf("AppEnv = %q, want %q", cfg.AppEnv, "prod")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
	if !cfg.DryRun {
		t.Error("DryRun = false, want true")
	}
	if cfg.APIKey != "deadbeef" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "deadbeef")
	}
	if cfg.Language != "en-US" {
		t.Errorf("Language = %q, want %q", cfg.Language, "en-US")
	}
	if cfg.Units != "e" {
		t.Errorf("Units = %q, want %q", cfg.Units, "e")
	}
	if cfg.BaseURL != "http://127.0.0.1:9999/v3/wx" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.FetchHourly {
		t.Error("FetchHourly = true, want false")
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, 3*time.Second)
	}
	if cfg.MQTTHost != "broker.local" {
		t.Errorf("MQTTHost = %q, want %q", cfg.MQTTHost, "broker.local")
	}
	if cfg.MQTTPort != 8883 {
		t.Errorf("MQTTPort = %d, want 8883", cfg.MQTTPort)
	}
	if cfg.MQTTUsername != "bridge" {
		t.Errorf("MQTTUsername = %q, want %q", cfg.MQTTUsername, "bridge")
	}
	if cfg.MQTTPassword != "s3cret" {
		t.Errorf("MQTTPassword = %q, want %q", cfg.MQTTPassword, "s3cret")
	}
	if cfg.MQTTTopicPrefix != "home/weather" {
		t.Errorf("MQTTTopicPrefix = %q, want %q", cfg.MQTTTopicPrefix, "home/weather")
	}
	if cfg.MQTTClientID != "bridge-test" {
		t.Errorf("MQTTClientID = %q, want %q", cfg.MQTTClientID, "bridge-test")
	}
	if cfg.MQTTRetain {
		t.Error("MQTTRetain = true, want false")
	}
	if cfg.MQTTTimeout != time.Second {
		t.Errorf("MQTTTimeout = %v, want %v", cfg.MQTTTimeout, time.Second)
	}
	if cfg.HADiscovery {
		t.Error("HADiscovery = true, want false")
	}
	if cfg.HADiscoveryPrefix != "ha" {
		t.Errorf("HADiscoveryPrefix = %q, want %q", cfg.HADiscoveryPrefix, "ha")
	}
}

func TestLoadFromEnvErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{
			name:    "missing geocode",
			env:     map[string]string{},
			wantMsg: "WU_GEOCODE is required",
		},
		{
			name:    "geocode single value",
			env:     map[string]string{"WU_GEOCODE": "48.86"},
			wantMsg: "invalid WU_GEOCODE",
		},
		{
			name:    "geocode garbage latitude",
			env:     map[string]string{"WU_GEOCODE": "north,2.35"},
			wantMsg: "invalid latitude",
		},
		{
			name:    "geocode garbage longitude",
			env:     map[string]string{"WU_GEOCODE": "48.86,east"},
			wantMsg: "invalid longitude",
		},
		{
			name:    "latitude out of range",
			env:     map[string]string{"WU_GEOCODE": "91,0"},
			wantMsg: "latitude must be -90..90",
		},
		{
			name:    "longitude out of range",
			env:     map[string]string{"WU_GEOCODE": "0,-181"},
			wantMsg: "longitude must be -180..180",
		},
		{
			name:    "invalid app env",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "APP_ENV": "staging"},
			wantMsg: "invalid APP_ENV",
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "LOG_LEVEL": "verbose"},
			wantMsg: "invalid LOG_LEVEL",
		},
		{
			name:    "invalid dry run flag",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "DRY_RUN": "yep"},
			wantMsg: "invalid DRY_RUN",
		},
		{
			name:    "invalid units",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "WU_UNITS": "k"},
			wantMsg: "invalid WU_UNITS",
		},
		{
			name:    "invalid http timeout",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "HTTP_TIMEOUT": "soon"},
			wantMsg: "invalid HTTP_TIMEOUT",
		},
		{
			name:    "negative http timeout",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "HTTP_TIMEOUT": "-1s"},
			wantMsg: "HTTP_TIMEOUT must be positive",
		},
		{
			name:    "port not a number",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "MQTT_PORT": "default"},
			wantMsg: "invalid MQTT_PORT",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "MQTT_PORT": "70000"},
			wantMsg: "MQTT_PORT must be 1..65535",
		},
		{
			name:    "port zero",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "MQTT_PORT": "0"},
			wantMsg: "MQTT_PORT must be 1..65535",
		},
		{
			name:    "invalid retain flag",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "MQTT_RETAIN": "maybe"},
			wantMsg: "invalid MQTT_RETAIN",
		},
		{
			name:    "invalid mqtt timeout",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "MQTT_TIMEOUT": "fast"},
			wantMsg: "invalid MQTT_TIMEOUT",
		},
		{
			name:    "invalid hourly flag",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "WU_HOURLY": "2x"},
			wantMsg: "invalid WU_HOURLY",
		},
		{
			name:    "invalid discovery flag",
			env:     map[string]string{"WU_GEOCODE": "48.86,2.35", "MQTT_HA_DISCOVERY": "on please"},
			wantMsg: "invalid MQTT_HA_DISCOVERY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromEnv()
			if err == nil {
				t.Fatal("LoadFromEnv() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("LoadFromEnv() error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseGeocode(t *testing.T) {
	tests := []struct {
		in      string
		want    Geocode
		wantErr bool
	}{
		{in: "48.86,2.35", want: Geocode{Lat: 48.86, Lon: 2.35}},
		{in: " 48.86 , 2.35 ", want: Geocode{Lat: 48.86, Lon: 2.35}},
		{in: "-33.87,151.21", want: Geocode{Lat: -33.87, Lon: 151.21}},
		{in: "90,-180", want: Geocode{Lat: 90, Lon: -180}},
		{in: "0,0", want: Geocode{Lat: 0, Lon: 0}},
		{in: "48.86", wantErr: true},
		{in: "48.86,2.35,12", wantErr: true},
		{in: "", wantErr: true},
		{in: "abc,def", wantErr: true},
		{in: "90.5,0", wantErr: true},
		{in: "0,180.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGeocode(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseGeocode(%q) error = nil, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGeocode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseGeocode(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGeocodeString(t *testing.T) {
	tests := []struct {
		geocode Geocode
		want    string
	}{
		{Geocode{Lat: 48.86, Lon: 2.35}, "48.86,2.35"},
		{Geocode{Lat: -33.87, Lon: 151.21}, "-33.87,151.21"},
		{Geocode{Lat: 0, Lon: 0}, "0,0"},
		{Geocode{Lat: 48.123456, Lon: 2.654321}, "48.123456,2.654321"},
	}

	for _, tt := range tests {
		if got := tt.geocode.String(); got != tt.want {
			t.Errorf("Geocode%+v.String() = %q, want %q", tt.geocode, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "INFO", want: slog.LevelInfo},
		{in: " Debug ", want: slog.LevelDebug},
		{in: "trace", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseLogLevel(%q) error = nil, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLogLevel(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
