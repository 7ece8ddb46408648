package app

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/config"
	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/ha"
	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/weather"
)

// Message is one MQTT message the bridge wants on the broker.
type Message struct {
	Topic   string
	Payload []byte
	Retain  bool
}

// buildMessages assembles every message a run publishes, in publish
// order: discovery configs first (when enabled), then the weather
// payloads, then per-hour topics for the rest of today.
func buildMessages(cfg config.Config, data weather.WeatherData) ([]Message, error) {
	var msgs []Message
	var firstErr error

	add := func(topic string, v any, retain bool) {
		if firstErr != nil {
			return
		}
		payload, err := json.Marshal(v)
		if err != nil {
			firstErr = fmt.Errorf("encode %s payload: %w", topic, err)
			return
		}
		msgs = append(msgs, Message{Topic: topic, Payload: payload, Retain: retain})
	}

	if cfg.HADiscovery {
		// Discovery configs are retained regardless of MQTT_RETAIN so
		// entities survive a Home Assistant restart between runs.
		add(ha.WeatherConfigTopic(cfg.HADiscoveryPrefix), ha.BuildWeatherConfig(cfg), true)
		for _, sensor := range ha.BuildSensorConfigs(cfg) {
			add(ha.SensorConfigTopic(cfg.HADiscoveryPrefix, sensor.Field), sensor, true)
		}
	}

	add(cfg.MQTTTopicPrefix+"/current", data.Current, cfg.MQTTRetain)
	add(cfg.MQTTTopicPrefix+"/forecast", data.Forecast, cfg.MQTTRetain)
	add(cfg.MQTTTopicPrefix+"/ha_state", ha.BuildState(data), cfg.MQTTRetain)

	for _, hour := range data.HourlyToday {
		base := cfg.MQTTTopicPrefix + "/hourly/" + strconv.Itoa(hour.Hour)
		if hour.Temperature != nil {
			add(base+"/temperature", *hour.Temperature, cfg.MQTTRetain)
		}
		add(base+"/condition", ha.Condition(hour.IconCode), cfg.MQTTRetain)
		if hour.Qpf != nil {
			add(base+"/precipitation", *hour.Qpf, cfg.MQTTRetain)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return msgs, nil
}
