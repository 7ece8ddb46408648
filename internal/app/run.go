// Package app runs one bridge cycle: fetch weather data, assemble the
// MQTT messages and either publish them or print them for a dry run.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/config"
	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/mqtt"
	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/weather"
)

// publisher is the part of mqtt.Publisher a run needs.
type publisher interface {
	Connect(ctx context.Context) error
	Publish(topic string, payload []byte, retain bool) error
	Disconnect()
}

func Run(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := weather.NewClient(cfg, httpClient, slog.Default())

	data, err := client.FetchAll(ctx)
	if err != nil {
		return err
	}

	msgs, err := buildMessages(cfg, data)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		printDryRun(stdout, msgs)
		slog.Info("dry run complete", "messages", len(msgs))
		return nil
	}

	pub := mqtt.NewPublisher(cfg, slog.Default())
	return publish(ctx, pub, msgs)
}

// publish connects, pushes every message in order and disconnects.
// The first failed publish aborts the batch; Disconnect always runs.
func publish(ctx context.Context, pub publisher, msgs []Message) error {
	defer pub.Disconnect()

	if err := pub.Connect(ctx); err != nil {
		return err
	}

	for _, m := range msgs {
		if err := pub.Publish(m.Topic, m.Payload, m.Retain); err != nil {
			return err
		}
	}

	slog.Info("published weather data", "messages", len(msgs))
	return nil
}

// Stage names the phase an error from Run came from, for log context.
func Stage(err error) string {
	switch {
	case errors.Is(err, weather.ErrData):
		return "parse"
	case errors.Is(err, weather.ErrFetch):
		return "fetch"
	case errors.Is(err, mqtt.ErrPublish):
		return "publish"
	default:
		return "run"
	}
}
