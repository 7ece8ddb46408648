// Package mqtt publishes bridge payloads to the broker over a single
// short-lived connection.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/config"
)

// ErrPublish covers broker connect and publish failures.
var ErrPublish = errors.New("mqtt publish failed")

type Publisher struct {
	client    mqtt.Client
	clientID  string
	timeout   time.Duration
	logger    *slog.Logger
	mu        sync.RWMutex
	connected bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewPublisher(cfg config.Config, logger *slog.Logger) *Publisher {
	clientID := cfg.MQTTClientID
	if clientID == "" {
		// A fresh ID per run keeps an overlapping cron invocation
		// from taking over this session on the broker.
		clientID = "wu-mqtt-bridge-" + uuid.NewString()[:8]
	}

	p := &Publisher{
		clientID: clientID,
		timeout:  cfg.MQTTTimeout,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTTHost, cfg.MQTTPort))
	opts.SetClientID(clientID)
	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}

	// Session settings
	opts.SetCleanSession(true)

	// One shot per run: fail fast instead of retrying into the next
	// scheduled invocation.
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)
	opts.SetConnectTimeout(cfg.MQTTTimeout)

	// Keepalive / timeouts
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	// Callbacks keep internal state accurate
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		p.setConnected(true)
		logger.Info("mqtt connected", "broker", cfg.MQTTHost, "port", cfg.MQTTPort, "client_id", clientID)
	})

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		p.setConnected(false)
		logger.Warn("mqtt connection lost", "error", err)
	})

	p.client = mqtt.NewClient(opts)
	return p
}

// ClientID reports the broker client identifier in use, generated or
// pinned via configuration.
func (p *Publisher) ClientID() string {
	return p.clientID
}

// Connect dials the broker once and waits for the session, respecting
// ctx and Disconnect().
func (p *Publisher) Connect(ctx context.Context) error {
	// Fail fast if already stopped.
	select {
	case <-p.stopCh:
		return fmt.Errorf("%w: publisher stopped", ErrPublish)
	default:
	}

	// Fast path.
	if p.IsConnected() {
		return nil
	}

	token := p.client.Connect()

	// Wait in a ctx/stop-aware loop.
	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("%w: connect: %w", ErrPublish, err)
			}
			// OnConnectHandler sets connected=true.
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: connect: %w", ErrPublish, ctx.Err())
		case <-p.stopCh:
			return fmt.Errorf("%w: publisher stopped", ErrPublish)
		default:
		}
	}
}

// Publish sends one message at QoS 1 and waits for the broker ack.
func (p *Publisher) Publish(topic string, payload []byte, retain bool) error {
	if !p.IsConnected() {
		return fmt.Errorf("%w: not connected", ErrPublish)
	}

	token := p.client.Publish(topic, 1, retain, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("%w: timeout publishing to %s", ErrPublish, topic)
	}
	if err := token.Error(); err != nil {
		p.logger.Error("publish failed", "topic", topic, "error", err)
		return fmt.Errorf("%w: publish to %s: %w", ErrPublish, topic, err)
	}

	p.logger.Debug("published", "topic", topic, "bytes", len(payload), "retain", retain)
	return nil
}

// IsConnected returns whether the publisher is connected.
func (p *Publisher) IsConnected() bool {
	p.mu.RLock()
	connected := p.connected
	p.mu.RUnlock()
	return connected && p.client.IsConnected()
}

// Disconnect closes the broker connection. Idempotent and safe to
// call multiple times; after Disconnect, Connect() fails.
func (p *Publisher) Disconnect() {
	// Signal shutdown once (unblocks any Connect loops).
	p.stopOnce.Do(func() { close(p.stopCh) })

	// Paho Disconnect quiesces in-flight work for the given ms and is
	// safe when already disconnected.
	if p.client != nil {
		p.client.Disconnect(250)
	}

	p.setConnected(false)
	p.logger.Info("mqtt disconnected")
}

func (p *Publisher) setConnected(v bool) {
	p.mu.Lock()
	p.connected = v
	p.mu.Unlock()
}
