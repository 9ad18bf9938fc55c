package telemetry

import (
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/posthog/posthog-go"
)

// Client is the interface for telemetry clients.
type Client interface {
	// Track sends an event asynchronously. No-op when telemetry is off.
	Track(event string, properties Properties)

	// Close flushes pending events.
	Close() error
}

// Properties is a type alias for event properties.
type Properties = map[string]any

// enqueuer is the part of the PostHog client we use; tests swap it out.
type enqueuer interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// PostHogClient sends events to PostHog.
type PostHogClient struct {
	mu      sync.RWMutex
	client  enqueuer
	state   *Config
	version string
	closed  bool
}

// ClientConfig holds configuration for initializing the telemetry client.
type ClientConfig struct {
	// APIKey is the PostHog project API key. Empty means no telemetry.
	APIKey string

	// Endpoint overrides the PostHog host (self-hosted instances).
	Endpoint string

	// Version is reported with every event.
	Version string

	// State is the user's choice loaded from telemetry.json.
	State *Config

	// Allowed is the config-file kill switch (telemetry.enabled).
	Allowed bool
}

// New returns a PostHog client when telemetry is allowed, consented to and
// configured with an API key, and a NoopClient otherwise.
func New(cfg ClientConfig) (Client, error) {
	if !cfg.Allowed || cfg.APIKey == "" || cfg.State == nil || !cfg.State.IsEnabled() {
		return NewNoopClient(), nil
	}

	phConfig := posthog.Config{
		// CLI invocations are short and send only a handful of events.
		BatchSize: 10,
		Interval:  1 * time.Second,
		Logger:    quietPostHogLogger{},
	}
	if cfg.Endpoint != "" {
		phConfig.Endpoint = cfg.Endpoint
	}

	client, err := posthog.NewWithConfig(cfg.APIKey, phConfig)
	if err != nil {
		return nil, err
	}
	return newPostHogClient(client, cfg.State, cfg.Version), nil
}

func newPostHogClient(enq enqueuer, state *Config, version string) *PostHogClient {
	return &PostHogClient{
		client:  enq,
		state:   state,
		version: version,
	}
}

// Track implements Client.
func (c *PostHogClient) Track(event string, properties Properties) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed || c.state == nil || !c.state.IsEnabled() {
		return
	}

	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	props.Set("os", runtime.GOOS)
	props.Set("arch", runtime.GOARCH)
	props.Set("app_version", c.version)
	// Anonymous events only; never create person profiles.
	props.Set("$process_person_profile", false)

	_ = c.client.Enqueue(posthog.Capture{
		DistinctId: c.state.AnonymousID,
		Event:      event,
		Properties: props,
	})
}

// Close flushes the queue. Later Track calls are dropped.
func (c *PostHogClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

// NoopClient is a telemetry client that does nothing.
type NoopClient struct{}

// Track is a no-op.
func (NoopClient) Track(string, Properties) {}

// Close is a no-op.
func (NoopClient) Close() error { return nil }

// NewNoopClient returns a client that does nothing.
func NewNoopClient() NoopClient {
	return NoopClient{}
}

// quietPostHogLogger keeps PostHog transport warnings out of CLI output.
type quietPostHogLogger struct{}

func (quietPostHogLogger) Debugf(string, ...interface{}) {}
func (quietPostHogLogger) Logf(string, ...interface{})   {}
func (quietPostHogLogger) Warnf(string, ...interface{})  {}
func (quietPostHogLogger) Errorf(string, ...interface{}) {}
