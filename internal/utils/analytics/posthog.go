// Package analytics wraps the PostHog client so callers never have to
// care whether an API key was configured. An uninitialized client is a
// safe no-op.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

const posthogEndpoint = "https://eu.i.posthog.com"

type PosthogClient struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializePosthogClient builds the wrapper. An empty API key yields a
// no-op client so local and test environments send nothing.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClient {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, analytics disabled")
		return &PosthogClient{}
	}
	p := &PosthogClient{logger: logger}
	p.client, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: posthogEndpoint})
	logger.Info("PostHog client initialized")
	return p
}

func (p *PosthogClient) IsInitialized() bool {
	return p.client != nil
}

// Enqueue submits a capture event for the given user. No-op when the
// client is not initialized.
func (p *PosthogClient) Enqueue(distinctID string, event string, properties map[string]any) {
	if p.client == nil {
		return
	}
	if p.logger != nil {
		p.logger.Debug("Enqueueing analytics event",
			slog.String("distinct_id", distinctID),
			slog.String("event", event),
		)
	}
	p.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
}

func (p *PosthogClient) Close() {
	if p.client == nil {
		return
	}
	p.client.Close()
}
