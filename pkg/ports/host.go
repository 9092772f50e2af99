package ports

import (
	"context"

	"github.com/aretw0/clicktree/pkg/domain"
)

// Host receives the reports the component sends back to its embedding application.
type Host interface {
	// Ready signals that the component can accept render payloads. Sent once.
	Ready(ctx context.Context) error

	// FrameHeight reports the total pixel height after each completed render pass.
	FrameHeight(ctx context.Context, height int) error

	// Select delivers the chosen leaf and the current collapse state.
	Select(ctx context.Context, sel domain.Selection) error
}

// NopHost discards every report.
type NopHost struct{}

func (NopHost) Ready(context.Context) error                    { return nil }
func (NopHost) FrameHeight(context.Context, int) error         { return nil }
func (NopHost) Select(context.Context, domain.Selection) error { return nil }

// MessageHost adapts a function receiving outbound envelopes to the Host interface.
type MessageHost func(ctx context.Context, msg domain.Message) error

func (f MessageHost) Ready(ctx context.Context) error {
	return f(ctx, domain.Message{Type: domain.MessageReady})
}

func (f MessageHost) FrameHeight(ctx context.Context, height int) error {
	return f(ctx, domain.Message{Type: domain.MessageFrameHeight, Height: &height})
}

func (f MessageHost) Select(ctx context.Context, sel domain.Selection) error {
	return f(ctx, domain.Message{Type: domain.MessageValue, Value: &sel})
}
