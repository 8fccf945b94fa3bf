// Package gateway delivers submissions to the human operator through either
// the host messaging bridge or a pre-filled conversation link.
package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/minnmarket/storefront-backend/internal/submission"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
	"github.com/minnmarket/storefront-backend/pkg/logger"
	"github.com/minnmarket/storefront-backend/pkg/metrics"
)

// Outcome describes what a single submit did. Nothing about it is retained.
type Outcome struct {
	ID         uuid.UUID
	Kind       submission.Kind
	Channel    ChannelKind
	Notice     string
	NavigateTo string
	// Fallback is set when the bridge failed and the link channel delivered.
	Fallback bool
}

// Options wires a Gateway.
type Options struct {
	Links LinkBuilder
	// FallbackOnBridgeError sends a failed bridge dispatch through the link
	// channel instead of returning the error.
	FallbackOnBridgeError bool
	Metrics               *metrics.SubmissionMetrics
	Logger                *logger.Logger
}

// Gateway is stateless between calls: no queue, no receipts, no idempotency.
type Gateway struct {
	links      LinkBuilder
	fallback   bool
	metrics    *metrics.SubmissionMetrics
	logg       *logger.Logger
	generateID func() uuid.UUID
}

func New(opts Options) (*Gateway, error) {
	if opts.Links.Operator() == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "gateway requires an operator link builder")
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Gateway{
		links:      opts.Links,
		fallback:   opts.FallbackOnBridgeError,
		metrics:    opts.Metrics,
		logg:       logg,
		generateID: uuid.New,
	}, nil
}

// SelectChannel probes the host once: bridge if present, link otherwise.
func (g *Gateway) SelectChannel(host Host) Channel {
	if bridge, ok := host.Bridge(); ok && bridge != nil {
		return NewBridgeChannel(bridge, g.logg)
	}
	return NewLinkFallbackChannel(g.links, host)
}

// Submit gates, serializes and dispatches one payload.
func (g *Gateway) Submit(ctx context.Context, host Host, payload submission.Payload) (Outcome, error) {
	if host == nil {
		return Outcome{}, pkgerrors.New(pkgerrors.CodeInternal, "submission host is required")
	}
	kind := payload.Kind().String()

	if err := payload.Ready(); err != nil {
		g.metrics.IncRefused(kind)
		return Outcome{}, err
	}

	text, err := payload.Serialize()
	if err != nil {
		return Outcome{}, err
	}

	id := g.generateID()
	ctx = g.logg.WithSubmission(ctx, id.String(), kind)

	channel := g.SelectChannel(host)
	outcome, err := channel.Dispatch(ctx, payload, text)
	if err != nil {
		g.metrics.IncFailed(kind, channel.Kind().String())
		if channel.Kind() != ChannelBridge || !g.fallback {
			g.logg.Error(ctx, "submission.dispatch_failed", err)
			return Outcome{}, err
		}

		g.logg.Warn(g.logg.WithField(ctx, "error", err.Error()), "submission.bridge_failed_fallback_to_link")
		g.metrics.IncFallback(kind)

		channel = NewLinkFallbackChannel(g.links, host)
		outcome, err = channel.Dispatch(ctx, payload, text)
		if err != nil {
			g.metrics.IncFailed(kind, channel.Kind().String())
			g.logg.Error(ctx, "submission.dispatch_failed", err)
			return Outcome{}, err
		}
		outcome.Fallback = true
	}

	outcome.ID = id
	outcome.Kind = payload.Kind()
	g.metrics.IncDispatched(kind, outcome.Channel.String())
	g.logg.Info(g.logg.WithFields(ctx, map[string]any{
		"channel":  outcome.Channel.String(),
		"fallback": outcome.Fallback,
	}), "submission.dispatched")
	return outcome, nil
}
