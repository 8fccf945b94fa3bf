package gateway

import (
	"context"

	"github.com/minnmarket/storefront-backend/internal/submission"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
	"github.com/minnmarket/storefront-backend/pkg/logger"
)

// Bridge is the host messaging API that delivers a payload to the operator
// without leaving the app.
type Bridge interface {
	SendSerializedMessage(ctx context.Context, text string) error
	// ShowTransientNotice is best effort; callers ignore its error.
	ShowTransientNotice(ctx context.Context, text string) error
}

// Navigator opens a URL in the shopper's environment. It is always available.
type Navigator interface {
	NavigateTo(ctx context.Context, url string) error
}

// Host is the environment a submission is made from. Bridge reports false
// when the host has no messaging bridge; that is the normal fallback case.
type Host interface {
	Navigator
	Bridge() (Bridge, bool)
}

type ChannelKind string

const (
	ChannelBridge ChannelKind = "bridge"
	ChannelLink   ChannelKind = "link"
)

func (k ChannelKind) String() string {
	return string(k)
}

// Channel delivers one serialized payload.
type Channel interface {
	Kind() ChannelKind
	Dispatch(ctx context.Context, payload submission.Payload, text string) (Outcome, error)
}

// BridgeChannel hands the payload to the host bridge.
type BridgeChannel struct {
	bridge Bridge
	logg   *logger.Logger
}

func NewBridgeChannel(bridge Bridge, logg *logger.Logger) BridgeChannel {
	if logg == nil {
		logg = logger.Nop()
	}
	return BridgeChannel{bridge: bridge, logg: logg}
}

func (BridgeChannel) Kind() ChannelKind {
	return ChannelBridge
}

func (c BridgeChannel) Dispatch(ctx context.Context, payload submission.Payload, text string) (Outcome, error) {
	if c.bridge == nil {
		return Outcome{}, pkgerrors.New(pkgerrors.CodeDependency, "messaging bridge unavailable")
	}
	if err := c.bridge.SendSerializedMessage(ctx, text); err != nil {
		return Outcome{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bridge dispatch failed")
	}

	notice := payload.Notice()
	if err := c.bridge.ShowTransientNotice(ctx, notice); err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "submission.notice_failed")
	}
	return Outcome{Channel: ChannelBridge, Notice: notice}, nil
}

// LinkFallbackChannel opens a direct conversation with the operator with the
// payload pre-filled as message text.
type LinkFallbackChannel struct {
	links LinkBuilder
	nav   Navigator
}

func NewLinkFallbackChannel(links LinkBuilder, nav Navigator) LinkFallbackChannel {
	return LinkFallbackChannel{links: links, nav: nav}
}

func (LinkFallbackChannel) Kind() ChannelKind {
	return ChannelLink
}

func (c LinkFallbackChannel) Dispatch(ctx context.Context, _ submission.Payload, text string) (Outcome, error) {
	if c.nav == nil {
		return Outcome{}, pkgerrors.New(pkgerrors.CodeInternal, "navigator unavailable")
	}
	url := c.links.Build(text)
	if err := c.nav.NavigateTo(ctx, url); err != nil {
		return Outcome{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "navigate to operator link")
	}
	return Outcome{Channel: ChannelLink, NavigateTo: url}, nil
}
