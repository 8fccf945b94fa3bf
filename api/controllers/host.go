package controllers

import (
	"context"

	"github.com/minnmarket/storefront-backend/internal/gateway"
	"github.com/minnmarket/storefront-backend/internal/storefront"
)

// requestHost is the widget behind one HTTP request. Navigation is recorded
// and handed back in the response for the widget to perform.
type requestHost struct {
	bridge    gateway.Bridge
	inApp     bool
	navigated string
	opened    string
}

func newRequestHost(bridge gateway.Bridge, inApp bool) *requestHost {
	return &requestHost{bridge: bridge, inApp: inApp}
}

func (h *requestHost) Bridge() (gateway.Bridge, bool) {
	if h.bridge == nil {
		return nil, false
	}
	return h.bridge, true
}

func (h *requestHost) NavigateTo(_ context.Context, url string) error {
	h.navigated = url
	return nil
}

func (h *requestHost) TelegramLinks() (storefront.TelegramLinkOpener, bool) {
	if !h.inApp {
		return nil, false
	}
	return h, true
}

func (h *requestHost) OpenTelegramLink(_ context.Context, url string) error {
	h.opened = url
	return nil
}
