package controllers

import (
	"net/http"

	"github.com/minnmarket/storefront-backend/api/responses"
	"github.com/minnmarket/storefront-backend/internal/quote"
)

type pricingResponse struct {
	ExchangeRate   string `json:"exchange_rate"`
	ServicePercent string `json:"service_percent"`
	FixedFee       string `json:"fixed_fee"`
	ShippingFee    string `json:"shipping_fee"`
	DisplayScale   int32  `json:"display_scale"`
	SourceCurrency string `json:"source_currency"`
	LocalCurrency  string `json:"local_currency"`
	RateDisplay    string `json:"rate_display"`
}

// PricingGet exposes the loaded pricing config so the widget can render the
// rate caption.
func PricingGet(cfg quote.PricingConfig) http.HandlerFunc {
	payload := pricingResponse{
		ExchangeRate:   cfg.ExchangeRate.String(),
		ServicePercent: cfg.ServicePercent.String(),
		FixedFee:       cfg.FixedFee.String(),
		ShippingFee:    cfg.ShippingFee.String(),
		DisplayScale:   cfg.DisplayScale,
		SourceCurrency: cfg.SourceCurrency,
		LocalCurrency:  cfg.LocalCurrency,
		RateDisplay:    quote.RateDisplay(cfg),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, payload)
	}
}
