package controllers

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/minnmarket/storefront-backend/api/responses"
	"github.com/minnmarket/storefront-backend/api/validators"
	"github.com/minnmarket/storefront-backend/internal/quote"
	"github.com/minnmarket/storefront-backend/internal/submission"
	"github.com/minnmarket/storefront-backend/pkg/logger"
	"github.com/minnmarket/storefront-backend/pkg/metrics"
)

var defaultDisplayLocale = language.Russian

// QuoteCreate prices the calculator input. The widget calls it on every
// edit; a zero or unparseable price yields the fee-only total, never an error.
func QuoteCreate(pricing quote.PricingConfig, m *metrics.QuoteMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		calc := submission.PriceCalc(input, pricing)
		req, _ := calc.Calc()
		m.IncComputed(input.Category.String())

		responses.WriteSuccess(w, newQuoteResponse(req, calc.Missing(), displayLocale(payload.Locale)))
	}
}

func newQuoteResponse(req submission.CalcRequest, missing []string, tag language.Tag) quoteResponse {
	scale := req.Pricing.DisplayScale
	rounded := req.Quote.Rounded(scale)
	if missing == nil {
		missing = []string{}
	}
	return quoteResponse{
		Category:     req.Input.Category.String(),
		SourcePrice:  req.Quote.SourcePrice.String(),
		ExchangeRate: req.Quote.ExchangeRate.String(),
		Breakdown: breakdownResponse{
			BaseLocal:      rounded.BaseLocal.StringFixed(scale),
			ServicePercent: req.Quote.ServicePercent.String(),
			ServiceFee:     rounded.ServiceFee.StringFixed(scale),
			FixedFee:       rounded.FixedFee.StringFixed(scale),
			ShippingFee:    rounded.ShippingFee.StringFixed(scale),
			TotalLocal:     rounded.TotalLocal.StringFixed(scale),
		},
		TotalDisplay: quote.FormatLocal(req.Quote.TotalLocal, req.Pricing, tag),
		Currency:     req.Pricing.LocalCurrency,
		Submittable:  len(missing) == 0,
		Missing:      missing,
	}
}

func displayLocale(raw string) language.Tag {
	if raw = strings.TrimSpace(raw); raw == "" {
		return defaultDisplayLocale
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return defaultDisplayLocale
	}
	return tag
}
