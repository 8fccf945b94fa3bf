package controllers

import (
	"context"
	"net/http"

	"github.com/minnmarket/storefront-backend/api/responses"
	"github.com/minnmarket/storefront-backend/api/validators"
	"github.com/minnmarket/storefront-backend/internal/gateway"
	"github.com/minnmarket/storefront-backend/internal/quote"
	"github.com/minnmarket/storefront-backend/internal/submission"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
	"github.com/minnmarket/storefront-backend/pkg/logger"
)

// Submitter is the gateway surface the submission handlers use.
type Submitter interface {
	Submit(ctx context.Context, host gateway.Host, payload submission.Payload) (gateway.Outcome, error)
}

// SubmissionCalc re-prices the calculator input server side and hands the
// calc payload to the gateway. bridge may be nil.
func SubmissionCalc(svc Submitter, pricing quote.PricingConfig, bridge gateway.Bridge, logg *logger.Logger) http.HandlerFunc {
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
		submit(w, r, svc, submission.PriceCalc(input, pricing), bridge, logg)
	}
}

// SubmissionOrder sends the contact form to the gateway. bridge may be nil.
func SubmissionOrder(svc Submitter, bridge gateway.Bridge, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload orderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		submit(w, r, svc, submission.NewOrder(payload.toForm()), bridge, logg)
	}
}

func submit(w http.ResponseWriter, r *http.Request, svc Submitter, payload submission.Payload, bridge gateway.Bridge, logg *logger.Logger) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "submission gateway unavailable"))
		return
	}

	host := newRequestHost(bridge, false)
	outcome, err := svc.Submit(r.Context(), host, payload)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	responses.WriteSuccessStatus(w, http.StatusAccepted, submissionResponse{
		ID:         outcome.ID.String(),
		Type:       outcome.Kind.String(),
		Channel:    outcome.Channel.String(),
		Fallback:   outcome.Fallback,
		Notice:     outcome.Notice,
		NavigateTo: outcome.NavigateTo,
	})
}
