package controllers

import (
	"net/http"

	"github.com/minnmarket/storefront-backend/api/responses"
	"github.com/minnmarket/storefront-backend/api/validators"
	"github.com/minnmarket/storefront-backend/internal/storefront"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
	"github.com/minnmarket/storefront-backend/pkg/logger"
)

// LinkOpen resolves a reviews, manager or raw link and reports how the
// widget should open it.
func LinkOpen(opener storefront.LinkOpener, catalog storefront.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload linkOpenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var target string
		switch payload.Target {
		case "reviews":
			target = catalog.ReviewsURL
		case "manager":
			manager, ok := catalog.Manager(payload.Handle)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "manager not found"))
				return
			}
			target = manager.URL(opener.Domain())
		default:
			target = payload.URL
		}

		host := newRequestHost(nil, payload.InTelegram)
		method, err := opener.OpenExternalLink(r.Context(), host, target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		url := host.navigated
		if method == storefront.OpenTelegramLink {
			url = host.opened
		}
		responses.WriteSuccess(w, linkOpenResponse{Method: string(method), URL: url})
	}
}
