package controllers

import (
	"net/http"

	"github.com/minnmarket/storefront-backend/api/responses"
	"github.com/minnmarket/storefront-backend/internal/storefront"
)

type managerResponse struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Handle string `json:"handle"`
	URL    string `json:"url"`
}

type storefrontResponse struct {
	ReviewsURL string               `json:"reviews_url"`
	FAQ        []storefront.FAQItem `json:"faq"`
	Managers   []managerResponse    `json:"managers"`
}

// StorefrontGet returns the informational surfaces. The catalog is read-only
// so the response is built once.
func StorefrontGet(catalog storefront.Catalog, linkDomain string) http.HandlerFunc {
	managers := make([]managerResponse, 0, len(catalog.Managers))
	for _, m := range catalog.Managers {
		managers = append(managers, managerResponse{
			Name:   m.Name,
			Role:   m.Role,
			Handle: m.Handle,
			URL:    m.URL(linkDomain),
		})
	}
	payload := storefrontResponse{
		ReviewsURL: catalog.ReviewsURL,
		FAQ:        catalog.FAQ,
		Managers:   managers,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, payload)
	}
}
