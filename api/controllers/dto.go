package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/minnmarket/storefront-backend/api/validators"
	"github.com/minnmarket/storefront-backend/internal/quote"
	"github.com/minnmarket/storefront-backend/internal/submission"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
)

// priceText accepts the price as typed by the shopper: a JSON string, a
// number or null. The raw text is kept; coercion happens in the engine.
type priceText string

func (p *priceText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = priceText(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("source_price must be a string or a number")
		}
		*p = priceText(n.String())
		return nil
	}
}

type quoteRequest struct {
	Category    string    `json:"category" validate:"max=32"`
	SourcePrice priceText `json:"source_price" validate:"max=32"`
	ProductURL  string    `json:"product_url" validate:"max=2048"`
	Title       string    `json:"title" validate:"max=256"`
	Size        string    `json:"size" validate:"max=64"`
	Locale      string    `json:"locale" validate:"omitempty,max=16"`
}

func (q quoteRequest) toInput() (quote.QuoteInput, error) {
	category, err := quote.ParseCategory(q.Category)
	if err != nil {
		return quote.QuoteInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").
			WithDetails(map[string]string{"category": "must be one of: apparel footwear"})
	}
	return quote.QuoteInput{
		Category:     category,
		SourcePrice:  string(q.SourcePrice),
		ProductURL:   validators.SanitizeString(q.ProductURL, 2048),
		ProductTitle: validators.SanitizeString(q.Title, 256),
		Size:         validators.SanitizeString(q.Size, 64),
	}, nil
}

type orderRequest struct {
	Name     string `json:"name" validate:"max=128"`
	Phone    string `json:"phone" validate:"max=32"`
	Username string `json:"username" validate:"max=64"`
	City     string `json:"city" validate:"max=128"`
	Comment  string `json:"comment" validate:"max=1000"`
	// Prepay defaults to true when omitted.
	Prepay *bool `json:"prepay"`
}

func (o orderRequest) toForm() submission.ContactForm {
	prepay := true
	if o.Prepay != nil {
		prepay = *o.Prepay
	}
	return submission.ContactForm{
		Name:     validators.SanitizeString(o.Name, 128),
		Phone:    validators.SanitizeString(o.Phone, 32),
		Username: validators.SanitizeString(o.Username, 64),
		City:     validators.SanitizeString(o.City, 128),
		Comment:  validators.SanitizeString(o.Comment, 1000),
		Prepay:   prepay,
	}
}

type breakdownResponse struct {
	BaseLocal      string `json:"base_local"`
	ServicePercent string `json:"service_percent"`
	ServiceFee     string `json:"service_fee"`
	FixedFee       string `json:"fixed_fee"`
	ShippingFee    string `json:"shipping_fee"`
	TotalLocal     string `json:"total_local"`
}

type quoteResponse struct {
	Category     string            `json:"category"`
	SourcePrice  string            `json:"source_price"`
	ExchangeRate string            `json:"exchange_rate"`
	Breakdown    breakdownResponse `json:"breakdown"`
	TotalDisplay string            `json:"total_display"`
	Currency     string            `json:"currency"`
	Submittable  bool              `json:"submittable"`
	Missing      []string          `json:"missing"`
}

type submissionResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Channel    string `json:"channel"`
	Fallback   bool   `json:"fallback"`
	Notice     string `json:"notice,omitempty"`
	NavigateTo string `json:"navigate_to,omitempty"`
}

type linkOpenRequest struct {
	Target     string `json:"target" validate:"required,oneof=reviews manager url"`
	Handle     string `json:"handle" validate:"required_if=Target manager"`
	URL        string `json:"url" validate:"required_if=Target url,max=2048"`
	InTelegram bool   `json:"in_telegram"`
}

type linkOpenResponse struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}
