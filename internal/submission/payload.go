// Package submission builds the immutable requests a shopper hands to the
// operator: a priced "calc" request or a contact "order" form.
package submission

import (
	"strings"

	"github.com/minnmarket/storefront-backend/internal/quote"
)

type Kind string

const (
	KindCalc  Kind = "calc"
	KindOrder Kind = "order"
)

func (k Kind) String() string {
	return string(k)
}

// ContactForm is the order tab. Only Name and Phone are required.
type ContactForm struct {
	Name     string
	Phone    string
	Username string
	City     string
	Comment  string
	Prepay   bool
}

// CalcRequest is a priced calculator submission.
type CalcRequest struct {
	Input   quote.QuoteInput
	Quote   quote.Quote
	Pricing quote.PricingConfig
}

// Payload is one of CalcRequest or ContactForm. Its fields are private so
// a built payload cannot be changed on its way to the gateway.
type Payload struct {
	kind  Kind
	calc  CalcRequest
	order ContactForm
}

// NewCalc builds a calc payload from the form input and its computed quote.
func NewCalc(input quote.QuoteInput, q quote.Quote, pricing quote.PricingConfig) Payload {
	return Payload{
		kind: KindCalc,
		calc: CalcRequest{
			Input:   normalizeInput(input),
			Quote:   q,
			Pricing: pricing,
		},
	}
}

// PriceCalc computes the quote and wraps it in a calc payload.
func PriceCalc(input quote.QuoteInput, pricing quote.PricingConfig) Payload {
	return NewCalc(input, quote.ComputeQuote(input, pricing), pricing)
}

// NewOrder builds an order payload from the contact form.
func NewOrder(form ContactForm) Payload {
	return Payload{
		kind: KindOrder,
		order: ContactForm{
			Name:     strings.TrimSpace(form.Name),
			Phone:    strings.TrimSpace(form.Phone),
			Username: strings.TrimSpace(form.Username),
			City:     strings.TrimSpace(form.City),
			Comment:  strings.TrimSpace(form.Comment),
			Prepay:   form.Prepay,
		},
	}
}

func (p Payload) Kind() Kind {
	return p.kind
}

// Calc returns the calc request; ok is false for order payloads.
func (p Payload) Calc() (CalcRequest, bool) {
	return p.calc, p.kind == KindCalc
}

// Order returns the contact form; ok is false for calc payloads.
func (p Payload) Order() (ContactForm, bool) {
	return p.order, p.kind == KindOrder
}

// Notice is the transient confirmation shown after a bridge delivery.
func (p Payload) Notice() string {
	if p.kind == KindCalc {
		return "Заявка отправлена менеджеру"
	}
	return "Заявка отправлена"
}

func normalizeInput(in quote.QuoteInput) quote.QuoteInput {
	if !in.Category.Valid() {
		in.Category = quote.CategoryApparel
	}
	in.SourcePrice = strings.TrimSpace(in.SourcePrice)
	in.ProductURL = strings.TrimSpace(in.ProductURL)
	in.ProductTitle = strings.TrimSpace(in.ProductTitle)
	in.Size = strings.TrimSpace(in.Size)
	return in
}
