// Package quote turns raw calculator input into a priced quote.
//
// Everything here is pure: no I/O, no clocks, no shared state. Amounts are
// kept at full precision and only rounded at presentation or serialization
// boundaries.
package quote

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// QuoteInput is the user-supplied calculator form.
type QuoteInput struct {
	Category     Category
	SourcePrice  string
	ProductURL   string
	ProductTitle string
	Size         string
}

// HasSourcePrice reports whether the price field holds any text. A price of
// "0" counts as present; an empty field does not.
func (in QuoteInput) HasSourcePrice() bool {
	return strings.TrimSpace(in.SourcePrice) != ""
}

// Quote is derived from a QuoteInput and a PricingConfig.
type Quote struct {
	SourcePrice    decimal.Decimal
	ExchangeRate   decimal.Decimal
	ServicePercent decimal.Decimal
	BaseLocal      decimal.Decimal
	ServiceFee     decimal.Decimal
	FixedFee       decimal.Decimal
	ShippingFee    decimal.Decimal
	TotalLocal     decimal.Decimal
}

// ComputeQuote applies the pricing formula in its fixed order:
// base, service fee, total.
func ComputeQuote(input QuoteInput, cfg PricingConfig) Quote {
	price := CoerceSourcePrice(input.SourcePrice)

	base := price.Mul(cfg.ExchangeRate)
	serviceFee := base.Mul(cfg.ServicePercent)
	total := base.Add(serviceFee).Add(cfg.FixedFee).Add(cfg.ShippingFee)

	return Quote{
		SourcePrice:    price,
		ExchangeRate:   cfg.ExchangeRate,
		ServicePercent: cfg.ServicePercent,
		BaseLocal:      base,
		ServiceFee:     serviceFee,
		FixedFee:       cfg.FixedFee,
		ShippingFee:    cfg.ShippingFee,
		TotalLocal:     total,
	}
}

// maxPriceDigits bounds each side of the decimal point of a typed price.
const maxPriceDigits = 12

// CoerceSourcePrice reads a price typed by a shopper. Blank, non-numeric
// and negative values all become zero so the form stays usable mid-edit.
// Only plain decimal notation is accepted: exponents and prices with more
// than maxPriceDigits digits on either side of the point also become zero.
func CoerceSourcePrice(raw string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		if r == ',' {
			return '.'
		}
		return r
	}, raw)
	if !plainDecimal(cleaned) {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return price
}

func plainDecimal(s string) bool {
	intPart, frac, _ := strings.Cut(s, ".")
	if intPart == "" && frac == "" {
		return false
	}
	if len(strings.TrimLeft(intPart, "0")) > maxPriceDigits || len(frac) > maxPriceDigits {
		return false
	}
	for _, part := range []string{intPart, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// RoundHalfUp rounds a non-negative amount to scale places, halves going up.
func RoundHalfUp(amount decimal.Decimal, scale int32) decimal.Decimal {
	// decimal.Round rounds halves away from zero, which is half-up for the
	// non-negative amounts the engine produces.
	return amount.Round(scale)
}

// Rounded returns a copy with every local amount rounded to scale places.
// The source price, rate and percent are left untouched.
func (q Quote) Rounded(scale int32) Quote {
	out := q
	out.BaseLocal = RoundHalfUp(q.BaseLocal, scale)
	out.ServiceFee = RoundHalfUp(q.ServiceFee, scale)
	out.FixedFee = RoundHalfUp(q.FixedFee, scale)
	out.ShippingFee = RoundHalfUp(q.ShippingFee, scale)
	out.TotalLocal = RoundHalfUp(q.TotalLocal, scale)
	return out
}
