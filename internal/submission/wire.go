package submission

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/minnmarket/storefront-backend/internal/quote"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type envelope struct {
	Type Kind `json:"type"`
}

type calcWire struct {
	Type        Kind          `json:"type"`
	Category    string        `json:"category"`
	Title       string        `json:"title"`
	Size        string        `json:"size"`
	Link        string        `json:"link"`
	SourcePrice json.Number   `json:"source_price"`
	Rate        json.Number   `json:"rate"`
	Breakdown   breakdownWire `json:"breakdown"`

	// Yuan is the price key used by the first widget release.
	Yuan json.Number `json:"yuan,omitempty"`
}

type breakdownWire struct {
	BaseLocal  json.Number `json:"base_local"`
	ServicePct json.Number `json:"service_pct"`
	ServiceFee json.Number `json:"service_fee"`
	FixFee     json.Number `json:"fix_fee"`
	Shipping   json.Number `json:"shipping"`
	TotalLocal json.Number `json:"total_local"`
	Currency   string      `json:"currency"`
}

type orderWire struct {
	Type     Kind   `json:"type"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
	City     string `json:"city"`
	Comment  string `json:"comment"`
	Prepay   bool   `json:"prepay"`
}

// Serialize renders the payload as the JSON record both channels carry.
// Local amounts are rounded half-up to the pricing display scale here and
// nowhere earlier.
func (p Payload) Serialize() (string, error) {
	var wire any
	switch p.kind {
	case KindCalc:
		wire = p.calcWire()
	case KindOrder:
		wire = orderWire{
			Type:     KindOrder,
			Name:     p.order.Name,
			Phone:    p.order.Phone,
			Username: p.order.Username,
			City:     p.order.City,
			Comment:  p.order.Comment,
			Prepay:   p.order.Prepay,
		}
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown submission type")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(wire); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serialize submission")
	}
	return string(bytes.TrimSpace(buf.Bytes())), nil
}

func (p Payload) calcWire() calcWire {
	scale := p.calc.Pricing.DisplayScale
	rounded := p.calc.Quote.Rounded(scale)
	return calcWire{
		Type:        KindCalc,
		Category:    p.calc.Input.Category.String(),
		Title:       p.calc.Input.ProductTitle,
		Size:        p.calc.Input.Size,
		Link:        p.calc.Input.ProductURL,
		SourcePrice: json.Number(p.calc.Quote.SourcePrice.String()),
		Rate:        json.Number(p.calc.Quote.ExchangeRate.String()),
		Breakdown: breakdownWire{
			BaseLocal:  amount(rounded.BaseLocal, scale),
			ServicePct: json.Number(p.calc.Quote.ServicePercent.Mul(hundred).String()),
			ServiceFee: amount(rounded.ServiceFee, scale),
			FixFee:     amount(rounded.FixedFee, scale),
			Shipping:   amount(rounded.ShippingFee, scale),
			TotalLocal: amount(rounded.TotalLocal, scale),
			Currency:   p.calc.Pricing.LocalCurrency,
		},
	}
}

func amount(d decimal.Decimal, scale int32) json.Number {
	return json.Number(d.StringFixed(scale))
}

// Decode parses a serialized payload. Calc payloads are re-priced with the
// supplied config so the breakdown always reflects the server's rates.
func Decode(text string, pricing quote.PricingConfig) (Payload, error) {
	raw := []byte(text)

	var head envelope
	if err := json.Unmarshal(raw, &head); err != nil {
		return Payload{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed submission payload")
	}

	switch head.Type {
	case KindCalc:
		var wire calcWire
		if err := json.Unmarshal(raw, &wire); err != nil {
			return Payload{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed calc payload")
		}
		category, err := quote.ParseCategory(wire.Category)
		if err != nil {
			return Payload{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed calc payload")
		}
		price := wire.SourcePrice.String()
		if price == "" {
			price = wire.Yuan.String()
		}
		input := quote.QuoteInput{
			Category:     category,
			SourcePrice:  price,
			ProductURL:   wire.Link,
			ProductTitle: wire.Title,
			Size:         wire.Size,
		}
		return PriceCalc(input, pricing), nil
	case KindOrder:
		var wire orderWire
		if err := json.Unmarshal(raw, &wire); err != nil {
			return Payload{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed order payload")
		}
		return NewOrder(ContactForm{
			Name:     wire.Name,
			Phone:    wire.Phone,
			Username: wire.Username,
			City:     wire.City,
			Comment:  wire.Comment,
			Prepay:   wire.Prepay,
		}), nil
	default:
		return Payload{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown submission type %q", head.Type))
	}
}
