package submission

import (
	"strings"

	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
)

// Missing lists the wire names of required fields that are still empty.
func (p Payload) Missing() []string {
	var missing []string
	switch p.kind {
	case KindCalc:
		if !p.calc.Input.HasSourcePrice() {
			missing = append(missing, "source_price")
		}
		if strings.TrimSpace(p.calc.Input.ProductTitle) == "" {
			missing = append(missing, "title")
		}
	case KindOrder:
		if strings.TrimSpace(p.order.Name) == "" {
			missing = append(missing, "name")
		}
		if strings.TrimSpace(p.order.Phone) == "" {
			missing = append(missing, "phone")
		}
	}
	return missing
}

// Ready is the validation gate. Nothing may be dispatched until it passes.
func (p Payload) Ready() error {
	if p.kind != KindCalc && p.kind != KindOrder {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown submission type")
	}
	missing := p.Missing()
	if len(missing) == 0 {
		return nil
	}
	details := make(map[string]string, len(missing))
	for _, field := range missing {
		details[field] = "is required"
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "submission is not ready").WithDetails(details)
}
