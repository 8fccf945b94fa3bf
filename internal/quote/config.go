package quote

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

var one = decimal.NewFromInt(1)

// PricingConfig is the process-wide pricing policy. It is loaded once at
// startup, validated, and never mutated afterwards.
type PricingConfig struct {
	ExchangeRate   decimal.Decimal
	ServicePercent decimal.Decimal
	FixedFee       decimal.Decimal
	ShippingFee    decimal.Decimal

	// DisplayScale is the number of decimal places of the smallest
	// displayable local currency unit.
	DisplayScale   int32
	SourceCurrency string
	LocalCurrency  string
}

// DefaultPricing mirrors the rates the storefront launched with.
func DefaultPricing() PricingConfig {
	return PricingConfig{
		ExchangeRate:   decimal.RequireFromString("14.6"),
		ServicePercent: decimal.RequireFromString("0.07"),
		FixedFee:       decimal.NewFromInt(350),
		ShippingFee:    decimal.NewFromInt(990),
		DisplayScale:   0,
		SourceCurrency: "CNY",
		LocalCurrency:  "RUB",
	}
}

// Validate reports every invalid field at once.
func (c PricingConfig) Validate() error {
	var err error
	if !c.ExchangeRate.IsPositive() {
		err = multierr.Append(err, fmt.Errorf("exchange rate must be positive, got %s", c.ExchangeRate))
	}
	if c.ServicePercent.IsNegative() || c.ServicePercent.GreaterThanOrEqual(one) {
		err = multierr.Append(err, fmt.Errorf("service percent must be in [0,1), got %s", c.ServicePercent))
	}
	if c.FixedFee.IsNegative() {
		err = multierr.Append(err, fmt.Errorf("fixed fee must be non-negative, got %s", c.FixedFee))
	}
	if c.ShippingFee.IsNegative() {
		err = multierr.Append(err, fmt.Errorf("shipping fee must be non-negative, got %s", c.ShippingFee))
	}
	if c.DisplayScale < 0 || c.DisplayScale > 4 {
		err = multierr.Append(err, fmt.Errorf("display scale must be between 0 and 4, got %d", c.DisplayScale))
	}
	if err != nil {
		return errors.Join(errors.New("invalid pricing config"), err)
	}
	return nil
}
