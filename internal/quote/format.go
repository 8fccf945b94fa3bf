package quote

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencySymbols = map[string]string{
	"RUB": "₽",
	"CNY": "¥",
	"USD": "$",
	"EUR": "€",
}

// CurrencySymbol falls back to the ISO code when no symbol is known.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code
}

// FormatLocal renders an amount the way the calculator displays the total:
// rounded half-up to the display scale, grouped for the locale, followed by
// the local currency symbol.
func FormatLocal(amount decimal.Decimal, cfg PricingConfig, tag language.Tag) string {
	rounded := RoundHalfUp(amount, cfg.DisplayScale)
	p := message.NewPrinter(tag)

	digits := p.Sprintf("%d", rounded.IntPart())
	if cfg.DisplayScale > 0 {
		fixed := rounded.Abs().StringFixed(cfg.DisplayScale)
		_, frac, _ := strings.Cut(fixed, ".")
		digits += decimalSeparator(p) + frac
	}
	return digits + " " + CurrencySymbol(cfg.LocalCurrency)
}

// decimalSeparator asks the locale how it writes 1.5 and keeps what sits
// between the digits.
func decimalSeparator(p *message.Printer) string {
	sample := p.Sprint(number.Decimal(1.5, number.Scale(1)))
	return strings.TrimSuffix(strings.TrimPrefix(sample, "1"), "5")
}

// RateDisplay renders the exchange rate caption, e.g. "14.60 ₽/¥".
func RateDisplay(cfg PricingConfig) string {
	return cfg.ExchangeRate.StringFixed(2) + " " + CurrencySymbol(cfg.LocalCurrency) + "/" + CurrencySymbol(cfg.SourceCurrency)
}
