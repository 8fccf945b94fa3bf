package submission

import (
	"fmt"
	"strings"

	"github.com/minnmarket/storefront-backend/internal/quote"
	"golang.org/x/text/language"
)

var categoryTitles = map[quote.Category]string{
	quote.CategoryApparel:  "Одежда",
	quote.CategoryFootwear: "Обувь",
}

// Summary renders the payload for a human reading the operator chat. Empty
// optional fields are left out.
func (p Payload) Summary() string {
	var b strings.Builder
	line := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	switch p.kind {
	case KindCalc:
		in, q, cfg := p.calc.Input, p.calc.Quote, p.calc.Pricing
		b.WriteString("Новая заявка: расчёт\n")
		line("Категория", categoryTitles[in.Category])
		line("Товар", in.ProductTitle)
		line("Размер", in.Size)
		line("Ссылка", in.ProductURL)
		line("Цена", q.SourcePrice.String()+" "+quote.CurrencySymbol(cfg.SourceCurrency))
		line("Курс", quote.RateDisplay(cfg))
		line("Итого", quote.FormatLocal(q.TotalLocal, cfg, language.Russian))
	case KindOrder:
		b.WriteString("Новая заявка: заказ\n")
		line("Имя", p.order.Name)
		line("Телефон", p.order.Phone)
		if handle := strings.TrimPrefix(p.order.Username, "@"); handle != "" {
			line("Telegram", "@"+handle)
		}
		line("Город", p.order.City)
		line("Комментарий", p.order.Comment)
		if p.order.Prepay {
			line("Предоплата", "согласен")
		} else {
			line("Предоплата", "нет")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// OperatorMessage renders a serialized record for the operator chat: the
// Summary, a blank line, then the record itself so the breakdown stays
// auditable. Text that does not decode is returned unchanged.
func OperatorMessage(pricing quote.PricingConfig) func(string) string {
	return func(text string) string {
		p, err := Decode(text, pricing)
		if err != nil {
			return text
		}
		return p.Summary() + "\n\n" + text
	}
}
