// Package storefront holds the informational surfaces of the shop: the
// reviews channel, the FAQ and the manager contact cards.
package storefront

import (
	"fmt"
	"net/url"
	"strings"
)

const DefaultReviewsURL = "https://t.me/minnmarket_reviews"

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Manager struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Handle string `json:"handle"`
}

// URL is the manager's conversation link on the given messaging domain.
func (m Manager) URL(domain string) string {
	return fmt.Sprintf("https://%s/%s", domain, url.PathEscape(strings.TrimPrefix(m.Handle, "@")))
}

// Catalog is read-only after construction.
type Catalog struct {
	ReviewsURL string
	FAQ        []FAQItem
	Managers   []Manager
}

func DefaultCatalog() Catalog {
	return Catalog{
		ReviewsURL: DefaultReviewsURL,
		FAQ: []FAQItem{
			{
				Question: "Как считается цена с Poizon?",
				Answer:   "Цена в ¥ × курс + комиссия + доставка. На вкладке «Расчёт» показана конечная сумма.",
			},
			{
				Question: "Сроки доставки?",
				Answer:   "В среднем 10–18 дней после выкупа (в распродажи дольше).",
			},
			{
				Question: "Оригинал?",
				Answer:   "Только оригинал через Poizon с полной проверкой. При необходимости даём подтверждение.",
			},
		},
		Managers: []Manager{
			{Name: "Тёма", Role: "Основатель / консультации", Handle: "minnmarket"},
			{Name: "Максим", Role: "Менеджер по заказам", Handle: "maxxim_sv"},
		},
	}
}

// WithReviewsURL returns a copy with the reviews link replaced. Blank keeps
// the current one.
func (c Catalog) WithReviewsURL(raw string) Catalog {
	if raw = strings.TrimSpace(raw); raw != "" {
		c.ReviewsURL = raw
	}
	return c
}

// Manager finds a manager by handle, ignoring case and a leading "@".
func (c Catalog) Manager(handle string) (Manager, bool) {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	for _, m := range c.Managers {
		if strings.EqualFold(m.Handle, handle) {
			return m, true
		}
	}
	return Manager{}, false
}
