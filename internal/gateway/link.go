package gateway

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const DefaultLinkDomain = "t.me"

// LinkBuilder renders fallback links of the form
// https://<domain>/<operator>?text=<escaped payload>.
type LinkBuilder struct {
	domain   string
	operator string
}

func NewLinkBuilder(domain, operator string) (LinkBuilder, error) {
	domain = strings.Trim(strings.TrimSpace(domain), "/")
	domain = strings.TrimPrefix(strings.TrimPrefix(domain, "https://"), "http://")
	if domain == "" {
		domain = DefaultLinkDomain
	}
	operator = strings.TrimPrefix(strings.TrimSpace(operator), "@")
	if operator == "" {
		return LinkBuilder{}, errors.New("operator handle is required")
	}
	return LinkBuilder{domain: domain, operator: operator}, nil
}

func (b LinkBuilder) Domain() string {
	return b.domain
}

func (b LinkBuilder) Operator() string {
	return b.operator
}

// Profile is the plain conversation link without pre-filled text.
func (b LinkBuilder) Profile() string {
	return fmt.Sprintf("https://%s/%s", b.domain, url.PathEscape(b.operator))
}

func (b LinkBuilder) Build(text string) string {
	return b.Profile() + "?text=" + EscapeComponent(text)
}

// EscapeComponent escapes a single query value. Spaces become %20, never "+".
func EscapeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
