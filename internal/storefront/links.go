package storefront

import (
	"context"
	"net/url"
	"strings"

	"github.com/minnmarket/storefront-backend/internal/gateway"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
)

// TelegramLinkOpener opens a messaging-domain link inside the host app.
type TelegramLinkOpener interface {
	OpenTelegramLink(ctx context.Context, url string) error
}

// LinkHost can always navigate; in-app opening is optional.
type LinkHost interface {
	gateway.Navigator
	TelegramLinks() (TelegramLinkOpener, bool)
}

type OpenMethod string

const (
	OpenTelegramLink OpenMethod = "telegram_link"
	OpenNavigate     OpenMethod = "navigate"
)

// LinkOpener decides how an external link is opened.
type LinkOpener struct {
	domain string
}

func NewLinkOpener(domain string) LinkOpener {
	domain = strings.Trim(strings.TrimSpace(domain), "/")
	if domain == "" {
		domain = gateway.DefaultLinkDomain
	}
	return LinkOpener{domain: domain}
}

func (o LinkOpener) Domain() string {
	return o.domain
}

// OpenExternalLink opens rawURL in-app when the host supports it and the link
// is on the messaging domain, and navigates otherwise.
func (o LinkOpener) OpenExternalLink(ctx context.Context, host LinkHost, rawURL string) (OpenMethod, error) {
	if host == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "link host is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "https" && parsed.Scheme != "http") {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "url must be an absolute http(s) link")
	}

	if opener, ok := host.TelegramLinks(); ok && opener != nil && o.onDomain(parsed) {
		if err := opener.OpenTelegramLink(ctx, parsed.String()); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open telegram link")
		}
		return OpenTelegramLink, nil
	}

	if err := host.NavigateTo(ctx, parsed.String()); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "navigate to link")
	}
	return OpenNavigate, nil
}

func (o LinkOpener) onDomain(u *url.URL) bool {
	return strings.EqualFold(u.Hostname(), o.domain)
}
