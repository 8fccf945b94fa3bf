package cmd

import (
	"bytes"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minnmarket/storefront-backend/internal/quote"
	"github.com/minnmarket/storefront-backend/pkg/config"
)

func testConfig() *config.Config {
	p := quote.DefaultPricing()
	return &config.Config{
		Pricing: config.PricingConfig{
			ExchangeRate:   p.ExchangeRate,
			ServicePercent: p.ServicePercent,
			FixedFee:       p.FixedFee,
			ShippingFee:    p.ShippingFee,
			SourceCurrency: p.SourceCurrency,
			LocalCurrency:  p.LocalCurrency,
		},
		Telegram: config.TelegramConfig{OperatorHandle: "maxxim_sv", LinkDomain: "t.me"},
		Submit:   config.SubmitConfig{FallbackOnBridgeError: true},
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(func() (*config.Config, error) { return testConfig(), nil })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestQuoteJSONUsesRoundedTotals(t *testing.T) {
	out, err := run(t, "quote", "--price", "899", "--title", "Nike", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_local":15384`)
	assert.Contains(t, out, `"service_fee":919`)
	assert.Contains(t, out, `"type":"calc"`)
}

func TestQuoteBreakdownReportsMissingFields(t *testing.T) {
	out, err := run(t, "quote", "--locale", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "1,340")
	assert.Contains(t, out, "Not submittable")
}

func TestLinkBuildsOperatorURL(t *testing.T) {
	out, err := run(t, "link", "--type", "order", "--name", "Иван Петров", "--phone", "+79990000000")
	require.NoError(t, err)

	raw := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(raw, "https://t.me/maxxim_sv?text="))
	assert.NotContains(t, raw, "+")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, `"name":"Иван Петров"`)
	assert.Contains(t, text, `"prepay":true`)
}

func TestLinkRefusesUnreadyPayload(t *testing.T) {
	_, err := run(t, "link", "--type", "calc", "--price", "899")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestLinkRejectsUnknownType(t *testing.T) {
	_, err := run(t, "link", "--type", "gift")
	require.Error(t, err)
}

func TestConfigPrintsPricing(t *testing.T) {
	out, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "rate_display=14.60 ₽/¥")
	assert.Contains(t, out, "operator=@maxxim_sv")
	assert.Contains(t, out, "bridge_enabled=false")
}

func TestLoadErrorStopsCommands(t *testing.T) {
	root := NewRootCmd(func() (*config.Config, error) { return nil, errors.New("invalid config") })
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"config"})
	require.Error(t, root.Execute())
}
