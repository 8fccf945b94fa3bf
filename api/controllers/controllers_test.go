package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minnmarket/storefront-backend/internal/gateway"
	"github.com/minnmarket/storefront-backend/internal/quote"
	"github.com/minnmarket/storefront-backend/internal/storefront"
	"github.com/minnmarket/storefront-backend/internal/submission"
	"github.com/minnmarket/storefront-backend/pkg/logger"
)

type fakeBridge struct {
	sent []string
	err  error
}

func (b *fakeBridge) SendSerializedMessage(_ context.Context, text string) error {
	if b.err != nil {
		return b.err
	}
	b.sent = append(b.sent, text)
	return nil
}

func (b *fakeBridge) ShowTransientNotice(context.Context, string) error {
	return nil
}

func newTestGateway(t *testing.T) *gateway.Gateway {
	t.Helper()
	links, err := gateway.NewLinkBuilder("t.me", "maxxim_sv")
	require.NoError(t, err)
	gw, err := gateway.New(gateway.Options{Links: links, FallbackOnBridgeError: true})
	require.NoError(t, err)
	return gw
}

func post(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Data
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Error.Code
}

func TestQuoteCreateReferenceScenario(t *testing.T) {
	handler := QuoteCreate(quote.DefaultPricing(), nil, logger.Nop())

	rec := post(t, handler, `{"category":"shoes","source_price":"899","title":"Nike","locale":"en"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeData[quoteResponse](t, rec)
	assert.Equal(t, "footwear", got.Category)
	assert.Equal(t, "13125", got.Breakdown.BaseLocal)
	assert.Equal(t, "919", got.Breakdown.ServiceFee)
	assert.Equal(t, "15384", got.Breakdown.TotalLocal)
	assert.Equal(t, "15,384 ₽", got.TotalDisplay)
	assert.True(t, got.Submittable)
	assert.Empty(t, got.Missing)
}

func TestQuoteCreateAcceptsNumericAndGarbagePrices(t *testing.T) {
	handler := QuoteCreate(quote.DefaultPricing(), nil, logger.Nop())

	rec := post(t, handler, `{"source_price":899}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeData[quoteResponse](t, rec)
	assert.Equal(t, "15384", got.Breakdown.TotalLocal)
	assert.False(t, got.Submittable)
	assert.Equal(t, []string{"title"}, got.Missing)

	rec = post(t, handler, `{"source_price":"abc","title":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got = decodeData[quoteResponse](t, rec)
	assert.Equal(t, "1340", got.Breakdown.TotalLocal)
	assert.True(t, got.Submittable, "non-empty text passes the gate even when it prices as zero")

	rec = post(t, handler, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got = decodeData[quoteResponse](t, rec)
	assert.Equal(t, "1340", got.Breakdown.TotalLocal)
	assert.Equal(t, []string{"source_price", "title"}, got.Missing)
}

func TestQuoteCreateDefaultsToRussianDisplay(t *testing.T) {
	handler := QuoteCreate(quote.DefaultPricing(), nil, logger.Nop())

	rec := post(t, handler, `{"source_price":"899","title":"Nike"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeData[quoteResponse](t, rec)
	assert.Equal(t, "15\u00a0384 ₽", got.TotalDisplay)
}

func TestQuoteCreateExponentPriceIsZero(t *testing.T) {
	handler := QuoteCreate(quote.DefaultPricing(), nil, logger.Nop())

	for _, body := range []string{
		`{"source_price":"1e7000000","title":"x"}`,
		`{"source_price":1e2147483647,"title":"x"}`,
	} {
		rec := post(t, handler, body)
		require.Equal(t, http.StatusOK, rec.Code, body)
		got := decodeData[quoteResponse](t, rec)
		assert.Equal(t, "1340", got.Breakdown.TotalLocal, body)
	}
}

func TestQuoteCreateRejectsOversizedPrice(t *testing.T) {
	handler := QuoteCreate(quote.DefaultPricing(), nil, logger.Nop())
	rec := post(t, handler, `{"source_price":"`+strings.Repeat("9", 33)+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
}

func TestQuoteCreateRejectsUnknownCategory(t *testing.T) {
	handler := QuoteCreate(quote.DefaultPricing(), nil, logger.Nop())
	rec := post(t, handler, `{"category":"bags","source_price":"1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
}

func TestSubmissionOrderUsesLinkWithoutBridge(t *testing.T) {
	handler := SubmissionOrder(newTestGateway(t), nil, logger.Nop())

	rec := post(t, handler, `{"name":"Иван","phone":"+79990000000","city":"Москва"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	got := decodeData[submissionResponse](t, rec)
	assert.Equal(t, "order", got.Type)
	assert.Equal(t, "link", got.Channel)
	require.NotEmpty(t, got.NavigateTo)

	parsed, err := url.Parse(got.NavigateTo)
	require.NoError(t, err)
	payload, err := submission.Decode(parsed.Query().Get("text"), quote.DefaultPricing())
	require.NoError(t, err)
	form, ok := payload.Order()
	require.True(t, ok)
	assert.Equal(t, "Иван", form.Name)
	assert.True(t, form.Prepay, "prepay defaults to true")
}

func TestSubmissionOrderRefusedByGate(t *testing.T) {
	bridge := &fakeBridge{}
	handler := SubmissionOrder(newTestGateway(t), bridge, logger.Nop())

	rec := post(t, handler, `{"name":"Иван"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
	assert.Empty(t, bridge.sent)
}

func TestSubmissionCalcUsesBridge(t *testing.T) {
	bridge := &fakeBridge{}
	handler := SubmissionCalc(newTestGateway(t), quote.DefaultPricing(), bridge, logger.Nop())

	rec := post(t, handler, `{"category":"footwear","source_price":"899","title":"Nike Manoa","size":"43"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	got := decodeData[submissionResponse](t, rec)
	assert.Equal(t, "bridge", got.Channel)
	assert.Equal(t, "Заявка отправлена менеджеру", got.Notice)
	assert.Empty(t, got.NavigateTo)
	require.Len(t, bridge.sent, 1)
	assert.Contains(t, bridge.sent[0], `"total_local":15384`)
}

func TestSubmissionCalcFallsBackOnBridgeError(t *testing.T) {
	bridge := &fakeBridge{err: errors.New("bot blocked")}
	handler := SubmissionCalc(newTestGateway(t), quote.DefaultPricing(), bridge, logger.Nop())

	rec := post(t, handler, `{"source_price":"899","title":"Nike"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	got := decodeData[submissionResponse](t, rec)
	assert.True(t, got.Fallback)
	assert.Equal(t, "link", got.Channel)
	assert.True(t, strings.HasPrefix(got.NavigateTo, "https://t.me/maxxim_sv?text="))
}

func TestSubmissionRejectsUnknownFields(t *testing.T) {
	handler := SubmissionOrder(newTestGateway(t), nil, logger.Nop())
	rec := post(t, handler, `{"name":"a","phone":"b","email":"c"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStorefrontGet(t *testing.T) {
	handler := StorefrontGet(storefront.DefaultCatalog(), "t.me")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeData[storefrontResponse](t, rec)
	assert.Equal(t, "https://t.me/minnmarket_reviews", got.ReviewsURL)
	assert.Len(t, got.FAQ, 3)
	require.Len(t, got.Managers, 2)
	assert.Equal(t, "https://t.me/minnmarket", got.Managers[0].URL)
}

func TestLinkOpen(t *testing.T) {
	handler := LinkOpen(storefront.NewLinkOpener("t.me"), storefront.DefaultCatalog(), logger.Nop())

	rec := post(t, handler, `{"target":"reviews","in_telegram":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeData[linkOpenResponse](t, rec)
	assert.Equal(t, "telegram_link", got.Method)
	assert.Equal(t, "https://t.me/minnmarket_reviews", got.URL)

	rec = post(t, handler, `{"target":"manager","handle":"maxxim_sv"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got = decodeData[linkOpenResponse](t, rec)
	assert.Equal(t, "navigate", got.Method)
	assert.Equal(t, "https://t.me/maxxim_sv", got.URL)

	rec = post(t, handler, `{"target":"url","url":"https://www.poizon.com/","in_telegram":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got = decodeData[linkOpenResponse](t, rec)
	assert.Equal(t, "navigate", got.Method)

	rec = post(t, handler, `{"target":"manager","handle":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(t, handler, `{"target":"manager"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPricingGet(t *testing.T) {
	rec := httptest.NewRecorder()
	PricingGet(quote.DefaultPricing()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeData[pricingResponse](t, rec)
	assert.Equal(t, "14.6", got.ExchangeRate)
	assert.Equal(t, "14.60 ₽/¥", got.RateDisplay)
	assert.Equal(t, "RUB", got.LocalCurrency)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReady(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthReady("dev", logger.Nop(), map[string]Pinger{"redis": stubPinger{}, "telegram": nil}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev", rec.Header().Get(envHeader))

	rec = httptest.NewRecorder()
	HealthReady("dev", logger.Nop(), map[string]Pinger{"redis": stubPinger{err: errors.New("down")}}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthLive("prod").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "prod", rec.Header().Get(envHeader))
}

func TestPriceTextUnmarshal(t *testing.T) {
	cases := map[string]string{
		`"899,5"`: "899,5",
		`899.5`:   "899.5",
		`null`:    "",
	}
	for raw, want := range cases {
		var p priceText
		require.NoError(t, json.Unmarshal([]byte(raw), &p), raw)
		assert.Equal(t, want, string(p), raw)
	}

	var p priceText
	assert.Error(t, json.Unmarshal([]byte(`true`), &p))
}
