package webhooks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/minnmarket/storefront-backend/internal/gateway"
	telegramwebhook "github.com/minnmarket/storefront-backend/internal/webhooks/telegram"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
	"github.com/minnmarket/storefront-backend/pkg/logger"
	"github.com/minnmarket/storefront-backend/pkg/telegram"
)

type stubWebhookService struct {
	received *telegram.Update
	result   telegramwebhook.Result
	err      error
}

func (s *stubWebhookService) HandleUpdate(_ context.Context, update *telegram.Update) (telegramwebhook.Result, error) {
	s.received = update
	return s.result, s.err
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestTelegramWebhookHandled(t *testing.T) {
	svc := &stubWebhookService{result: telegramwebhook.Result{
		Handled: true,
		Outcome: gateway.Outcome{Channel: gateway.ChannelBridge},
	}}
	handler := TelegramWebhook(svc, "", logger.Nop())

	body := `{"update_id":5,"message":{"message_id":1,"chat":{"id":7,"type":"private"},"web_app_data":{"data":"{}","button_text":"x"}}}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/telegram", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.received == nil || svc.received.UpdateID != 5 {
		t.Fatalf("service did not receive update: %+v", svc.received)
	}
	data := decodeData(t, rec)
	if data["handled"] != true || data["channel"] != "bridge" {
		t.Fatalf("unexpected response %+v", data)
	}
}

func TestTelegramWebhookAcknowledgesServiceErrors(t *testing.T) {
	for _, err := range []error{
		pkgerrors.New(pkgerrors.CodeValidation, "submission is not ready"),
		pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("down"), "navigate to operator link"),
	} {
		handler := TelegramWebhook(&stubWebhookService{err: err}, "", logger.Nop())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"update_id":1}`)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %v, got %d", err, rec.Code)
		}
		if data := decodeData(t, rec); data["handled"] != false {
			t.Fatalf("unexpected response %+v", data)
		}
	}
}

func TestTelegramWebhookRejectsMalformedBody(t *testing.T) {
	handler := TelegramWebhook(&stubWebhookService{}, "", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTelegramWebhookWithoutService(t *testing.T) {
	handler := TelegramWebhook(nil, "", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestTelegramWebhookChecksSecretToken(t *testing.T) {
	body := `{"update_id":9}`

	cases := []struct {
		name   string
		header string
		want   int
		called bool
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "wrong", header: "guess", want: http.StatusUnauthorized},
		{name: "match", header: "s3cret", want: http.StatusOK, called: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubWebhookService{}
			handler := TelegramWebhook(svc, "s3cret", nil)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/telegram", strings.NewReader(body))
			if tc.header != "" {
				req.Header.Set("X-Telegram-Bot-Api-Secret-Token", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if (svc.received != nil) != tc.called {
				t.Fatalf("service called = %v, want %v", svc.received != nil, tc.called)
			}
		})
	}
}
