package webhooks

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/minnmarket/storefront-backend/api/responses"
	telegramwebhook "github.com/minnmarket/storefront-backend/internal/webhooks/telegram"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
	"github.com/minnmarket/storefront-backend/pkg/logger"
	"github.com/minnmarket/storefront-backend/pkg/telegram"
)

const (
	maxUpdateBytes = 1 << 20
	secretHeader   = "X-Telegram-Bot-Api-Secret-Token"
)

type TelegramWebhookService interface {
	HandleUpdate(ctx context.Context, update *telegram.Update) (telegramwebhook.Result, error)
}

// TelegramWebhook receives Bot API updates. Once the body decodes the reply
// is always 200: the Bot API redelivers on anything else and submissions
// are never retried. A non-empty secret must match the secret token header.
func TelegramWebhook(svc TelegramWebhookService, secret string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "telegram webhook unavailable"))
			return
		}

		if secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(secretHeader)), []byte(secret)) != 1 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid webhook secret"))
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateBytes))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body"))
			return
		}

		var update telegram.Update
		if err := json.Unmarshal(body, &update); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode update"))
			return
		}

		if logg != nil {
			ctx = logg.WithField(ctx, "update_id", update.UpdateID)
		}

		result, err := svc.HandleUpdate(ctx, &update)
		if err != nil {
			if logg != nil {
				dump := pkgerrors.Dump(err)
				logCtx := logg.WithFields(ctx, map[string]any{
					"error":       dump.TopMessage,
					"error_code":  dump.Code,
					"error_chain": dump.Chain,
				})
				if pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
					logg.Warn(logCtx, "telegram.update_rejected")
				} else {
					logg.Error(logCtx, "telegram.update_failed", err)
				}
			}
			responses.WriteSuccess(w, map[string]any{"handled": false})
			return
		}

		resp := map[string]any{"handled": result.Handled}
		if result.Handled {
			resp["channel"] = result.Outcome.Channel.String()
			resp["fallback"] = result.Outcome.Fallback
		}
		responses.WriteSuccess(w, resp)
	}
}
