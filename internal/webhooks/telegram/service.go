package telegramwebhook

import (
	"context"

	"github.com/minnmarket/storefront-backend/internal/gateway"
	"github.com/minnmarket/storefront-backend/internal/quote"
	"github.com/minnmarket/storefront-backend/internal/submission"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
	"github.com/minnmarket/storefront-backend/pkg/logger"
	"github.com/minnmarket/storefront-backend/pkg/telegram"
)

const fallbackButtonText = "Написать менеджеру"

type submitter interface {
	Submit(ctx context.Context, host gateway.Host, payload submission.Payload) (gateway.Outcome, error)
}

type ServiceParams struct {
	Gateway submitter
	// Bridge is the operator chat. Without it every payload goes out as a
	// fallback link sent to the shopper.
	Bridge  *telegram.OperatorBridge
	Sender  telegram.MessageSender
	Pricing quote.PricingConfig
	Logger  *logger.Logger
}

type Service struct {
	gateway submitter
	bridge  *telegram.OperatorBridge
	sender  telegram.MessageSender
	pricing quote.PricingConfig
	logg    *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "submission gateway required")
	}
	if params.Sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "telegram sender required")
	}
	if err := params.Pricing.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "pricing config required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		gateway: params.Gateway,
		bridge:  params.Bridge,
		sender:  params.Sender,
		pricing: params.Pricing,
		logg:    logg,
	}, nil
}

// Result reports what HandleUpdate did with an update.
type Result struct {
	Handled bool
	Outcome gateway.Outcome
}

// HandleUpdate forwards Mini App data to the operator. Updates without
// web_app_data are ignored.
func (s *Service) HandleUpdate(ctx context.Context, update *telegram.Update) (Result, error) {
	if update == nil {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "telegram update required")
	}
	data, ok := update.WebAppPayload()
	if !ok {
		return Result{}, nil
	}
	chatID := update.ChatID()
	if chatID == 0 {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "web app data without chat")
	}
	ctx = s.logg.WithChatID(ctx, chatID)

	payload, err := submission.Decode(data, s.pricing)
	if err != nil {
		return Result{}, err
	}

	outcome, err := s.gateway.Submit(ctx, s.hostFor(chatID), payload)
	if err != nil {
		return Result{}, err
	}
	return Result{Handled: true, Outcome: outcome}, nil
}

func (s *Service) hostFor(chatID int64) *chatHost {
	host := &chatHost{sender: s.sender, chatID: chatID}
	if s.bridge != nil {
		host.bridge = s.bridge.ForUser(chatID)
	}
	return host
}

// chatHost is the shopper's private chat with the bot.
type chatHost struct {
	bridge *telegram.OperatorBridge
	sender telegram.MessageSender
	chatID int64
}

func (h *chatHost) Bridge() (gateway.Bridge, bool) {
	if h.bridge == nil {
		return nil, false
	}
	return h.bridge, true
}

// NavigateTo hands the shopper a button that opens the link.
func (h *chatHost) NavigateTo(ctx context.Context, url string) error {
	_, err := h.sender.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID: h.chatID,
		Text:   "Отправьте заявку менеджеру по кнопке ниже.",
		ReplyMarkup: &telegram.InlineKeyboardMarkup{
			InlineKeyboard: [][]telegram.InlineKeyboardButton{{
				{Text: fallbackButtonText, URL: url},
			}},
		},
	})
	return err
}
