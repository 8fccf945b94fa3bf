package telegramwebhook

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minnmarket/storefront-backend/internal/gateway"
	"github.com/minnmarket/storefront-backend/internal/quote"
	"github.com/minnmarket/storefront-backend/internal/submission"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
	"github.com/minnmarket/storefront-backend/pkg/telegram"
)

const operatorChat int64 = 900

type recordingSender struct {
	requests []telegram.SendMessageRequest
	failChat int64
}

func (s *recordingSender) SendMessage(_ context.Context, req telegram.SendMessageRequest) (*telegram.Message, error) {
	if s.failChat != 0 && req.ChatID == s.failChat {
		return nil, errors.New("forbidden")
	}
	s.requests = append(s.requests, req)
	return &telegram.Message{Chat: telegram.Chat{ID: req.ChatID}}, nil
}

func (s *recordingSender) to(chatID int64) []telegram.SendMessageRequest {
	var out []telegram.SendMessageRequest
	for _, r := range s.requests {
		if r.ChatID == chatID {
			out = append(out, r)
		}
	}
	return out
}

func newService(t *testing.T, sender *recordingSender, withBridge bool) *Service {
	t.Helper()
	links, err := gateway.NewLinkBuilder("t.me", "maxxim_sv")
	require.NoError(t, err)
	gw, err := gateway.New(gateway.Options{Links: links, FallbackOnBridgeError: true})
	require.NoError(t, err)

	params := ServiceParams{Gateway: gw, Sender: sender, Pricing: quote.DefaultPricing()}
	if withBridge {
		bridge, err := telegram.NewOperatorBridge(sender, operatorChat)
		require.NoError(t, err)
		params.Bridge = bridge
	}
	svc, err := NewService(params)
	require.NoError(t, err)
	return svc
}

func webAppUpdate(chatID int64, data string) *telegram.Update {
	return &telegram.Update{
		UpdateID: 1,
		Message: &telegram.Message{
			MessageID:  10,
			Chat:       telegram.Chat{ID: chatID, Type: "private"},
			WebAppData: &telegram.WebAppData{Data: data, ButtonText: "Отправить"},
		},
	}
}

func orderData(t *testing.T) string {
	t.Helper()
	text, err := submission.NewOrder(submission.ContactForm{Name: "Иван", Phone: "+79990000000", Prepay: true}).Serialize()
	require.NoError(t, err)
	return text
}

func TestHandleUpdateForwardsToOperator(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender, true)

	res, err := svc.HandleUpdate(context.Background(), webAppUpdate(555, orderData(t)))
	require.NoError(t, err)
	assert.True(t, res.Handled)
	assert.Equal(t, gateway.ChannelBridge, res.Outcome.Channel)

	operator := sender.to(operatorChat)
	require.Len(t, operator, 1)
	assert.JSONEq(t, orderData(t), operator[0].Text)

	shopper := sender.to(555)
	require.Len(t, shopper, 1)
	assert.Equal(t, "Заявка отправлена", shopper[0].Text)
}

func TestHandleUpdateRepricesCalc(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender, true)

	data := `{"type":"calc","category":"shoes","title":"Nike","yuan":"899","breakdown":{"total_local":"1"}}`
	_, err := svc.HandleUpdate(context.Background(), webAppUpdate(555, data))
	require.NoError(t, err)

	operator := sender.to(operatorChat)
	require.Len(t, operator, 1)
	assert.Contains(t, operator[0].Text, `"total_local":15384`)
	assert.Contains(t, operator[0].Text, `"category":"footwear"`)
}

func TestHandleUpdateWithoutBridgeSendsLink(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender, false)

	res, err := svc.HandleUpdate(context.Background(), webAppUpdate(555, orderData(t)))
	require.NoError(t, err)
	assert.Equal(t, gateway.ChannelLink, res.Outcome.Channel)

	shopper := sender.to(555)
	require.Len(t, shopper, 1)
	require.NotNil(t, shopper[0].ReplyMarkup)
	button := shopper[0].ReplyMarkup.InlineKeyboard[0][0]
	assert.Equal(t, res.Outcome.NavigateTo, button.URL)

	parsed, err := url.Parse(button.URL)
	require.NoError(t, err)
	assert.Equal(t, orderData(t), parsed.Query().Get("text"))
}

func TestHandleUpdateFallsBackWhenOperatorUnreachable(t *testing.T) {
	sender := &recordingSender{failChat: operatorChat}
	svc := newService(t, sender, true)

	res, err := svc.HandleUpdate(context.Background(), webAppUpdate(555, orderData(t)))
	require.NoError(t, err)
	assert.True(t, res.Outcome.Fallback)
	require.Len(t, sender.to(555), 1)
	assert.NotNil(t, sender.to(555)[0].ReplyMarkup)
}

func TestHandleUpdateIgnoresPlainMessages(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender, true)

	res, err := svc.HandleUpdate(context.Background(), &telegram.Update{
		UpdateID: 2,
		Message:  &telegram.Message{Chat: telegram.Chat{ID: 555}, Text: "/start"},
	})
	require.NoError(t, err)
	assert.False(t, res.Handled)
	assert.Empty(t, sender.requests)
}

func TestHandleUpdateRefusesUnreadyPayload(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender, true)

	_, err := svc.HandleUpdate(context.Background(), webAppUpdate(555, `{"type":"order","name":"Иван"}`))
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	assert.Empty(t, sender.requests)
}

func TestHandleUpdateRejectsGarbage(t *testing.T) {
	svc := newService(t, &recordingSender{}, true)
	_, err := svc.HandleUpdate(context.Background(), webAppUpdate(555, "not json"))
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.HandleUpdate(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewServiceValidatesParams(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}
