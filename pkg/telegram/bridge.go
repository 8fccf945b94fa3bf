package telegram

import (
	"context"
	"unicode/utf8"

	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
)

// MessageSender is the part of Client the bridge needs.
type MessageSender interface {
	SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error)
}

// OperatorBridge delivers serialized submissions to the operator chat.
// Notices go to the shopper chat when one is known and are dropped otherwise.
type OperatorBridge struct {
	sender         MessageSender
	operatorChatID int64
	userChatID     int64
	format         func(string) string
}

type BridgeOption func(*OperatorBridge)

// WithMessageFormat rewrites a serialized record before it reaches the
// operator chat. The record is sent unchanged when the rewrite is empty or
// longer than one message.
func WithMessageFormat(format func(string) string) BridgeOption {
	return func(b *OperatorBridge) {
		b.format = format
	}
}

func NewOperatorBridge(sender MessageSender, operatorChatID int64, opts ...BridgeOption) (*OperatorBridge, error) {
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "telegram sender is required")
	}
	if operatorChatID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "operator chat id is required")
	}
	b := &OperatorBridge{sender: sender, operatorChatID: operatorChatID}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// ForUser returns a copy whose notices are sent to chatID.
func (b *OperatorBridge) ForUser(chatID int64) *OperatorBridge {
	clone := *b
	clone.userChatID = chatID
	return &clone
}

func (b *OperatorBridge) SendSerializedMessage(ctx context.Context, text string) error {
	if b.format != nil {
		if formatted := b.format(text); formatted != "" && utf8.RuneCountInString(formatted) <= maxMessageLength {
			text = formatted
		}
	}
	_, err := b.sender.SendMessage(ctx, SendMessageRequest{
		ChatID:                b.operatorChatID,
		Text:                  text,
		DisableWebPagePreview: true,
	})
	return err
}

func (b *OperatorBridge) ShowTransientNotice(ctx context.Context, text string) error {
	if b.userChatID == 0 {
		return nil
	}
	_, err := b.sender.SendMessage(ctx, SendMessageRequest{ChatID: b.userChatID, Text: text})
	return err
}
