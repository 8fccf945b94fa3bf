// Package telegram talks to the Telegram Bot API: outbound messages to the
// operator and shoppers, inbound webhook updates from the Mini App.
package telegram

// Update is the subset of a webhook update the storefront reads.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type Message struct {
	MessageID  int64       `json:"message_id"`
	From       *User       `json:"from,omitempty"`
	Chat       Chat        `json:"chat"`
	Date       int64       `json:"date"`
	Text       string      `json:"text,omitempty"`
	WebAppData *WebAppData `json:"web_app_data,omitempty"`
}

// WebAppData carries the string a Mini App passed to sendData.
type WebAppData struct {
	Data       string `json:"data"`
	ButtonText string `json:"button_text"`
}

// WebAppPayload returns the Mini App data of the update, if any.
func (u Update) WebAppPayload() (string, bool) {
	if u.Message == nil || u.Message.WebAppData == nil {
		return "", false
	}
	return u.Message.WebAppData.Data, true
}

// ChatID is the chat the update came from, zero when there is none.
func (u Update) ChatID() int64 {
	if u.Message == nil {
		return 0
	}
	return u.Message.Chat.ID
}
