package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the slice of the Telegram client the handlers actually use. The
// concrete *tgbotapi.BotAPI satisfies it; tests substitute a fake.
type API interface {
	// Send delivers a new message or an edit of an existing one.
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	// Request fires a method with no message result, such as a callback
	// acknowledgment.
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	// CopyMessage forwards an existing message verbatim to a recipient,
	// keeping its rich formatting.
	CopyMessage(c tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error)
}

// messageCopier adapts one authored message to the broadcast.Copier
// contract.
type messageCopier struct {
	api        API
	fromChatID int64
	messageID  int
}

func (c messageCopier) CopyTo(recipientID int64) error {
	_, err := c.api.CopyMessage(tgbotapi.NewCopyMessage(recipientID, c.fromChatID, c.messageID))
	return err
}
