// Package notify forwards accepted contact messages to the admin Telegram chat.
package notify

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"brewbliss/models"
)

// Sender is the slice of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	api    Sender
	chatID int64
	logger *log.Logger
}

// NewTelegram logs in with token. It fails when the token is rejected.
func NewTelegram(token string, chatID int64, logger *log.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	return NewWithSender(api, chatID, logger), nil
}

func NewWithSender(api Sender, chatID int64, logger *log.Logger) *Telegram {
	if logger == nil {
		logger = log.Default()
	}
	return &Telegram{api: api, chatID: chatID, logger: logger}
}

func (t *Telegram) NotifyMessage(msg models.ContactMessage) error {
	out := tgbotapi.NewMessage(t.chatID, FormatMessage(msg))
	if _, err := t.api.Send(out); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	t.logger.Printf("notify: message %s sent to chat %d", msg.ID, t.chatID)
	return nil
}

// FormatMessage renders the plain-text admin notification.
func FormatMessage(msg models.ContactMessage) string {
	var b strings.Builder
	if msg.Priority == models.PriorityHigh {
		b.WriteString("[HIGH PRIORITY] ")
	}
	fmt.Fprintf(&b, "New message from %s <%s>\n", msg.Name, msg.Email)
	if msg.Sentiment != "" || msg.Priority != "" {
		fmt.Fprintf(&b, "Sentiment: %s, Priority: %s\n", orDash(string(msg.Sentiment)), orDash(string(msg.Priority)))
	}
	fmt.Fprintf(&b, "Date: %s\n\n%s", msg.Date, msg.Message)
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
