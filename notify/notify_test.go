package notify

import (
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"brewbliss/models"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func sample() models.ContactMessage {
	return models.ContactMessage{
		ID: "m1", Name: "Ada", Email: "ada@example.com", Message: "Loved the cold brew",
		Date: "2026-01-02T03:04:05.000Z", Sentiment: models.SentimentPositive, Priority: models.PriorityHigh,
	}
}

func TestFormatMessage(t *testing.T) {
	got := FormatMessage(sample())
	for _, want := range []string{"[HIGH PRIORITY]", "Ada <ada@example.com>", "Sentiment: Positive, Priority: High", "Loved the cold brew"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}

	plain := sample()
	plain.Sentiment, plain.Priority = "", ""
	got = FormatMessage(plain)
	if strings.Contains(got, "Sentiment") || strings.Contains(got, "PRIORITY") {
		t.Errorf("unanalysed message should omit analysis: %q", got)
	}
}

func TestNotifyMessage(t *testing.T) {
	f := &fakeSender{}
	n := NewWithSender(f, 99, log.New(io.Discard, "", 0))
	if err := n.NotifyMessage(sample()); err != nil {
		t.Fatal(err)
	}
	if len(f.sent) != 1 || f.sent[0].ChatID != 99 {
		t.Fatalf("unexpected sends %+v", f.sent)
	}
}

func TestNotifyMessageError(t *testing.T) {
	n := NewWithSender(&fakeSender{err: errors.New("down")}, 1, log.New(io.Discard, "", 0))
	if err := n.NotifyMessage(sample()); err == nil || !strings.Contains(err.Error(), "telegram send") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
