package telegram

import (
	"context"
	"log/slog"

	"github.com/PoluyanbIch/quizbot/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Dispatcher receives inbound messages.
type Dispatcher interface {
	Dispatch(ctx context.Context, in session.Inbound)
	Wait()
}

type Bot struct {
	api    *tgbotapi.BotAPI
	logger *slog.Logger
}

var _ session.Sender = (*Bot)(nil)

func NewBot(token string, debug bool, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug

	return &Bot{api: api, logger: logger}, nil
}

// Start polls for updates until ctx is cancelled, then waits for queued
// messages to finish.
func (b *Bot) Start(ctx context.Context, d Dispatcher) {
	b.logger.Info("authorised on account", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer d.Wait()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if in, ok := inboundFromUpdate(update); ok {
				d.Dispatch(ctx, in)
			}
		}
	}
}

func inboundFromUpdate(update tgbotapi.Update) (session.Inbound, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return session.Inbound{}, false
	}

	in := session.Inbound{UserID: msg.Chat.ID, Text: msg.Text}
	if msg.From != nil {
		in.Username = msg.From.UserName
		in.FirstName = msg.From.FirstName
	}
	return in, true
}

func (b *Bot) Send(_ context.Context, userID int64, reply session.Reply) error {
	_, err := b.api.Send(newMessage(userID, reply))
	return err
}

func newMessage(chatID int64, reply session.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}

	if len(reply.Keyboard) > 0 {
		rows := make([][]tgbotapi.KeyboardButton, 0, len(reply.Keyboard))
		for _, labels := range reply.Keyboard {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(labels))
			for _, label := range labels {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
		}

		kb := tgbotapi.NewReplyKeyboard(rows...)
		kb.OneTimeKeyboard = reply.OneTime
		msg.ReplyMarkup = kb
	}

	return msg
}
