// Package telegram adapts the conversation engine to the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/okravets/barberflow/internal/conversation"
	"github.com/okravets/barberflow/pkg/logging"
)

// Handler consumes inbound messages.
type Handler interface {
	HandleMessage(ctx context.Context, chatID int64, text string)
}

// Bot runs the long-polling update loop and delivers outbound replies. It
// implements conversation.Outbound and reminder.Notifier.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler Handler
	logger  *logging.Logger
	workers int
}

// New creates a bot from an authorized API client.
func New(api *tgbotapi.BotAPI, logger *logging.Logger, workers int) *Bot {
	if api == nil {
		panic("telegram: api client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = 4
	}
	return &Bot{api: api, logger: logger, workers: workers}
}

// SetHandler attaches the inbound message handler. Must be called before Run.
func (b *Bot) SetHandler(h Handler) {
	b.handler = h
}

// Run polls Telegram for updates until the context is cancelled. Messages
// from one chat are processed serially; distinct chats are spread across a
// fixed worker pool.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}
	updates := b.api.GetUpdatesChan(u)

	// Sharding by chat id keeps each chat on one worker, preserving the
	// serial-per-client processing model.
	shards := make([]chan tgbotapi.Update, b.workers)
	for i := range shards {
		shards[i] = make(chan tgbotapi.Update, 16)
		go b.runWorker(ctx, shards[i])
	}

	b.logger.Info("telegram: polling for updates", "account", b.api.Self.UserName, "workers", b.workers)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			for _, shard := range shards {
				close(shard)
			}
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Chat == nil {
				continue
			}
			chatID := update.Message.Chat.ID
			idx := int(uint64(chatID) % uint64(len(shards)))
			select {
			case shards[idx] <- update:
			case <-ctx.Done():
			}
		}
	}
}

func (b *Bot) runWorker(ctx context.Context, updates <-chan tgbotapi.Update) {
	for update := range updates {
		b.handler.HandleMessage(ctx, update.Message.Chat.ID, update.Message.Text)
	}
}

// Send delivers a conversation reply with its keyboard.
func (b *Bot) Send(_ context.Context, chatID int64, r conversation.Reply) error {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if r.HTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	switch {
	case len(r.Keyboard) > 0:
		msg.ReplyMarkup = buildKeyboard(r.Keyboard)
	case r.RemoveKeyboard:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("telegram: send to %d: %w", chatID, err)
	}
	return nil
}

// Notify delivers a reminder text. Reminder delivery shares the plain send
// path; failures are the caller's to log.
func (b *Bot) Notify(ctx context.Context, chatID int64, text string, html bool) error {
	return b.Send(ctx, chatID, conversation.Reply{Text: text, HTML: html})
}

func buildKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	buttonRows := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		buttonRows = append(buttonRows, buttons)
	}
	kb := tgbotapi.NewReplyKeyboard(buttonRows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}
