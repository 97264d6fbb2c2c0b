package services

import (
	"context"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService is the chat-platform variant of the inbound boundary:
// a long-polling loop feeding the same conversation service, with the
// chat id as conversation id.
type TelegramService struct {
	bot  *tgbotapi.BotAPI
	conv *ConversationService
}

// NewTelegramService authorizes the bot with the given token.
func NewTelegramService(token string, conv *ConversationService) (*TelegramService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Telegram bot authorized on account %s", bot.Self.UserName)
	return &TelegramService{bot: bot, conv: conv}, nil
}

// Start polls for updates until the context is canceled. Each message runs
// one turn of the conversation and the reply is sent back to the chat.
func (t *TelegramService) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}

			chatID := update.Message.Chat.ID
			reply := t.conv.ProcessMessage(ctx, strconv.FormatInt(chatID, 10), update.Message.Text)
			if reply == "" {
				continue
			}

			msg := tgbotapi.NewMessage(chatID, reply)
			if _, err := t.bot.Send(msg); err != nil {
				log.Printf("❌ Failed to send Telegram reply to %d: %v", chatID, err)
			}
		}
	}
}
