package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/umass-dining-bot/pkg/bot"
	"github.com/example/umass-dining-bot/pkg/logger"
	"github.com/example/umass-dining-bot/pkg/models"
)

// Bot receives Telegram messages over long polling and feeds them to the
// command handler
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *logger.Logger
}

// New creates a new Telegram bot instance
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	b := &Bot{
		api:    api,
		logger: logger.New("telegram"),
	}

	b.logger.Info("Telegram bot created: @%s", api.Self.UserName)
	return b, nil
}

// API exposes the underlying client for the dispatcher
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

// Start listens for updates and dispatches each text message on its own
// goroutine. It blocks until the update channel closes.
func (b *Bot) Start(handler *bot.Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for update := range b.api.GetUpdatesChan(u) {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}

		msg := update.Message
		author := userFrom(msg.From)
		ch := models.Channel{Platform: models.PlatformTelegram, ID: msg.Chat.ID}

		go handler.HandleMessage(context.Background(), msg.Text, author, ch)
	}

	return nil
}

// userFrom builds the platform-independent author. The display name is
// "first_name last_name (username)", with only first_name guaranteed.
func userFrom(from *tgbotapi.User) models.User {
	if from == nil {
		return models.User{Platform: models.PlatformTelegram}
	}

	name := from.FirstName
	if from.LastName != "" {
		name = fmt.Sprintf("%s %s", name, from.LastName)
	}
	if from.UserName != "" {
		name = fmt.Sprintf("%s (%s)", name, from.UserName)
	}

	return models.User{
		Platform: models.PlatformTelegram,
		ID:       from.ID,
		Name:     name,
	}
}
