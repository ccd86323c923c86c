package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/example/umass-dining-bot/pkg/bot"
	"github.com/example/umass-dining-bot/pkg/logger"
	"github.com/example/umass-dining-bot/pkg/models"
)

// Bot receives Discord gateway events and feeds messages to the command
// handler
type Bot struct {
	session *discordgo.Session
	logger  *logger.Logger
}

// New creates a new Discord bot instance
func New(token string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	return &Bot{
		session: session,
		logger:  logger.New("discord"),
	}, nil
}

// Session exposes the underlying client for the dispatcher
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Start registers the message handler and opens the gateway connection.
// Unlike Telegram, Discord delivers the bot's own messages back, so those
// are filtered here.
func (b *Bot) Start(handler *bot.Handler) error {
	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if s.State.User != nil && m.Author.ID == s.State.User.ID {
			return
		}

		author := userFrom(m.Author)
		channelID, err := strconv.ParseInt(m.ChannelID, 10, 64)
		if err != nil {
			b.logger.Error("Unparseable channel id %q: %v", m.ChannelID, err)
			return
		}
		ch := models.Channel{Platform: models.PlatformDiscord, ID: channelID}

		go handler.HandleMessage(context.Background(), m.Content, author, ch)
	})

	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info("Connected to Discord as %s", r.User.Username)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord gateway: %w", err)
	}
	return nil
}

// Close shuts down the gateway connection
func (b *Bot) Close() error {
	return b.session.Close()
}

// userFrom builds the platform-independent author with the
// "name#discriminator" display form
func userFrom(author *discordgo.User) models.User {
	id, _ := strconv.ParseInt(author.ID, 10, 64)
	return models.User{
		Platform: models.PlatformDiscord,
		ID:       id,
		Name:     fmt.Sprintf("%s#%s", author.Username, author.Discriminator),
	}
}
