package channel

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/example/umass-dining-bot/pkg/models"
)

// ErrNotConfigured is returned when a message targets a platform the bot was
// started without. Callers log it and move on; it is never fatal.
var ErrNotConfigured = errors.New("platform not configured")

// Dispatcher sends text messages to channels across platforms. Either client
// may be nil when that platform is disabled. Sends are rate limited per
// platform so a batch pass cannot hammer the chat APIs.
type Dispatcher struct {
	discord  *discordgo.Session
	telegram *tgbotapi.BotAPI

	discordLimit  *rate.Limiter
	telegramLimit *rate.Limiter
}

// New creates a dispatcher over the given platform clients
func New(discord *discordgo.Session, telegram *tgbotapi.BotAPI) *Dispatcher {
	return &Dispatcher{
		discord:  discord,
		telegram: telegram,
		// Both platforms throttle bots at roughly one message per second
		// per channel; a process-wide 1/s with small bursts stays under.
		discordLimit:  rate.NewLimiter(rate.Limit(1), 5),
		telegramLimit: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// Send delivers text to the channel, waiting on the platform's rate limiter
// first. A send to a disabled platform returns ErrNotConfigured.
func (d *Dispatcher) Send(ctx context.Context, ch models.Channel, text string) error {
	switch ch.Platform {
	case models.PlatformDiscord:
		if d.discord == nil {
			return ErrNotConfigured
		}
		if err := d.discordLimit.Wait(ctx); err != nil {
			return err
		}
		if _, err := d.discord.ChannelMessageSend(strconv.FormatInt(ch.ID, 10), text); err != nil {
			return fmt.Errorf("discord send to %d failed: %w", ch.ID, err)
		}
		return nil

	case models.PlatformTelegram:
		if d.telegram == nil {
			return ErrNotConfigured
		}
		if err := d.telegramLimit.Wait(ctx); err != nil {
			return err
		}
		if _, err := d.telegram.Send(tgbotapi.NewMessage(ch.ID, text)); err != nil {
			return fmt.Errorf("telegram send to %d failed: %w", ch.ID, err)
		}
		return nil
	}

	return fmt.Errorf("unknown platform %q", ch.Platform)
}
