package models

import (
	"fmt"
	"strconv"
)

// Platform identifies which chat service a channel belongs to
type Platform string

const (
	PlatformDiscord  Platform = "discord"
	PlatformTelegram Platform = "telegram"
)

// Hard-coded bot owner ids, one per platform. Only the owner may shut the
// bot down remotely.
const (
	DiscordOwnerID  int64 = 90927967651262464
	TelegramOwnerID int64 = 698919547
)

// Channel is a message destination on one of the supported platforms.
// It carries just enough addressing information to send a text message,
// and has a stable textual encoding for the listeners file.
type Channel struct {
	Platform Platform `json:"platform"`
	ID       int64    `json:"id"`
}

// String renders the channel in the listeners-file encoding:
// "<platform> <decimal id>".
func (c Channel) String() string {
	return fmt.Sprintf("%s %d", c.Platform, c.ID)
}

// ParseChannel reconstructs a channel from its platform tag and decimal
// address as stored in the listeners file.
func ParseChannel(platform, address string) (Channel, error) {
	var p Platform
	switch platform {
	case string(PlatformDiscord):
		p = PlatformDiscord
	case string(PlatformTelegram):
		p = PlatformTelegram
	default:
		return Channel{}, fmt.Errorf("unknown platform %q", platform)
	}

	id, err := strconv.ParseInt(address, 10, 64)
	if err != nil {
		return Channel{}, fmt.Errorf("invalid channel address %q: %w", address, err)
	}

	return Channel{Platform: p, ID: id}, nil
}

// Subscription pairs a destination channel with a food query. Uniqueness is
// structural over the full pair: one channel may watch many foods, and one
// food may be watched by many channels.
type Subscription struct {
	Channel Channel `json:"channel"`
	Query   string  `json:"query"`
}

// User is a platform-independent view of a message author
type User struct {
	Platform Platform
	ID       int64
	// Name is "first_name last_name (username)" on Telegram and
	// "name#discriminator" on Discord. Neither is stable over time.
	Name string
}

// IsOwner reports whether the user is the bot's hard-coded owner
func (u User) IsOwner() bool {
	switch u.Platform {
	case PlatformDiscord:
		return u.ID == DiscordOwnerID
	case PlatformTelegram:
		return u.ID == TelegramOwnerID
	}
	return false
}
