// Package telegram adapts Telegram long-poll updates to the bot's command
// handler.
package telegram
