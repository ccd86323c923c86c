// Package discord adapts Discord gateway messages to the bot's command
// handler.
package discord
