// Package logger provides a small component-tagged logging facade for the bot.
package logger
