// Package models holds the domain types shared across the bot: platforms,
// channels, subscriptions and users.
package models
