// Package listeners maintains the registry of (channel, food query)
// subscriptions and its durable flat-file mirror.
package listeners
