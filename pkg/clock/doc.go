// Package clock pins the bot to a fixed UTC-4 wall clock and computes the
// time remaining until the next scheduled daily notification pass.
package clock
