// Package events scrapes the campus events page for the events command.
package events
