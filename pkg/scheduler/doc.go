// Package scheduler wakes up once a day at the scheduled time and tells
// every subscriber where their food is being served.
package scheduler
