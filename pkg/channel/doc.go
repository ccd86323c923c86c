// Package channel abstracts over the chat platforms a report can be sent to.
// Adding a platform means adding a variant here; the shared report-building
// code never changes.
package channel
