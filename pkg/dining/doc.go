// Package dining knows the four campus dining commons: which meals each
// serves on which weekday, how to fetch and cache their daily menu pages,
// and how to search the cached pages for a food item.
package dining
