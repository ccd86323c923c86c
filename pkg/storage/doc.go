// Package storage provides persistent storage for the bot. It uses BadgerDB
// as the embedded database; the dining package mirrors its daily menu
// snapshot here so a restart does not refetch every hall's page.
package storage
