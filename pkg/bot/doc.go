// Package bot implements the chat command surface shared by every platform
// adapter.
package bot
