// Package rooms answers "what meets in this room" from a static class
// schedule export.
package rooms
