package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/example/umass-dining-bot/pkg/channel"
	"github.com/example/umass-dining-bot/pkg/events"
	"github.com/example/umass-dining-bot/pkg/listeners"
	"github.com/example/umass-dining-bot/pkg/logger"
	"github.com/example/umass-dining-bot/pkg/models"
	"github.com/example/umass-dining-bot/pkg/rooms"
)

// Reporter builds the answer for one food query
type Reporter interface {
	ReportFor(ctx context.Context, food string) (string, error)
}

// Sender delivers a text message to a channel
type Sender interface {
	Send(ctx context.Context, ch models.Channel, text string) error
}

// BatchRunner triggers one immediate pass over all subscriptions
type BatchRunner interface {
	RunBatch(ctx context.Context)
}

// Handler interprets chat commands. Both platform adapters feed inbound
// messages here, so command behavior stays identical across platforms.
type Handler struct {
	registry *listeners.Registry
	reporter Reporter
	sender   Sender
	batch    BatchRunner
	rooms    *rooms.Store
	fetcher  events.Fetcher

	logger *logger.Logger
	exit   func(code int)
}

// New creates a command handler
func New(registry *listeners.Registry, reporter Reporter, sender Sender, batch BatchRunner, roomStore *rooms.Store, fetcher events.Fetcher) *Handler {
	return &Handler{
		registry: registry,
		reporter: reporter,
		sender:   sender,
		batch:    batch,
		rooms:    roomStore,
		fetcher:  fetcher,
		logger:   logger.New("bot"),
		exit:     os.Exit,
	}
}

// HandleMessage dispatches one inbound message. Non-command text is ignored.
func (h *Handler) HandleMessage(ctx context.Context, content string, author models.User, ch models.Channel) {
	h.logger.Info("%s (%s %d) says: %s", author.Name, author.Platform, author.ID, content)

	if !strings.HasPrefix(content, "!") && !strings.HasPrefix(content, "/") {
		return
	}
	content = content[1:]

	switch {
	case strings.HasPrefix(content, "menu "):
		h.handleMenu(ctx, ch, content[len("menu "):])
	case strings.HasPrefix(content, "register "):
		h.handleRegister(ctx, ch, content[len("register "):])
	case strings.HasPrefix(content, "deregister "):
		h.handleDeregister(ctx, ch, content[len("deregister "):])
	case strings.HasPrefix(content, "echo "):
		h.reply(ctx, ch, content[len("echo "):])
	case strings.HasPrefix(content, "room "):
		h.handleRoom(ctx, ch, content[len("room "):])
	case content == "events":
		h.handleEvents(ctx, ch)
	case content == "run":
		h.reply(ctx, ch, "Checking for preregistered foods")
		h.batch.RunBatch(ctx)
	case content == "help":
		h.handleHelp(ctx, ch)
	case strings.HasPrefix(content, "quit"):
		if !author.IsOwner() {
			return
		}
		h.reply(ctx, ch, "UMass Bot Quitting")
		h.exit(0)
	}
}

func (h *Handler) handleMenu(ctx context.Context, ch models.Channel, food string) {
	report, err := h.reporter.ReportFor(ctx, food)
	if err != nil {
		h.logger.Error("Lookup for %q failed: %v", food, err)
		h.reply(ctx, ch, fmt.Sprintf("Couldn't check for %s today", food))
		return
	}
	h.reply(ctx, ch, report)
}

func (h *Handler) handleRegister(ctx context.Context, ch models.Channel, food string) {
	h.registry.Add(ch, food)
	h.reply(ctx, ch, fmt.Sprintf("Will check for %s", food))

	// The subscriber also gets today's answer right away
	h.handleMenu(ctx, ch, food)
}

func (h *Handler) handleDeregister(ctx context.Context, ch models.Channel, food string) {
	if h.registry.RemoveIfPresent(ch, food) {
		h.reply(ctx, ch, fmt.Sprintf("Removed %s", food))
	} else {
		h.reply(ctx, ch, fmt.Sprintf("Couldn't find %s", food))
	}
}

func (h *Handler) handleRoom(ctx context.Context, ch models.Channel, room string) {
	sections, ok := h.rooms.Lookup(room)
	if !ok {
		h.reply(ctx, ch, fmt.Sprintf("Room %s not found on SPIRE", room))
		return
	}

	h.reply(ctx, ch, fmt.Sprintf("Room %s: ", room))
	for _, section := range sections {
		h.reply(ctx, ch, section.Format())
	}
}

func (h *Handler) handleEvents(ctx context.Context, ch models.Channel) {
	evs, err := events.Fetch(ctx, h.fetcher)
	if err != nil {
		h.logger.Error("Events fetch failed: %v", err)
		h.reply(ctx, ch, "Couldn't check today's events")
		return
	}

	h.reply(ctx, ch, "Today's events are:")
	for _, ev := range evs {
		h.reply(ctx, ch, ev.Format())
	}
}

func (h *Handler) handleHelp(ctx context.Context, ch models.Channel) {
	switch ch.Platform {
	case models.PlatformDiscord:
		h.reply(ctx, ch, "```!menu [food name]     | tells you where that food is being served today```")
		h.reply(ctx, ch, "```!register [food name] | schedules it to tell you each day where that food is being served that day```")
	default:
		h.reply(ctx, ch, "/menu [food name] => tells you where that food is being served today")
		h.reply(ctx, ch, "/register [food name] => schedules it to tell you each day where that food is being served that day")
	}
}

// reply sends text back on the channel the command came from. Send failures
// are logged, never propagated; there is no silent failure path otherwise.
func (h *Handler) reply(ctx context.Context, ch models.Channel, text string) {
	if err := h.sender.Send(ctx, ch, text); err != nil {
		if errors.Is(err, channel.ErrNotConfigured) {
			h.logger.Warn("Reply to %s dropped: platform not configured", ch)
			return
		}
		h.logger.Error("Reply to %s failed: %v", ch, err)
	}
}
