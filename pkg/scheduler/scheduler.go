package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/umass-dining-bot/pkg/channel"
	"github.com/example/umass-dining-bot/pkg/clock"
	"github.com/example/umass-dining-bot/pkg/listeners"
	"github.com/example/umass-dining-bot/pkg/logger"
	"github.com/example/umass-dining-bot/pkg/models"
)

// batchConcurrency bounds how many subscriptions are checked at once
const batchConcurrency = 4

// Reporter builds the daily answer for one food query
type Reporter interface {
	ReportFor(ctx context.Context, food string) (string, error)
}

// Sender delivers a text message to a channel
type Sender interface {
	Send(ctx context.Context, ch models.Channel, text string) error
}

// Service runs the daily notification pass: sleep until the next scheduled
// time, walk a snapshot of the registry, and send each subscriber today's
// report for their food.
type Service struct {
	registry *listeners.Registry
	reporter Reporter
	sender   Sender
	clk      *clock.Clock

	logger   *logger.Logger
	stopChan chan struct{}
}

// New creates a new scheduler service
func New(registry *listeners.Registry, reporter Reporter, sender Sender, clk *clock.Clock) *Service {
	return &Service{
		registry: registry,
		reporter: reporter,
		sender:   sender,
		clk:      clk,
		logger:   logger.New("scheduler"),
		stopChan: make(chan struct{}),
	}
}

// Start launches the scheduler loop in the background
func (s *Service) Start() {
	s.logger.Info("Starting daily menu scheduler")
	go s.run()
}

// Stop stops the scheduler
func (s *Service) Stop() {
	s.logger.Info("Stopping daily menu scheduler")
	close(s.stopChan)
}

func (s *Service) run() {
	for {
		wait := s.clk.UntilNextRun(s.clk.Now())
		s.logger.Info("Next menu check in %v", wait)

		select {
		case <-time.After(wait):
			s.logger.Info("Checking for preregistered foods now")
			s.RunBatch(context.Background())
		case <-s.stopChan:
			return
		}
	}
}

// RunBatch performs one full pass over the current subscriptions. Each
// subscription is checked independently: a failed lookup or send for one
// never aborts the rest, it is logged and that subscriber is told the check
// could not be completed.
func (s *Service) RunBatch(ctx context.Context) {
	subs := s.registry.Snapshot()
	s.logger.Info("Running batch pass over %d subscriptions", len(subs))

	g := &errgroup.Group{}
	g.SetLimit(batchConcurrency)

	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			s.checkOne(ctx, sub)
			return nil
		})
	}

	_ = g.Wait()
}

// checkOne looks up one subscription's food and sends the result
func (s *Service) checkOne(ctx context.Context, sub models.Subscription) {
	s.logger.Info("Checking on %s for %s", sub.Channel, sub.Query)

	text, err := s.reporter.ReportFor(ctx, sub.Query)
	if err != nil {
		s.logger.Error("Lookup for %q failed: %v", sub.Query, err)
		text = fmt.Sprintf("Couldn't check for %s today", sub.Query)
	}

	if err := s.sender.Send(ctx, sub.Channel, text); err != nil {
		if errors.Is(err, channel.ErrNotConfigured) {
			s.logger.Warn("Skipping %s: platform not configured", sub.Channel)
			return
		}
		s.logger.Error("Send to %s failed: %v", sub.Channel, err)
	}
}
