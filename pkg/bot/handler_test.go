package bot

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/example/umass-dining-bot/pkg/listeners"
	"github.com/example/umass-dining-bot/pkg/models"
	"github.com/example/umass-dining-bot/pkg/rooms"
)

type fakeReporter struct{}

func (fakeReporter) ReportFor(_ context.Context, food string) (string, error) {
	return food + " not found", nil
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []string
}

func (s *recordingSender) Send(_ context.Context, _ models.Channel, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, text)
	return nil
}

func (s *recordingSender) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.msgs...)
}

type fakeBatch struct {
	runs int
}

func (b *fakeBatch) RunBatch(context.Context) { b.runs++ }

type fixture struct {
	handler  *Handler
	registry *listeners.Registry
	sender   *recordingSender
	batch    *fakeBatch
	exits    []int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	registry, err := listeners.Load(filepath.Join(t.TempDir(), "listeners.txt"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	roomStore, err := rooms.Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("rooms.Load: %v", err)
	}

	f := &fixture{
		registry: registry,
		sender:   &recordingSender{},
		batch:    &fakeBatch{},
	}
	f.handler = New(registry, fakeReporter{}, f.sender, f.batch, roomStore, nil)
	f.handler.exit = func(code int) { f.exits = append(f.exits, code) }
	return f
}

var (
	someUser = models.User{Platform: models.PlatformTelegram, ID: 5, Name: "Sam"}
	owner    = models.User{Platform: models.PlatformTelegram, ID: models.TelegramOwnerID, Name: "Owner"}
	someChan = models.Channel{Platform: models.PlatformTelegram, ID: 10}
)

func TestNonCommandTextIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.handler.HandleMessage(context.Background(), "what's for lunch?", someUser, someChan)
	if len(f.sender.all()) != 0 {
		t.Fatalf("expected no replies, got %v", f.sender.all())
	}
}

func TestMenuCommand(t *testing.T) {
	f := newFixture(t)
	f.handler.HandleMessage(context.Background(), "/menu pizza", someUser, someChan)

	got := f.sender.all()
	if len(got) != 1 || got[0] != "pizza not found" {
		t.Fatalf("unexpected replies %v", got)
	}
}

func TestBangPrefixWorksToo(t *testing.T) {
	f := newFixture(t)
	f.handler.HandleMessage(context.Background(), "!menu pizza", someUser, someChan)
	if len(f.sender.all()) != 1 {
		t.Fatalf("expected one reply, got %v", f.sender.all())
	}
}

func TestRegisterAddsAndAnswersImmediately(t *testing.T) {
	f := newFixture(t)
	f.handler.HandleMessage(context.Background(), "/register mac and cheese", someUser, someChan)

	got := f.sender.all()
	if len(got) != 2 {
		t.Fatalf("expected confirmation plus today's answer, got %v", got)
	}
	if got[0] != "Will check for mac and cheese" {
		t.Fatalf("unexpected confirmation %q", got[0])
	}
	if got[1] != "mac and cheese not found" {
		t.Fatalf("unexpected immediate answer %q", got[1])
	}

	subs := f.registry.Snapshot()
	if len(subs) != 1 || subs[0].Query != "mac and cheese" || subs[0].Channel != someChan {
		t.Fatalf("unexpected registry state %v", subs)
	}
}

func TestDeregister(t *testing.T) {
	f := newFixture(t)
	f.registry.Add(someChan, "pizza")

	f.handler.HandleMessage(context.Background(), "/deregister pizza", someUser, someChan)
	f.handler.HandleMessage(context.Background(), "/deregister pizza", someUser, someChan)

	got := f.sender.all()
	if len(got) != 2 || got[0] != "Removed pizza" || got[1] != "Couldn't find pizza" {
		t.Fatalf("unexpected replies %v", got)
	}
}

func TestRunTriggersBatch(t *testing.T) {
	f := newFixture(t)
	f.handler.HandleMessage(context.Background(), "/run", someUser, someChan)

	if f.batch.runs != 1 {
		t.Fatalf("expected one batch run, got %d", f.batch.runs)
	}
	got := f.sender.all()
	if len(got) != 1 || got[0] != "Checking for preregistered foods" {
		t.Fatalf("unexpected replies %v", got)
	}
}

func TestQuitIsOwnerOnly(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleMessage(context.Background(), "/quit", someUser, someChan)
	if len(f.exits) != 0 || len(f.sender.all()) != 0 {
		t.Fatal("non-owner quit must be ignored")
	}

	f.handler.HandleMessage(context.Background(), "/quit", owner, someChan)
	if len(f.exits) != 1 || f.exits[0] != 0 {
		t.Fatalf("owner quit should exit 0, got %v", f.exits)
	}
	got := f.sender.all()
	if len(got) != 1 || got[0] != "UMass Bot Quitting" {
		t.Fatalf("unexpected replies %v", got)
	}
}

func TestRoomNotFound(t *testing.T) {
	f := newFixture(t)
	f.handler.HandleMessage(context.Background(), "/room Marcus 131", someUser, someChan)

	got := f.sender.all()
	if len(got) != 1 || got[0] != "Room Marcus 131 not found on SPIRE" {
		t.Fatalf("unexpected replies %v", got)
	}
}

func TestEcho(t *testing.T) {
	f := newFixture(t)
	f.handler.HandleMessage(context.Background(), "/echo hello there", someUser, someChan)

	got := f.sender.all()
	if len(got) != 1 || got[0] != "hello there" {
		t.Fatalf("unexpected replies %v", got)
	}
}

func TestHelpIsPlatformSpecific(t *testing.T) {
	f := newFixture(t)
	discordChan := models.Channel{Platform: models.PlatformDiscord, ID: 11}

	f.handler.HandleMessage(context.Background(), "!help", someUser, discordChan)
	got := f.sender.all()
	if len(got) != 2 {
		t.Fatalf("expected two help lines, got %v", got)
	}
	if got[0][0] != '`' {
		t.Fatalf("discord help should use code blocks, got %q", got[0])
	}

	f2 := newFixture(t)
	f2.handler.HandleMessage(context.Background(), "/help", someUser, someChan)
	got2 := f2.sender.all()
	if len(got2) != 2 {
		t.Fatalf("expected two help lines, got %v", got2)
	}
	if got2[0][0] != '/' {
		t.Fatalf("telegram help should use slash syntax, got %q", got2[0])
	}
}
