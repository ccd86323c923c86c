package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/umass-dining-bot/pkg/bot"
	"github.com/example/umass-dining-bot/pkg/channel"
	"github.com/example/umass-dining-bot/pkg/clock"
	"github.com/example/umass-dining-bot/pkg/config"
	"github.com/example/umass-dining-bot/pkg/dining"
	"github.com/example/umass-dining-bot/pkg/discord"
	"github.com/example/umass-dining-bot/pkg/listeners"
	"github.com/example/umass-dining-bot/pkg/logger"
	"github.com/example/umass-dining-bot/pkg/rooms"
	"github.com/example/umass-dining-bot/pkg/scheduler"
	"github.com/example/umass-dining-bot/pkg/storage"
	"github.com/example/umass-dining-bot/pkg/telegram"
)

func main() {
	log := logger.Global
	log.Info("Starting UMass dining bot...")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()
	store.StartGCRoutine(10 * time.Minute)

	// A corrupt listeners file refuses to start rather than drop subscribers
	registry, err := listeners.Load(cfg.ListenersFile)
	if err != nil {
		log.Error("Failed to load listeners: %v", err)
		os.Exit(1)
	}

	roomStore, err := rooms.Load(cfg.RoomDataFile)
	if err != nil {
		log.Error("Failed to load room data: %v", err)
		os.Exit(1)
	}

	clk := clock.New()
	fetcher := dining.NewHTTPFetcher()
	cache := dining.NewCache(fetcher, clk.Now, store)
	engine := dining.NewEngine(cache, clk.Now)

	// Populate the cache eagerly; a failure here is survivable, the first
	// lookup will retry.
	if err := cache.EnsureFresh(context.Background()); err != nil {
		log.Warn("Initial menu fetch failed: %v", err)
	}

	var telegramBot *telegram.Bot
	if !cfg.DisableTelegram {
		telegramBot, err = telegram.New(cfg.TelegramToken)
		if err != nil {
			log.Error("Failed to initialize Telegram bot: %v", err)
			os.Exit(1)
		}
	}

	var discordBot *discord.Bot
	if !cfg.DisableDiscord {
		discordBot, err = discord.New(cfg.DiscordToken)
		if err != nil {
			log.Error("Failed to initialize Discord bot: %v", err)
			os.Exit(1)
		}
	}

	dispatcher := channel.New(sessionOf(discordBot), apiOf(telegramBot))

	sched := scheduler.New(registry, engine, dispatcher, clk)
	sched.Start()

	handler := bot.New(registry, engine, dispatcher, sched, roomStore, fetcher)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Shutting down...")
		sched.Stop()
		if discordBot != nil {
			discordBot.Close()
		}
		store.Close()
		os.Exit(0)
	}()

	if discordBot != nil {
		if err := discordBot.Start(handler); err != nil {
			log.Error("Error running Discord bot: %v", err)
			os.Exit(1)
		}
	}

	log.Info("Bot is now running. Press CTRL-C to exit.")
	if telegramBot != nil {
		if err := telegramBot.Start(handler); err != nil {
			log.Error("Error running Telegram bot: %v", err)
			os.Exit(1)
		}
	} else {
		select {}
	}
}

func sessionOf(b *discord.Bot) *discordgo.Session {
	if b == nil {
		return nil
	}
	return b.Session()
}

func apiOf(b *telegram.Bot) *tgbotapi.BotAPI {
	if b == nil {
		return nil
	}
	return b.API()
}
