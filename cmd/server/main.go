package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/dkaeza/reactobot/internal/api"
	"github.com/dkaeza/reactobot/internal/bot"
	"github.com/dkaeza/reactobot/internal/presence"
	"github.com/dkaeza/reactobot/internal/store"
	"github.com/dkaeza/reactobot/pkg/utils"
)

func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	// Initialize the store: MySQL when a database is configured, in-memory
	// otherwise
	var st store.Store
	if databaseURL := cfg.Get("DATABASE_URL"); databaseURL != "" {
		sqlStore, err := store.NewSQLStore(databaseURL)
		if err != nil {
			log.Fatalf("[MAIN]: failed to initialize store: %v", err)
		}
		defer sqlStore.Close()
		st = sqlStore
		log.Println("[MAIN]: using MySQL store")
	} else {
		st = store.NewMemoryStore()
		log.Println("[MAIN]: DATABASE_URL not set, using in-memory store")
	}

	// Seed default reactions on first run
	seedPath := cfg.GetWithDefault("REACTIONS_SEED", "configs/reactions.yaml")
	if err := store.SeedFromFile(st, seedPath); err != nil {
		log.Printf("[MAIN]: could not seed reactions: %v", err)
	}

	tracker := presence.NewTracker()

	// Wait for interrupt signal to gracefully shut down
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps := api.Dependencies{
		Store:   st,
		Tracker: tracker,
	}

	// Start the Discord bot when a token is configured. Login failures are
	// non-fatal: the dashboard keeps serving with the bot marked offline
	var b *bot.Bot
	if cfg.Has("DISCORD_TOKEN") {
		var err error
		b, err = bot.NewBot(cfg, st, tracker)
		if err == nil {
			err = b.Start()
		}
		if err != nil {
			log.Printf("[MAIN]: failed to start Discord bot: %v", err)
			markOffline(st, err)
			b = nil
		} else {
			deps.RefreshActivity = b.RefreshActivity
		}
	} else {
		log.Println("[MAIN]: DISCORD_TOKEN not set, dashboard runs without the bot")
	}

	// Keep the displayed activity in sync with live guild data
	scheduler := cron.New()
	if b != nil {
		if _, err := scheduler.AddFunc("@every 1m", b.RefreshActivity); err != nil {
			log.Printf("[MAIN]: could not schedule activity refresh: %v", err)
		}
		scheduler.Start()
	}

	// Serve the dashboard API
	go api.Start(cfg, deps)

	log.Println("[MAIN]: Running. Press Ctrl+C to exit.")
	<-ctx.Done()

	scheduler.Stop()
	if b != nil {
		if err := b.Stop(); err != nil {
			log.Printf("[MAIN]: error during bot shutdown: %v", err)
		}
	}

	log.Println("[MAIN]: stopped gracefully")
}

// markOffline records a failed bot start in the event log and settings
func markOffline(st store.Store, cause error) {
	if _, err := st.AddEvent(store.EventError, fmt.Sprintf("Failed to start bot: %v", cause)); err != nil {
		log.Printf("[MAIN]: could not record error event: %v", err)
	}

	offline := false
	if _, err := st.UpdateSettings(store.SettingsPatch{IsOnline: &offline}); err != nil {
		log.Printf("[MAIN]: could not update online flag: %v", err)
	}
}
