package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"discshop/api"
	"discshop/bot"
	"discshop/config"
	"discshop/database"
	"discshop/events"
	"discshop/ratelimit"
	"discshop/repository"
	"discshop/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting shop bot...")

	// Load configuration
	cfg := config.Get()

	// Choose the economy backend: Postgres when a database URL is
	// configured, the JSON snapshot store otherwise.
	var economyRepo service.EconomyRepository
	var db *database.DB
	if cfg.DatabaseURL != "" {
		log.Println("Connecting to database...")
		var err error
		db, err = database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Database connection established successfully")
		economyRepo = repository.NewPostgresEconomyRepository(db)
	} else {
		log.Printf("No DATABASE_URL set, using file storage in %s", cfg.DataDir)
		fileRepo, err := repository.NewFileEconomyRepository(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to initialize file storage: %w", err)
		}
		economyRepo = fileRepo
	}

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()

	// Initialize shared infrastructure
	limiter := ratelimit.New(ratelimit.DefaultConfig())
	scheduler := bot.NewScheduler()
	ticketStore := repository.NewTicketStore()

	// Initialize services
	log.Println("Initializing services...")
	economyService := service.NewEconomyService(economyRepo, eventBus, cfg.StartingBalance)

	// The HTTP API runs regardless of whether the bot connects, so
	// health checks keep working while the token is absent.
	var discordBot *bot.Bot
	apiServer := api.NewServer(cfg.Port, func() *api.BotStatus {
		if discordBot == nil {
			return nil
		}
		status := discordBot.Status()
		return &api.BotStatus{
			Tag:           status.UserTag,
			ID:            status.UserID,
			Guilds:        status.Guilds,
			ActiveTickets: status.ActiveTickets,
			ClosedTickets: status.ClosedTickets,
		}
	})
	apiErr := make(chan error, 1)
	go func() {
		apiErr <- apiServer.Start()
	}()

	if cfg.DiscordToken == "" {
		log.Println("No DISCORD_TOKEN set, running HTTP API only")
	} else {
		log.Println("Initializing Discord bot...")
		botConfig := bot.Config{
			Token:          cfg.DiscordToken,
			TicketCategory: cfg.TicketCategory,
			AdminRole:      cfg.AdminRole,
			SupportRoles:   cfg.SupportRoles,
			LogChannel:     cfg.LogChannel,
			OrderChannelID: cfg.OrderChannelID,
		}
		var err error
		discordBot, err = bot.New(botConfig, ticketStore, economyService, limiter, scheduler, eventBus)
		if err != nil {
			return fmt.Errorf("failed to initialize Discord bot: %w", err)
		}
		log.Println("Discord bot initialized successfully")
	}

	// Wait for context cancellation or a fatal API error
	log.Printf("Running in %s mode...", cfg.Environment)
	select {
	case <-ctx.Done():
	case err := <-apiErr:
		if err != nil {
			return err
		}
	}

	// Cleanup resources
	log.Println("Shutting down...")

	if discordBot != nil {
		if err := discordBot.Close(); err != nil {
			log.Printf("Error closing Discord bot: %v", err)
		}
	}

	// Pending deferred tasks (channel deletions) finish before the
	// repositories close underneath them.
	scheduler.Close()
	limiter.Close()

	if err := economyRepo.Close(); err != nil {
		log.Printf("Error closing economy storage: %v", err)
	}
	if db != nil {
		db.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Printf("Error stopping HTTP API: %v", err)
	}

	log.Println("Shutdown completed")
	return nil
}
