package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration. An empty token disables the bot but the
	// HTTP health endpoints keep running.
	DiscordToken string

	// HTTP configuration
	Port string

	// Storage configuration. When DatabaseURL is set the economy ledger
	// uses PostgreSQL; otherwise it uses JSON snapshots under DataDir.
	DatabaseURL string
	DataDir     string

	// Ticket configuration
	TicketCategory string
	AdminRole      string
	SupportRoles   []string
	LogChannel     string
	OrderChannelID string

	// Economy configuration
	StartingBalance int64

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		Port:         os.Getenv("PORT"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DataDir:      os.Getenv("DATA_DIR"),

		TicketCategory: os.Getenv("TICKET_CATEGORY"),
		AdminRole:      os.Getenv("ADMIN_ROLE"),
		LogChannel:     os.Getenv("LOG_CHANNEL"),
		OrderChannelID: os.Getenv("ORDER_CHANNEL_ID"),

		StartingBalance: 1000,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Defaults
	if config.Port == "" {
		config.Port = "3000"
	}
	if config.DataDir == "" {
		config.DataDir = "data"
	}
	if config.TicketCategory == "" {
		config.TicketCategory = "── 「 ✦ ! ORDER  ! ✦ 」──"
	}
	if config.AdminRole == "" {
		config.AdminRole = "KING"
	}
	if config.LogChannel == "" {
		config.LogChannel = "ticket-logs"
	}

	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsedBalance, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsedBalance
		}
	}

	// Parse support role names
	supportRoles := os.Getenv("SUPPORT_ROLES")
	if supportRoles == "" {
		supportRoles = "Support,Moderator"
	}
	for _, name := range strings.Split(supportRoles, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			config.SupportRoles = append(config.SupportRoles, name)
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	return config, nil
}
