package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"discshop/events"
	"discshop/models"
	"discshop/ratelimit"
	"discshop/repository"
	"discshop/service"
)

// Config holds the Discord-facing settings the bot needs.
type Config struct {
	Token          string
	TicketCategory string
	AdminRole      string
	SupportRoles   []string
	LogChannel     string
	OrderChannelID string
}

// Bot owns the gateway session and dispatches commands and component
// interactions to the ticket, catalog, and economy handlers.
type Bot struct {
	config    Config
	session   *discordgo.Session
	store     *repository.TicketStore
	economy   service.EconomyService
	limiter   *ratelimit.Limiter
	scheduler *Scheduler
	eventBus  *events.Bus
	catalog   []models.CatalogCategory
	metrics   ticketMetrics
	startedAt time.Time
}

// Status is a snapshot of the running bot for the HTTP API.
type Status struct {
	UserTag       string
	UserID        string
	Guilds        int
	ActiveTickets int
	ClosedTickets int
}

// New connects to the Discord gateway and wires up the handlers.
func New(
	config Config,
	store *repository.TicketStore,
	economy service.EconomyService,
	limiter *ratelimit.Limiter,
	scheduler *Scheduler,
	eventBus *events.Bus,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	b := &Bot{
		config:    config,
		session:   session,
		store:     store,
		economy:   economy,
		limiter:   limiter,
		scheduler: scheduler,
		eventBus:  eventBus,
		catalog:   defaultCatalog(),
		startedAt: time.Now(),
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	b.registerEventHandlers()

	session.AddHandler(b.onReady)
	session.AddHandler(b.onGuildCreate)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onInteractionCreate)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord connection: %w", err)
	}

	return b, nil
}

// Close shuts down the gateway connection.
func (b *Bot) Close() error {
	return b.session.Close()
}

// Status reports the current gateway state for the HTTP API.
func (b *Bot) Status() Status {
	_, closed := b.metrics.counts()
	status := Status{
		Guilds:        len(b.session.State.Guilds),
		ActiveTickets: b.store.ActiveCount(),
		ClosedTickets: closed,
	}
	if user := b.session.State.User; user != nil {
		status.UserTag = user.String()
		status.UserID = user.ID
	}
	return status
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.String(),
		"guilds": len(r.Guilds),
	}).Info("Discord connection ready")

	if err := s.UpdateWatchStatus(0, "Shop & Ticket System | !help"); err != nil {
		log.WithError(err).Warn("Failed to set presence")
	}
}

// onGuildCreate fires once per guild after connect, which is the
// moment channel data becomes available for rehydration.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Unavailable {
		return
	}
	b.rehydrateTickets(s, g.ID)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	content := strings.TrimSpace(m.Content)
	if len(content) < 2 {
		return
	}
	prefix := content[0]
	if prefix != '!' && prefix != '.' {
		return
	}

	// Message-level limiting is silent; a reply per dropped message
	// would defeat the point.
	if result := b.limiter.Check(m.Author.ID, ratelimit.ActionMessage); result.Limited {
		return
	}

	fields := strings.Fields(content)
	command := strings.ToLower(fields[0])
	args := fields[1:]

	if prefix == '!' {
		if category := b.categoryByCommand(command); category != nil {
			b.handleCatalogCommand(s, m, category)
			return
		}
		b.handleTicketCommand(s, m, command[1:], args)
		return
	}

	b.handleEconomyCommand(s, m, command[1:], args)
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		switch {
		case b.categoryBySelectID(data.CustomID) != nil:
			b.handleCatalogSelect(s, i)
		case strings.HasPrefix(data.CustomID, "back_"):
			b.handleCatalogBack(s, i)
		default:
			b.handleTicketButton(s, i)
		}
	case discordgo.InteractionModalSubmit:
		switch i.ModalSubmitData().CustomID {
		case "create_ticket_modal":
			b.handleCreateTicketModal(s, i)
		case "close_reason_modal":
			b.handleCloseReasonModal(s, i)
		}
	}
}

// interactionUser returns the invoking user for both guild and DM
// interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if user := interactionUser(i); user != nil {
		return user.ID
	}
	return ""
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Debug("Failed to send ephemeral response")
	}
}

func (b *Bot) deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) editDeferred(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	if err != nil {
		log.WithError(err).Debug("Failed to edit deferred response")
	}
}

// modalInputValue extracts a text input value from a modal submission.
func modalInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
