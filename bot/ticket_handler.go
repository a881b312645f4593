package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"discshop/events"
	"discshop/models"
	"discshop/ratelimit"
	"discshop/repository"
)

const (
	tempMessageLifetime  = 5 * time.Second
	shortMessageLifetime = 3 * time.Second
	longMessageLifetime  = 10 * time.Second
	channelDeleteDelay   = 10 * time.Second
	cleanupDeleteSpacing = time.Second
	minReasonLength      = 3
)

// handleTicketCommand dispatches a `!` prefixed command.
func (b *Bot) handleTicketCommand(s *discordgo.Session, m *discordgo.MessageCreate, command string, args []string) {
	if command != "help" && command != "ping" {
		subject := fmt.Sprintf("%s_ticket_%s", m.Author.ID, command)
		if result := b.limiter.Check(subject, ratelimit.ActionCommand); result.Limited {
			b.sendTempMessage(s, m.ChannelID,
				fmt.Sprintf("⏳ Mohon tunggu %d detik sebelum menggunakan command ini lagi.", result.WaitSeconds()),
				shortMessageLifetime)
			return
		}
	}

	switch command {
	case "setup":
		b.handleSetup(s, m)
	case "ticket":
		b.handleTicketCreateCommand(s, m, args)
	case "close":
		b.handleCloseCommand(s, m, args)
	case "add":
		b.handleAddUser(s, m)
	case "remove":
		b.handleRemoveUser(s, m)
	case "rename":
		b.handleRename(s, m, args)
	case "help":
		b.handleHelp(s, m)
	case "ping":
		b.handlePing(s, m)
	case "logs":
		b.handleLogs(s, m)
	case "cleanup":
		b.handleCleanup(s, m)
	}
}

func (b *Bot) messageMember(s *discordgo.Session, m *discordgo.MessageCreate) *discordgo.Member {
	member := m.Member
	if member != nil {
		if member.User == nil {
			member.User = m.Author
		}
		return member
	}
	return b.resolveMember(s, m.GuildID, m.Author.ID)
}

func (b *Bot) handleSetup(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.isAdmin(s, m.GuildID, m.ChannelID, b.messageMember(s, m)) {
		b.sendTempMessage(s, m.ChannelID, "❌ Anda memerlukan izin Administrator untuk menggunakan perintah ini!", tempMessageLifetime)
		return
	}

	// The invoking command is noise next to the panel.
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.WithError(err).Debug("Could not delete setup command message")
	}

	guildName := m.GuildID
	if guild, err := s.State.Guild(m.GuildID); err == nil {
		guildName = guild.Name
	}

	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{setupPanelEmbed(guildName)},
		Components: []discordgo.MessageComponent{createTicketButton()},
	})
	if err != nil {
		log.WithError(err).Error("Failed to send ticket panel")
	}
}

func (b *Bot) handleTicketCreateCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	// Validate before touching the creation window; a typoed reason
	// must not lock the user out of an immediate valid retry.
	reason := strings.TrimSpace(strings.Join(args, " "))
	if len(reason) < minReasonLength {
		b.sendTempMessage(s, m.ChannelID, "❌ Harap berikan alasan yang jelas (minimal 3 karakter)!", longMessageLifetime)
		return
	}

	if result := b.limiter.Check(m.Author.ID, ratelimit.ActionTicketCreate); result.Limited {
		b.sendTempMessage(s, m.ChannelID, "⏳ Harap tunggu 30 detik sebelum membuat tiket baru!", tempMessageLifetime)
		return
	}

	creating, err := s.ChannelMessageSend(m.ChannelID, "⏳ **Membuat tiket...**")
	if err != nil {
		log.WithError(err).Error("Failed to send ticket progress message")
		return
	}

	ticket, err := b.createTicket(s, m.GuildID, m.Author, reason)
	if err != nil {
		content := "❌ Gagal membuat tiket!"
		if errors.Is(err, repository.ErrActiveTicketExists) {
			content = "❌ Anda sudah memiliki tiket aktif!"
			if existing := b.store.Get(m.Author.ID); existing != nil {
				content = fmt.Sprintf("❌ Anda sudah memiliki tiket aktif: <#%s>", existing.ChannelID)
			}
		} else {
			log.WithError(err).WithField("userID", m.Author.ID).Error("Failed to create ticket")
		}
		if _, err := s.ChannelMessageEdit(m.ChannelID, creating.ID, content); err != nil {
			log.WithError(err).Debug("Could not edit ticket progress message")
		}
		return
	}

	success := fmt.Sprintf("✅ **Tiket berhasil dibuat!**\nChannel: <#%s>\nID: #%d", ticket.ChannelID, ticket.TicketNumber)
	if _, err := s.ChannelMessageEdit(m.ChannelID, creating.ID, success); err != nil {
		log.WithError(err).Debug("Could not edit ticket progress message")
	}
}

// createTicket reserves the user's slot and ticket number, provisions
// the channel, and registers the ticket. The reservation is taken
// before any Discord call so two rapid create requests from the same
// user cannot both pass the duplicate check; the number stays consumed
// even when provisioning fails.
func (b *Bot) createTicket(s *discordgo.Session, guildID string, user *discordgo.User, reason string) (*models.Ticket, error) {
	res, err := b.store.Reserve(guildID, user.ID)
	if err != nil {
		return nil, err
	}

	ticket, err := b.provisionTicketChannel(s, guildID, user, reason, res.TicketNumber)
	if err != nil {
		res.Release()
		return nil, err
	}
	res.Commit(ticket)

	b.eventBus.Emit(context.Background(), events.TicketCreatedEvent{
		GuildID:      guildID,
		UserID:       user.ID,
		ChannelID:    ticket.ChannelID,
		TicketNumber: ticket.TicketNumber,
	})

	log.WithFields(log.Fields{
		"guildID":      guildID,
		"userID":       user.ID,
		"ticketNumber": ticket.TicketNumber,
		"channelID":    ticket.ChannelID,
	}).Info("Ticket created")
	return ticket, nil
}

func (b *Bot) provisionTicketChannel(s *discordgo.Session, guildID string, user *discordgo.User, reason string, number int) (*models.Ticket, error) {
	category, err := b.findOrCreateCategory(s, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ticket category: %w", err)
	}

	channel, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     ticketChannelName(number, user.Username),
		Type:     discordgo.ChannelTypeGuildText,
		Topic:    fmt.Sprintf("Tiket #%d | User: %s", number, user.String()),
		ParentID: category.ID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   guildID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    user.ID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket channel: %w", err)
	}

	b.grantRoleAccess(s, guildID, channel.ID)

	ticket := &models.Ticket{
		TicketNumber: number,
		ChannelID:    channel.ID,
		GuildID:      guildID,
		UserID:       user.ID,
		UserTag:      user.String(),
		CreatedAt:    time.Now(),
		Reason:       reason,
	}

	_, err = s.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{welcomeEmbed(ticket)},
		Components: []discordgo.MessageComponent{closeTicketButton()},
	})
	if err != nil {
		log.WithError(err).WithField("channelID", channel.ID).Warn("Failed to send ticket welcome message")
	}

	return ticket, nil
}

// findOrCreateCategory locates the ticket category by name, creating a
// hidden one when absent.
func (b *Bot) findOrCreateCategory(s *discordgo.Session, guildID string) (*discordgo.Channel, error) {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild channels: %w", err)
	}
	for _, channel := range channels {
		if channel.Type == discordgo.ChannelTypeGuildCategory &&
			strings.EqualFold(channel.Name, b.config.TicketCategory) {
			return channel, nil
		}
	}

	return s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: b.config.TicketCategory,
		Type: discordgo.ChannelTypeGuildCategory,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   guildID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
		},
	})
}

// grantRoleAccess opens the channel to the admin and support roles.
// Missing roles are skipped.
func (b *Bot) grantRoleAccess(s *discordgo.Session, guildID, channelID string) {
	staffAccess := int64(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory)

	if role := findRoleByName(s, guildID, b.config.AdminRole); role != nil {
		err := s.ChannelPermissionSet(channelID, role.ID, discordgo.PermissionOverwriteTypeRole,
			staffAccess|discordgo.PermissionManageMessages, 0)
		if err != nil {
			log.WithError(err).WithField("role", b.config.AdminRole).Warn("Failed to grant admin role access")
		}
	}

	for _, roleName := range b.config.SupportRoles {
		role := findRoleByName(s, guildID, roleName)
		if role == nil {
			continue
		}
		if err := s.ChannelPermissionSet(channelID, role.ID, discordgo.PermissionOverwriteTypeRole, staffAccess, 0); err != nil {
			log.WithError(err).WithField("role", roleName).Warn("Failed to grant support role access")
		}
	}
}

func (b *Bot) handleCloseCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.isAdmin(s, m.GuildID, m.ChannelID, b.messageMember(s, m)) {
		b.sendTempMessage(s, m.ChannelID, "❌ Hanya admin yang dapat menutup tiket!", tempMessageLifetime)
		return
	}

	ticket := b.store.FindByChannel(m.ChannelID)
	if ticket == nil {
		b.sendTempMessage(s, m.ChannelID, "❌ Ini bukan channel tiket!", tempMessageLifetime)
		return
	}

	closeReason := strings.TrimSpace(strings.Join(args, " "))
	if closeReason == "" {
		closeReason = "Tidak ada alasan diberikan"
	}

	b.sendTempMessage(s, m.ChannelID, fmt.Sprintf("⏳ **Menutup tiket #%d...**", ticket.TicketNumber), shortMessageLifetime)

	if err := b.closeTicket(s, m.ChannelID, m.Author, closeReason); err != nil {
		log.WithError(err).WithField("channelID", m.ChannelID).Error("Failed to close ticket")
		b.sendTempMessage(s, m.ChannelID, "❌ Gagal menutup tiket!", tempMessageLifetime)
	}
}

// closeTicket runs the full closure sequence: deindex, strip
// components, summary, lock the channel, rename, log, DM, and the
// deferred delete. Platform failures after deindexing are best-effort.
func (b *Bot) closeTicket(s *discordgo.Session, channelID string, closer *discordgo.User, closeReason string) error {
	ticket := b.store.RemoveByChannel(channelID)
	if ticket == nil {
		return fmt.Errorf("channel %s is not an active ticket", channelID)
	}

	// Dead buttons in a closing channel only invite failed clicks.
	if messages, err := s.ChannelMessages(channelID, 10, "", "", ""); err == nil {
		empty := []discordgo.MessageComponent{}
		for _, msg := range messages {
			if len(msg.Components) == 0 {
				continue
			}
			_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
				Channel:    channelID,
				ID:         msg.ID,
				Components: &empty,
			})
			if err != nil {
				log.WithError(err).Debug("Failed to strip message components")
			}
		}
	}

	if _, err := s.ChannelMessageSendEmbed(channelID, closedEmbed(ticket, closer.String(), closeReason)); err != nil {
		log.WithError(err).Warn("Failed to send closure summary")
	}

	err := s.ChannelPermissionSet(channelID, ticket.UserID, discordgo.PermissionOverwriteTypeMember,
		discordgo.PermissionViewChannel|discordgo.PermissionReadMessageHistory,
		discordgo.PermissionSendMessages|discordgo.PermissionAddReactions)
	if err != nil {
		log.WithError(err).Warn("Failed to revoke ticket channel permissions")
	}

	if _, err := s.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: closedChannelName(ticket.TicketNumber)}); err != nil {
		log.WithError(err).Warn("Failed to rename closed ticket channel")
	}

	b.sendCloseLog(s, ticket, closer, closeReason)
	b.sendCloseDM(s, ticket, closer, closeReason)

	b.eventBus.Emit(context.Background(), events.TicketClosedEvent{
		GuildID:      ticket.GuildID,
		UserID:       ticket.UserID,
		ChannelID:    channelID,
		TicketNumber: ticket.TicketNumber,
		ClosedBy:     closer.ID,
		CloseReason:  closeReason,
	})

	log.WithFields(log.Fields{
		"ticketNumber": ticket.TicketNumber,
		"closedBy":     closer.ID,
	}).Info("Ticket closed")

	b.scheduler.After(channelDeleteDelay, func() {
		// The channel may have been removed manually in the meantime.
		if _, err := s.ChannelDelete(channelID); err != nil {
			log.WithError(err).WithField("channelID", channelID).Debug("Deferred channel delete failed")
		}
	})
	return nil
}

// sendCloseLog posts the closure record to the log channel, creating
// the channel on first use. Failures are swallowed; logging a ticket is
// best-effort.
func (b *Bot) sendCloseLog(s *discordgo.Session, ticket *models.Ticket, closer *discordgo.User, closeReason string) {
	channels, err := s.GuildChannels(ticket.GuildID)
	if err != nil {
		log.WithError(err).Warn("Failed to list channels for ticket log")
		return
	}

	var logChannel *discordgo.Channel
	for _, channel := range channels {
		if channel.Type == discordgo.ChannelTypeGuildText && channel.Name == b.config.LogChannel {
			logChannel = channel
			break
		}
	}
	if logChannel == nil {
		logChannel, err = s.GuildChannelCreateComplex(ticket.GuildID, discordgo.GuildChannelCreateData{
			Name: b.config.LogChannel,
			Type: discordgo.ChannelTypeGuildText,
			PermissionOverwrites: []*discordgo.PermissionOverwrite{
				{
					ID:   ticket.GuildID,
					Type: discordgo.PermissionOverwriteTypeRole,
					Deny: discordgo.PermissionViewChannel,
				},
			},
		})
		if err != nil {
			log.WithError(err).Warn("Failed to create ticket log channel")
			return
		}
	}

	if _, err := s.ChannelMessageSendEmbed(logChannel.ID, closeLogEmbed(ticket, closer.String(), closeReason)); err != nil {
		log.WithError(err).Warn("Failed to post ticket close log")
	}
}

func (b *Bot) sendCloseDM(s *discordgo.Session, ticket *models.Ticket, closer *discordgo.User, closeReason string) {
	dm, err := s.UserChannelCreate(ticket.UserID)
	if err != nil {
		log.WithField("userTag", ticket.UserTag).Debug("Could not open DM channel for close notice")
		return
	}
	if _, err := s.ChannelMessageSendEmbed(dm.ID, closedDMEmbed(ticket, closer.String(), closeReason)); err != nil {
		log.WithField("userTag", ticket.UserTag).Debug("Could not send close notice DM")
	}
}

func (b *Bot) handleAddUser(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.isAdmin(s, m.GuildID, m.ChannelID, b.messageMember(s, m)) {
		b.sendTempMessage(s, m.ChannelID, "❌ Hanya admin yang dapat menambahkan user ke tiket!", tempMessageLifetime)
		return
	}
	if len(m.Mentions) == 0 {
		b.sendTempMessage(s, m.ChannelID, "❌ Tag user yang ingin ditambahkan!", tempMessageLifetime)
		return
	}

	target := m.Mentions[0]
	err := s.ChannelPermissionSet(m.ChannelID, target.ID, discordgo.PermissionOverwriteTypeMember,
		discordgo.PermissionViewChannel|discordgo.PermissionSendMessages|discordgo.PermissionReadMessageHistory, 0)
	if err != nil {
		log.WithError(err).Error("Failed to add user to ticket")
		if _, err := s.ChannelMessageSend(m.ChannelID, "❌ Gagal menambahkan user!"); err != nil {
			log.WithError(err).Debug("Could not send failure notice")
		}
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("✅ <@%s> telah ditambahkan ke tiket!", target.ID)); err != nil {
		log.WithError(err).Debug("Could not send add confirmation")
	}
}

func (b *Bot) handleRemoveUser(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.isAdmin(s, m.GuildID, m.ChannelID, b.messageMember(s, m)) {
		b.sendTempMessage(s, m.ChannelID, "❌ Hanya admin yang dapat menghapus user dari tiket!", tempMessageLifetime)
		return
	}
	if len(m.Mentions) == 0 {
		b.sendTempMessage(s, m.ChannelID, "❌ Tag user yang ingin dihapus!", tempMessageLifetime)
		return
	}

	target := m.Mentions[0]
	if err := s.ChannelPermissionDelete(m.ChannelID, target.ID); err != nil {
		log.WithError(err).Error("Failed to remove user from ticket")
		if _, err := s.ChannelMessageSend(m.ChannelID, "❌ Gagal menghapus user!"); err != nil {
			log.WithError(err).Debug("Could not send failure notice")
		}
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("✅ <@%s> telah dihapus dari tiket!", target.ID)); err != nil {
		log.WithError(err).Debug("Could not send remove confirmation")
	}
}

func (b *Bot) handleRename(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.isAdmin(s, m.GuildID, m.ChannelID, b.messageMember(s, m)) {
		b.sendTempMessage(s, m.ChannelID, "❌ Hanya admin yang dapat mengganti nama tiket!", tempMessageLifetime)
		return
	}

	newName := strings.TrimSpace(strings.Join(args, " "))
	if len(newName) < minReasonLength {
		b.sendTempMessage(s, m.ChannelID, "❌ Masukkan nama baru untuk tiket (minimal 3 karakter)!", tempMessageLifetime)
		return
	}

	channel, err := s.Channel(m.ChannelID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch channel for rename")
		return
	}
	oldName := channel.Name
	cleanName := sanitizeChannelName(newName)

	if _, err := s.ChannelEdit(m.ChannelID, &discordgo.ChannelEdit{Name: cleanName}); err != nil {
		log.WithError(err).Error("Failed to rename ticket channel")
		if _, err := s.ChannelMessageSend(m.ChannelID, "❌ Gagal mengganti nama tiket!"); err != nil {
			log.WithError(err).Debug("Could not send failure notice")
		}
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("✅ Nama tiket diubah dari `%s` menjadi `%s`", oldName, cleanName)); err != nil {
		log.WithError(err).Debug("Could not send rename confirmation")
	}
}

func (b *Bot) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	isAdminUser := b.isAdmin(s, m.GuildID, m.ChannelID, b.messageMember(s, m))
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, helpEmbed(isAdminUser)); err != nil {
		log.WithError(err).Error("Failed to send help")
	}
}

func (b *Bot) handlePing(s *discordgo.Session, m *discordgo.MessageCreate) {
	latency := s.HeartbeatLatency().Round(time.Millisecond)
	if _, err := s.ChannelMessageSendReply(m.ChannelID, fmt.Sprintf("🏓 Pong! %s", latency), m.Reference()); err != nil {
		log.WithError(err).Debug("Failed to send pong")
	}
}

func (b *Bot) handleLogs(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.isAdmin(s, m.GuildID, m.ChannelID, b.messageMember(s, m)) {
		b.sendTempMessage(s, m.ChannelID, "❌ Hanya admin yang dapat melihat log tiket!", tempMessageLifetime)
		return
	}

	channels, err := s.GuildChannels(m.GuildID)
	if err != nil {
		log.WithError(err).Error("Failed to list channels for logs")
		return
	}
	var logChannel *discordgo.Channel
	for _, channel := range channels {
		if channel.Type == discordgo.ChannelTypeGuildText && channel.Name == b.config.LogChannel {
			logChannel = channel
			break
		}
	}
	if logChannel == nil {
		if _, err := s.ChannelMessageSend(m.ChannelID, "❌ Log channel tidak ditemukan!"); err != nil {
			log.WithError(err).Debug("Could not send logs notice")
		}
		return
	}

	messages, err := s.ChannelMessages(logChannel.ID, 10, "", "", "")
	if err != nil {
		log.WithError(err).Error("Failed to fetch ticket logs")
		if _, err := s.ChannelMessageSend(m.ChannelID, "❌ Gagal mengambil log tiket!"); err != nil {
			log.WithError(err).Debug("Could not send logs failure notice")
		}
		return
	}

	count := 0
	for _, msg := range messages {
		if len(msg.Embeds) > 0 {
			count++
		}
	}
	if count == 0 {
		if _, err := s.ChannelMessageSend(m.ChannelID, "ℹ️ Belum ada log tiket yang ditutup."); err != nil {
			log.WithError(err).Debug("Could not send empty logs notice")
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Color:       colorInfo,
		Title:       "📋 Log Tiket Terbaru",
		Description: fmt.Sprintf("Menampilkan %d log terbaru", count),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: supportImage},
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Log dari #%s", logChannel.Name)},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send log summary")
	}
}

// handleCleanup deletes leftover closed-* channels, spacing deletions
// to stay clear of Discord's rate limits.
func (b *Bot) handleCleanup(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.isAdmin(s, m.GuildID, m.ChannelID, b.messageMember(s, m)) {
		b.sendTempMessage(s, m.ChannelID, "❌ Hanya admin yang dapat menggunakan perintah ini!", tempMessageLifetime)
		return
	}

	channels, err := s.GuildChannels(m.GuildID)
	if err != nil {
		log.WithError(err).Error("Failed to list channels for cleanup")
		return
	}

	cleaned := 0
	for _, channel := range channels {
		if channel.Type != discordgo.ChannelTypeGuildText || !strings.HasPrefix(channel.Name, "closed-") {
			continue
		}
		if _, err := s.ChannelDelete(channel.ID); err != nil {
			log.WithError(err).WithField("channel", channel.Name).Error("Failed to delete closed channel")
			continue
		}
		cleaned++
		time.Sleep(cleanupDeleteSpacing)
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("✅ Cleanup selesai. %d channel dihapus.", cleaned)); err != nil {
		log.WithError(err).Debug("Could not send cleanup summary")
	}
}

// ---- Button and modal interactions ----

func (b *Bot) handleTicketButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	if result := b.limiter.Check(interactionUserID(i)+"_"+customID, ratelimit.ActionInteraction); result.Limited {
		b.respondEphemeral(s, i, fmt.Sprintf("⏳ Mohon tunggu %d detik sebelum berinteraksi lagi.", result.WaitSeconds()))
		return
	}

	switch customID {
	case "create_ticket":
		b.handleCreateTicketButton(s, i)
	case "close_ticket":
		b.handleCloseTicketButton(s, i)
	case "confirm_close":
		b.handleConfirmClose(s, i)
	case "cancel_close":
		b.handleCancelClose(s, i)
	}
}

func (b *Bot) handleCreateTicketButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)

	if result := b.limiter.Check(userID, ratelimit.ActionTicketCreate); result.Limited {
		b.respondEphemeral(s, i, "⏳ Harap tunggu 30 detik sebelum membuat tiket baru!")
		return
	}

	if existing := b.store.Get(userID); existing != nil {
		b.respondEphemeral(s, i, fmt.Sprintf("❌ Anda sudah memiliki tiket aktif: <#%s>", existing.ChannelID))
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "create_ticket_modal",
			Title:    "Buat Tiket Baru",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "ticket_reason",
							Label:       "Apa yang ingin Anda beli?",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Deskripsikan apa yang ingin Anda beli...",
							Required:    true,
							MinLength:   minReasonLength,
							MaxLength:   200,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to show ticket creation modal")
	}
}

func (b *Bot) handleCreateTicketModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.deferEphemeral(s, i); err != nil {
		log.WithError(err).Error("Failed to defer ticket modal response")
		return
	}

	reason := strings.TrimSpace(modalInputValue(i.ModalSubmitData(), "ticket_reason"))
	if len(reason) < minReasonLength {
		b.editDeferred(s, i, "❌ Alasan terlalu pendek! Minimal 3 karakter.")
		return
	}

	user := interactionUser(i)
	ticket, err := b.createTicket(s, i.GuildID, user, reason)
	if err != nil {
		if errors.Is(err, repository.ErrActiveTicketExists) {
			content := "❌ Anda sudah memiliki tiket aktif!"
			if existing := b.store.Get(user.ID); existing != nil {
				content = fmt.Sprintf("❌ Anda sudah memiliki tiket aktif: <#%s>", existing.ChannelID)
			}
			b.editDeferred(s, i, content)
			return
		}
		log.WithError(err).WithField("userID", user.ID).Error("Failed to create ticket from modal")
		b.editDeferred(s, i, "❌ Gagal membuat tiket. Silakan coba lagi!")
		return
	}

	b.editDeferred(s, i, fmt.Sprintf("✅ **Tiket berhasil dibuat!**\nChannel: <#%s>\nID: #%d", ticket.ChannelID, ticket.TicketNumber))
}

func (b *Bot) handleCloseTicketButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdmin(s, i.GuildID, i.ChannelID, i.Member) {
		b.respondEphemeral(s, i, "❌ Hanya admin yang dapat menutup tiket!")
		return
	}

	if result := b.limiter.Check(interactionUserID(i), ratelimit.ActionTicketClose); result.Limited {
		b.respondEphemeral(s, i, "⏳ Harap tunggu 10 detik sebelum menutup tiket lain!")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "close_reason_modal",
			Title:    "Alasan Menutup Tiket",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "close_reason",
							Label:       "Masukkan alasan menutup tiket",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Contoh: Pesanan sudah selesai...",
							Required:    true,
							MinLength:   minReasonLength,
							MaxLength:   200,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to show close reason modal")
	}
}

func (b *Bot) handleCloseReasonModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.deferEphemeral(s, i); err != nil {
		log.WithError(err).Error("Failed to defer close modal response")
		return
	}

	ticket := b.store.FindByChannel(i.ChannelID)
	if ticket == nil {
		b.editDeferred(s, i, "❌ Channel ini bukan channel tiket yang valid!")
		return
	}

	closeReason := strings.TrimSpace(modalInputValue(i.ModalSubmitData(), "close_reason"))

	_, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@%s>", interactionUserID(i)),
		Embeds:     []*discordgo.MessageEmbed{confirmCloseEmbed(ticket, closeReason, time.Now())},
		Components: []discordgo.MessageComponent{confirmCloseButtons()},
	})
	if err != nil {
		log.WithError(err).Error("Failed to send close confirmation")
		b.editDeferred(s, i, "❌ Gagal memproses permintaan penutupan!")
		return
	}

	b.editDeferred(s, i, "✅ Konfirmasi penutupan dikirim!")
}

func (b *Bot) handleConfirmClose(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdmin(s, i.GuildID, i.ChannelID, i.Member) {
		b.respondEphemeral(s, i, "❌ Hanya admin yang dapat menutup tiket!")
		return
	}

	if err := b.deferEphemeral(s, i); err != nil {
		log.WithError(err).Error("Failed to defer close confirmation")
		return
	}

	if b.store.FindByChannel(i.ChannelID) == nil {
		b.editDeferred(s, i, "❌ Tiket tidak ditemukan!")
		return
	}

	// The close reason lives in the confirmation embed posted by the
	// modal; recover it from the recent history.
	closeReason := "Tidak ada alasan diberikan"
	if messages, err := s.ChannelMessages(i.ChannelID, 5, "", "", ""); err == nil {
	scan:
		for _, msg := range messages {
			for _, embed := range msg.Embeds {
				if embed.Title != "Konfirmasi Penutupan Tiket" {
					continue
				}
				for _, field := range embed.Fields {
					if field.Name == "📝 Alasan Penutupan" {
						closeReason = field.Value
						break scan
					}
				}
			}
		}
	}

	if err := b.closeTicket(s, i.ChannelID, interactionUser(i), closeReason); err != nil {
		log.WithError(err).Error("Failed to close ticket from confirmation")
		b.editDeferred(s, i, "❌ Gagal menutup tiket!")
		return
	}

	b.editDeferred(s, i, "✅ Tiket berhasil ditutup!")
}

func (b *Bot) handleCancelClose(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdmin(s, i.GuildID, i.ChannelID, i.Member) {
		b.respondEphemeral(s, i, "❌ Hanya admin yang dapat membatalkan penutupan!")
		return
	}

	if i.Message != nil {
		if err := s.ChannelMessageDelete(i.ChannelID, i.Message.ID); err != nil {
			log.WithError(err).Debug("Failed to delete close confirmation")
		}
	}
	b.respondEphemeral(s, i, "✅ Penutupan tiket dibatalkan.")
}
