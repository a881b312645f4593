package bot

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"discshop/models"
)

// rehydrateTickets rebuilds the in-memory ticket index from channel
// names after a restart. The counter is seeded past the highest number
// seen in both open and closed channels so restarts never reissue a
// ticket number.
func (b *Bot) rehydrateTickets(s *discordgo.Session, guildID string) {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		log.WithError(err).WithField("guildID", guildID).Error("Failed to list channels for ticket rehydration")
		return
	}

	maxNumber := 0
	restored := 0
	for _, channel := range channels {
		if channel.Type != discordgo.ChannelTypeGuildText {
			continue
		}

		if number, ok := parseClosedChannel(channel.Name); ok {
			if number > maxNumber {
				maxNumber = number
			}
			continue
		}

		number, username, ok := parseTicketChannel(channel.Name)
		if !ok {
			continue
		}
		if number > maxNumber {
			maxNumber = number
		}

		member := b.findMemberByUsername(s, guildID, username)
		if member == nil {
			log.WithFields(log.Fields{
				"channel": channel.Name,
				"guildID": guildID,
			}).Warn("Could not resolve ticket owner during rehydration")
			continue
		}

		ticket := &models.Ticket{
			TicketNumber: number,
			ChannelID:    channel.ID,
			GuildID:      guildID,
			UserID:       member.User.ID,
			UserTag:      member.User.String(),
			CreatedAt:    time.Now(),
			Reason:       "Dipulihkan setelah restart",
		}
		if created, err := discordgo.SnowflakeTimestamp(channel.ID); err == nil {
			ticket.CreatedAt = created
		}
		b.store.Put(ticket)
		restored++
	}

	b.store.SeedCounter(guildID, maxNumber+1)

	log.WithFields(log.Fields{
		"guildID":    guildID,
		"restored":   restored,
		"nextNumber": maxNumber + 1,
	}).Info("Ticket state rehydrated")
}

// findMemberByUsername resolves a channel-name fragment back to a guild
// member. Channel names are lowercased, so the comparison is case
// insensitive. Checks the state cache first, then pages the member
// list.
func (b *Bot) findMemberByUsername(s *discordgo.Session, guildID, username string) *discordgo.Member {
	if guild, err := s.State.Guild(guildID); err == nil {
		for _, member := range guild.Members {
			if strings.EqualFold(member.User.Username, username) {
				return member
			}
		}
	}

	after := ""
	for page := 0; page < 10; page++ {
		members, err := s.GuildMembers(guildID, after, 1000)
		if err != nil {
			log.WithError(err).WithField("guildID", guildID).Debug("Member page fetch failed during rehydration")
			return nil
		}
		if len(members) == 0 {
			return nil
		}
		for _, member := range members {
			if strings.EqualFold(member.User.Username, username) {
				return member
			}
		}
		after = members[len(members)-1].User.ID
	}
	return nil
}
