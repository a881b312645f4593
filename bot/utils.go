package bot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var (
	ticketChannelPattern = regexp.MustCompile(`^tiket-(\d+)-(.+)$`)
	closedChannelPattern = regexp.MustCompile(`^closed-(\d+)$`)
	channelNameSanitizer = regexp.MustCompile(`[^a-z0-9-]`)
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// formatDuration renders a duration as the largest sensible unit pair,
// in the same language as the rest of the user-facing copy.
func formatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	minutes := seconds / 60
	hours := minutes / 60

	if hours > 0 {
		return fmt.Sprintf("%d jam %d menit", hours, minutes%60)
	}
	if minutes > 0 {
		return fmt.Sprintf("%d menit", minutes)
	}
	return fmt.Sprintf("%d detik", seconds)
}

// ticketChannelName builds the channel name for a new ticket. Discord
// channel names are lowercase and capped at 100 characters.
func ticketChannelName(number int, username string) string {
	name := strings.ToLower(fmt.Sprintf("tiket-%d-%s", number, username))
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

// closedChannelName builds the rename target for a closed ticket.
func closedChannelName(number int) string {
	name := fmt.Sprintf("closed-%d", number)
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

// parseTicketChannel extracts the ticket number and username fragment
// from an active ticket channel name, returning ok=false for channels
// that do not match the pattern.
func parseTicketChannel(name string) (number int, username string, ok bool) {
	match := ticketChannelPattern.FindStringSubmatch(name)
	if match == nil {
		return 0, "", false
	}
	number, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, "", false
	}
	return number, match[2], true
}

// parseClosedChannel extracts the ticket number from a closed ticket
// channel name.
func parseClosedChannel(name string) (number int, ok bool) {
	match := closedChannelPattern.FindStringSubmatch(name)
	if match == nil {
		return 0, false
	}
	number, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return number, true
}

// sanitizeChannelName lowercases the input and replaces anything
// outside [a-z0-9-] with a dash, matching Discord's channel name rules.
func sanitizeChannelName(name string) string {
	clean := channelNameSanitizer.ReplaceAllString(strings.ToLower(name), "-")
	if len(clean) > 100 {
		clean = clean[:100]
	}
	return clean
}

// sendTempMessage sends a message and schedules its deletion. Used for
// user-facing rejections so channels do not fill with noise.
func (b *Bot) sendTempMessage(s *discordgo.Session, channelID, content string, lifetime time.Duration) {
	msg, err := s.ChannelMessageSend(channelID, content)
	if err != nil {
		log.WithError(err).WithField("channelID", channelID).Warn("Failed to send temp message")
		return
	}

	b.scheduler.After(lifetime, func() {
		// The message may already be gone; deletion is best-effort.
		if err := s.ChannelMessageDelete(channelID, msg.ID); err != nil {
			log.WithError(err).Debug("Failed to delete temp message")
		}
	})
}

// resolveMember returns the guild member for a user, trying state cache
// first and falling back to the API.
func (b *Bot) resolveMember(s *discordgo.Session, guildID, userID string) *discordgo.Member {
	if member, err := s.State.Member(guildID, userID); err == nil && member != nil {
		return member
	}
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		return nil
	}
	return member
}

// isAdmin reports whether the member holds the Administrator permission
// or carries the configured admin role.
func (b *Bot) isAdmin(s *discordgo.Session, guildID, channelID string, member *discordgo.Member) bool {
	if member == nil || member.User == nil {
		return false
	}

	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	if perms, err := s.UserChannelPermissions(member.User.ID, channelID); err == nil &&
		perms&discordgo.PermissionAdministrator != 0 {
		return true
	}

	if b.config.AdminRole == "" {
		return false
	}
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		log.WithError(err).WithField("guildID", guildID).Warn("Failed to fetch guild roles for admin check")
		return false
	}
	roleNames := make(map[string]string, len(roles))
	for _, role := range roles {
		roleNames[role.ID] = role.Name
	}
	for _, roleID := range member.Roles {
		if roleNames[roleID] == b.config.AdminRole {
			return true
		}
	}
	return false
}

// findRoleByName returns the guild role with the given name, or nil.
func findRoleByName(s *discordgo.Session, guildID, name string) *discordgo.Role {
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return nil
	}
	for _, role := range roles {
		if role.Name == name {
			return role
		}
	}
	return nil
}
