package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"discshop/models"
)

// setupPanelEmbed is the panel posted by !setup with the create button.
func setupPanelEmbed(guildName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorPrimary,
		Title:       "🎫 Support Ticket System",
		Description: "Klik tombol di bawah untuk membuat tiket baru",
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: supportImage},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "📝 Cara Menggunakan",
				Value: "1. Klik tombol \"Buat Tiket\"\n2. Jelaskan apa yang ingin Anda beli\n3. Tunggu admin merespons",
			},
			{
				Name:  "⚖️ Aturan",
				Value: "• Deskripsikan dengan jelas\n• Bersabar menunggu respons admin\n• Jangan spam atau kirim pesan tidak perlu",
			},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%s Support System", guildName)},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func createTicketButton() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: "create_ticket",
				Label:    "🎫 Buat Tiket",
				Style:    discordgo.PrimaryButton,
			},
		},
	}
}

// welcomeEmbed opens a freshly created ticket channel.
func welcomeEmbed(ticket *models.Ticket) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorPrimary,
		Title:       fmt.Sprintf("🎫 Tiket #%d", ticket.TicketNumber),
		Description: fmt.Sprintf("Halo <@%s>, terima kasih telah membuat tiket!", ticket.UserID),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: supportImage},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📋 Permintaan", Value: ticket.Reason},
			{Name: "👤 Dibuat oleh", Value: ticket.UserTag, Inline: true},
			{Name: "📅 Tanggal", Value: FormatDiscordTimestamp(ticket.CreatedAt, "f"), Inline: true},
			{Name: "📌 Panduan", Value: "• Tunggu admin merespons\n• Deskripsikan dengan jelas\n• Jangan spam"},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Admin akan segera merespons!"},
		Timestamp: ticket.CreatedAt.Format(time.RFC3339),
	}
}

func closeTicketButton() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: "close_ticket",
				Label:    "🔒 Tutup Tiket",
				Style:    discordgo.DangerButton,
			},
		},
	}
}

// confirmCloseEmbed asks for confirmation before the ticket is closed.
func confirmCloseEmbed(ticket *models.Ticket, closeReason string, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorWarning,
		Title:       "Konfirmasi Penutupan Tiket",
		Description: fmt.Sprintf("Anda akan menutup **Tiket #%d**", ticket.TicketNumber),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: supportImage},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Pembuat Tiket", Value: ticket.UserTag},
			{Name: "📝 Alasan Penutupan", Value: closeReason},
			{Name: "⏱️ Durasi", Value: formatDuration(now.Sub(ticket.CreatedAt))},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Konfirmasi penutupan tiket"},
		Timestamp: now.Format(time.RFC3339),
	}
}

func confirmCloseButtons() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: "confirm_close",
				Label:    "✅ Ya, Tutup Tiket",
				Style:    discordgo.DangerButton,
			},
			discordgo.Button{
				CustomID: "cancel_close",
				Label:    "❌ Batal",
				Style:    discordgo.SecondaryButton,
			},
		},
	}
}

// closedEmbed is the closure summary posted in the ticket channel.
func closedEmbed(ticket *models.Ticket, closerTag, closeReason string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorWarning,
		Title:       "🎫 Tiket Ditutup",
		Description: fmt.Sprintf("**Tiket #%d** telah ditutup", ticket.TicketNumber),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: supportImage},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔒 Ditutup oleh", Value: closerTag, Inline: true},
			{Name: "👤 Pembuat", Value: ticket.UserTag, Inline: true},
			{Name: "📝 Alasan", Value: closeReason},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("ID: #%d", ticket.TicketNumber)},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// closeLogEmbed is the permanent record posted to the log channel.
func closeLogEmbed(ticket *models.Ticket, closerTag, closeReason string) *discordgo.MessageEmbed {
	reason := ticket.Reason
	if len(reason) > 100 {
		reason = reason[:100] + "..."
	}

	return &discordgo.MessageEmbed{
		Color:       colorWarning,
		Title:       "📋 LOG TIKET DITUTUP",
		Description: fmt.Sprintf("**Tiket #%d** telah ditutup", ticket.TicketNumber),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: supportImage},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 User", Value: ticket.UserTag, Inline: true},
			{Name: "🎫 ID", Value: fmt.Sprintf("#%d", ticket.TicketNumber), Inline: true},
			{Name: "🔒 Oleh", Value: closerTag, Inline: true},
			{Name: "📝 Alasan", Value: reason},
			{Name: "🗒️ Alasan Penutupan", Value: closeReason},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Ditutup pada"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// closedDMEmbed notifies the ticket owner by direct message.
func closedDMEmbed(ticket *models.Ticket, closerTag, closeReason string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorInfo,
		Title:       "🎫 Tiket Anda Telah Ditutup",
		Description: fmt.Sprintf("Tiket #%d telah ditutup", ticket.TicketNumber),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: supportImage},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔒 Ditutup oleh", Value: closerTag},
			{Name: "📝 Alasan", Value: closeReason},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Terima kasih telah menggunakan layanan kami"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// helpEmbed lists available commands; admins see the full set.
func helpEmbed(isAdminUser bool) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color:       colorPrimary,
		Title:       "🎫 Bantuan Sistem Tiket",
		Description: "Sistem tiket dengan tombol dan log otomatis",
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: supportImage},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "**Perintah Umum**",
				Value: "```" +
					"!ticket [alasan] - Buat tiket baru\n" +
					"!help            - Tampilkan bantuan\n" +
					"!ping            - Cek status bot" +
					"```",
			},
		},
	}

	if isAdminUser {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "**Perintah Admin**",
			Value: "```" +
				"!setup              - Setup panel tiket\n" +
				"!close [alasan]     - Tutup tiket (perintah)\n" +
				"!add @user          - Tambah user ke tiket\n" +
				"!remove @user       - Hapus user dari tiket\n" +
				"!rename [nama]      - Ganti nama tiket\n" +
				"!logs               - Lihat log tiket ditutup\n" +
				"!cleanup            - Hapus channel lama" +
				"```",
		})
	}

	status := "User"
	if isAdminUser {
		status = "Admin ✅"
	}
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{
			Name:  "📋 Setup",
			Value: "1. Gunakan `!setup` di channel\n2. Panel dengan tombol akan muncul\n3. User klik tombol untuk buat tiket",
		},
		&discordgo.MessageEmbedField{
			Name:  "⚙️ Catatan",
			Value: "• Hanya admin yang bisa tutup tiket\n• Channel dihapus 10 detik setelah ditutup\n• Log hanya untuk tiket yang ditutup",
		},
	)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Status: %s", status)}
	embed.Timestamp = time.Now().Format(time.RFC3339)
	return embed
}
