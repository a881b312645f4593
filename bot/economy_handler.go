package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"discshop/ratelimit"
	"discshop/service"
)

const paymentQRImage = "https://i.imgur.com/qr-payment.png"

// handleEconomyCommand dispatches a `.` prefixed command.
func (b *Bot) handleEconomyCommand(s *discordgo.Session, m *discordgo.MessageCreate, command string, args []string) {
	if command != "help" && command != "ping" {
		subject := fmt.Sprintf("%s_%s", m.Author.ID, command)
		if result := b.limiter.Check(subject, ratelimit.ActionCommand); result.Limited {
			b.sendTempMessage(s, m.ChannelID,
				fmt.Sprintf("⏳ Mohon tunggu %d detik sebelum menggunakan command ini lagi.", result.WaitSeconds()),
				shortMessageLifetime)
			return
		}
	}

	ctx := context.Background()

	switch command {
	case "balance", "bal":
		b.handleBalance(ctx, s, m)
	case "daily":
		b.handleDaily(ctx, s, m)
	case "work":
		b.handleWork(ctx, s, m)
	case "crime":
		b.handleCrime(ctx, s, m)
	case "transfer":
		b.handleTransfer(ctx, s, m, args)
	case "rich":
		b.handleRich(ctx, s, m)
	case "pricelist":
		b.handlePricelist(s, m)
	case "payment":
		b.handlePayment(s, m)
	case "payimage":
		b.handlePayImage(s, m)
	case "done":
		b.handleDone(s, m)
	case "help":
		b.handleEconomyHelp(s, m)
	case "ping":
		b.handlePing(s, m)
	}
}

func (b *Bot) handleBalance(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	account, err := b.economy.GetAccount(ctx, m.Author.ID)
	if err != nil {
		log.WithError(err).WithField("userID", m.Author.ID).Error("Failed to load account")
		b.sendTempMessage(s, m.ChannelID, "❌ Gagal memuat akun!", tempMessageLifetime)
		return
	}

	nextLevelXP := int64(account.Level) * 100
	embed := &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "💰 Saldo Anda",
		Description: fmt.Sprintf("Akun milik <@%s>", m.Author.ID),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: m.Author.AvatarURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💵 Cash", Value: FormatBalance(account.Balance), Inline: true},
			{Name: "🏦 Bank", Value: FormatBalance(account.Bank), Inline: true},
			{Name: "⭐ Level", Value: fmt.Sprintf("%d", account.Level), Inline: true},
			{Name: "✨ XP", Value: fmt.Sprintf("%d / %d", account.XP, nextLevelXP), Inline: true},
			{Name: "🔥 Streak Harian", Value: fmt.Sprintf("%d hari", account.DailyStreak), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "DISC SHOP Economy"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send balance")
	}
}

func (b *Bot) handleDaily(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	result, err := b.economy.ClaimDaily(ctx, m.Author.ID)
	if err != nil {
		var cooldown *service.CooldownError
		if errors.As(err, &cooldown) {
			b.sendTempMessage(s, m.ChannelID,
				fmt.Sprintf("⏳ Daily reward sudah diklaim! Coba lagi dalam %s.", formatDuration(cooldown.Wait)),
				tempMessageLifetime)
			return
		}
		log.WithError(err).WithField("userID", m.Author.ID).Error("Failed to claim daily")
		b.sendTempMessage(s, m.ChannelID, "❌ Gagal mengklaim daily reward!", tempMessageLifetime)
		return
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "💵 Reward", Value: FormatBalance(result.Reward), Inline: true},
		{Name: "🔥 Streak", Value: fmt.Sprintf("%d hari", result.Streak), Inline: true},
		{Name: "💰 Saldo Baru", Value: FormatBalance(result.NewBalance), Inline: true},
	}
	if result.WeekBonus > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "🎁 Bonus Mingguan",
			Value: FormatBalance(result.WeekBonus),
		})
	}

	embed := &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "🎁 Daily Reward",
		Description: fmt.Sprintf("<@%s> berhasil mengklaim daily reward!", m.Author.ID),
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Klaim setiap hari untuk menjaga streak!"},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send daily result")
	}
}

func (b *Bot) handleWork(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	result, err := b.economy.Work(ctx, m.Author.ID)
	if err != nil {
		var cooldown *service.CooldownError
		if errors.As(err, &cooldown) {
			b.sendTempMessage(s, m.ChannelID,
				fmt.Sprintf("⏳ Anda masih lelah! Istirahat dulu selama %s.", formatDuration(cooldown.Wait)),
				tempMessageLifetime)
			return
		}
		log.WithError(err).WithField("userID", m.Author.ID).Error("Failed to process work")
		b.sendTempMessage(s, m.ChannelID, "❌ Gagal bekerja!", tempMessageLifetime)
		return
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "💵 Pendapatan", Value: FormatBalance(result.Earned), Inline: true},
		{Name: "✨ XP", Value: fmt.Sprintf("+%d", result.XPGained), Inline: true},
		{Name: "💰 Saldo Baru", Value: FormatBalance(result.NewBalance), Inline: true},
	}
	if result.LevelUp != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "🎉 Level Up!",
			Value: fmt.Sprintf("Naik ke level %d (+%s bonus)", result.LevelUp.NewLevel, FormatBalance(result.LevelUp.Bonus)),
		})
	}

	embed := &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "💼 Hasil Kerja",
		Description: fmt.Sprintf("<@%s> selesai bekerja!", m.Author.ID),
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Kerja lagi dalam 1 jam"},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send work result")
	}
}

func (b *Bot) handleCrime(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	result, err := b.economy.Crime(ctx, m.Author.ID)
	if err != nil {
		log.WithError(err).WithField("userID", m.Author.ID).Error("Failed to process crime")
		b.sendTempMessage(s, m.ChannelID, "❌ Terjadi kesalahan!", tempMessageLifetime)
		return
	}

	var embed *discordgo.MessageEmbed
	if result.Success {
		embed = &discordgo.MessageEmbed{
			Color:       colorSuccess,
			Title:       "🦹 Kejahatan Berhasil!",
			Description: fmt.Sprintf("<@%s> berhasil lolos dan membawa kabur **%s**!", m.Author.ID, FormatBalance(result.Amount)),
		}
	} else {
		embed = &discordgo.MessageEmbed{
			Color:       colorError,
			Title:       "🚔 Tertangkap!",
			Description: fmt.Sprintf("<@%s> tertangkap dan didenda **%s**!", m.Author.ID, FormatBalance(result.Amount)),
		}
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "💰 Saldo Sekarang", Value: FormatBalance(result.NewBalance), Inline: true},
	}
	embed.Timestamp = time.Now().Format(time.RFC3339)

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send crime result")
	}
}

func (b *Bot) handleTransfer(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(m.Mentions) == 0 || len(args) < 2 {
		b.sendTempMessage(s, m.ChannelID, "❌ Format: `.transfer @user <jumlah>`", tempMessageLifetime)
		return
	}
	recipient := m.Mentions[0]

	var amount int64
	var err error
	for _, arg := range args {
		if strings.HasPrefix(arg, "<@") {
			continue
		}
		amount, err = strconv.ParseInt(arg, 10, 64)
		break
	}
	if err != nil || amount <= 0 {
		b.sendTempMessage(s, m.ChannelID, "❌ Jumlah transfer tidak valid!", tempMessageLifetime)
		return
	}

	result, err := b.economy.Transfer(ctx, m.Author.ID, recipient.ID, amount)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"from":   m.Author.ID,
			"to":     recipient.ID,
			"amount": amount,
		}).Warn("Transfer rejected")
		b.sendTempMessage(s, m.ChannelID, fmt.Sprintf("❌ Transfer gagal: %s", err), tempMessageLifetime)
		return
	}

	embed := &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "💸 Transfer Berhasil",
		Description: fmt.Sprintf("<@%s> mengirim **%s** ke <@%s>", m.Author.ID, FormatBalance(result.Amount), result.RecipientID),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Saldo Anda", Value: FormatBalance(result.NewBalance), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send transfer result")
	}
}

func (b *Bot) handleRich(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	accounts, err := b.economy.TopBalances(ctx, 10)
	if err != nil {
		log.WithError(err).Error("Failed to load leaderboard")
		b.sendTempMessage(s, m.ChannelID, "❌ Gagal memuat leaderboard!", tempMessageLifetime)
		return
	}
	if len(accounts) == 0 {
		b.sendTempMessage(s, m.ChannelID, "ℹ️ Belum ada akun yang terdaftar.", tempMessageLifetime)
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var sb strings.Builder
	for i, account := range accounts {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Fprintf(&sb, "%s <@%s> - **%s**\n", rank, account.UserID, FormatBalance(account.Balance))
	}

	embed := &discordgo.MessageEmbed{
		Color:       colorWarning,
		Title:       "🏆 Leaderboard Terkaya",
		Description: sb.String(),
		Footer:      &discordgo.MessageEmbedFooter{Text: "DISC SHOP Economy"},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send leaderboard")
	}
}

func (b *Bot) handlePricelist(s *discordgo.Session, m *discordgo.MessageCreate) {
	fields := make([]*discordgo.MessageEmbedField, 0, len(b.catalog))
	for i := range b.catalog {
		category := &b.catalog[i]
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  category.Title,
			Value: fmt.Sprintf("Gunakan `%s` untuk melihat %d produk", category.Command, len(category.Products)),
		})
	}

	embed := &discordgo.MessageEmbed{
		Color:       colorPrimary,
		Title:       "📋 Daftar Harga",
		Description: "Semua kategori produk yang tersedia:",
		Image:       &discordgo.MessageEmbedImage{URL: bannerImage},
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "DISC SHOP • Harga dapat berubah sewaktu-waktu"},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send pricelist")
	}
}

func (b *Bot) handlePayment(s *discordgo.Session, m *discordgo.MessageCreate) {
	embed := &discordgo.MessageEmbed{
		Color:       colorInfo,
		Title:       "💳 Metode Pembayaran",
		Description: "Pilih salah satu metode pembayaran di bawah:",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🏦 Transfer Bank", Value: "```BCA - 1234567890 a/n DISC SHOP```"},
			{Name: "📱 E-Wallet", Value: "```DANA  - 0812-3456-7890\nOVO   - 0812-3456-7890\nGopay - 0812-3456-7890```"},
			{Name: "📷 QRIS", Value: "Gunakan `.payimage` untuk melihat QR code"},
			{Name: "✅ Setelah Bayar", Value: "Kirim bukti pembayaran di channel tiket lalu ketik `.done`"},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "DISC SHOP Payment"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send payment info")
	}
}

func (b *Bot) handlePayImage(s *discordgo.Session, m *discordgo.MessageCreate) {
	embed := &discordgo.MessageEmbed{
		Color:     colorInfo,
		Title:     "📷 QRIS Payment",
		Image:     &discordgo.MessageEmbedImage{URL: paymentQRImage},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Scan untuk membayar • DISC SHOP"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send payment QR")
	}
}

func (b *Bot) handleDone(s *discordgo.Session, m *discordgo.MessageCreate) {
	embed := &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "✅ Pembayaran Dikonfirmasi",
		Description: fmt.Sprintf("Terima kasih <@%s>! Admin akan memverifikasi pembayaran Anda segera.", m.Author.ID),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Mohon tunggu verifikasi admin"},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send payment confirmation")
	}
}

func (b *Bot) handleEconomyHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	embed := &discordgo.MessageEmbed{
		Color:       colorPrimary,
		Title:       "💰 Bantuan Economy",
		Description: "Perintah economy yang tersedia:",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "**Economy**",
				Value: "```" +
					".balance        - Lihat saldo\n" +
					".daily          - Klaim reward harian\n" +
					".work           - Bekerja (cooldown 1 jam)\n" +
					".crime          - Coba keberuntungan\n" +
					".transfer @user <jumlah> - Kirim uang\n" +
					".rich           - Leaderboard terkaya" +
					"```",
			},
			{
				Name: "**Belanja**",
				Value: "```" +
					".pricelist      - Daftar harga\n" +
					".payment        - Metode pembayaran\n" +
					".payimage       - QR pembayaran\n" +
					".done           - Konfirmasi pembayaran" +
					"```",
			},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "DISC SHOP Economy"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("Failed to send economy help")
	}
}
