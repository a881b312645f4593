package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"discshop/models"
	"discshop/ratelimit"
)

func (b *Bot) categoryByCommand(command string) *models.CatalogCategory {
	for i := range b.catalog {
		if b.catalog[i].Command == command {
			return &b.catalog[i]
		}
	}
	return nil
}

func (b *Bot) categoryBySelectID(selectID string) *models.CatalogCategory {
	for i := range b.catalog {
		if b.catalog[i].SelectID == selectID {
			return &b.catalog[i]
		}
	}
	return nil
}

func (b *Bot) categoryByKey(key string) *models.CatalogCategory {
	for i := range b.catalog {
		if b.catalog[i].Key == key {
			return &b.catalog[i]
		}
	}
	return nil
}

func (b *Bot) orderChannelMention() string {
	if b.config.OrderChannelID == "" {
		return "the order channel"
	}
	return fmt.Sprintf("<#%s>", b.config.OrderChannelID)
}

func (b *Bot) orderChannelLink(guildID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s", guildID, b.config.OrderChannelID)
}

// catalogEmbed renders the overview embed for any category. One
// renderer covers all five categories; the category value carries
// everything that differs.
func (b *Bot) catalogEmbed(category *models.CatalogCategory) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(category.Products))
	for _, product := range category.Products {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   product.Name,
			Value:  product.Description,
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Color:       category.Color,
		Title:       category.Title,
		Description: category.Description,
		Image:       &discordgo.MessageEmbedImage{URL: bannerImage},
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: thumbnailImage},
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    category.Footer,
			IconURL: thumbnailImage,
		},
	}
}

// catalogDropdown builds the category's product select menu.
func (b *Bot) catalogDropdown(category *models.CatalogCategory) discordgo.ActionsRow {
	options := make([]discordgo.SelectMenuOption, 0, len(category.Products))
	for _, product := range category.Products {
		options = append(options, discordgo.SelectMenuOption{
			Label:       product.Name,
			Value:       product.Key,
			Description: product.Description,
		})
	}

	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    category.SelectID,
				Placeholder: "Pilih produk yang ingin dibeli",
				Options:     options,
			},
		},
	}
}

// productDetailEmbed renders the detail view shown after a selection.
func (b *Bot) productDetailEmbed(category *models.CatalogCategory, product *models.Product) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Harga", Value: product.Price, Inline: true},
	}
	if product.Stock != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Stok", Value: product.Stock, Inline: true})
	}
	if product.Platform != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Platform", Value: product.Platform, Inline: true})
	}
	if product.Genre != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Genre", Value: product.Genre, Inline: true})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "Cara Order",
		Value: fmt.Sprintf("Tulis di %s:\n```!order %s```", b.orderChannelMention(), product.Name),
	})

	return &discordgo.MessageEmbed{
		Color:       category.Color,
		Title:       product.Name,
		Description: product.Details,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: thumbnailImage},
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "DISC SHOP • Klik tombol di bawah untuk langsung order",
			IconURL: thumbnailImage,
		},
	}
}

// orderButtons builds the detail view's link and back buttons.
func (b *Bot) orderButtons(guildID string, category *models.CatalogCategory) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label: "Buka Channel Order",
				Style: discordgo.LinkButton,
				URL:   b.orderChannelLink(guildID),
			},
			discordgo.Button{
				CustomID: category.BackID(),
				Label:    "Kembali ke Catalog",
				Style:    discordgo.SecondaryButton,
			},
		},
	}
}

// handleCatalogCommand posts a catalog panel. Admin-only.
func (b *Bot) handleCatalogCommand(s *discordgo.Session, m *discordgo.MessageCreate, category *models.CatalogCategory) {
	member := m.Member
	if member != nil && member.User == nil {
		member.User = m.Author
	}
	if member == nil {
		member = b.resolveMember(s, m.GuildID, m.Author.ID)
	}
	if !b.isAdmin(s, m.GuildID, m.ChannelID, member) {
		b.sendTempMessage(s, m.ChannelID, "❌ Hanya admin yang bisa menggunakan command ini!", tempMessageLifetime)
		return
	}

	if result := b.limiter.Check(m.Author.ID+"_catalog", ratelimit.ActionCommand); result.Limited {
		b.sendTempMessage(s, m.ChannelID,
			fmt.Sprintf("⏳ Mohon tunggu %d detik sebelum menggunakan command ini lagi.", result.WaitSeconds()),
			shortMessageLifetime)
		return
	}

	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{b.catalogEmbed(category)},
		Components: []discordgo.MessageComponent{b.catalogDropdown(category)},
	})
	if err != nil {
		log.WithError(err).WithField("category", category.Key).Error("Failed to send catalog")
	}
}

// handleCatalogSelect shows the detail embed for a selected product.
func (b *Bot) handleCatalogSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()

	category := b.categoryBySelectID(data.CustomID)
	if category == nil || len(data.Values) == 0 {
		return
	}

	if result := b.limiter.Check(interactionUserID(i)+"_"+data.CustomID, ratelimit.ActionInteraction); result.Limited {
		b.respondEphemeral(s, i, fmt.Sprintf("⏳ Mohon tunggu %d detik sebelum berinteraksi lagi.", result.WaitSeconds()))
		return
	}

	product := category.Product(data.Values[0])
	if product == nil {
		b.respondEphemeral(s, i, "❌ Produk tidak ditemukan!")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{b.productDetailEmbed(category, product)},
			Components: []discordgo.MessageComponent{b.orderButtons(i.GuildID, category)},
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to catalog selection")
	}
}

// handleCatalogBack returns from a detail view to the category overview.
func (b *Bot) handleCatalogBack(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if result := b.limiter.Check(interactionUserID(i)+"_back_button", ratelimit.ActionInteraction); result.Limited {
		b.respondEphemeral(s, i, fmt.Sprintf("⏳ Mohon tunggu %d detik sebelum berinteraksi lagi.", result.WaitSeconds()))
		return
	}

	key := strings.TrimPrefix(i.MessageComponentData().CustomID, "back_")
	category := b.categoryByKey(key)
	if category == nil {
		category = &b.catalog[0]
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{b.catalogEmbed(category)},
			Components: []discordgo.MessageComponent{b.catalogDropdown(category)},
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to catalog back button")
	}
}
