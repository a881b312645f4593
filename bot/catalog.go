package bot

import "discshop/models"

// Embed image assets shared across catalog and ticket embeds.
const (
	bannerImage    = "https://image2url.com/r2/bucket1/gifs/1767794908164-5e4f7d1e-45f4-445d-8508-d73e8d9da4bd.gif"
	thumbnailImage = "https://image2url.com/r2/bucket1/images/1767693842203-a4f88e68-d87e-4764-8de6-a6fd644ca47d.blob"
	supportImage   = "https://image2url.com/r2/default/images/1767535768451-bff62cab-083a-41c1-961d-e4a237ae8808.blob"
)

const (
	colorPrimary = 0x5865F2
	colorSuccess = 0x57F287
	colorWarning = 0xFEE75C
	colorError   = 0xED4245
	colorInfo    = 0x3498DB
)

// defaultCatalog returns the five shop categories with their product
// lists. Content is static; prices are display strings, not amounts the
// ledger operates on.
func defaultCatalog() []models.CatalogCategory {
	return []models.CatalogCategory{
		{
			Key:         "streaming",
			Command:     "!catalog",
			SelectID:    "select_product",
			Title:       "DISC SHOP - STREAMING & APPS #1 TERMURAH",
			Description: "**Silahkan pilih product dibawah untuk Pembelian**\n\n**LIST PRODUCT STREAMING & APPS**",
			Color:       0xFF1493,
			Footer:      "DISC SHOP • Gift Available • Instant Delivery",
			Products: []models.Product{
				{
					Key:         "vidio",
					Name:        "Vidio",
					Description: "Rp 18.000 - 30.000",
					Price:       "18.000 (MOBILE)\n22.000 (PRIVATE)\n23.000 (ALL DEVICE)",
					Stock:       "Tersedia",
					Details:     "VIDIO PREMIUM\n\n• 1 MONTH: 18.000 (MOBILE)\n• 1 MONTH: 22.000 (PRIVATE)\n• 1 MONTH: 23.000 (ALL DEVICE)\n\n(IPIU)\n• 1 DAY: 4.000\n• 3 DAY: 8.000\n• 7 DAY: 15.000\n• 1 MONTH: 30.000",
				},
				{
					Key:         "vision",
					Name:        "Vision",
					Description: "Rp 9.000 - 27.000",
					Price:       "9.000 - 27.000",
					Stock:       "Tersedia",
					Details:     "VISION+ PREMIUM\n\n• 7 DAY: 9.000\n• 1 MONTH: 17.000\n• 1 MONTH: 27.000 (PRIVATE)",
				},
				{
					Key:         "spotify",
					Name:        "Spotify",
					Description: "Rp 21.000 - 30.000",
					Price:       "21.000 - 30.000",
					Stock:       "Tersedia",
					Details:     "SPOTIFY PREMIUM\n\n• 1 MONTH: 21.000\n• 2 MONTH: 30.000",
				},
				{
					Key:         "netflix",
					Name:        "Netflix",
					Description: "Rp 4.000 - 30.000",
					Price:       "4.000 - 30.000",
					Stock:       "Tersedia",
					Details:     "NETFLIX PREMIUM\n\n• 1 DAY: 4.000\n• 3 DAY: 8.000\n• 7 DAY: 15.000\n• 1 MONTH: 30.000",
				},
				{
					Key:         "canva",
					Name:        "Canva",
					Description: "Rp 1.500 - 9.000",
					Price:       "1.500 - 9.000",
					Stock:       "Tersedia",
					Details:     "CANVA PRO\n\n• 1 DAY: 1.500\n• 7 DAY: 5.000\n• 1 MONTH: 7.000\n• 3 MONTH: 9.000",
				},
				{
					Key:         "capcut",
					Name:        "CapCut",
					Description: "Rp 11.000 - 27.000",
					Price:       "11.000 - 27.000",
					Stock:       "Tersedia",
					Details:     "CAPCUT PRO\n\n• 1 MONTH: 11.000 (3 USER)\n• 1 MONTH: 27.000 (PRIVATE)",
				},
				{
					Key:         "wetv",
					Name:        "WeTV",
					Description: "Rp 8.000 - 31.000",
					Price:       "8.000 - 31.000",
					Stock:       "Tersedia",
					Details:     "WETV PREMIUM\n\n• 1 MONTH: 8.000\n• 1 MONTH: 31.000 (PRIVATE)\n• 1 YEAR: 15.000",
				},
			},
		},
		{
			Key:         "discord",
			Command:     "!catalogdc",
			SelectID:    "select_discord",
			Title:       "DISC SHOP - DISCORD & GAMING SERVICES",
			Description: "**Layanan Discord Nitro & Joki Gaming**\n\n**PRICE LIST DISCORD & GAMING**",
			Color:       colorPrimary,
			Footer:      "DISC SHOP • Instant Delivery • Terima Beres",
			Products: []models.Product{
				{
					Key:         "nitro_promo_via_link",
					Name:        "Nitro Promotion 3 Month - Via Link",
					Description: "Rp 25.000",
					Price:       "25.000",
					Details:     "Nitro Promotion 3 Bulan via Link\n• Bisa untuk semua user / new user\n• Tidak diclaimkan oleh admin\n• Membutuhkan VCC sendiri",
				},
				{
					Key:         "nitro_promo_via_log",
					Name:        "Nitro Promotion 3 Month - Via Log",
					Description: "Rp 45.000",
					Price:       "45.000",
					Details:     "Nitro Promotion 3 Bulan via Log\n• Bisa untuk semua user / new user\n• Diclaimkan oleh admin\n• Terima beres",
				},
				{
					Key:         "server_boost",
					Name:        "Server Boost 3 bulan (2x boost)",
					Description: "Rp 30.000",
					Price:       "30.000",
					Details:     "Server Boost 3 Bulan (2x boost) kelipatan 2\n\nBenefit:\n• 2x Server Boost\n• 15% lebih banyak XP\n• 15% lebih banyak emoji\n• 15% lebih banyak file upload\n• 15% lebih banyak voice channel\n• 15% lebih banyak text channel",
				},
				{
					Key:         "akun_discord",
					Name:        "Akun discord umur 1 bulan",
					Description: "Rp 15.000",
					Price:       "15.000",
					Details:     "Akun discord umur 1 bulan\n\n akun polosan discord tanpa nitro\n\nBenefit:\n• Akun fresh umur 1 bulan\n• Bisa di upgrade nitro\n• Bisa di pakai joki / boost server",
				},
				{
					Key:         "joki_quest",
					Name:        "Joki Quest Discord (Orbs)",
					Description: "Rp 10.000",
					Price:       "10.000",
					Details:     "OPEN JOKI QUEST DISCORD (ORBS)\n\nBenefit:\n• Terima bares\n• Bisa quest all games\n• Quest Video\n• Dapet benefit border / item\n\nProses via login",
				},
			},
		},
		{
			Key:         "server",
			Command:     "!catalogsv",
			SelectID:    "select_server",
			Title:       "DISC SHOP - SERVER & BOT SERVICES",
			Description: "**Jasa Setup Server & Custom Bot Discord**\n\n**PRICE LIST SERVER & BOT**",
			Color:       0x00FF00,
			Footer:      "DISC SHOP • Professional Services • Free Revisi",
			Products: []models.Product{
				{
					Key:         "server_setup",
					Name:        "Setup Server Discord",
					Description: "Rp 50.000 - 250.000",
					Price:       "50.000 - 250.000",
					Details:     "Setup Server Discord\n\nExample:\n• Store\n• Community\n• Games\n• Chill Area\n• Roblox\n• Five M\n• Samp\n• ETC / DLL\n\nNote: semua di setup dengan rapih baik bot, role, channel, sudah all in customer hanya terima jadi dan free revisi selama ticket belum di tutup",
				},
				{
					Key:         "bot_custom",
					Name:        "Bot Custom Discord",
					Description: "Rp 10.000 - 300.000",
					Price:       "10.000 - 300.000",
					Details:     "Menerima Jasa Custom Bot Discord\n\nSupport:\n• Python\n• NodeJs\n\n**Full Request Custom Bot discord**\n\nContoh:\n• Bot Store\n• Bot Community\n• Bot Ticket\n• Dan lain lain\n\nPunya ide mau buat bot apa? langsung open ticket aja semua kita bisa!",
				},
			},
		},
		{
			Key:         "decoration",
			Command:     "!catalogdeco",
			SelectID:    "select_decoration",
			Title:       "DISC SHOP - SERVER DECORATION SERVICES",
			Description: "**Jasa Decoration Server dengan Nitro & Standard**\n\n**PRICE LIST DECORATION**",
			Color:       0xFFD700,
			Footer:      "DISC SHOP • Creative Designs • Premium Quality",
			Products: []models.Product{
				{
					Key:         "decoration_nitro",
					Name:        "Decoration with Nitro",
					Description: "Rp 22.000 - 65.000",
					Price:       "22.000 - 65.000",
					Details:     "• IDR 33.000 ⪼ IDR 22.000\n• IDR 39.500 ⪼ IDR 25.000\n• IDR 52.000 ⪼ IDR 35.000\n• IDR 65.000 ⪼ IDR 42.000\n• IDR 71.000 ⪼ IDR 45.000\n• IDR 78.000 ⪼ IDR 52.000\n• IDR 91.000 ⪼ IDR 65.000",
				},
				{
					Key:         "decoration_standard",
					Name:        "Decoration Non Nitro",
					Description: "Rp 28.000 - 125.000",
					Price:       "28.000 - 125.000",
					Details:     "• IDR 39.500 ⪼ IDR 28.000\n• IDR 65.500 ⪼ IDR 40.000\n• IDR 78.000 ⪼ IDR 46.000\n• IDR 105.000 ⪼ IDR 85.000\n• IDR 125.000 ⪼ IDR 92.000\n• IDR 160.000 ⪼ IDR 125.000",
				},
				{
					Key:         "decoration_premium",
					Name:        "Bundle Jujutsu Kaisen Non Nitro",
					Description: "Rp 95.000",
					Price:       "95.000",
					Details:     "• BORDER\n• PROFILE EFFECT\n• NAME PLATE",
				},
				{
					Key:         "banner_design",
					Name:        "Bundle Custom Bisa Langsung Tanya Admin",
					Description: "Custom Price",
					Price:       "CUSTOM PRICE",
					Details:     "Custom bundle sesuai permintaan\n• Konsultasi langsung dengan admin\n• Design khusus sesuai kebutuhan\n• Harga menyesuaikan kompleksitas",
				},
			},
		},
		{
			Key:         "game",
			Command:     "!cataloggame",
			SelectID:    "select_game",
			Title:       "DISC SHOP - GAME STEAM SHARING TERMURAH",
			Description: "**Game Steam Sharing dengan Harga Terjangkau!**\n\n**DAFTAR GAME TERLARIS**",
			Color:       0x7289DA,
			Footer:      "DISC SHOP • Steam Sharing • Garansi Lifetime • READY ALL GAME!",
			Products: []models.Product{
				{
					Key:         "blackmyth_wukong",
					Name:        "Black Myth: Wukong",
					Description: "Rp 35.000",
					Price:       "Rp 35.000",
					Platform:    "Steam SHARING",
					Genre:       "Action RPG",
					Details:     "BLACK MYTH: WUKONG\n\n• Lifetime Access\n• Steam Family Sharing\n• Bebas Antrian\n• Support 24/7",
				},
				{
					Key:         "spiderman_miles",
					Name:        "Spider-Man: Miles Morales",
					Description: "Rp 30.000",
					Price:       "Rp 30.000",
					Platform:    "Steam SHARING",
					Genre:       "Action-Adventure",
					Details:     "SPIDER-MAN: MILES MORALES\n\n• Full Game\n• Lifetime Update\n• No Queue\n• Instant Access",
				},
				{
					Key:         "spiderman_2",
					Name:        "Spider-Man 2",
					Description: "Rp 35.000",
					Price:       "Rp 35.000",
					Platform:    "Steam SHARING",
					Genre:       "Action-Adventure",
					Details:     "SPIDER-MAN 2\n\n• Complete Edition\n• All DLC Included\n• Family Sharing\n• 24/7 Support",
				},
				{
					Key:         "fc25",
					Name:        "FC 25",
					Description: "Rp 35.000",
					Price:       "Rp 35.000",
					Platform:    "Steam SHARING",
					Genre:       "Sports, Football",
					Details:     "FC 25\n\n• Latest Version\n• Online Mode Available\n• Lifetime Access\n• No Waiting",
				},
				{
					Key:         "fc26",
					Name:        "FC 26",
					Description: "Rp 35.000",
					Price:       "Rp 35.000",
					Platform:    "Steam SHARING",
					Genre:       "Sports, Football",
					Details:     "FC 26\n\n• Latest Edition\n• Multiplayer Support\n• Family Sharing\n• Instant Delivery",
				},
				{
					Key:         "silent_hill",
					Name:        "Silent Hill",
					Description: "Rp 30.000",
					Price:       "Rp 30.000",
					Platform:    "Steam SHARING",
					Genre:       "Horror, Survival",
					Details:     "SILENT HILL\n\n• Remastered Edition\n• Full Horror Experience\n• Lifetime Access\n• No Queue",
				},
				{
					Key:         "cyberpunk",
					Name:        "Cyberpunk 2077",
					Description: "Rp 30.000",
					Price:       "Rp 30.000",
					Platform:    "Steam SHARING",
					Genre:       "Action RPG, Cyberpunk",
					Details:     "CYBERPUNK 2077\n\n• Phantom Liberty DLC Included\n• All Updates\n• Family Sharing\n• 24/7 Support",
				},
			},
		},
	}
}
