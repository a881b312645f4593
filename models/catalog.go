package models

// Product is a single purchasable item shown in a catalog detail embed.
type Product struct {
	Key         string
	Name        string
	Description string
	Price       string
	Stock       string
	Platform    string
	Genre       string
	Details     string
}

// CatalogCategory is one tagged catalog variant. Every category carries
// its own product list and display metadata and is rendered by a single
// polymorphic renderer rather than per-category duplicate code.
type CatalogCategory struct {
	Key         string // "streaming", "discord", "server", "decoration", "game"
	Command     string // prefix command that posts this catalog
	SelectID    string // custom ID of the category's select menu
	Title       string
	Description string
	Color       int
	Footer      string
	Products    []Product // ordered as displayed
}

// Product returns the product with the given key, or nil.
func (c *CatalogCategory) Product(key string) *Product {
	for i := range c.Products {
		if c.Products[i].Key == key {
			return &c.Products[i]
		}
	}
	return nil
}

// BackID is the custom ID of the "back to catalog" button for this category.
func (c *CatalogCategory) BackID() string {
	return "back_" + c.Key
}
