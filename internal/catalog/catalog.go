// Package catalog holds the read-only set of products a cart can be filled from.
package catalog

import "github.com/Cheertaboi/cart-service/internal/models"

const GiftID = 99

var (
	defaultProducts = []models.Product{
		{ID: 1, Name: "Laptop", Price: 500},
		{ID: 2, Name: "Smartphone", Price: 300},
		{ID: 3, Name: "Headphones", Price: 100},
		{ID: 4, Name: "Smartwatch", Price: 150},
	}

	defaultGift = models.Product{ID: GiftID, Name: "Wireless Mouse", Price: 0}
)

type Catalog struct {
	products []models.Product
	index    map[int]int
	gift     models.Product
}

// Default returns the built-in catalog with the Wireless Mouse as free gift.
func Default() *Catalog {
	return New(defaultProducts, defaultGift)
}

// New builds a catalog from products. Duplicate ids keep the first entry and a
// product sharing the gift's id is dropped, since the gift is never purchasable.
func New(products []models.Product, gift models.Product) *Catalog {
	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		index:    make(map[int]int, len(products)),
		gift:     gift,
	}
	for _, p := range products {
		if p.ID == gift.ID {
			continue
		}
		if _, dup := c.index[p.ID]; dup {
			continue
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Products returns a copy of the purchasable products in catalog order.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Lookup finds a purchasable product by id.
func (c *Catalog) Lookup(id int) (models.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Gift() models.Product {
	return c.gift
}

func (c *Catalog) IsGift(id int) bool {
	return id == c.gift.ID
}
