package model

import "time"

// Category groups products for browsing and related-product lookups.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Product describes a catalog entry. Prices are in currency minor units.
// Only products with Active=true and Deleted=false are purchasable.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	SalePrice   *int64
	Stock       int
	CategoryID  int64
	ImageURL    string
	Active      bool
	Deleted     bool
	CreatedAt   time.Time
}

// Purchasable reports whether the product may be displayed or bought.
func (p *Product) Purchasable() bool {
	return p.Active && !p.Deleted
}

// InventoryLog records a stock level change with its reason.
type InventoryLog struct {
	ID           int64
	ProductID    int64
	ChangeAmount int
	Reason       string
	CreatedAt    time.Time
}

// Review is a customer rating left on a product.
type Review struct {
	ID        int64
	ProductID int64
	UserID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}
