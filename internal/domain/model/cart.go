package model

import "time"

// CartItem is one line of an account's cart. Lines with the same product
// and variant (color, size) are merged on add.
type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	Color     string
	Size      string
	AddedAt   time.Time
}

// CartLine joins a cart item with its product and resolved pricing.
type CartLine struct {
	Item      CartItem
	Product   Product
	UnitPrice int64
	LineTotal int64
}
