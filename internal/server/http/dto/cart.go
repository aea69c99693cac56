package dto

// CartAddRequest puts a product variant into the cart.
type CartAddRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// CartQuantityRequest updates a line quantity.
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse is one priced cart line.
type CartLineResponse struct {
	ItemID    int64  `json:"item_id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url,omitempty"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

// CartResponse is the full cart view.
type CartResponse struct {
	Items    []CartLineResponse `json:"items"`
	Subtotal int64              `json:"subtotal"`
}
