package dto

import "time"

// ProductResponse is the catalog representation of a product. Price is the
// resolved price after sale precedence; ListPrice carries the original.
type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	ListPrice   int64  `json:"list_price"`
	SalePrice   *int64 `json:"sale_price,omitempty"`
	Stock       int    `json:"stock"`
	CategoryID  int64  `json:"category_id"`
	ImageURL    string `json:"image_url,omitempty"`
	Active      bool   `json:"active"`
}

// ProductDetailResponse bundles a product page payload.
type ProductDetailResponse struct {
	Product ProductResponse   `json:"product"`
	Reviews []ReviewResponse  `json:"reviews"`
	Related []ProductResponse `json:"related"`
}

// ProductRequest is the admin create/update payload.
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	SalePrice   *int64 `json:"sale_price"`
	Stock       int    `json:"stock"`
	CategoryID  int64  `json:"category_id"`
	ImageURL    string `json:"image_url"`
	Active      bool   `json:"active"`
}

// ReviewRequest is the customer rating payload.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse represents a stored review.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryRequest is the admin category payload.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse represents a stored category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// InventoryLogResponse represents one stock change record.
type InventoryLogResponse struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	ChangeAmount int       `json:"change_amount"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// UploadResponse carries the hosted URL of an uploaded image.
type UploadResponse struct {
	URL string `json:"url"`
}
