package test

import (
	"context"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error

	SyncCalls []SyncProfileCall
}

// SyncProfileCall records one SyncProfile invocation.
type SyncProfileCall struct {
	ID       int64
	Username string
	Active   bool
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, username, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, Username: username, PasswordHash: passwordHash, Role: role, IsActive: true}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SyncProfile records the mirror call and updates the stored user.
func (s *UserRepositoryStub) SyncProfile(ctx context.Context, id int64, username string, active bool) error {
	if s.Err != nil {
		return s.Err
	}
	s.SyncCalls = append(s.SyncCalls, SyncProfileCall{ID: id, Username: username, Active: active})
	if user, ok := s.ByID[id]; ok {
		user.Username = username
		user.IsActive = active
	}
	return nil
}

// ProductRepositoryStub serves catalog products from an in-memory map.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	Next     int64
	Err      error

	Updated []model.Product
	Deleted []int64
}

// NewProductRepositoryStub constructs stub repository with initialized map.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[int64]*model.Product), Next: 1}
}

// Put stores a product under its ID for test setup.
func (s *ProductRepositoryStub) Put(p model.Product) *model.Product {
	if p.ID == 0 {
		p.ID = s.Next
		s.Next++
	} else if p.ID >= s.Next {
		s.Next = p.ID + 1
	}
	stored := p
	s.Products[p.ID] = &stored
	return &stored
}

// Create assigns an identifier and stores the product.
func (s *ProductRepositoryStub) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Put(*p), nil
}

// Update replaces the stored product and records the call.
func (s *ProductRepositoryStub) Update(ctx context.Context, p *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[p.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *p
	s.Products[p.ID] = &stored
	s.Updated = append(s.Updated, stored)
	return nil
}

// SoftDelete flags the product as deleted.
func (s *ProductRepositoryStub) SoftDelete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	p, ok := s.Products[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.Deleted = true
	s.Deleted = append(s.Deleted, id)
	return nil
}

// GetByID fetches a product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns stored products honoring the filter.
func (s *ProductRepositoryStub) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if filter.VisibleOnly && !p.Purchasable() {
			continue
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// ListRelated returns purchasable products from the category except the
// excluded one, up to limit.
func (s *ProductRepositoryStub) ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, limit)
	for _, p := range s.Products {
		if len(out) == limit {
			break
		}
		if p.ID == excludeID || p.CategoryID != categoryID || !p.Purchasable() {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// CategoryRepositoryStub stores categories in-memory.
type CategoryRepositoryStub struct {
	Categories map[int64]*model.Category
	Next       int64
	Err        error
}

// NewCategoryRepositoryStub constructs stub repository with initialized map.
func NewCategoryRepositoryStub() *CategoryRepositoryStub {
	return &CategoryRepositoryStub{Categories: make(map[int64]*model.Category), Next: 1}
}

// Create assigns an identifier and stores the category.
func (s *CategoryRepositoryStub) Create(ctx context.Context, name, description string) (*model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	c := &model.Category{ID: s.Next, Name: name, Description: description}
	s.Next++
	s.Categories[c.ID] = c
	return c, nil
}

// Update replaces the stored category.
func (s *CategoryRepositoryStub) Update(ctx context.Context, c *model.Category) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Categories[c.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *c
	s.Categories[c.ID] = &stored
	return nil
}

// Delete removes the stored category.
func (s *CategoryRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Categories[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Categories, id)
	return nil
}

// GetByID fetches a category or returns not found.
func (s *CategoryRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.Categories[id]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored categories.
func (s *CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		out = append(out, *c)
	}
	return out, nil
}

// CartRepositoryStub keeps cart lines and the applied code in-memory,
// merging lines the way the SQL layer does.
type CartRepositoryStub struct {
	Items   []model.CartItem
	Applied map[int64]string
	Next    int64
	Err     error
}

// NewCartRepositoryStub constructs stub repository with initialized state.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Applied: make(map[int64]string), Next: 1}
}

// Add merges into an existing line with the same product and variant or
// inserts a new line.
func (s *CartRepositoryStub) Add(ctx context.Context, userID, productID int64, quantity int, color, size string) (*model.CartItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		item := &s.Items[i]
		if item.UserID == userID && item.ProductID == productID && item.Color == color && item.Size == size {
			item.Quantity += quantity
			copied := *item
			return &copied, nil
		}
	}
	item := model.CartItem{ID: s.Next, UserID: userID, ProductID: productID, Quantity: quantity, Color: color, Size: size}
	s.Next++
	s.Items = append(s.Items, item)
	return &item, nil
}

// SetQuantity updates the matching line.
func (s *CartRepositoryStub) SetQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID && s.Items[i].UserID == userID {
			s.Items[i].Quantity = quantity
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Remove deletes the matching line.
func (s *CartRepositoryStub) Remove(ctx context.Context, userID, itemID int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID && s.Items[i].UserID == userID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListByUser returns the account's lines.
func (s *CartRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.CartItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

// SetAppliedCode stores the applied code for the account.
func (s *CartRepositoryStub) SetAppliedCode(ctx context.Context, userID int64, code string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Applied[userID] = code
	return nil
}

// AppliedCode returns the applied code or not found.
func (s *CartRepositoryStub) AppliedCode(ctx context.Context, userID int64) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if code, ok := s.Applied[userID]; ok {
		return code, nil
	}
	return "", domainErrors.ErrNotFound
}

// ClearAppliedCode removes the applied code for the account.
func (s *CartRepositoryStub) ClearAppliedCode(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	delete(s.Applied, userID)
	return nil
}

// PromotionRepositoryStub serves promotions from an in-memory map keyed by
// code.
type PromotionRepositoryStub struct {
	Promotions map[string]*model.Promotion
	Next       int64
	Err        error
}

// NewPromotionRepositoryStub constructs stub repository with initialized map.
func NewPromotionRepositoryStub() *PromotionRepositoryStub {
	return &PromotionRepositoryStub{Promotions: make(map[string]*model.Promotion), Next: 1}
}

// Put stores a promotion under its code for test setup.
func (s *PromotionRepositoryStub) Put(p model.Promotion) *model.Promotion {
	if p.ID == 0 {
		p.ID = s.Next
		s.Next++
	}
	stored := p
	s.Promotions[p.Code] = &stored
	return &stored
}

// Create assigns an identifier and stores the promotion.
func (s *PromotionRepositoryStub) Create(ctx context.Context, p *model.Promotion) (*model.Promotion, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Promotions[p.Code]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	return s.Put(*p), nil
}

// Update replaces the stored promotion.
func (s *PromotionRepositoryStub) Update(ctx context.Context, p *model.Promotion) error {
	if s.Err != nil {
		return s.Err
	}
	for code, stored := range s.Promotions {
		if stored.ID == p.ID {
			delete(s.Promotions, code)
			copied := *p
			s.Promotions[p.Code] = &copied
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Delete removes the stored promotion.
func (s *PromotionRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for code, stored := range s.Promotions {
		if stored.ID == id {
			delete(s.Promotions, code)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// GetByCode fetches a promotion or returns not found.
func (s *PromotionRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Promotion, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Promotions[code]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored promotions.
func (s *PromotionRepositoryStub) List(ctx context.Context) ([]model.Promotion, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Promotion, 0, len(s.Promotions))
	for _, p := range s.Promotions {
		out = append(out, *p)
	}
	return out, nil
}

// RedemptionRepositoryStub counts redemptions from a configured slice.
type RedemptionRepositoryStub struct {
	Items []model.Redemption
	Err   error
}

// CountByUserAndCode counts matching redemption rows.
func (s *RedemptionRepositoryStub) CountByUserAndCode(ctx context.Context, userID int64, code string) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	count := 0
	for _, r := range s.Items {
		if r.UserID == userID && r.Code == code {
			count++
		}
	}
	return count, nil
}

// ListByUser returns the account's redemptions.
func (s *RedemptionRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Redemption, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Redemption, 0, len(s.Items))
	for _, r := range s.Items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// OrderRepositoryStub mimics the transactional Create of the SQL layer:
// the order is stored, a redemption row is appended when a code is attached,
// and the cart stub (when wired) is cleared.
type OrderRepositoryStub struct {
	CreateFn func(context.Context, *model.Order) (*model.Order, error)

	Orders      []model.Order
	Redemptions *RedemptionRepositoryStub
	Cart        *CartRepositoryStub
	Next        int64
	Err         error

	UpdateCalls []OrderUpdateCall
}

// OrderUpdateCall records one UpdateStatus invocation.
type OrderUpdateCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// NewOrderRepositoryStub constructs stub repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Next: 1}
}

// Create stores the order and applies the transactional side effects.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *order
	stored.ID = s.Next
	s.Next++
	s.Orders = append(s.Orders, stored)
	if stored.PromoCode != nil && s.Redemptions != nil {
		s.Redemptions.Items = append(s.Redemptions.Items, model.Redemption{
			UserID:  stored.UserID,
			Code:    *stored.PromoCode,
			OrderID: stored.ID,
		})
	}
	if s.Cart != nil {
		kept := s.Cart.Items[:0]
		for _, item := range s.Cart.Items {
			if item.UserID != stored.UserID {
				kept = append(kept, item)
			}
		}
		s.Cart.Items = kept
		delete(s.Cart.Applied, stored.UserID)
	}
	return &stored, nil
}

// GetByID fetches an order or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns the account's orders honoring the limit.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// List returns all stored orders.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Orders, nil
}

// UpdateStatus records the call and updates the stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.Err != nil {
		return s.Err
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: orderID, Status: status})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = status
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ReviewRepositoryStub stores reviews in-memory.
type ReviewRepositoryStub struct {
	Reviews []model.Review
	Next    int64
	Err     error
}

// Create assigns an identifier and stores the review.
func (s *ReviewRepositoryStub) Create(ctx context.Context, r *model.Review) (*model.Review, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *r
	stored.ID = s.Next
	s.Next++
	s.Reviews = append(s.Reviews, stored)
	return &stored, nil
}

// ListByProduct returns the product's reviews.
func (s *ReviewRepositoryStub) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Review, 0, len(s.Reviews))
	for _, r := range s.Reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

// InventoryLogRepositoryStub records stock change appends.
type InventoryLogRepositoryStub struct {
	Logs []model.InventoryLog
	Next int64
	Err  error
}

// Append stores a stock change record.
func (s *InventoryLogRepositoryStub) Append(ctx context.Context, productID int64, change int, reason string) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	s.Logs = append(s.Logs, model.InventoryLog{ID: s.Next, ProductID: productID, ChangeAmount: change, Reason: reason})
	s.Next++
	return nil
}

// List returns recorded stock changes honoring the limit.
func (s *InventoryLogRepositoryStub) List(ctx context.Context, limit int) ([]model.InventoryLog, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if limit > 0 && len(s.Logs) > limit {
		return s.Logs[:limit], nil
	}
	return s.Logs, nil
}

var (
	_ repository.UserRepository         = (*UserRepositoryStub)(nil)
	_ repository.ProductRepository      = (*ProductRepositoryStub)(nil)
	_ repository.CategoryRepository     = (*CategoryRepositoryStub)(nil)
	_ repository.CartRepository         = (*CartRepositoryStub)(nil)
	_ repository.PromotionRepository    = (*PromotionRepositoryStub)(nil)
	_ repository.RedemptionRepository   = (*RedemptionRepositoryStub)(nil)
	_ repository.OrderRepository        = (*OrderRepositoryStub)(nil)
	_ repository.ReviewRepository       = (*ReviewRepositoryStub)(nil)
	_ repository.InventoryLogRepository = (*InventoryLogRepositoryStub)(nil)
)
