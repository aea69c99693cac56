package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/domain/repository"
)

// pool is the subset of pgxpool.Pool used by the storage layer.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// newPgxPool is swapped out in tests.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	db     pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type categoryRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

type promotionRepository struct {
	storage *Storage
}

type redemptionRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type reviewRepository struct {
	storage *Storage
}

type inventoryLogRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	db, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{db: db, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Categories() repository.CategoryRepository {
	return &categoryRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Promotions() repository.PromotionRepository {
	return &promotionRepository{storage: s}
}

func (s *Storage) Redemptions() repository.RedemptionRepository {
	return &redemptionRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Reviews() repository.ReviewRepository {
	return &reviewRepository{storage: s}
}

func (s *Storage) InventoryLogs() repository.InventoryLogRepository {
	return &inventoryLogRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            username TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price BIGINT NOT NULL,
            sale_price BIGINT,
            stock INTEGER NOT NULL DEFAULT 0,
            category_id BIGINT NOT NULL REFERENCES categories(id),
            image_url TEXT NOT NULL DEFAULT '',
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            quantity INTEGER NOT NULL,
            color TEXT NOT NULL DEFAULT '',
            size TEXT NOT NULL DEFAULT '',
            added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (user_id, product_id, color, size)
        )`,
		`CREATE TABLE IF NOT EXISTS cart_promotions (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            code TEXT NOT NULL,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS promotions (
            id SERIAL PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            discount_type TEXT NOT NULL,
            discount_value BIGINT NOT NULL,
            min_order_amount BIGINT NOT NULL DEFAULT 0,
            starts_at TIMESTAMPTZ NOT NULL,
            ends_at TIMESTAMPTZ NOT NULL,
            max_usage INTEGER NOT NULL DEFAULT 1,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            user_id BIGINT NOT NULL REFERENCES users(id),
            receiver_name TEXT NOT NULL,
            phone TEXT NOT NULL,
            address TEXT NOT NULL,
            shipping_method TEXT NOT NULL,
            shipping_fee BIGINT NOT NULL,
            promo_code TEXT,
            discount BIGINT NOT NULL DEFAULT 0,
            subtotal BIGINT NOT NULL,
            total BIGINT NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            quantity INTEGER NOT NULL,
            unit_price BIGINT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS promotion_redemptions (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            code TEXT NOT NULL,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            redeemed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS inventory_logs (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL REFERENCES products(id),
            change_amount INTEGER NOT NULL,
            reason TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS product_reviews (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL REFERENCES products(id),
            user_id BIGINT NOT NULL REFERENCES users(id),
            rating INTEGER NOT NULL,
            comment TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_redemptions_user_code ON promotion_redemptions(user_id, code)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_product ON product_reviews(product_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, username, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (email, username, password_hash, role)
                   VALUES ($1, $2, $3, $4) RETURNING id, is_active, created_at`
	var u model.User
	err := r.storage.db.QueryRow(ctx, query, email, username, passwordHash, role).Scan(&u.ID, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.Username = username
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, username, password_hash, role, is_active, created_at
                   FROM users WHERE email=$1`
	return r.scanUser(r.storage.db.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, username, password_hash, role, is_active, created_at
                   FROM users WHERE id=$1`
	return r.scanUser(r.storage.db.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) SyncProfile(ctx context.Context, id int64, username string, active bool) error {
	const query = `UPDATE users SET username=$2, is_active=$3 WHERE id=$1`
	tag, err := r.storage.db.Exec(ctx, query, id, username, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ProductRepository implementation ---

const productColumns = `id, name, description, price, sale_price, stock, category_id, image_url, is_active, is_deleted, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.SalePrice, &p.Stock,
		&p.CategoryID, &p.ImageURL, &p.Active, &p.Deleted, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()
	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.SalePrice, &p.Stock,
			&p.CategoryID, &p.ImageURL, &p.Active, &p.Deleted, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, description, price, sale_price, stock, category_id, image_url, is_active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, is_deleted, created_at`
	created := *p
	err := r.storage.db.QueryRow(ctx, query, p.Name, p.Description, p.Price, p.SalePrice,
		p.Stock, p.CategoryID, p.ImageURL, p.Active).Scan(&created.ID, &created.Deleted, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	const query = `UPDATE products
                   SET name=$2, description=$3, price=$4, sale_price=$5, stock=$6,
                       category_id=$7, image_url=$8, is_active=$9
                   WHERE id=$1 AND is_deleted=FALSE`
	tag, err := r.storage.db.Exec(ctx, query, p.ID, p.Name, p.Description, p.Price, p.SalePrice,
		p.Stock, p.CategoryID, p.ImageURL, p.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `UPDATE products SET is_deleted=TRUE WHERE id=$1 AND is_deleted=FALSE`
	tag, err := r.storage.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.storage.db.QueryRow(ctx, query, id))
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var (
		conds []string
		args  []any
	)
	if filter.VisibleOnly {
		conds = append(conds, "is_active=TRUE AND is_deleted=FALSE")
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id=$%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.storage.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *productRepository) ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products
                   WHERE category_id=$1 AND id<>$2 AND is_active=TRUE AND is_deleted=FALSE
                   ORDER BY created_at DESC LIMIT $3`
	rows, err := r.storage.db.Query(ctx, query, categoryID, excludeID, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// --- CategoryRepository implementation ---

func (r *categoryRepository) Create(ctx context.Context, name, description string) (*model.Category, error) {
	const query = `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`
	c := model.Category{Name: name, Description: description}
	if err := r.storage.db.QueryRow(ctx, query, name, description).Scan(&c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *model.Category) error {
	const query = `UPDATE categories SET name=$2, description=$3 WHERE id=$1`
	tag, err := r.storage.db.Exec(ctx, query, c.ID, c.Name, c.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM categories WHERE id=$1`
	tag, err := r.storage.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	const query = `SELECT id, name, description FROM categories WHERE id=$1`
	var c model.Category
	err := r.storage.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name, description FROM categories ORDER BY name`
	rows, err := r.storage.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CartRepository implementation ---

func (r *cartRepository) Add(ctx context.Context, userID, productID int64, quantity int, color, size string) (*model.CartItem, error) {
	const query = `INSERT INTO cart_items (user_id, product_id, quantity, color, size)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (user_id, product_id, color, size)
                   DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
                   RETURNING id, quantity, added_at`
	item := model.CartItem{UserID: userID, ProductID: productID, Color: color, Size: size}
	err := r.storage.db.QueryRow(ctx, query, userID, productID, quantity, color, size).
		Scan(&item.ID, &item.Quantity, &item.AddedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	const query = `UPDATE cart_items SET quantity=$3 WHERE id=$2 AND user_id=$1`
	tag, err := r.storage.db.Exec(ctx, query, userID, itemID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) Remove(ctx context.Context, userID, itemID int64) error {
	const query = `DELETE FROM cart_items WHERE id=$2 AND user_id=$1`
	tag, err := r.storage.db.Exec(ctx, query, userID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	const query = `SELECT id, user_id, product_id, quantity, color, size, added_at
                   FROM cart_items WHERE user_id=$1 ORDER BY added_at`
	rows, err := r.storage.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
			&item.Color, &item.Size, &item.AddedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *cartRepository) SetAppliedCode(ctx context.Context, userID int64, code string) error {
	const query = `INSERT INTO cart_promotions (user_id, code) VALUES ($1, $2)`
	if _, err := r.storage.db.Exec(ctx, query, userID, code); err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrPromotionApplied
		}
		return err
	}
	return nil
}

func (r *cartRepository) AppliedCode(ctx context.Context, userID int64) (string, error) {
	const query = `SELECT code FROM cart_promotions WHERE user_id=$1`
	var code string
	err := r.storage.db.QueryRow(ctx, query, userID).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return code, nil
}

func (r *cartRepository) ClearAppliedCode(ctx context.Context, userID int64) error {
	const query = `DELETE FROM cart_promotions WHERE user_id=$1`
	_, err := r.storage.db.Exec(ctx, query, userID)
	return err
}

// --- PromotionRepository implementation ---

const promotionColumns = `id, code, discount_type, discount_value, min_order_amount, starts_at, ends_at, max_usage, is_active, created_at`

func scanPromotion(row pgx.Row) (*model.Promotion, error) {
	var p model.Promotion
	err := row.Scan(&p.ID, &p.Code, &p.Type, &p.Value, &p.MinOrderAmount,
		&p.StartsAt, &p.EndsAt, &p.MaxUsage, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *promotionRepository) Create(ctx context.Context, p *model.Promotion) (*model.Promotion, error) {
	const query = `INSERT INTO promotions (code, discount_type, discount_value, min_order_amount, starts_at, ends_at, max_usage, is_active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, created_at`
	created := *p
	err := r.storage.db.QueryRow(ctx, query, p.Code, p.Type, p.Value, p.MinOrderAmount,
		p.StartsAt, p.EndsAt, p.MaxUsage, p.Active).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *promotionRepository) Update(ctx context.Context, p *model.Promotion) error {
	const query = `UPDATE promotions
                   SET discount_type=$2, discount_value=$3, min_order_amount=$4,
                       starts_at=$5, ends_at=$6, max_usage=$7, is_active=$8
                   WHERE id=$1`
	tag, err := r.storage.db.Exec(ctx, query, p.ID, p.Type, p.Value, p.MinOrderAmount,
		p.StartsAt, p.EndsAt, p.MaxUsage, p.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *promotionRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM promotions WHERE id=$1`
	tag, err := r.storage.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *promotionRepository) GetByCode(ctx context.Context, code string) (*model.Promotion, error) {
	const query = `SELECT ` + promotionColumns + ` FROM promotions WHERE code=$1`
	return scanPromotion(r.storage.db.QueryRow(ctx, query, code))
}

func (r *promotionRepository) List(ctx context.Context) ([]model.Promotion, error) {
	const query = `SELECT ` + promotionColumns + ` FROM promotions ORDER BY created_at DESC`
	rows, err := r.storage.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Promotion
	for rows.Next() {
		var p model.Promotion
		if err := rows.Scan(&p.ID, &p.Code, &p.Type, &p.Value, &p.MinOrderAmount,
			&p.StartsAt, &p.EndsAt, &p.MaxUsage, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- RedemptionRepository implementation ---

func (r *redemptionRepository) CountByUserAndCode(ctx context.Context, userID int64, code string) (int, error) {
	const query = `SELECT COUNT(*) FROM promotion_redemptions WHERE user_id=$1 AND code=$2`
	var count int
	if err := r.storage.db.QueryRow(ctx, query, userID, code).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *redemptionRepository) ListByUser(ctx context.Context, userID int64) ([]model.Redemption, error) {
	const query = `SELECT id, user_id, code, order_id, redeemed_at
                   FROM promotion_redemptions WHERE user_id=$1 ORDER BY redeemed_at DESC`
	rows, err := r.storage.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Redemption
	for rows.Next() {
		var red model.Redemption
		if err := rows.Scan(&red.ID, &red.UserID, &red.Code, &red.OrderID, &red.RedeemedAt); err != nil {
			return nil, err
		}
		result = append(result, red)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if order.PromoCode != nil {
			// Lock the promotion row so concurrent checkouts near the usage
			// cap serialize on the recount below.
			const lockQuery = `SELECT max_usage FROM promotions WHERE code=$1 FOR UPDATE`
			var maxUsage int
			if err := tx.QueryRow(ctx, lockQuery, *order.PromoCode).Scan(&maxUsage); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrInvalidPromotion
				}
				return err
			}
			const countQuery = `SELECT COUNT(*) FROM promotion_redemptions WHERE user_id=$1 AND code=$2`
			var used int
			if err := tx.QueryRow(ctx, countQuery, order.UserID, *order.PromoCode).Scan(&used); err != nil {
				return err
			}
			if used >= maxUsage {
				return domainErrors.ErrInvalidPromotion
			}
		}

		const insertOrder = `INSERT INTO orders (number, user_id, receiver_name, phone, address,
                                 shipping_method, shipping_fee, promo_code, discount, subtotal, total, status)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                             RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder, order.Number, order.UserID,
			order.Shipping.ReceiverName, order.Shipping.Phone, order.Shipping.Address,
			order.Shipping.Method, order.ShippingFee, order.PromoCode,
			order.Discount, order.Subtotal, order.Total, order.Status).
			Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, quantity, unit_price)
                            VALUES ($1, $2, $3, $4) RETURNING id`
		created.Items = make([]model.OrderItem, len(order.Items))
		for i, item := range order.Items {
			item.OrderID = created.ID
			if err := tx.QueryRow(ctx, insertItem, created.ID, item.ProductID, item.Quantity, item.UnitPrice).Scan(&item.ID); err != nil {
				return err
			}
			created.Items[i] = item
		}

		if order.PromoCode != nil {
			const insertRedemption = `INSERT INTO promotion_redemptions (user_id, code, order_id) VALUES ($1, $2, $3)`
			if _, err := tx.Exec(ctx, insertRedemption, order.UserID, *order.PromoCode, created.ID); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, order.UserID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM cart_promotions WHERE user_id=$1`, order.UserID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

const orderColumns = `id, number, user_id, receiver_name, phone, address, shipping_method,
                      shipping_fee, promo_code, discount, subtotal, total, status, created_at, updated_at`

func scanOrderRow(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Number, &o.UserID, &o.Shipping.ReceiverName, &o.Shipping.Phone,
		&o.Shipping.Address, &o.Shipping.Method, &o.ShippingFee, &o.PromoCode,
		&o.Discount, &o.Subtotal, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrderRow(r.storage.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, quantity, unit_price
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) collectOrders(ctx context.Context, rows pgx.Rows) ([]model.Order, error) {
	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.UserID, &o.Shipping.ReceiverName, &o.Shipping.Phone,
			&o.Shipping.Address, &o.Shipping.Method, &o.ShippingFee, &o.PromoCode,
			&o.Discount, &o.Subtotal, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		result = append(result, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.loadItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.storage.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.collectOrders(ctx, rows)
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.storage.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.collectOrders(ctx, rows)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.db.Exec(ctx, query, orderID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ReviewRepository implementation ---

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	const query = `INSERT INTO product_reviews (product_id, user_id, rating, comment)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	created := *review
	err := r.storage.db.QueryRow(ctx, query, review.ProductID, review.UserID, review.Rating, review.Comment).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	const query = `SELECT id, product_id, user_id, rating, comment, created_at
                   FROM product_reviews WHERE product_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Review
	for rows.Next() {
		var review model.Review
		if err := rows.Scan(&review.ID, &review.ProductID, &review.UserID,
			&review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- InventoryLogRepository implementation ---

func (r *inventoryLogRepository) Append(ctx context.Context, productID int64, change int, reason string) error {
	const query = `INSERT INTO inventory_logs (product_id, change_amount, reason) VALUES ($1, $2, $3)`
	_, err := r.storage.db.Exec(ctx, query, productID, change, reason)
	return err
}

func (r *inventoryLogRepository) List(ctx context.Context, limit int) ([]model.InventoryLog, error) {
	query := `SELECT id, product_id, change_amount, reason, created_at
              FROM inventory_logs ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.storage.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.InventoryLog
	for rows.Next() {
		var entry model.InventoryLog
		if err := rows.Scan(&entry.ID, &entry.ProductID, &entry.ChangeAmount, &entry.Reason, &entry.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
