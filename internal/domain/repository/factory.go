package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Products() ProductRepository
	Categories() CategoryRepository
	Carts() CartRepository
	Promotions() PromotionRepository
	Redemptions() RedemptionRepository
	Orders() OrderRepository
	Reviews() ReviewRepository
	InventoryLogs() InventoryLogRepository
}
