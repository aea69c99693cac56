package usecase

import "github.com/tdnguyen/storefront/internal/domain/model"

// ResolvePrice returns the effective unit price for a product: the sale
// price when one is set below the list price, otherwise the list price.
// Every screen-facing amount goes through this single precedence rule.
func ResolvePrice(p *model.Product) int64 {
	if p.SalePrice != nil && *p.SalePrice >= 0 && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}

// SubtotalOf sums line totals across cart lines.
func SubtotalOf(lines []model.CartLine) int64 {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.LineTotal
	}
	return subtotal
}
