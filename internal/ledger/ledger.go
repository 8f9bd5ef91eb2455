// Package ledger implements the weighted-average valuation rules that keep a
// product's stock quantity, cost price, and stock value consistent as
// purchase and sale transactions are applied and reverted. The functions are
// pure mutations of the in-memory product; persisting the result is the
// caller's job.
package ledger

import "go-stockledger/internal/model"

// ApplyPurchase blends quantity units at unitCostPrice into the product's
// weighted-average cost and raises the stock. A product at zero stock takes
// the incoming cost outright; whatever cost lingered from a fully depleted
// state is discarded.
func ApplyPurchase(p *model.Product, quantity int, unitCostPrice float64) {
	oldQuantity := p.StockQuantity
	if oldQuantity == 0 {
		p.CostPrice = unitCostPrice
	} else {
		p.CostPrice = (float64(oldQuantity)*p.CostPrice + float64(quantity)*unitCostPrice) /
			float64(oldQuantity+quantity)
	}
	p.StockQuantity += quantity
	p.StockValue = p.CostPrice * float64(p.StockQuantity)
}

// RevertPurchase backs the weighted contribution of one purchase line out of
// the product. This algebraic inverse is exact only when no other transaction
// touched the product since the purchase was applied; with interleaved
// activity the recovered cost can drift from true history, which is the
// accepted trade-off of keeping a single running scalar.
func RevertPurchase(p *model.Product, quantity int, unitCostPrice float64) {
	quantityBefore := p.StockQuantity - quantity
	if quantityBefore == 0 {
		p.CostPrice = 0
	} else {
		totalValue := p.CostPrice * float64(p.StockQuantity)
		itemValue := unitCostPrice * float64(quantity)
		p.CostPrice = (totalValue - itemValue) / float64(quantityBefore)
	}
	p.StockQuantity -= quantity
	p.StockValue = p.CostPrice * float64(p.StockQuantity)
}

// ApplySale lowers the stock. Cost price is unaffected; stock may go
// negative without error.
func ApplySale(p *model.Product, quantity int) {
	p.StockQuantity -= quantity
	p.StockValue = p.CostPrice * float64(p.StockQuantity)
}

// RevertSale restores the stock sold by one sale line.
func RevertSale(p *model.Product, quantity int) {
	p.StockQuantity += quantity
	p.StockValue = p.CostPrice * float64(p.StockQuantity)
}
