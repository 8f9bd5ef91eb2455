package service

import (
	"sort"
	"time"

	"go-stockledger/internal/repository"

	"github.com/google/uuid"
)

// DashboardStats is the inventory snapshot plus the selected day's sales
// performance. Profit uses each product's current weighted-average cost, not
// the cost at the time of sale; the figure is an approximation and is
// documented as such.
type DashboardStats struct {
	TotalProducts     int64   `json:"total_products"`
	TotalStock        int64   `json:"total_stock"`
	TotalStockValue   float64 `json:"total_stock_value"`
	TotalQuantitySold int     `json:"total_quantity_sold"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalProfit       float64 `json:"total_profit"`
}

// TopSeller is one row of the monthly ranking.
type TopSeller struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	QuantitySold int       `json:"quantity_sold"`
}

type DashboardService interface {
	GetStats(date time.Time) (*DashboardStats, error)
	GetTopSellers(month time.Time) ([]TopSeller, error)
}

type dashboardService struct {
	store repository.Store
}

func NewDashboardService(store repository.Store) DashboardService {
	return &dashboardService{store: store}
}

func (s *dashboardService) GetStats(date time.Time) (*DashboardStats, error) {
	totals, err := s.store.Products().Totals()
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	sales, err := s.store.Sales().FindBetween(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts:   totals.TotalProducts,
		TotalStock:      totals.TotalStock,
		TotalStockValue: totals.TotalStockValue,
	}
	for _, transaction := range sales {
		for _, item := range transaction.Items {
			stats.TotalQuantitySold += item.Quantity
			stats.TotalRevenue += float64(item.Quantity) * item.CustomSalePrice
			if item.Product != nil {
				stats.TotalProfit -= float64(item.Quantity) * item.Product.CostPrice
			}
		}
	}
	stats.TotalProfit += stats.TotalRevenue
	return stats, nil
}

func (s *dashboardService) GetTopSellers(month time.Time) ([]TopSeller, error) {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	sales, err := s.store.Sales().FindBetween(monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	quantities := map[uuid.UUID]int{}
	names := map[uuid.UUID]string{}
	for _, transaction := range sales {
		for _, item := range transaction.Items {
			quantities[item.ProductID] += item.Quantity
			if item.Product != nil {
				names[item.ProductID] = item.Product.Name
			}
		}
	}

	sellers := make([]TopSeller, 0, len(quantities))
	for productID, quantity := range quantities {
		sellers = append(sellers, TopSeller{
			ProductID:    productID,
			ProductName:  names[productID],
			QuantitySold: quantity,
		})
	}
	// Quantity descending; ties break on product ID so the order is
	// reproducible.
	sort.Slice(sellers, func(i, j int) bool {
		if sellers[i].QuantitySold != sellers[j].QuantitySold {
			return sellers[i].QuantitySold > sellers[j].QuantitySold
		}
		return sellers[i].ProductID.String() < sellers[j].ProductID.String()
	})
	return sellers, nil
}
