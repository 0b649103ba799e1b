package repository

import (
	"fmt"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository aggregates sales figures for the POS dashboard.
// Pure statistics, no business rules.
type DashboardRepository interface {
	GetOverview(shopID uint, startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetSaleTrends(shopID uint, startAt, endAt time.Time) ([]DashboardSaleTrendRow, error)
	GetStockStats(shopID uint, lowStockThreshold int64) (DashboardStockStatsRow, error)
	GetTopProducts(shopID uint, startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error)
}

// DashboardOverviewRow carries raw overview counters
type DashboardOverviewRow struct {
	SalesTotal     int64
	SalesCompleted int64
	SalesReturned  int64
	Revenue        float64
	UnitsSold      int64
	ActiveLoans    int64
	LoanOutstanding float64
}

// DashboardSaleTrendRow is one day of sale counts
type DashboardSaleTrendRow struct {
	Day     string
	Sales   int64
	Revenue float64
}

// DashboardStockStatsRow carries stock counters
type DashboardStockStatsRow struct {
	InStockUnits       int64
	OutOfStockProducts int64
	LowStockProducts   int64
}

// DashboardProductRankingRow is one product ranking entry
type DashboardProductRankingRow struct {
	ProductID  uint
	Name       string
	SalesCount int64
	Quantity   int64
	Revenue    float64
}

// GormDashboardRepository is the GORM implementation
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a dashboard repository
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview compiles the headline numbers for a shop and period
func (r *GormDashboardRepository) GetOverview(shopID uint, startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	saleBase := func() *gorm.DB {
		return r.db.Model(&models.Sale{}).
			Where("shop_id = ? AND sale_date >= ? AND sale_date < ?", shopID, startAt, endAt)
	}

	if err := saleBase().Count(&result.SalesTotal).Error; err != nil {
		return result, err
	}
	if err := saleBase().Where("status = ?", constants.SaleStatusCompleted).
		Count(&result.SalesCompleted).Error; err != nil {
		return result, err
	}
	if err := saleBase().Where("status = ?", constants.SaleStatusReturned).
		Count(&result.SalesReturned).Error; err != nil {
		return result, err
	}
	if err := saleBase().Where("status = ?", constants.SaleStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.Revenue).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.shop_id = ? AND sales.sale_date >= ? AND sales.sale_date < ? AND sales.status = ? AND sales.deleted_at IS NULL",
			shopID, startAt, endAt, constants.SaleStatusCompleted).
		Select("COALESCE(SUM(sale_items.quantity), 0)").
		Scan(&result.UnitsSold).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Loan{}).
		Where("shop_id = ? AND status = ?", shopID, constants.LoanStatusActive).
		Count(&result.ActiveLoans).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Loan{}).
		Where("shop_id = ? AND status = ?", shopID, constants.LoanStatusActive).
		Select("COALESCE(SUM(principal_amount - paid_amount), 0)").
		Scan(&result.LoanOutstanding).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetSaleTrends groups completed sales per day
func (r *GormDashboardRepository) GetSaleTrends(shopID uint, startAt, endAt time.Time) ([]DashboardSaleTrendRow, error) {
	dayExpr := "CAST(date(sale_date) AS TEXT)"
	rows := make([]DashboardSaleTrendRow, 0)
	if err := r.db.Model(&models.Sale{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as sales, COALESCE(SUM(total_amount), 0) as revenue", dayExpr)).
		Where("shop_id = ? AND sale_date >= ? AND sale_date < ? AND status = ?",
			shopID, startAt, endAt, constants.SaleStatusCompleted).
		Group(dayExpr).
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetStockStats counts sellable units and flags products that have
// run dry or dropped to the low-stock threshold
func (r *GormDashboardRepository) GetStockStats(shopID uint, lowStockThreshold int64) (DashboardStockStatsRow, error) {
	result := DashboardStockStatsRow{}

	if err := r.db.Model(&models.InventoryItem{}).
		Where("shop_id = ? AND status = ?", shopID, constants.InventoryStatusInStock).
		Count(&result.InStockUnits).Error; err != nil {
		return result, err
	}

	type productRow struct {
		ID uint
	}
	var products []productRow
	if err := r.db.Model(&models.Product{}).
		Select("id").
		Where("shop_id = ? AND active = ?", shopID, true).
		Scan(&products).Error; err != nil {
		return result, err
	}
	if len(products) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	type countRow struct {
		ProductID uint
		Total     int64
	}
	var counts []countRow
	if err := r.db.Model(&models.InventoryItem{}).
		Select("product_id, COUNT(*) as total").
		Where("shop_id = ? AND product_id IN ? AND status = ?", shopID, ids, constants.InventoryStatusInStock).
		Group("product_id").
		Scan(&counts).Error; err != nil {
		return result, err
	}

	countMap := make(map[uint]int64, len(counts))
	for _, row := range counts {
		countMap[row.ProductID] = row.Total
	}
	for _, id := range ids {
		available := countMap[id]
		if available <= 0 {
			result.OutOfStockProducts += 1
		} else if available <= lowStockThreshold {
			result.LowStockProducts += 1
		}
	}

	return result, nil
}

// GetTopProducts ranks products by revenue for a shop and period
func (r *GormDashboardRepository) GetTopProducts(shopID uint, startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0)
	if err := r.db.Model(&models.SaleItem{}).
		Select(`
			sale_items.product_id as product_id,
			sale_items.product_name as name,
			COUNT(DISTINCT sale_items.sale_id) as sales_count,
			COALESCE(SUM(sale_items.quantity), 0) as quantity,
			COALESCE(SUM(sale_items.line_total), 0) as revenue
		`).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.shop_id = ? AND sales.sale_date >= ? AND sales.sale_date < ? AND sales.status = ? AND sales.deleted_at IS NULL",
			shopID, startAt, endAt, constants.SaleStatusCompleted).
		Group("sale_items.product_id, sale_items.product_name").
		Order("revenue DESC, quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
