package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mobipos/mobipos/internal/config"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"
)

// DashboardOverview is the aggregated till dashboard payload
type DashboardOverview struct {
	From            time.Time                               `json:"from"`
	To              time.Time                               `json:"to"`
	SalesTotal      int64                                   `json:"sales_total"`
	SalesCompleted  int64                                   `json:"sales_completed"`
	SalesReturned   int64                                   `json:"sales_returned"`
	Revenue         models.Money                            `json:"revenue"`
	UnitsSold       int64                                   `json:"units_sold"`
	ActiveLoans     int64                                   `json:"active_loans"`
	LoanOutstanding models.Money                            `json:"loan_outstanding"`
	Stock           repository.DashboardStockStatsRow       `json:"stock"`
	Trends          []repository.DashboardSaleTrendRow      `json:"trends"`
	TopProducts     []repository.DashboardProductRankingRow `json:"top_products"`
}

// DashboardService assembles shop statistics
type DashboardService struct {
	cfg           *config.Config
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates a dashboard service
func NewDashboardService(cfg *config.Config, dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{
		cfg:           cfg,
		dashboardRepo: dashboardRepo,
	}
}

// Overview compiles the dashboard for a shop and period
func (s *DashboardService) Overview(shopID uint, from, to time.Time) (*DashboardOverview, error) {
	if to.Before(from) {
		from, to = to, from
	}

	row, err := s.dashboardRepo.GetOverview(shopID, from, to)
	if err != nil {
		return nil, err
	}
	stock, err := s.dashboardRepo.GetStockStats(shopID, int64(s.cfg.Sale.LowStockThreshold))
	if err != nil {
		return nil, err
	}
	trends, err := s.dashboardRepo.GetSaleTrends(shopID, from, to)
	if err != nil {
		return nil, err
	}
	top, err := s.dashboardRepo.GetTopProducts(shopID, from, to, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		From:            from,
		To:              to,
		SalesTotal:      row.SalesTotal,
		SalesCompleted:  row.SalesCompleted,
		SalesReturned:   row.SalesReturned,
		Revenue:         models.NewMoneyFromDecimal(decimal.NewFromFloat(row.Revenue)),
		UnitsSold:       row.UnitsSold,
		ActiveLoans:     row.ActiveLoans,
		LoanOutstanding: models.NewMoneyFromDecimal(decimal.NewFromFloat(row.LoanOutstanding)),
		Stock:           stock,
		Trends:          trends,
		TopProducts:     top,
	}, nil
}

// Today compiles the dashboard since local midnight
func (s *DashboardService) Today(shopID uint) (*DashboardOverview, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.Overview(shopID, start, start.AddDate(0, 0, 1))
}
