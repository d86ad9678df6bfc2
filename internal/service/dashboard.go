package service

import (
	"context"
	"time"

	"github.com/dealdesk/dealdesk/internal/api/dto"
	"github.com/dealdesk/dealdesk/internal/cache"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

const (
	dashboardCacheTTL = 60 * time.Second
	trendDays         = 7
)

// DashboardService aggregates tenant-wide counters for the landing page.
// Results are cached briefly; the numbers are informational, not
// transactional.
type DashboardService interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{ServiceParams: params}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	stats, err := s.getStatistics(ctx)
	if err != nil {
		return nil, err
	}
	trend, err := s.getTrend(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{Statistics: stats, Trend: trend}, nil
}

func (s *dashboardService) getStatistics(ctx context.Context) (*dto.StatisticsData, error) {
	key := cache.GenerateKey(cache.PrefixDashboardStats, types.GetTenantID(ctx))
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if stats, ok := cached.(*dto.StatisticsData); ok {
			return stats, nil
		}
	}

	now := time.Now()
	todayStart, todayEnd := types.DayBounds(now)
	yesterdayStart, yesterdayEnd := types.DayBounds(now.AddDate(0, 0, -1))

	stats := &dto.StatisticsData{}
	var (
		customersYesterday int
		leadsYesterday     int
		contractsYesterday int
		amountYesterday    decimal.Decimal
		approvedYesterday  int
		rejectedYesterday  int
	)

	// each task writes its own fields, so no locking is needed
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		stats.NewCustomerCount, err = s.CustomerRepo.CountCreatedBetween(ctx, todayStart, todayEnd)
		if err != nil {
			return err
		}
		customersYesterday, err = s.CustomerRepo.CountCreatedBetween(ctx, yesterdayStart, yesterdayEnd)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.NewLeadCount, err = s.LeadRepo.CountCreatedBetween(ctx, todayStart, todayEnd)
		if err != nil {
			return err
		}
		leadsYesterday, err = s.LeadRepo.CountCreatedBetween(ctx, yesterdayStart, yesterdayEnd)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.NewContractCount, err = s.ContractRepo.CountCreatedBetween(ctx, todayStart, todayEnd)
		if err != nil {
			return err
		}
		contractsYesterday, err = s.ContractRepo.CountCreatedBetween(ctx, yesterdayStart, yesterdayEnd)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.ContractAmount, err = s.ContractRepo.SumAmountCreatedBetween(ctx, todayStart, todayEnd)
		if err != nil {
			return err
		}
		amountYesterday, err = s.ContractRepo.SumAmountCreatedBetween(ctx, yesterdayStart, yesterdayEnd)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.ApprovedContractCount, err = s.ContractRepo.CountByStatusUpdatedBetween(ctx, "", types.ContractStatusApproved, todayStart, todayEnd)
		if err != nil {
			return err
		}
		approvedYesterday, err = s.ContractRepo.CountByStatusUpdatedBetween(ctx, "", types.ContractStatusApproved, yesterdayStart, yesterdayEnd)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.RejectedContractCount, err = s.ContractRepo.CountByStatusUpdatedBetween(ctx, "", types.ContractStatusRejected, todayStart, todayEnd)
		if err != nil {
			return err
		}
		rejectedYesterday, err = s.ContractRepo.CountByStatusUpdatedBetween(ctx, "", types.ContractStatusRejected, yesterdayStart, yesterdayEnd)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	stats.CustomerChange = changeRate(stats.NewCustomerCount, customersYesterday)
	stats.LeadChange = changeRate(stats.NewLeadCount, leadsYesterday)
	stats.ContractChange = changeRate(stats.NewContractCount, contractsYesterday)
	stats.AmountChange = amountChangeRate(stats.ContractAmount, amountYesterday)
	stats.ApprovedContractChange = changeRate(stats.ApprovedContractCount, approvedYesterday)
	stats.RejectedContractChange = changeRate(stats.RejectedContractCount, rejectedYesterday)

	s.Cache.Set(ctx, key, stats, dashboardCacheTTL)
	return stats, nil
}

func (s *dashboardService) getTrend(ctx context.Context) (*dto.TrendData, error) {
	key := cache.GenerateKey(cache.PrefixDashboardTrend, types.GetTenantID(ctx))
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if trend, ok := cached.(*dto.TrendData); ok {
			return trend, nil
		}
	}

	now := time.Now()
	trend := &dto.TrendData{
		Dates:        make([]string, trendDays),
		CustomerData: make([]int, trendDays),
		LeadData:     make([]int, trendDays),
		ContractData: make([]int, trendDays),
		ApprovedData: make([]int, trendDays),
		RejectedData: make([]int, trendDays),
	}

	// one task per day, each writing its own index
	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i := 0; i < trendDays; i++ {
		i := i
		day := now.AddDate(0, 0, i-trendDays+1)
		p.Go(func(ctx context.Context) error {
			start, end := types.DayBounds(day)
			trend.Dates[i] = types.DateString(day)

			var err error
			if trend.CustomerData[i], err = s.CustomerRepo.CountCreatedBetween(ctx, start, end); err != nil {
				return err
			}
			if trend.LeadData[i], err = s.LeadRepo.CountCreatedBetween(ctx, start, end); err != nil {
				return err
			}
			if trend.ContractData[i], err = s.ContractRepo.CountCreatedBetween(ctx, start, end); err != nil {
				return err
			}
			if trend.ApprovedData[i], err = s.ContractRepo.CountByStatusUpdatedBetween(ctx, "", types.ContractStatusApproved, start, end); err != nil {
				return err
			}
			trend.RejectedData[i], err = s.ContractRepo.CountByStatusUpdatedBetween(ctx, "", types.ContractStatusRejected, start, end)
			return err
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, trend, dashboardCacheTTL)
	return trend, nil
}

// changeRate returns the whole-percentage change from yesterday to today.
// A zero baseline yields 100 when today is positive and 0 otherwise; the
// division truncates toward zero.
func changeRate(today, yesterday int) int {
	if yesterday == 0 {
		if today > 0 {
			return 100
		}
		return 0
	}
	return (today - yesterday) * 100 / yesterday
}

// amountChangeRate applies the same policy to monetary sums, rounding
// half up to a whole percentage.
func amountChangeRate(today, yesterday decimal.Decimal) int {
	if yesterday.IsZero() {
		if today.IsPositive() {
			return 100
		}
		return 0
	}
	rate := today.Sub(yesterday).Mul(decimal.NewFromInt(100)).DivRound(yesterday, 0)
	return int(rate.IntPart())
}
