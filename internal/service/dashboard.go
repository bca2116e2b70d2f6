package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"scope-service/internal/domain/dashboard"
	"scope-service/internal/infra/cache"
	"scope-service/internal/repository"
)

const recentActivityLimit = 5

// DashboardService aggregates per-user metrics. It only reads status values
// produced by the other services and never mutates anything.
type DashboardService struct {
	repo     repository.DashboardRepository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *log.Logger
	now      func() time.Time
}

func NewDashboardService(repo repository.DashboardRepository, store cache.Store, cacheTTL time.Duration, logger *log.Logger) *DashboardService {
	return &DashboardService{
		repo:     repo,
		cache:    store,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *DashboardService) Overview(ctx context.Context, userID uuid.UUID) (*dashboard.Overview, error) {
	key := cache.DashboardKey(userID)
	if cached, ok, err := s.cache.Get(key); err != nil {
		s.logger.Printf("cache get failed for %s: %v", key, err)
	} else if ok {
		var overview dashboard.Overview
		if err := json.Unmarshal([]byte(cached), &overview); err == nil {
			return &overview, nil
		}
		s.logger.Printf("cache entry for %s is corrupt, rebuilding", key)
	}

	now := s.now()
	startOfWeek := now.AddDate(0, 0, -7)
	startOfMonth := now.AddDate(0, -1, 0)

	counts, err := s.repo.Counts(ctx, userID, startOfWeek, startOfMonth)
	if err != nil {
		return nil, err
	}

	activity, err := s.recentActivity(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &dashboard.Overview{
		Metrics: dashboard.Metrics{
			Projects: dashboard.Metric{
				Total:        counts.TotalProjects,
				Growth:       counts.NewProjectsThisMonth,
				GrowthPeriod: "month",
			},
			ScopeItems: dashboard.Metric{
				Total:        counts.TotalScopeItems,
				Growth:       counts.NewScopeItemsThisWeek,
				GrowthPeriod: "week",
			},
			Requests: dashboard.RequestMetric{
				Metric: dashboard.Metric{
					Total:        counts.TotalRequests,
					Growth:       counts.NewRequestsThisWeek,
					GrowthPeriod: "week",
				},
				Pending: counts.OutOfScopeRequests,
			},
			ChangeOrders: dashboard.ChangeOrderMetric{
				Metric: dashboard.Metric{
					Total:        counts.TotalChangeOrders,
					Growth:       counts.NewChangeOrdersThisMonth,
					GrowthPeriod: "month",
				},
				Approved: counts.ApprovedChangeOrders,
				Pending:  counts.PendingChangeOrders,
				Rejected: counts.RejectedChangeOrders,
			},
		},
		RecentActivity: activity,
		QuickStats: dashboard.QuickStats{
			ProjectsCompleted: dashboard.Ratio{Value: counts.CompletedProjects, Total: counts.TotalProjects},
			PendingRequests:   dashboard.Ratio{Value: counts.OutOfScopeRequests, Total: counts.TotalRequests},
			ChangeOrderTotal:  counts.TotalChangeOrders,
			Breakdown: fmt.Sprintf("%d approved / %d pending / %d rejected",
				counts.ApprovedChangeOrders, counts.PendingChangeOrders, counts.RejectedChangeOrders),
		},
	}

	if encoded, err := json.Marshal(overview); err == nil {
		if err := s.cache.Set(key, string(encoded), s.cacheTTL); err != nil {
			s.logger.Printf("cache set failed for %s: %v", key, err)
		}
	}

	return overview, nil
}

func (s *DashboardService) recentActivity(ctx context.Context, userID uuid.UUID) ([]dashboard.Activity, error) {
	projects, err := s.repo.RecentProjects(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	requests, err := s.repo.RecentRequests(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.RecentChangeOrders(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	activity := make([]dashboard.Activity, 0, len(projects)+len(requests)+len(orders))
	for _, p := range projects {
		activity = append(activity, dashboard.Activity{
			ID:        p.ID,
			Type:      "project",
			Message:   fmt.Sprintf("Project %q created", p.Name),
			CreatedAt: p.CreatedAt,
		})
	}
	for _, r := range requests {
		activity = append(activity, dashboard.Activity{
			ID:        r.ID,
			Type:      "request",
			Message:   fmt.Sprintf("Request logged: %s", truncate(r.Description, 80)),
			CreatedAt: r.CreatedAt,
		})
	}
	for _, co := range orders {
		activity = append(activity, dashboard.Activity{
			ID:        co.ID,
			Type:      "change_order",
			Message:   fmt.Sprintf("Change order for $%.2f (%s)", co.PriceUSD, co.Status),
			CreatedAt: co.CreatedAt,
		})
	}

	sort.Slice(activity, func(i, j int) bool {
		return activity[i].CreatedAt.After(activity[j].CreatedAt)
	})
	if len(activity) > recentActivityLimit {
		activity = activity[:recentActivityLimit]
	}

	return activity, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
