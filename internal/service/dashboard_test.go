package service

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scope-service/internal/domain/changeorder"
	"scope-service/internal/domain/dashboard"
	"scope-service/internal/domain/project"
	"scope-service/internal/domain/request"
	"scope-service/internal/infra/cache"
)

func TestDashboardOverview(t *testing.T) {
	repo := &fakeDashboardRepo{
		counts: dashboard.Counts{
			TotalProjects:            4,
			CompletedProjects:        1,
			NewProjectsThisMonth:     2,
			TotalScopeItems:          12,
			NewScopeItemsThisWeek:    3,
			TotalRequests:            7,
			NewRequestsThisWeek:      2,
			OutOfScopeRequests:       3,
			TotalChangeOrders:        5,
			NewChangeOrdersThisMonth: 1,
			ApprovedChangeOrders:     2,
			PendingChangeOrders:      2,
			RejectedChangeOrders:     1,
		},
	}
	svc := NewDashboardService(repo, cache.NewMemoryStore(), time.Minute, log.New(io.Discard, "", 0))

	overview, err := svc.Overview(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 4, overview.Metrics.Projects.Total)
	assert.Equal(t, 2, overview.Metrics.Projects.Growth)
	assert.Equal(t, "month", overview.Metrics.Projects.GrowthPeriod)
	assert.Equal(t, "week", overview.Metrics.ScopeItems.GrowthPeriod)
	assert.Equal(t, 3, overview.Metrics.Requests.Pending)
	assert.Equal(t, 2, overview.Metrics.ChangeOrders.Approved)
	assert.Equal(t, 1, overview.Metrics.ChangeOrders.Rejected)
	assert.Equal(t, dashboard.Ratio{Value: 1, Total: 4}, overview.QuickStats.ProjectsCompleted)
	assert.Equal(t, "2 approved / 2 pending / 1 rejected", overview.QuickStats.Breakdown)
}

func TestDashboardOverview_RecentActivity(t *testing.T) {
	base := time.Now()
	repo := &fakeDashboardRepo{
		projects: []*project.Project{
			{ID: uuid.New(), Name: "Website redesign", CreatedAt: base.Add(-3 * time.Hour)},
		},
		requests: []*request.Request{
			{ID: uuid.New(), Description: "Add a blog section", CreatedAt: base.Add(-1 * time.Hour)},
		},
		orders: []*changeorder.ChangeOrder{
			{ID: uuid.New(), PriceUSD: 1500.50, Status: changeorder.StatusPending, CreatedAt: base.Add(-2 * time.Hour)},
		},
	}
	svc := NewDashboardService(repo, cache.NewMemoryStore(), time.Minute, log.New(io.Discard, "", 0))

	overview, err := svc.Overview(context.Background(), uuid.New())
	require.NoError(t, err)

	// Newest first, mixed across entity types.
	require.Len(t, overview.RecentActivity, 3)
	assert.Equal(t, "request", overview.RecentActivity[0].Type)
	assert.Equal(t, "change_order", overview.RecentActivity[1].Type)
	assert.Equal(t, "project", overview.RecentActivity[2].Type)
	assert.Contains(t, overview.RecentActivity[1].Message, "$1500.50")
}

func TestDashboardOverview_Cached(t *testing.T) {
	repo := &fakeDashboardRepo{counts: dashboard.Counts{TotalProjects: 1}}
	store := cache.NewMemoryStore()
	svc := NewDashboardService(repo, store, time.Minute, log.New(io.Discard, "", 0))
	userID := uuid.New()

	_, err := svc.Overview(context.Background(), userID)
	require.NoError(t, err)

	// The second read is served from cache: repository changes are not
	// visible until invalidation.
	repo.counts.TotalProjects = 9
	overview, err := svc.Overview(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.Metrics.Projects.Total)

	store.Delete(cache.DashboardKey(userID))
	overview, err = svc.Overview(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 9, overview.Metrics.Projects.Total)
}
