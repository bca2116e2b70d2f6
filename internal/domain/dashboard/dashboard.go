package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// Counts are the raw per-user aggregates pulled from the store in one pass.
type Counts struct {
	TotalProjects            int
	NewProjectsThisMonth     int
	CompletedProjects        int
	TotalScopeItems          int
	NewScopeItemsThisWeek    int
	TotalRequests            int
	NewRequestsThisWeek      int
	OutOfScopeRequests       int
	TotalChangeOrders        int
	NewChangeOrdersThisMonth int
	ApprovedChangeOrders     int
	RejectedChangeOrders     int
	PendingChangeOrders      int
}

type Metric struct {
	Total        int    `json:"total"`
	Growth       int    `json:"growth"`
	GrowthPeriod string `json:"growthPeriod"`
}

type RequestMetric struct {
	Metric
	Pending int `json:"pending"`
}

type ChangeOrderMetric struct {
	Metric
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

type Metrics struct {
	Projects     Metric            `json:"projects"`
	ScopeItems   Metric            `json:"scopeItems"`
	Requests     RequestMetric     `json:"requests"`
	ChangeOrders ChangeOrderMetric `json:"changeOrders"`
}

type Activity struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type Ratio struct {
	Value int `json:"value"`
	Total int `json:"total"`
}

type QuickStats struct {
	ProjectsCompleted Ratio  `json:"projectsCompleted"`
	PendingRequests   Ratio  `json:"pendingRequests"`
	ChangeOrderTotal  int    `json:"changeOrderTotal"`
	Breakdown         string `json:"breakdown"`
}

// Overview is the dashboard read model returned to the caller. It is
// derived entirely from status values; the aggregator performs no mutation.
type Overview struct {
	Metrics        Metrics    `json:"metrics"`
	RecentActivity []Activity `json:"recentActivity"`
	QuickStats     QuickStats `json:"quickStats"`
}
