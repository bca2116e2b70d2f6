package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scope-service/internal/domain/changeorder"
	"scope-service/internal/domain/dashboard"
	"scope-service/internal/domain/project"
	"scope-service/internal/domain/request"
)

type DashboardRepository struct {
	db *DB
}

func NewDashboardRepository(db *DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts pulls every per-user aggregate the overview needs in one round
// trip. Child tables scope through the projects join so only the caller's
// rows are counted.
func (r *DashboardRepository) Counts(ctx context.Context, userID uuid.UUID, startOfWeek, startOfMonth time.Time) (*dashboard.Counts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM projects WHERE user_id = $1),
			(SELECT COUNT(*) FROM projects WHERE user_id = $1 AND created_at >= $3),
			(SELECT COUNT(*) FROM projects WHERE user_id = $1 AND status = 'COMPLETED'),
			(SELECT COUNT(*) FROM scope_items s JOIN projects p ON p.id = s.project_id WHERE p.user_id = $1),
			(SELECT COUNT(*) FROM scope_items s JOIN projects p ON p.id = s.project_id WHERE p.user_id = $1 AND s.created_at >= $2),
			(SELECT COUNT(*) FROM requests r JOIN projects p ON p.id = r.project_id WHERE p.user_id = $1),
			(SELECT COUNT(*) FROM requests r JOIN projects p ON p.id = r.project_id WHERE p.user_id = $1 AND r.created_at >= $2),
			(SELECT COUNT(*) FROM requests r JOIN projects p ON p.id = r.project_id WHERE p.user_id = $1 AND r.status = 'OUT_OF_SCOPE'),
			(SELECT COUNT(*) FROM change_orders WHERE user_id = $1),
			(SELECT COUNT(*) FROM change_orders WHERE user_id = $1 AND created_at >= $3),
			(SELECT COUNT(*) FROM change_orders WHERE user_id = $1 AND status = 'APPROVED'),
			(SELECT COUNT(*) FROM change_orders WHERE user_id = $1 AND status = 'REJECTED'),
			(SELECT COUNT(*) FROM change_orders WHERE user_id = $1 AND status = 'PENDING')`

	var c dashboard.Counts
	err := r.db.querier(ctx).QueryRow(ctx, query, userID, startOfWeek, startOfMonth).Scan(
		&c.TotalProjects, &c.NewProjectsThisMonth, &c.CompletedProjects,
		&c.TotalScopeItems, &c.NewScopeItemsThisWeek,
		&c.TotalRequests, &c.NewRequestsThisWeek, &c.OutOfScopeRequests,
		&c.TotalChangeOrders, &c.NewChangeOrdersThisMonth,
		&c.ApprovedChangeOrders, &c.RejectedChangeOrders, &c.PendingChangeOrders,
	)
	if err != nil {
		return nil, errFailedDashboardCounts(err)
	}

	return &c, nil
}

func (r *DashboardRepository) RecentProjects(ctx context.Context, userID uuid.UUID, limit int) ([]*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.querier(ctx).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, errFailedListProjects(err)
	}
	defer rows.Close()

	projects := make([]*project.Project, 0, limit)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, errFailedScanProject(err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListProjects(err)
	}

	return projects, nil
}

func (r *DashboardRepository) RecentRequests(ctx context.Context, userID uuid.UUID, limit int) ([]*request.Request, error) {
	query := `
		SELECT r.id, r.project_id, r.description, r.status, r.created_at, r.updated_at
		FROM requests r
		JOIN projects p ON p.id = r.project_id
		WHERE p.user_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2`

	rows, err := r.db.querier(ctx).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, errFailedListRequests(err)
	}
	defer rows.Close()

	requests := make([]*request.Request, 0, limit)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, errFailedScanRequest(err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListRequests(err)
	}

	return requests, nil
}

func (r *DashboardRepository) RecentChangeOrders(ctx context.Context, userID uuid.UUID, limit int) ([]*changeorder.ChangeOrder, error) {
	query := `SELECT ` + changeOrderColumns + ` FROM change_orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.querier(ctx).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, errFailedListChangeOrders(err)
	}
	defer rows.Close()

	orders := make([]*changeorder.ChangeOrder, 0, limit)
	for rows.Next() {
		co, err := scanChangeOrder(rows)
		if err != nil {
			return nil, errFailedScanChangeOrder(err)
		}
		orders = append(orders, co)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListChangeOrders(err)
	}

	return orders, nil
}
