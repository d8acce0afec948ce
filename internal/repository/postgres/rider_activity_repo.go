// internal/repository/postgres/rider_activity_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aquadesk-service/internal/domain/rider"
	xerrors "aquadesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RiderActivityRepository struct {
	db *pgxpool.Pool
}

func NewRiderActivityRepository(db *pgxpool.Pool) *RiderActivityRepository {
	return &RiderActivityRepository{db: db}
}

// ActivitySumFilter narrows which rider activity rows are aggregated.
type ActivitySumFilter struct {
	RiderID   *int64
	ProductID *int64
	From      *time.Time
	To        *time.Time
}

// ActivitySums is the aggregate output of SumActivity.
type ActivitySums struct {
	FilledSent     int
	FilledReturned int
}

// Create appends an activity row. Rows are never updated or deleted;
// multiple rows per rider/product/day are legitimate and summed on read.
func (r *RiderActivityRepository) Create(ctx context.Context, a *rider.Activity) error {
	query := `
		INSERT INTO rider_activities (
			rider_id, product_id, activity_date,
			empty_bottles_received, filled_bottles_sent, filled_bottles_returned, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		a.RiderID, a.ProductID, a.ActivityDate,
		a.EmptyBottlesReceived, a.FilledBottlesSent, a.FilledBottlesReturned, a.Notes,
	).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		return xerrors.Persistence(err, "failed to record rider activity")
	}

	return nil
}

// SumActivity aggregates filled-sent and filled-returned counts over rows
// matching the filter. Zero rows yield zero sums.
func (r *RiderActivityRepository) SumActivity(ctx context.Context, filter ActivitySumFilter) (ActivitySums, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.RiderID != nil {
		conditions = append(conditions, fmt.Sprintf("rider_id = $%d", argPos))
		args = append(args, *filter.RiderID)
		argPos++
	}

	if filter.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", argPos))
		args = append(args, *filter.ProductID)
		argPos++
	}

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("activity_date >= $%d", argPos))
		args = append(args, *filter.From)
		argPos++
	}

	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("activity_date <= $%d", argPos))
		args = append(args, *filter.To)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(filled_bottles_sent), 0), COALESCE(SUM(filled_bottles_returned), 0)
		FROM rider_activities
		WHERE %s
	`, strings.Join(conditions, " AND "))

	var sums ActivitySums
	if err := r.db.QueryRow(ctx, query, args...).Scan(&sums.FilledSent, &sums.FilledReturned); err != nil {
		return ActivitySums{}, xerrors.Persistence(err, "failed to sum rider activity")
	}

	return sums, nil
}

// List retrieves activity rows with filters
func (r *RiderActivityRepository) List(ctx context.Context, filters *rider.ActivityListFilters, from, to *time.Time) ([]rider.Activity, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.RiderID != nil {
		conditions = append(conditions, fmt.Sprintf("rider_id = $%d", argPos))
		args = append(args, *filters.RiderID)
		argPos++
	}

	if filters.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", argPos))
		args = append(args, *filters.ProductID)
		argPos++
	}

	if from != nil {
		conditions = append(conditions, fmt.Sprintf("activity_date >= $%d", argPos))
		args = append(args, *from)
		argPos++
	}

	if to != nil {
		conditions = append(conditions, fmt.Sprintf("activity_date <= $%d", argPos))
		args = append(args, *to)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM rider_activities WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to count rider activities")
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT id, rider_id, product_id, activity_date,
		       empty_bottles_received, filled_bottles_sent, filled_bottles_returned,
		       notes, created_at
		FROM rider_activities
		WHERE %s
		ORDER BY activity_date DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to list rider activities")
	}
	defer rows.Close()

	activities := []rider.Activity{}
	for rows.Next() {
		var a rider.Activity
		err := rows.Scan(
			&a.ID, &a.RiderID, &a.ProductID, &a.ActivityDate,
			&a.EmptyBottlesReceived, &a.FilledBottlesSent, &a.FilledBottlesReturned,
			&a.Notes, &a.CreatedAt,
		)
		if err != nil {
			return nil, 0, xerrors.Persistence(err, "failed to scan rider activity")
		}
		activities = append(activities, a)
	}

	return activities, total, nil
}
