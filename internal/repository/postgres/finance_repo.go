// internal/repository/postgres/finance_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aquadesk-service/internal/domain/finance"
	xerrors "aquadesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AdvanceRepository struct {
	db *pgxpool.Pool
}

func NewAdvanceRepository(db *pgxpool.Pool) *AdvanceRepository {
	return &AdvanceRepository{db: db}
}

// Create appends an advance row.
func (r *AdvanceRepository) Create(ctx context.Context, a *finance.Advance) error {
	query := `
		INSERT INTO advances (party, party_id, amount, received_on, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, a.Party, a.PartyID, a.Amount, a.ReceivedOn, a.Notes).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return xerrors.Persistence(err, "failed to record advance")
	}

	return nil
}

// SumForParty totals advances for one customer or employee, optionally
// date-bounded.
func (r *AdvanceRepository) SumForParty(ctx context.Context, party finance.AdvanceParty, partyID int64, from, to *time.Time) (float64, error) {
	conditions := []string{"party = $1", "party_id = $2"}
	args := []interface{}{party, partyID}
	argPos := 3

	if from != nil {
		conditions = append(conditions, fmt.Sprintf("received_on >= $%d", argPos))
		args = append(args, *from)
		argPos++
	}

	if to != nil {
		conditions = append(conditions, fmt.Sprintf("received_on <= $%d", argPos))
		args = append(args, *to)
		argPos++
	}

	query := fmt.Sprintf(
		`SELECT COALESCE(SUM(amount), 0) FROM advances WHERE %s`,
		strings.Join(conditions, " AND "),
	)

	var total float64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, xerrors.Persistence(err, "failed to sum advances")
	}

	return total, nil
}

// ListForParty retrieves advance rows for one party, newest first.
func (r *AdvanceRepository) ListForParty(ctx context.Context, party finance.AdvanceParty, partyID int64) ([]finance.Advance, error) {
	query := `
		SELECT id, party, party_id, amount, received_on, notes, created_at
		FROM advances
		WHERE party = $1 AND party_id = $2
		ORDER BY received_on DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, party, partyID)
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to list advances")
	}
	defer rows.Close()

	advances := []finance.Advance{}
	for rows.Next() {
		var a finance.Advance
		err := rows.Scan(&a.ID, &a.Party, &a.PartyID, &a.Amount, &a.ReceivedOn, &a.Notes, &a.CreatedAt)
		if err != nil {
			return nil, xerrors.Persistence(err, "failed to scan advance")
		}
		advances = append(advances, a)
	}

	return advances, nil
}

type ExpenditureRepository struct {
	db *pgxpool.Pool
}

func NewExpenditureRepository(db *pgxpool.Pool) *ExpenditureRepository {
	return &ExpenditureRepository{db: db}
}

// Create appends an expenditure row.
func (r *ExpenditureRepository) Create(ctx context.Context, e *finance.Expenditure) error {
	query := `
		INSERT INTO expenditures (category, amount, spent_on, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, e.Category, e.Amount, e.SpentOn, e.Notes).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return xerrors.Persistence(err, "failed to record expenditure")
	}

	return nil
}

// List retrieves expenditures with filters
func (r *ExpenditureRepository) List(ctx context.Context, filters *finance.ExpenditureListFilters, from, to *time.Time) ([]finance.Expenditure, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, filters.Category)
		argPos++
	}

	if from != nil {
		conditions = append(conditions, fmt.Sprintf("spent_on >= $%d", argPos))
		args = append(args, *from)
		argPos++
	}

	if to != nil {
		conditions = append(conditions, fmt.Sprintf("spent_on <= $%d", argPos))
		args = append(args, *to)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM expenditures WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to count expenditures")
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT id, category, amount, spent_on, notes, created_at
		FROM expenditures
		WHERE %s
		ORDER BY spent_on DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to list expenditures")
	}
	defer rows.Close()

	expenditures := []finance.Expenditure{}
	for rows.Next() {
		var e finance.Expenditure
		err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.SpentOn, &e.Notes, &e.CreatedAt)
		if err != nil {
			return nil, 0, xerrors.Persistence(err, "failed to scan expenditure")
		}
		expenditures = append(expenditures, e)
	}

	return expenditures, total, nil
}

// SummarizeByCategory totals expenditures per category in a date range.
func (r *ExpenditureRepository) SummarizeByCategory(ctx context.Context, from, to time.Time) ([]finance.ExpenditureSummary, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM expenditures
		WHERE spent_on >= $1 AND spent_on <= $2
		GROUP BY category
		ORDER BY category ASC
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to summarize expenditures")
	}
	defer rows.Close()

	summaries := []finance.ExpenditureSummary{}
	for rows.Next() {
		var s finance.ExpenditureSummary
		if err := rows.Scan(&s.Category, &s.Total); err != nil {
			return nil, xerrors.Persistence(err, "failed to scan expenditure summary")
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}
