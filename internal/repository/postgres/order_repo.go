// internal/repository/postgres/order_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquadesk-service/internal/domain/order"
	xerrors "aquadesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SellOrderRepository struct {
	db *pgxpool.Pool
}

func NewSellOrderRepository(db *pgxpool.Pool) *SellOrderRepository {
	return &SellOrderRepository{db: db}
}

// LineSumFilter narrows which sell-order lines are aggregated. Cancelled
// orders are always excluded; the active-status filter is not optional.
type LineSumFilter struct {
	CustomerID *int64
	ProductID  *int64
	RiderID    *int64
	From       *time.Time
	To         *time.Time
}

// LineSums is the aggregate output of SumOrderLines.
type LineSums struct {
	Delivered int
	Collected int
}

// InsertOrderAtomic persists the order header and all its lines in one
// transaction. Either everything commits or nothing does.
func (r *SellOrderRepository) InsertOrderAtomic(ctx context.Context, o *order.SellOrder) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return xerrors.Persistence(err, "failed to begin order transaction")
	}
	defer tx.Rollback(ctx)

	headerQuery := `
		INSERT INTO sell_orders (
			reference, customer_id, rider_id, order_date,
			status, payment_status, total_amount, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(
		ctx, headerQuery,
		o.Reference, o.CustomerID, o.RiderID, o.OrderDate,
		o.Status, o.PaymentStatus, o.TotalAmount, o.Notes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return xerrors.Persistence(err, "failed to insert order header")
	}

	lineQuery := `
		INSERT INTO sell_order_lines (
			order_id, product_id, quantity, unit_price, line_total, empty_bottles_collected
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for i := range o.Lines {
		line := &o.Lines[i]
		line.OrderID = o.ID
		err = tx.QueryRow(
			ctx, lineQuery,
			line.OrderID, line.ProductID, line.Quantity,
			line.UnitPrice, line.LineTotal, line.EmptyBottlesCollected,
		).Scan(&line.ID)
		if err != nil {
			return xerrors.Persistence(err, "failed to insert order line")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return xerrors.Persistence(err, "failed to commit order")
	}

	return nil
}

// FindByID retrieves an order header with its lines
func (r *SellOrderRepository) FindByID(ctx context.Context, id int64) (*order.SellOrder, error) {
	query := `
		SELECT id, reference, customer_id, rider_id, order_date,
		       status, payment_status, total_amount, notes, created_at, updated_at
		FROM sell_orders
		WHERE id = $1
	`

	var o order.SellOrder
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Reference, &o.CustomerID, &o.RiderID, &o.OrderDate,
		&o.Status, &o.PaymentStatus, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to find order")
	}

	lines, err := r.findLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines

	return &o, nil
}

func (r *SellOrderRepository) findLines(ctx context.Context, orderID int64) ([]order.SellOrderLine, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, line_total, empty_bottles_collected
		FROM sell_order_lines
		WHERE order_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to load order lines")
	}
	defer rows.Close()

	lines := []order.SellOrderLine{}
	for rows.Next() {
		var l order.SellOrderLine
		err := rows.Scan(
			&l.ID, &l.OrderID, &l.ProductID, &l.Quantity,
			&l.UnitPrice, &l.LineTotal, &l.EmptyBottlesCollected,
		)
		if err != nil {
			return nil, xerrors.Persistence(err, "failed to scan order line")
		}
		lines = append(lines, l)
	}

	return lines, nil
}

// List retrieves order headers with filters (lines are not expanded).
func (r *SellOrderRepository) List(ctx context.Context, filters *order.OrderListFilters, from, to *time.Time) ([]order.SellOrder, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argPos))
		args = append(args, *filters.CustomerID)
		argPos++
	}

	if filters.RiderID != nil {
		conditions = append(conditions, fmt.Sprintf("rider_id = $%d", argPos))
		args = append(args, *filters.RiderID)
		argPos++
	}

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
	}

	if from != nil {
		conditions = append(conditions, fmt.Sprintf("order_date >= $%d", argPos))
		args = append(args, *from)
		argPos++
	}

	if to != nil {
		conditions = append(conditions, fmt.Sprintf("order_date <= $%d", argPos))
		args = append(args, *to)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sell_orders WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to count orders")
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT id, reference, customer_id, rider_id, order_date,
		       status, payment_status, total_amount, notes, created_at, updated_at
		FROM sell_orders
		WHERE %s
		ORDER BY order_date DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to list orders")
	}
	defer rows.Close()

	orders := []order.SellOrder{}
	for rows.Next() {
		var o order.SellOrder
		err := rows.Scan(
			&o.ID, &o.Reference, &o.CustomerID, &o.RiderID, &o.OrderDate,
			&o.Status, &o.PaymentStatus, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, 0, xerrors.Persistence(err, "failed to scan order")
		}
		orders = append(orders, o)
	}

	return orders, total, nil
}

// UpdateStatus updates an order's delivery status
func (r *SellOrderRepository) UpdateStatus(ctx context.Context, id int64, status order.OrderStatus) error {
	query := `UPDATE sell_orders SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return xerrors.Persistence(err, "failed to update order status")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// UpdatePaymentStatus updates an order's payment status
func (r *SellOrderRepository) UpdatePaymentStatus(ctx context.Context, id int64, status order.PaymentStatus) error {
	query := `UPDATE sell_orders SET payment_status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return xerrors.Persistence(err, "failed to update payment status")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// SumOrderLines aggregates delivered and collected bottle quantities over
// sell-order lines matching the filter. Lines on cancelled orders never
// count.
func (r *SellOrderRepository) SumOrderLines(ctx context.Context, filter LineSumFilter) (LineSums, error) {
	conditions := []string{"o.status <> 'cancelled'"}
	args := []interface{}{}
	argPos := 1

	if filter.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("o.customer_id = $%d", argPos))
		args = append(args, *filter.CustomerID)
		argPos++
	}

	if filter.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("l.product_id = $%d", argPos))
		args = append(args, *filter.ProductID)
		argPos++
	}

	if filter.RiderID != nil {
		conditions = append(conditions, fmt.Sprintf("o.rider_id = $%d", argPos))
		args = append(args, *filter.RiderID)
		argPos++
	}

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("o.order_date >= $%d", argPos))
		args = append(args, *filter.From)
		argPos++
	}

	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("o.order_date <= $%d", argPos))
		args = append(args, *filter.To)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(l.quantity), 0), COALESCE(SUM(l.empty_bottles_collected), 0)
		FROM sell_order_lines l
		JOIN sell_orders o ON o.id = l.order_id
		WHERE %s
	`, strings.Join(conditions, " AND "))

	var sums LineSums
	if err := r.db.QueryRow(ctx, query, args...).Scan(&sums.Delivered, &sums.Collected); err != nil {
		return LineSums{}, xerrors.Persistence(err, "failed to sum order lines")
	}

	return sums, nil
}

// SumSoldByRider totals quantities sold through a rider for a product within
// the optional date bounds. Cancelled orders never count.
func (r *SellOrderRepository) SumSoldByRider(ctx context.Context, riderID, productID int64, from, to *time.Time) (int, error) {
	sums, err := r.SumOrderLines(ctx, LineSumFilter{
		RiderID:   &riderID,
		ProductID: &productID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return 0, err
	}
	return sums.Delivered, nil
}

// SumSalesAmount totals non-cancelled order amounts for a customer, for the
// receivable ledger.
func (r *SellOrderRepository) SumSalesAmount(ctx context.Context, customerID int64) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sell_orders
		WHERE customer_id = $1 AND status <> 'cancelled'
	`

	var total float64
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&total); err != nil {
		return 0, xerrors.Persistence(err, "failed to sum sales amount")
	}

	return total, nil
}
