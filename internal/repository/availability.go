package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

func (r *Repository) GetAvailabilityWindowsByShop(shopID string) ([]domain.AvailabilityWindow, error) {
	query := `
		SELECT id, employee_id, day_of_week, start_minute, end_minute, created_at, version
		FROM availability_windows
		WHERE shop_id = $1
		ORDER BY employee_id, day_of_week, start_minute
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		w := domain.AvailabilityWindow{
			ShopID: shopID,
		}
		dst := []any{&w.ID, &w.EmployeeID, &w.Day, &w.StartMinute, &w.EndMinute, &w.CreatedAt, &w.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *Repository) GetAvailabilityWindowsByEmployee(employeeID int64) ([]domain.AvailabilityWindow, error) {
	query := `
		SELECT id, shop_id, day_of_week, start_minute, end_minute, created_at, version
		FROM availability_windows
		WHERE employee_id = $1
		ORDER BY day_of_week, start_minute
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		w := domain.AvailabilityWindow{
			EmployeeID: employeeID,
		}
		dst := []any{&w.ID, &w.ShopID, &w.Day, &w.StartMinute, &w.EndMinute, &w.CreatedAt, &w.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

// ReplaceAvailabilityWindows swaps an employee's full recurring
// submission in one transaction so readers never see a half-updated
// week.
func (r *Repository) ReplaceAvailabilityWindows(shopID string, employeeID int64, windows []domain.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM availability_windows WHERE shop_id = $1 AND employee_id = $2`
	if _, err := tx.ExecContext(ctx, query, shopID, employeeID); err != nil {
		return err
	}

	for i := range windows {
		query := `
			INSERT INTO availability_windows (shop_id, employee_id, day_of_week, start_minute, end_minute)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, version
		`

		w := &windows[i]
		args := []any{shopID, employeeID, w.Day, w.StartMinute, w.EndMinute}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&w.ID, &w.CreatedAt, &w.Version); err != nil {
			return err
		}
		w.ShopID = shopID
		w.EmployeeID = employeeID
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAvailabilityOverridesInRange(shopID string, from, to time.Time) ([]domain.AvailabilityOverride, error) {
	query := `
		SELECT id, employee_id, date, start_minute, end_minute, is_available, created_at, version
		FROM availability_overrides
		WHERE shop_id = $1 AND date >= $2 AND date < $3
		ORDER BY employee_id, date, start_minute
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make([]domain.AvailabilityOverride, 0)
	for rows.Next() {
		o := domain.AvailabilityOverride{
			ShopID: shopID,
		}
		dst := []any{&o.ID, &o.EmployeeID, &o.Date, &o.StartMinute, &o.EndMinute, &o.IsAvailable, &o.CreatedAt, &o.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

func (r *Repository) CreateAvailabilityOverride(override *domain.AvailabilityOverride) error {
	query := `
		INSERT INTO availability_overrides (shop_id, employee_id, date, start_minute, end_minute, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{override.ShopID, override.EmployeeID, override.Date, override.StartMinute, override.EndMinute, override.IsAvailable}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&override.ID, &override.CreatedAt, &override.Version); err != nil {
		return err
	}

	return nil
}

// DeleteAvailabilityOverride is scoped to the owning employee so one
// employee can never remove another's records.
func (r *Repository) DeleteAvailabilityOverride(id int64, employeeID int64) error {
	query := `
		DELETE FROM availability_overrides WHERE id = $1 AND employee_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id, employeeID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *Repository) GetUnavailableDatesInRange(shopID string, from, to time.Time) ([]domain.UnavailableDate, error) {
	query := `
		SELECT id, employee_id, date, reason, created_at, version
		FROM unavailable_dates
		WHERE shop_id = $1 AND date >= $2 AND date < $3
		ORDER BY employee_id, date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]domain.UnavailableDate, 0)
	for rows.Next() {
		u := domain.UnavailableDate{
			ShopID: shopID,
		}
		dst := []any{&u.ID, &u.EmployeeID, &u.Date, &u.Reason, &u.CreatedAt, &u.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		dates = append(dates, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dates, nil
}

func (r *Repository) CreateUnavailableDate(date *domain.UnavailableDate) error {
	query := `
		INSERT INTO unavailable_dates (shop_id, employee_id, date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{date.ShopID, date.EmployeeID, date.Date, date.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&date.ID, &date.CreatedAt, &date.Version); err != nil {
		return err
	}

	return nil
}

// DeleteUnavailableDate is scoped to the owning employee, same as
// DeleteAvailabilityOverride.
func (r *Repository) DeleteUnavailableDate(id int64, employeeID int64) error {
	query := `
		DELETE FROM unavailable_dates WHERE id = $1 AND employee_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id, employeeID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
