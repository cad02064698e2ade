package repository

import (
	"context"
	"errors"
	"time"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

// ErrCompletedShiftsInWindow guards the publish window: completed
// shifts are history and must never be overwritten by a re-publish.
var ErrCompletedShiftsInWindow = errors.New("completed shifts exist in the publish window")

func (r *Repository) GetPlannedShiftsInRange(shopID string, from, to time.Time) ([]*domain.PlannedShift, error) {
	query := `
		SELECT id, employee_id, start_time, end_time, status, role, notes, created_at, version
		FROM planned_shifts
		WHERE shop_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time, employee_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.PlannedShift, 0)
	for rows.Next() {
		shift := &domain.PlannedShift{
			ShopID: shopID,
		}
		dst := []any{&shift.ID, &shift.EmployeeID, &shift.StartTime, &shift.EndTime, &shift.Status, &shift.Role, &shift.Notes, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// ReplacePlannedShifts publishes a plan for a window: it removes the
// window's existing non-completed shifts and inserts the new ones in a
// single transaction. If any completed shift already sits inside the
// window the whole publish is rejected.
func (r *Repository) ReplacePlannedShifts(shopID string, from, to time.Time, shifts []*domain.PlannedShift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	completed := false
	query := `
		SELECT EXISTS (
			SELECT 1 FROM planned_shifts
			WHERE shop_id = $1 AND start_time >= $2 AND start_time < $3 AND status = 'completed'
		)
	`
	if err := tx.QueryRowContext(ctx, query, shopID, from, to).Scan(&completed); err != nil {
		return err
	}
	if completed {
		return ErrCompletedShiftsInWindow
	}

	query = `
		DELETE FROM planned_shifts
		WHERE shop_id = $1 AND start_time >= $2 AND start_time < $3 AND status <> 'completed'
	`
	if _, err := tx.ExecContext(ctx, query, shopID, from, to); err != nil {
		return err
	}

	for _, shift := range shifts {
		query := `
			INSERT INTO planned_shifts (shop_id, employee_id, start_time, end_time, status, role, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, version
		`

		args := []any{shopID, shift.EmployeeID, shift.StartTime, shift.EndTime, shift.Status, shift.Role, shift.Notes}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
			return err
		}
		shift.ShopID = shopID
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdatePlannedShiftStatus(id int64, status domain.ShiftStatus, version int32) error {
	query := `
		UPDATE planned_shifts
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var newVersion int32
	if err := r.dbpool.QueryRowContext(ctx, query, status, id, version).Scan(&newVersion); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPlannedShiftsByEmployee(employeeID int64, from, to time.Time) ([]*domain.PlannedShift, error) {
	query := `
		SELECT id, shop_id, start_time, end_time, status, role, notes, created_at, version
		FROM planned_shifts
		WHERE employee_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.PlannedShift, 0)
	for rows.Next() {
		shift := &domain.PlannedShift{
			EmployeeID: employeeID,
		}
		dst := []any{&shift.ID, &shift.ShopID, &shift.StartTime, &shift.EndTime, &shift.Status, &shift.Role, &shift.Notes, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
