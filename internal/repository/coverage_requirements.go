package repository

import (
	"context"
	"time"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

func (r *Repository) GetCoverageRequirementsByWeek(shopID string, weekStart time.Time) ([]domain.CoverageRequirement, error) {
	query := `
		SELECT id, day_of_week, start_minute, end_minute, headcount, role, notes, created_at, version
		FROM coverage_requirements
		WHERE shop_id = $1 AND week_start = $2
		ORDER BY day_of_week, start_minute
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requirements := make([]domain.CoverageRequirement, 0)
	for rows.Next() {
		req := domain.CoverageRequirement{
			ShopID:    shopID,
			WeekStart: weekStart,
		}
		dst := []any{&req.ID, &req.Day, &req.StartMinute, &req.EndMinute, &req.Headcount, &req.Role, &req.Notes, &req.CreatedAt, &req.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requirements, nil
}

func (r *Repository) GetCoverageRequirementByID(id int64) (*domain.CoverageRequirement, error) {
	query := `
		SELECT shop_id, week_start, day_of_week, start_minute, end_minute, headcount, role, notes, created_at, version
		FROM coverage_requirements WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req := &domain.CoverageRequirement{
		ID: id,
	}

	dst := []any{&req.ShopID, &req.WeekStart, &req.Day, &req.StartMinute, &req.EndMinute, &req.Headcount, &req.Role, &req.Notes, &req.CreatedAt, &req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return req, nil
}

func (r *Repository) CreateCoverageRequirement(req *domain.CoverageRequirement) error {
	query := `
		INSERT INTO coverage_requirements (shop_id, week_start, day_of_week, start_minute, end_minute, headcount, role, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{req.ShopID, req.WeekStart, req.Day, req.StartMinute, req.EndMinute, req.Headcount, req.Role, req.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateCoverageRequirement(req *domain.CoverageRequirement) error {
	query := `
		UPDATE coverage_requirements
		SET
			day_of_week = $1,
			start_minute = $2,
			end_minute = $3,
			headcount = $4,
			role = $5,
			notes = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{req.Day, req.StartMinute, req.EndMinute, req.Headcount, req.Role, req.Notes, req.ID, req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCoverageRequirement(id int64) error {
	query := `
		DELETE FROM coverage_requirements WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// CopyCoverageRequirements clones one week's requirements onto another
// week inside a single transaction, replacing whatever the target week
// already had.
func (r *Repository) CopyCoverageRequirements(shopID string, fromWeek, toWeek time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM coverage_requirements WHERE shop_id = $1 AND week_start = $2`
	if _, err := tx.ExecContext(ctx, query, shopID, toWeek); err != nil {
		return err
	}

	query = `
		INSERT INTO coverage_requirements (shop_id, week_start, day_of_week, start_minute, end_minute, headcount, role, notes)
		SELECT shop_id, $3, day_of_week, start_minute, end_minute, headcount, role, notes
		FROM coverage_requirements
		WHERE shop_id = $1 AND week_start = $2
	`
	if _, err := tx.ExecContext(ctx, query, shopID, fromWeek, toWeek); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
