package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kittyfit/internal/domain"
)

// Add inserts a new workout log. Results are stored as a JSON document;
// they are only ever read back wholesale.
func (d *DB) Add(ctx context.Context, l *domain.WorkoutLog) error {
	results, err := json.Marshal(l.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	_, err = d.sql.ExecContext(ctx,
		"INSERT INTO workout_logs(id, user_id, workout_id, date, results) VALUES($1, $2, $3, $4, $5);",
		l.ID, l.UserID, l.WorkoutID, l.Date.UTC(), string(results),
	)
	return err
}

// GetByID returns the log, or nil when it does not exist.
func (d *DB) GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, workout_id, date, results FROM workout_logs WHERE id=$1;", id)

	l, err := scanLog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

// Update replaces a stored log.
func (d *DB) Update(ctx context.Context, l *domain.WorkoutLog) error {
	results, err := json.Marshal(l.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	_, err = d.sql.ExecContext(ctx,
		"UPDATE workout_logs SET workout_id=$2, date=$3, results=$4 WHERE id=$1;",
		l.ID, l.WorkoutID, l.Date.UTC(), string(results),
	)
	return err
}

// Delete removes a log.
func (d *DB) Delete(ctx context.Context, id string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM workout_logs WHERE id=$1;", id)
	return err
}

// ListForUser returns the user's logs plus legacy unowned logs, newest
// first.
func (d *DB) ListForUser(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, workout_id, date, results FROM workout_logs WHERE user_id=$1 OR user_id='' ORDER BY date DESC;",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WorkoutLog, 0)
	for rows.Next() {
		l, err := scanLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func scanLog(scan func(...any) error) (*domain.WorkoutLog, error) {
	var l domain.WorkoutLog
	var results string
	if err := scan(&l.ID, &l.UserID, &l.WorkoutID, &l.Date, &results); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(results), &l.Results); err != nil {
		return nil, fmt.Errorf("decode results for log %s: %w", l.ID, err)
	}
	return &l, nil
}

// Plans returns the workout-plan repository view.
func (d *DB) Plans() *PlanRepo {
	return &PlanRepo{db: d}
}

// PlanRepo is the workout-plan view over a DB.
type PlanRepo struct {
	db *DB
}

// Add inserts a new plan. The exercise list is flattened to a single text
// column; names must not contain newlines, which the service never produces.
func (r *PlanRepo) Add(ctx context.Context, p *domain.WorkoutPlan) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO workout_plans(id, user_id, name, exercises, created_at) VALUES($1, $2, $3, $4, $5);",
		p.ID, p.UserID, p.Name, strings.Join(p.Exercises, "\n"), p.CreatedAt.UTC(),
	)
	return err
}

// GetByID returns the plan, or nil when it does not exist.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	row := r.db.sql.QueryRowContext(ctx,
		"SELECT id, user_id, name, exercises, created_at FROM workout_plans WHERE id=$1;", id)

	p, err := scanPlan(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a plan.
func (r *PlanRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM workout_plans WHERE id=$1;", id)
	return err
}

// ListForUser returns the user's plans plus legacy unowned ones, newest
// first.
func (r *PlanRepo) ListForUser(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, user_id, name, exercises, created_at FROM workout_plans WHERE user_id=$1 OR user_id='' ORDER BY created_at DESC;",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WorkoutPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPlan(scan func(...any) error) (*domain.WorkoutPlan, error) {
	var p domain.WorkoutPlan
	var exercises string
	if err := scan(&p.ID, &p.UserID, &p.Name, &exercises, &p.CreatedAt); err != nil {
		return nil, err
	}
	if exercises != "" {
		p.Exercises = strings.Split(exercises, "\n")
	}
	return &p, nil
}
