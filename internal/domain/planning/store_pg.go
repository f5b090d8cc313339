package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists plan entries in the planning_entries table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const entryColumns = `id, assigned_to, project_id, project_code, stage_index,
	task_type, detail, start_time, end_time, status,
	manager_score, manager_comment, reviewed_at`

func scanEntry(row pgx.Row) (Entry, error) {
	var (
		e          Entry
		score      *int
		reviewedAt *time.Time
	)
	err := row.Scan(&e.ID, &e.AssignedTo, &e.ProjectID, &e.ProjectCode,
		&e.StageIndex, &e.TaskType, &e.Detail, &e.StartTime, &e.EndTime,
		&e.Status, &score, &e.ManagerComment, &reviewedAt)
	if err != nil {
		return Entry{}, err
	}
	e.ManagerScore = score
	e.ReviewedAt = reviewedAt
	return e, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM planning_entries ORDER BY start_time, id`, entryColumns))
	if err != nil {
		return nil, fmt.Errorf("list plan entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Entry, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM planning_entries WHERE id = $1`, entryColumns), id)
	e, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get plan entry: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) Create(ctx context.Context, e Entry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO planning_entries (id, assigned_to, project_id, project_code,
			stage_index, task_type, detail, start_time, end_time, status,
			manager_score, manager_comment, reviewed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		e.ID, e.AssignedTo, e.ProjectID, e.ProjectCode, e.StageIndex,
		e.TaskType, e.Detail, e.StartTime, e.EndTime, e.Status,
		e.ManagerScore, e.ManagerComment, e.ReviewedAt)
	if err != nil {
		return fmt.Errorf("insert plan entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, e Entry) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE planning_entries SET assigned_to = $2, project_id = $3,
			project_code = $4, stage_index = $5, task_type = $6, detail = $7,
			start_time = $8, end_time = $9, status = $10,
			manager_score = $11, manager_comment = $12, reviewed_at = $13
		WHERE id = $1`,
		e.ID, e.AssignedTo, e.ProjectID, e.ProjectCode, e.StageIndex,
		e.TaskType, e.Detail, e.StartTime, e.EndTime, e.Status,
		e.ManagerScore, e.ManagerComment, e.ReviewedAt)
	if err != nil {
		return fmt.Errorf("update plan entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM planning_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plan entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
