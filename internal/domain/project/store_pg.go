package project

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	DB *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{DB: pool}
}

func (s *PostgresStore) List(ctx context.Context) ([]Project, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, code, year, name, status, metadata, stage_data, last_updated
    FROM projects
    ORDER BY code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Project, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, code, year, name, status, metadata, stage_data, last_updated
    FROM projects
    WHERE id = $1
  `, id)
	p, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) Create(ctx context.Context, p Project) error {
	metaJSON, stageJSON, err := encodeDocuments(p)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO projects (id, code, year, name, status, metadata, stage_data, last_updated)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
  `, p.ID, p.Code, p.Year, p.Name, p.Status, metaJSON, stageJSON, p.LastUpdated)
	return err
}

func (s *PostgresStore) Update(ctx context.Context, p Project) error {
	metaJSON, stageJSON, err := encodeDocuments(p)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE projects
    SET code = $2, year = $3, name = $4, status = $5, metadata = $6, stage_data = $7, last_updated = $8
    WHERE id = $1
  `, p.ID, p.Code, p.Year, p.Name, p.Status, metaJSON, stageJSON, p.LastUpdated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeDocuments(p Project) ([]byte, []byte, error) {
	metaJSON, err := json.Marshal(p.Metadata)
	if err != nil {
		return nil, nil, err
	}
	stageJSON, err := json.Marshal(p.StageData)
	if err != nil {
		return nil, nil, err
	}
	return metaJSON, stageJSON, nil
}

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	var metaJSON, stageJSON []byte
	if err := row.Scan(&p.ID, &p.Code, &p.Year, &p.Name, &p.Status, &metaJSON, &stageJSON, &p.LastUpdated); err != nil {
		return Project{}, err
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &p.Metadata); err != nil {
			return Project{}, err
		}
	}
	if len(stageJSON) > 0 {
		if err := json.Unmarshal(stageJSON, &p.StageData); err != nil {
			return Project{}, err
		}
	}
	return p, nil
}
