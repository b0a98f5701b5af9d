package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tbeaumont/crfstudio/internal/db"
	"github.com/tbeaumont/crfstudio/internal/domain"
)

// SQLiteStudyRepo implements StudyRepo over a SQLite database.
type SQLiteStudyRepo struct {
	db db.DBTX
}

func NewSQLiteStudyRepo(dbtx db.DBTX) *SQLiteStudyRepo {
	return &SQLiteStudyRepo{db: dbtx}
}

func (r *SQLiteStudyRepo) Create(ctx context.Context, s *domain.Study) error {
	if s.ID == "" {
		s.ID = domain.NewID()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	query := `INSERT INTO studies (id, protocol_code, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ProtocolCode, s.Name,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting study: %w", err)
	}
	return nil
}

func (r *SQLiteStudyRepo) GetByID(ctx context.Context, id string) (*domain.Study, error) {
	query := `SELECT id, protocol_code, name, created_at, updated_at FROM studies WHERE id = ?`
	return r.scanStudy(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteStudyRepo) GetByProtocol(ctx context.Context, code string) (*domain.Study, error) {
	query := `SELECT id, protocol_code, name, created_at, updated_at FROM studies WHERE protocol_code = ?`
	return r.scanStudy(r.db.QueryRowContext(ctx, query, code))
}

func (r *SQLiteStudyRepo) List(ctx context.Context) ([]*domain.Study, error) {
	query := `SELECT id, protocol_code, name, created_at, updated_at FROM studies ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing studies: %w", err)
	}
	defer rows.Close()

	var studies []*domain.Study
	for rows.Next() {
		var s domain.Study
		var createdStr, updatedStr string
		if err := rows.Scan(&s.ID, &s.ProtocolCode, &s.Name, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning study row: %w", err)
		}
		if err := populateStudyTimes(&s, createdStr, updatedStr); err != nil {
			return nil, err
		}
		studies = append(studies, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating studies: %w", err)
	}
	return studies, nil
}

func (r *SQLiteStudyRepo) Rename(ctx context.Context, id, name string) error {
	query := `UPDATE studies SET name = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, name, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("renaming study: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("study %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteStudyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM studies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting study: %w", err)
	}
	return nil
}

func (r *SQLiteStudyRepo) scanStudy(row *sql.Row) (*domain.Study, error) {
	var s domain.Study
	var createdStr, updatedStr string
	err := row.Scan(&s.ID, &s.ProtocolCode, &s.Name, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("study: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning study: %w", err)
	}
	if err := populateStudyTimes(&s, createdStr, updatedStr); err != nil {
		return nil, err
	}
	return &s, nil
}

func populateStudyTimes(s *domain.Study, createdStr, updatedStr string) error {
	var err error
	s.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
