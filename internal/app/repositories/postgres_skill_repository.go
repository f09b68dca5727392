package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/db"
	"github.com/yigit/sharesuki/internal/pkg/apperrors"
)

// PostgresSkillRepository handles database operations for skill records on Postgres
type PostgresSkillRepository struct {
	db *db.PostgresDB
	q  skillQueries
}

// NewPostgresSkillRepository creates a new PostgresSkillRepository
func NewPostgresSkillRepository(database *db.PostgresDB) *PostgresSkillRepository {
	return &PostgresSkillRepository{
		db: database,
		q:  newPostgresSkillQueries(),
	}
}

// Insert creates a new skill record and returns its ID
func (r *PostgresSkillRepository) Insert(ctx context.Context, rec *models.SkillRecord) (int64, error) {
	rec.RegisteredAt = time.Now().UTC()

	sql, args, err := r.q.insert(rec).Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx, sql, args...).Scan(&id)
	})
	if err != nil {
		return 0, apperrors.NewStoreError("insert skill record", err)
	}

	rec.ID = id
	return id, nil
}

// Update overwrites an existing skill record
func (r *PostgresSkillRepository) Update(ctx context.Context, rec *models.SkillRecord) error {
	sql, args, err := r.q.update(rec)
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrSkillRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrSkillRecordNotFound) {
			return err
		}
		return apperrors.NewStoreError("update skill record", err)
	}
	return nil
}

// Delete removes a skill record
func (r *PostgresSkillRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.q.delete(id)
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewStoreError("delete skill record", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSkillRecordNotFound
	}
	return nil
}

// GetByID retrieves a skill record by ID
func (r *PostgresSkillRepository) GetByID(ctx context.Context, id int64) (*models.SkillRecord, error) {
	sql, args, err := r.q.byID(id)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rec, err := scanSkillRecord(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSkillRecordNotFound
		}
		return nil, apperrors.NewStoreError("get skill record", err)
	}
	return rec, nil
}

// GetAll retrieves all skill records, newest first
func (r *PostgresSkillRepository) GetAll(ctx context.Context) ([]*models.SkillRecord, error) {
	return r.Search(ctx, SkillFilter{})
}

// Search retrieves the skill records matching filter, newest first
func (r *PostgresSkillRepository) Search(ctx context.Context, filter SkillFilter) ([]*models.SkillRecord, error) {
	sql, args, err := r.q.search(filter)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("list skill records", err)
	}
	defer rows.Close()

	records := make([]*models.SkillRecord, 0)
	for rows.Next() {
		rec, err := scanSkillRecord(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("scan skill record", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list skill records", err)
	}

	return records, nil
}

// Count returns the number of stored skill records
func (r *PostgresSkillRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := r.q.count()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, apperrors.NewStoreError("count skill records", err)
	}
	return total, nil
}
