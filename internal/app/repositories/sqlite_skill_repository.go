package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/db"
	"github.com/yigit/sharesuki/internal/pkg/apperrors"
)

// SQLiteSkillRepository handles database operations for skill records on SQLite
type SQLiteSkillRepository struct {
	db *db.SQLiteDB
	q  skillQueries
}

// NewSQLiteSkillRepository creates a new SQLiteSkillRepository
func NewSQLiteSkillRepository(database *db.SQLiteDB) *SQLiteSkillRepository {
	return &SQLiteSkillRepository{
		db: database,
		q:  newSQLiteSkillQueries(),
	}
}

// Insert creates a new skill record and returns its ID
func (r *SQLiteSkillRepository) Insert(ctx context.Context, rec *models.SkillRecord) (int64, error) {
	rec.RegisteredAt = time.Now().UTC()

	query, args, err := r.q.insert(rec).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, apperrors.NewStoreError("insert skill record", err)
	}

	rec.ID = id
	return id, nil
}

// Update overwrites an existing skill record
func (r *SQLiteSkillRepository) Update(ctx context.Context, rec *models.SkillRecord) error {
	query, args, err := r.q.update(rec)
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
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
func (r *SQLiteSkillRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.q.delete(id)
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	res, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStoreError("delete skill record", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError("delete skill record", err)
	}
	if affected == 0 {
		return apperrors.ErrSkillRecordNotFound
	}
	return nil
}

// GetByID retrieves a skill record by ID
func (r *SQLiteSkillRepository) GetByID(ctx context.Context, id int64) (*models.SkillRecord, error) {
	query, args, err := r.q.byID(id)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rec, err := scanSkillRecord(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrSkillRecordNotFound
		}
		return nil, apperrors.NewStoreError("get skill record", err)
	}
	return rec, nil
}

// GetAll retrieves all skill records, newest first
func (r *SQLiteSkillRepository) GetAll(ctx context.Context) ([]*models.SkillRecord, error) {
	return r.Search(ctx, SkillFilter{})
}

// Search retrieves the skill records matching filter, newest first
func (r *SQLiteSkillRepository) Search(ctx context.Context, filter SkillFilter) ([]*models.SkillRecord, error) {
	query, args, err := r.q.search(filter)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
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
func (r *SQLiteSkillRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.q.count()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewStoreError("count skill records", err)
	}
	return total, nil
}
