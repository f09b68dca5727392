package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/db"
	"github.com/yigit/sharesuki/internal/pkg/apperrors"
	"github.com/yigit/sharesuki/internal/pkg/dberrors"
)

const notifiedPairTable = "notified_pairs"

func claimPairQuery(sb squirrel.StatementBuilderType, pair models.NotifiedPair) (string, []interface{}, error) {
	return sb.Insert(notifiedPairTable).
		Columns("low_id", "high_id", "skill_pair_hash", "notified_at").
		Values(pair.LowID, pair.HighID, pair.SkillPairHash, time.Now().UTC()).
		ToSql()
}

func releasePairQuery(sb squirrel.StatementBuilderType, pair models.NotifiedPair) (string, []interface{}, error) {
	return sb.Delete(notifiedPairTable).
		Where(squirrel.Eq{
			"low_id":          pair.LowID,
			"high_id":         pair.HighID,
			"skill_pair_hash": pair.SkillPairHash,
		}).
		ToSql()
}

// PostgresNotificationLedger stores announced pairs on Postgres
type PostgresNotificationLedger struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewPostgresNotificationLedger creates a new PostgresNotificationLedger
func NewPostgresNotificationLedger(database *db.PostgresDB) *PostgresNotificationLedger {
	return &PostgresNotificationLedger{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Claim inserts pair unless it is already present
func (l *PostgresNotificationLedger) Claim(ctx context.Context, pair models.NotifiedPair) (bool, error) {
	sql, args, err := claimPairQuery(l.sb, pair)
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := l.db.Pool.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return false, nil
		}
		return false, apperrors.NewStoreError("claim notified pair", err)
	}
	return true, nil
}

// Release deletes pair
func (l *PostgresNotificationLedger) Release(ctx context.Context, pair models.NotifiedPair) error {
	sql, args, err := releasePairQuery(l.sb, pair)
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := l.db.Pool.Exec(ctx, sql, args...); err != nil {
		return apperrors.NewStoreError("release notified pair", err)
	}
	return nil
}

// SQLiteNotificationLedger stores announced pairs on SQLite
type SQLiteNotificationLedger struct {
	db *db.SQLiteDB
	sb squirrel.StatementBuilderType
}

// NewSQLiteNotificationLedger creates a new SQLiteNotificationLedger
func NewSQLiteNotificationLedger(database *db.SQLiteDB) *SQLiteNotificationLedger {
	return &SQLiteNotificationLedger{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Claim inserts pair unless it is already present
func (l *SQLiteNotificationLedger) Claim(ctx context.Context, pair models.NotifiedPair) (bool, error) {
	query, args, err := claimPairQuery(l.sb, pair)
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := l.db.DB.ExecContext(ctx, query, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return false, nil
		}
		return false, apperrors.NewStoreError("claim notified pair", err)
	}
	return true, nil
}

// Release deletes pair
func (l *SQLiteNotificationLedger) Release(ctx context.Context, pair models.NotifiedPair) error {
	query, args, err := releasePairQuery(l.sb, pair)
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := l.db.DB.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewStoreError("release notified pair", err)
	}
	return nil
}
