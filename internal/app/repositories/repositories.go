package repositories

import (
	"context"

	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/db"
)

// SkillFilter narrows a record search.
type SkillFilter struct {
	// Query is matched as a case-sensitive substring of the full name,
	// wanted skill, offered skill or class name. Empty matches everything.
	Query string
}

// SkillRepository is the durable record store.
type SkillRepository interface {
	// Insert stores rec, setting its ID and RegisteredAt, and returns the new ID.
	Insert(ctx context.Context, rec *models.SkillRecord) (int64, error)
	// Update overwrites every mutable column of the record with rec.ID.
	Update(ctx context.Context, rec *models.SkillRecord) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.SkillRecord, error)
	// GetAll returns every record, newest registration first.
	GetAll(ctx context.Context) ([]*models.SkillRecord, error)
	Search(ctx context.Context, filter SkillFilter) ([]*models.SkillRecord, error)
	Count(ctx context.Context) (int, error)
}

// NotificationLedger remembers which mutual matches were already announced.
type NotificationLedger interface {
	// Claim records pair and reports whether this call inserted it.
	// false means another pass already owns the announcement.
	Claim(ctx context.Context, pair models.NotifiedPair) (bool, error)
	// Release forgets pair so a later pass can retry it.
	Release(ctx context.Context, pair models.NotifiedPair) error
}

// Repositories holds all the repository instances
type Repositories struct {
	SkillRepository    SkillRepository
	NotificationLedger NotificationLedger
}

// NewPostgresRepositories initializes all repositories on a Postgres pool
func NewPostgresRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		SkillRepository:    NewPostgresSkillRepository(database),
		NotificationLedger: NewPostgresNotificationLedger(database),
	}
}

// NewSQLiteRepositories initializes all repositories on a SQLite handle
func NewSQLiteRepositories(database *db.SQLiteDB) *Repositories {
	return &Repositories{
		SkillRepository:    NewSQLiteSkillRepository(database),
		NotificationLedger: NewSQLiteNotificationLedger(database),
	}
}
