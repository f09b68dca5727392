package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sharesuki/internal/app/migrations"
	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/db"
	"github.com/yigit/sharesuki/internal/pkg/apperrors"
)

func newTestRepositories(t *testing.T) *Repositories {
	t.Helper()

	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = migrations.NewMigrator(migrations.NewSQLiteRunner(database), "sqlite").Up(context.Background())
	require.NoError(t, err)

	return NewSQLiteRepositories(database)
}

func strPtr(s string) *string { return &s }

func newRecord(name, wanted, offered string) *models.SkillRecord {
	return &models.SkillRecord{
		StudentID:    123456,
		FullName:     name,
		WantedSkill:  strPtr(wanted),
		OfferedSkill: strPtr(offered),
	}
}

func TestSQLiteSkillRepository_InsertAndGet(t *testing.T) {
	repo := newTestRepositories(t).SkillRepository
	ctx := context.Background()

	attendance := 12
	rec := newRecord("Ayşe Yılmaz", "Go", "Rust")
	rec.ClassName = strPtr("NF1")
	rec.AttendanceNumber = &attendance
	rec.Email = strPtr("ayse@example.com")

	before := time.Now().UTC()
	id, err := repo.Insert(ctx, rec)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, id, rec.ID)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 123456, got.StudentID)
	assert.Equal(t, "Ayşe Yılmaz", got.FullName)
	assert.Equal(t, "NF1", *got.ClassName)
	assert.Equal(t, 12, *got.AttendanceNumber)
	assert.Equal(t, "Go", got.Wanted())
	assert.Equal(t, "Rust", got.Offered())
	assert.Nil(t, got.Gender)
	assert.Nil(t, got.WantedSkillNote)
	assert.WithinDuration(t, before, got.RegisteredAt, 5*time.Second)
}

func TestSQLiteSkillRepository_GetByIDMissing(t *testing.T) {
	repo := newTestRepositories(t).SkillRepository

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrSkillRecordNotFound)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestSQLiteSkillRepository_UpdateAndDelete(t *testing.T) {
	repo := newTestRepositories(t).SkillRepository
	ctx := context.Background()

	rec := newRecord("Mehmet", "Go", "Rust")
	id, err := repo.Insert(ctx, rec)
	require.NoError(t, err)
	registered := rec.RegisteredAt

	rec.OfferedSkill = strPtr("Python")
	rec.Email = strPtr("mehmet@example.com")
	require.NoError(t, repo.Update(ctx, rec))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Python", got.Offered())
	assert.Equal(t, "mehmet@example.com", got.EmailAddress())
	assert.WithinDuration(t, registered, got.RegisteredAt, time.Second, "registration time is immutable")

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrSkillRecordNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, id), apperrors.ErrSkillRecordNotFound)
	assert.ErrorIs(t, repo.Update(ctx, rec), apperrors.ErrSkillRecordNotFound)
}

func TestSQLiteSkillRepository_IDsAreNotReused(t *testing.T) {
	repo := newTestRepositories(t).SkillRepository
	ctx := context.Background()

	first, err := repo.Insert(ctx, newRecord("A", "Go", "Rust"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, first))

	second, err := repo.Insert(ctx, newRecord("B", "Go", "Rust"))
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestSQLiteSkillRepository_GetAllNewestFirst(t *testing.T) {
	repo := newTestRepositories(t).SkillRepository
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"first", "second", "third"} {
		id, err := repo.Insert(ctx, newRecord(name, "Go", "Rust"))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[1], all[1].ID)
	assert.Equal(t, ids[0], all[2].ID)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestSQLiteSkillRepository_Search(t *testing.T) {
	repo := newTestRepositories(t).SkillRepository
	ctx := context.Background()

	alice := newRecord("Alice", "Scratch", "Python")
	alice.ClassName = strPtr("NV1")
	_, err := repo.Insert(ctx, alice)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newRecord("Bob", "HTML", "CSS"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, &models.SkillRecord{StudentID: 654321, FullName: "Carol"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns all", "", []string{"Carol", "Bob", "Alice"}},
		{"name substring", "li", []string{"Alice"}},
		{"wanted skill", "Scr", []string{"Alice"}},
		{"offered skill", "CSS", []string{"Bob"}},
		{"class name", "NV", []string{"Alice"}},
		{"case sensitive", "alice", nil},
		{"no match", "Haskell", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Search(ctx, SkillFilter{Query: tt.query})
			require.NoError(t, err)

			var names []string
			for _, rec := range found {
				names = append(names, rec.FullName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSQLiteNotificationLedger_ClaimRelease(t *testing.T) {
	ledger := newTestRepositories(t).NotificationLedger
	ctx := context.Background()

	a := newRecord("A", "Go", "Rust")
	a.ID = 1
	b := newRecord("B", "Rust", "Go")
	b.ID = 2
	pair := models.NewNotifiedPair(b, a)

	claimed, err := ledger.Claim(ctx, pair)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = ledger.Claim(ctx, models.NewNotifiedPair(a, b))
	require.NoError(t, err)
	assert.False(t, claimed, "pair is order independent")

	b.WantedSkill = strPtr("Python")
	a.OfferedSkill = strPtr("Python")
	claimed, err = ledger.Claim(ctx, models.NewNotifiedPair(a, b))
	require.NoError(t, err)
	assert.True(t, claimed, "changed skills form a new pair")

	require.NoError(t, ledger.Release(ctx, pair))
	claimed, err = ledger.Claim(ctx, pair)
	require.NoError(t, err)
	assert.True(t, claimed)
}
