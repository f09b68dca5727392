package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sharesuki/internal/app/migrations"
	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/app/repositories"
	"github.com/yigit/sharesuki/internal/db"
	"github.com/yigit/sharesuki/internal/pkg/taskqueue"
)

func newTestRepositories(t *testing.T) *repositories.Repositories {
	t.Helper()

	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = migrations.NewMigrator(migrations.NewSQLiteRunner(database), "sqlite").Up(context.Background())
	require.NoError(t, err)

	return repositories.NewSQLiteRepositories(database)
}

func strPtr(s string) *string { return &s }

// insertRecord stores a record directly, bypassing the service layer.
func insertRecord(t *testing.T, repo repositories.SkillRepository, name, wanted, offered, address string) *models.SkillRecord {
	t.Helper()

	rec := &models.SkillRecord{
		StudentID:    123456,
		FullName:     name,
		WantedSkill:  optionalLabel(wanted),
		OfferedSkill: optionalLabel(offered),
		Email:        optionalLabel(address),
	}
	_, err := repo.Insert(context.Background(), rec)
	require.NoError(t, err)
	return rec
}

func optionalLabel(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type sentEmail struct {
	To      string
	Name    string
	Subject string
	Body    string
}

// recordingSender captures messages and fails for addresses in failFor.
type recordingSender struct {
	mu      sync.Mutex
	sent    []sentEmail
	failFor map[string]bool
}

func newRecordingSender(failFor ...string) *recordingSender {
	s := &recordingSender{failFor: make(map[string]bool)}
	for _, addr := range failFor {
		s.failFor[addr] = true
	}
	return s
}

func (s *recordingSender) SendEmail(_ context.Context, toAddress, toName, subject, body string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failFor[toAddress] {
		return false
	}
	s.sent = append(s.sent, sentEmail{To: toAddress, Name: toName, Subject: subject, Body: body})
	return true
}

func (s *recordingSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.sent))
	for _, m := range s.sent {
		out = append(out, m.To)
	}
	return out
}

func (s *recordingSender) setFailing(addr string, failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failFor[addr] = failing
}

// recordingDispatcher captures dispatched record ids instead of queueing.
type recordingDispatcher struct {
	mu  sync.Mutex
	ids []int64
	err error
}

func (d *recordingDispatcher) DispatchMutualMatches(recordID int64) (uuid.UUID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err != nil {
		return uuid.Nil, d.err
	}
	d.ids = append(d.ids, recordID)
	return uuid.New(), nil
}

var _ JobQueue = (*taskqueue.Queue)(nil)
