package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sharesuki/internal/app/repositories"
	"github.com/yigit/sharesuki/internal/pkg/email"
)

func newNotifier(repos *repositories.Repositories, sender email.Sender, dedupe bool) NotificationService {
	var ledger repositories.NotificationLedger
	if dedupe {
		ledger = repos.NotificationLedger
	}
	return NewNotificationService(repos.SkillRepository, ledger, sender, 0, zerolog.Nop())
}

func TestNotifyMutualMatches_NotifiesBothSides(t *testing.T) {
	repos := newTestRepositories(t)
	a := insertRecord(t, repos.SkillRepository, "Ayşe", "Go", "Rust", "a@example.com")
	b := insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")
	insertRecord(t, repos.SkillRepository, "Cem", "Rust", "Go", "")

	sender := newRecordingSender()
	notified, err := newNotifier(repos, sender, false).NotifyMutualMatches(context.Background(), a.ID)
	require.NoError(t, err)

	require.Len(t, notified, 1)
	assert.Equal(t, b.ID, notified[0].ID)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, sender.recipients())

	for _, m := range sender.sent {
		assert.Equal(t, email.MatchNotificationSubject, m.Subject)
		if m.To == "a@example.com" {
			assert.Equal(t, "Ayşe", m.Name)
			assert.Contains(t, m.Body, "Burak")
		} else {
			assert.Contains(t, m.Body, "Ayşe")
		}
	}
}

func TestNotifyMutualMatches_SubjectWithoutEmail(t *testing.T) {
	repos := newTestRepositories(t)
	a := insertRecord(t, repos.SkillRepository, "Ayşe", "Go", "Rust", "")
	b := insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")

	sender := newRecordingSender()
	notified, err := newNotifier(repos, sender, false).NotifyMutualMatches(context.Background(), a.ID)
	require.NoError(t, err)

	require.Len(t, notified, 1)
	assert.Equal(t, b.ID, notified[0].ID)
	assert.Equal(t, []string{"b@example.com"}, sender.recipients())
}

func TestNotifyMutualMatches_UnknownSubject(t *testing.T) {
	repos := newTestRepositories(t)
	insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")

	sender := newRecordingSender()
	notified, err := newNotifier(repos, sender, false).NotifyMutualMatches(context.Background(), 999)
	require.NoError(t, err)
	assert.NotNil(t, notified)
	assert.Empty(t, notified)
	assert.Empty(t, sender.recipients())
}

func TestNotifyMutualMatches_PartialFailureStillCounts(t *testing.T) {
	repos := newTestRepositories(t)
	a := insertRecord(t, repos.SkillRepository, "Ayşe", "Go", "Rust", "a@example.com")
	insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")
	insertRecord(t, repos.SkillRepository, "Deniz", "Rust", "Go", "d@example.com")

	// The subject cannot be reached at all; each candidate still hears about it.
	sender := newRecordingSender("a@example.com")
	notified, err := newNotifier(repos, sender, false).NotifyMutualMatches(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Len(t, notified, 2)
	assert.ElementsMatch(t, []string{"b@example.com", "d@example.com"}, sender.recipients())
}

func TestNotifyMutualMatches_BothSidesFail(t *testing.T) {
	repos := newTestRepositories(t)
	a := insertRecord(t, repos.SkillRepository, "Ayşe", "Go", "Rust", "a@example.com")
	insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")

	sender := newRecordingSender("a@example.com", "b@example.com")
	notified, err := newNotifier(repos, sender, false).NotifyMutualMatches(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, notified)
}

func TestNotifyMutualMatches_ResendsWithoutLedger(t *testing.T) {
	repos := newTestRepositories(t)
	a := insertRecord(t, repos.SkillRepository, "Ayşe", "Go", "Rust", "a@example.com")
	insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")

	sender := newRecordingSender()
	notifier := newNotifier(repos, sender, false)

	for i := 0; i < 2; i++ {
		notified, err := notifier.NotifyMutualMatches(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Len(t, notified, 1)
	}
	assert.Len(t, sender.recipients(), 4)
}

func TestNotifyMutualMatches_LedgerSendsOnce(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	a := insertRecord(t, repos.SkillRepository, "Ayşe", "Go", "Rust", "a@example.com")
	b := insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")

	sender := newRecordingSender()
	notifier := newNotifier(repos, sender, true)

	notified, err := notifier.NotifyMutualMatches(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, notified, 1)

	notified, err = notifier.NotifyMutualMatches(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, notified)

	notified, err = notifier.NotifyMutualMatches(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, notified, "the pair is shared by both records")

	assert.Len(t, sender.recipients(), 2)
}

func TestNotifyMutualMatches_LedgerReleasesFailedPair(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	a := insertRecord(t, repos.SkillRepository, "Ayşe", "Go", "Rust", "a@example.com")
	insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")

	sender := newRecordingSender("a@example.com", "b@example.com")
	notifier := newNotifier(repos, sender, true)

	notified, err := notifier.NotifyMutualMatches(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, notified)

	sender.setFailing("a@example.com", false)
	sender.setFailing("b@example.com", false)

	notified, err = notifier.NotifyMutualMatches(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, notified, 1, "a failed pair can be retried")
}

// cancellingSender cancels the running pass on its first call and fails every send.
type cancellingSender struct {
	cancel context.CancelFunc
}

func (s *cancellingSender) SendEmail(_ context.Context, _, _, _, _ string) bool {
	s.cancel()
	return false
}

func TestNotifyMutualMatches_LedgerReleasesPairWhenCancelled(t *testing.T) {
	repos := newTestRepositories(t)
	a := insertRecord(t, repos.SkillRepository, "Ayşe", "Go", "Rust", "a@example.com")
	b := insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notified, err := newNotifier(repos, &cancellingSender{cancel: cancel}, true).NotifyMutualMatches(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, notified)
	require.Error(t, ctx.Err())

	sender := newRecordingSender()
	notified, err = newNotifier(repos, sender, true).NotifyMutualMatches(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, notified, 1, "the claim taken before cancellation was released")
	assert.Equal(t, b.ID, notified[0].ID)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, sender.recipients())
}

func TestNotifyAll(t *testing.T) {
	repos := newTestRepositories(t)
	insertRecord(t, repos.SkillRepository, "Ayşe", "Go", "Rust", "a@example.com")
	insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")
	insertRecord(t, repos.SkillRepository, "Cem", "Rust", "Go", "")
	insertRecord(t, repos.SkillRepository, "Deniz", "Python", "Java", "d@example.com")

	sender := newRecordingSender()
	total, err := newNotifier(repos, sender, false).NotifyAll(context.Background())
	require.NoError(t, err)

	// Ayşe's pass finds Burak and Burak's pass finds Ayşe. Cem is skipped
	// as a subject and Deniz has no partner.
	assert.Equal(t, 2, total)
	assert.Len(t, sender.recipients(), 4)
}

func TestNotifyAll_Cancelled(t *testing.T) {
	repos := newTestRepositories(t)
	insertRecord(t, repos.SkillRepository, "Ayşe", "Go", "Rust", "a@example.com")
	insertRecord(t, repos.SkillRepository, "Burak", "Rust", "Go", "b@example.com")

	sender := newRecordingSender()
	notifier := NewNotificationService(repos.SkillRepository, nil, sender, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	total, err := notifier.NotifyAll(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, total, "the first subject ran before the throttle")
}
