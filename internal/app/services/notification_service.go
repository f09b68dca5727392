package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/app/repositories"
	"github.com/yigit/sharesuki/internal/pkg/apperrors"
	"github.com/yigit/sharesuki/internal/pkg/email"
)

// NotificationService announces mutual matches by email
type NotificationService interface {
	// NotifyMutualMatches emails subjectID and each of its mutual matches and
	// returns the matches for which at least one side was reached.
	NotifyMutualMatches(ctx context.Context, subjectID int64) ([]*models.SkillRecord, error)
	// NotifyAll runs NotifyMutualMatches for every record with an email
	// address and returns the total number of notified matches.
	NotifyAll(ctx context.Context) (int, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	skillRepo repositories.SkillRepository
	ledger    repositories.NotificationLedger
	sender    email.Sender
	throttle  time.Duration
	logger    zerolog.Logger
}

// NewNotificationService creates a new NotificationService. A nil ledger
// disables de-duplication: every pass emails every current match again.
// throttle is the pause between subjects during NotifyAll.
func NewNotificationService(
	skillRepo repositories.SkillRepository,
	ledger repositories.NotificationLedger,
	sender email.Sender,
	throttle time.Duration,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		skillRepo: skillRepo,
		ledger:    ledger,
		sender:    sender,
		throttle:  throttle,
		logger:    logger,
	}
}

// NotifyMutualMatches emails both sides of every mutual match of subjectID
func (s *notificationServiceImpl) NotifyMutualMatches(ctx context.Context, subjectID int64) ([]*models.SkillRecord, error) {
	notified := make([]*models.SkillRecord, 0)

	subject, err := s.skillRepo.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSkillRecordNotFound) {
			s.logger.Info().Int64("recordId", subjectID).Msg("Record no longer exists, nothing to notify")
			return notified, nil
		}
		return nil, fmt.Errorf("failed to load subject record: %w", err)
	}

	snapshot, err := s.skillRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for matching: %w", err)
	}

	candidates := MutualMatchesOf(snapshot, subject)
	for _, candidate := range candidates {
		if s.notifyPair(ctx, subject, candidate) {
			notified = append(notified, candidate)
		}
	}

	s.logger.Info().
		Int64("recordId", subjectID).
		Int("matches", len(candidates)).
		Int("notified", len(notified)).
		Msg("Mutual match notification pass finished")

	return notified, nil
}

// notifyPair sends both messages for one match and reports whether at least
// one of them went out.
func (s *notificationServiceImpl) notifyPair(ctx context.Context, subject, candidate *models.SkillRecord) bool {
	log := s.logger.With().Int64("recordId", subject.ID).Int64("matchId", candidate.ID).Logger()

	var pair models.NotifiedPair
	claimed := false
	if s.ledger != nil {
		pair = models.NewNotifiedPair(subject, candidate)
		ok, err := s.ledger.Claim(ctx, pair)
		if err != nil {
			log.Error().Err(err).Msg("Failed to check notification ledger")
			return false
		}
		if !ok {
			log.Debug().Msg("Match already announced, skipping")
			return false
		}
		claimed = true
	}

	subjectOK := false
	if subject.HasEmail() {
		subjectOK = s.send(ctx, subject, candidate)
	}
	candidateOK := false
	if candidate.HasEmail() {
		candidateOK = s.send(ctx, candidate, subject)
	}

	if !subjectOK && !candidateOK {
		log.Warn().Err(apperrors.ErrNotificationFailed).Msg("Neither side of the match could be notified")
		if claimed {
			// The claim must go even when the pass itself was cancelled.
			if err := s.ledger.Release(context.WithoutCancel(ctx), pair); err != nil {
				log.Error().Err(err).Msg("Failed to release notification claim")
			}
		}
		return false
	}

	return true
}

// send emails recipient the details of partner
func (s *notificationServiceImpl) send(ctx context.Context, recipient, partner *models.SkillRecord) bool {
	subject, body, err := email.ComposeMatchNotification(recipient, partner)
	if err != nil {
		s.logger.Error().Err(err).Int64("recordId", recipient.ID).Msg("Failed to compose match notification")
		return false
	}

	address := strings.TrimSpace(recipient.EmailAddress())
	return s.sender.SendEmail(ctx, address, recipient.FullName, subject, body)
}

// NotifyAll walks every record with an email address, pausing between subjects
func (s *notificationServiceImpl) NotifyAll(ctx context.Context) (int, error) {
	records, err := s.skillRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load records: %w", err)
	}

	total := 0
	subjects := 0
	for _, rec := range records {
		if !rec.HasEmail() {
			continue
		}

		if subjects > 0 && s.throttle > 0 {
			if err := sleep(ctx, s.throttle); err != nil {
				return total, err
			}
		}
		if err := ctx.Err(); err != nil {
			return total, err
		}
		subjects++

		notified, err := s.NotifyMutualMatches(ctx, rec.ID)
		if err != nil {
			s.logger.Error().Err(err).Int64("recordId", rec.ID).Msg("Notification pass failed")
			continue
		}
		total += len(notified)
	}

	s.logger.Info().Int("subjects", subjects).Int("notified", total).Msg("Full matching run finished")
	return total, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
