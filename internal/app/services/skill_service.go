package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/app/models/dto"
	"github.com/yigit/sharesuki/internal/app/repositories"
	"github.com/yigit/sharesuki/internal/pkg/apperrors"
)

// SkillService defines the interface for skill record operations
type SkillService interface {
	Register(ctx context.Context, req *dto.SkillRecordRequest) (int64, error)
	Update(ctx context.Context, id int64, req *dto.SkillRecordRequest) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.SkillRecord, error)
	GetAll(ctx context.Context) ([]*models.SkillRecord, error)
	Search(ctx context.Context, filter repositories.SkillFilter) ([]*models.SkillRecord, error)
	FindMatches(ctx context.Context, id int64) (*dto.MatchResultResponse, error)
	Count(ctx context.Context) (int, error)
}

// MatchDispatcher queues a notification pass for a stored record
type MatchDispatcher interface {
	DispatchMutualMatches(recordID int64) (uuid.UUID, error)
}

// skillServiceImpl implements SkillService
type skillServiceImpl struct {
	skillRepo  repositories.SkillRepository
	dispatcher MatchDispatcher
	logger     zerolog.Logger
}

// NewSkillService creates a new SkillService
func NewSkillService(skillRepo repositories.SkillRepository, dispatcher MatchDispatcher, logger zerolog.Logger) SkillService {
	return &skillServiceImpl{
		skillRepo:  skillRepo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Register validates and stores a new record, then queues its notification pass
func (s *skillServiceImpl) Register(ctx context.Context, req *dto.SkillRecordRequest) (int64, error) {
	record, err := s.prepare(req)
	if err != nil {
		return 0, err
	}

	id, err := s.skillRepo.Insert(ctx, record)
	if err != nil {
		return 0, fmt.Errorf("failed to register skill record: %w", err)
	}

	s.logger.Info().Int64("recordId", id).Msg("Skill record registered")
	s.dispatch(id)
	return id, nil
}

// Update validates and overwrites a record, then queues its notification pass
func (s *skillServiceImpl) Update(ctx context.Context, id int64, req *dto.SkillRecordRequest) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid skill record ID")
	}

	record, err := s.prepare(req)
	if err != nil {
		return err
	}
	record.ID = id

	if err := s.skillRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update skill record: %w", err)
	}

	s.logger.Info().Int64("recordId", id).Msg("Skill record updated")
	s.dispatch(id)
	return nil
}

// Delete removes a record
func (s *skillServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid skill record ID")
	}

	if err := s.skillRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete skill record: %w", err)
	}

	s.logger.Info().Int64("recordId", id).Msg("Skill record deleted")
	return nil
}

// GetByID retrieves a record by ID
func (s *skillServiceImpl) GetByID(ctx context.Context, id int64) (*models.SkillRecord, error) {
	return s.skillRepo.GetByID(ctx, id)
}

// GetAll retrieves every record, newest first
func (s *skillServiceImpl) GetAll(ctx context.Context) ([]*models.SkillRecord, error) {
	return s.skillRepo.GetAll(ctx)
}

// Search retrieves the records matching filter
func (s *skillServiceImpl) Search(ctx context.Context, filter repositories.SkillFilter) ([]*models.SkillRecord, error) {
	return s.skillRepo.Search(ctx, filter)
}

// FindMatches lists supply, demand and mutual matches for one record
func (s *skillServiceImpl) FindMatches(ctx context.Context, id int64) (*dto.MatchResultResponse, error) {
	record, err := s.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.skillRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for matching: %w", err)
	}

	return &dto.MatchResultResponse{
		Record: record,
		Supply: FindSupplyMatches(snapshot, record.Wanted(), record.ID),
		Demand: FindDemandMatches(snapshot, record.Offered(), record.ID),
		Mutual: MutualMatchesOf(snapshot, record),
	}, nil
}

// Count returns the number of stored records
func (s *skillServiceImpl) Count(ctx context.Context) (int, error) {
	return s.skillRepo.Count(ctx)
}

// prepare normalizes and validates req and converts it into a record
func (s *skillServiceImpl) prepare(req *dto.SkillRecordRequest) (*models.SkillRecord, error) {
	if req == nil {
		return nil, apperrors.NewBadRequestError("request body is required")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := req.ToModel()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, err)
	}
	return record, nil
}

// dispatch queues the notification pass. A rejected job is logged and the
// write it follows still stands.
func (s *skillServiceImpl) dispatch(id int64) {
	if s.dispatcher == nil {
		return
	}
	if _, err := s.dispatcher.DispatchMutualMatches(id); err != nil {
		s.logger.Error().Err(err).Int64("recordId", id).Msg("Failed to queue mutual match notification")
	}
}
