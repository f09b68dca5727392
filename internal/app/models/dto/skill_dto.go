package dto

import (
	"github.com/google/uuid"
	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/pkg/taskqueue"
)

// MatchResultResponse lists every kind of match for one record.
type MatchResultResponse struct {
	Record *models.SkillRecord   `json:"record"`
	Supply []*models.SkillRecord `json:"supply"`
	Demand []*models.SkillRecord `json:"demand"`
	Mutual []*models.SkillRecord `json:"mutual"`
}

// CreatedResponse is returned after a successful registration.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// NotifyResultResponse reports one notification pass.
type NotifyResultResponse struct {
	SubjectID     int64                 `json:"subjectId"`
	NotifiedCount int                   `json:"notifiedCount"`
	Notified      []*models.SkillRecord `json:"notified"`
}

// JobAcceptedResponse is returned when work was queued instead of run inline.
type JobAcceptedResponse struct {
	JobID uuid.UUID `json:"jobId"`
}

// VocabularyResponse carries the suggestion lists for entry forms.
type VocabularyResponse struct {
	Skills       []string `json:"skills"`
	ClassNames   []string `json:"classNames"`
	Genders      []string `json:"genders"`
	Availability []string `json:"availability"`
}

// NewVocabularyResponse returns the built-in suggestion lists.
func NewVocabularyResponse() VocabularyResponse {
	return VocabularyResponse{
		Skills:       models.SkillSuggestions,
		ClassNames:   models.ClassNameSuggestions,
		Genders:      models.GenderSuggestions,
		Availability: models.AvailabilitySuggestions,
	}
}

// StatsResponse summarizes the store and the background queue.
type StatsResponse struct {
	Records int             `json:"records"`
	Queue   taskqueue.Stats `json:"queue"`
}
