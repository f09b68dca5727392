package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/pkg/apperrors"
	"github.com/yigit/sharesuki/internal/pkg/validation"
)

// SkillRecordRequest is the body accepted when registering or editing a record.
// Numeric fields arrive as text so malformed input can be reported per field.
type SkillRecordRequest struct {
	StudentID          string `json:"studentId" validate:"student_id"`
	ClassName          string `json:"className" validate:"max=50"`
	AttendanceNumber   string `json:"attendanceNumber" validate:"omitempty,digits,max=9"`
	Gender             string `json:"gender" validate:"max=10"`
	FullName           string `json:"fullName" validate:"notblank,max=100"`
	Email              string `json:"email" validate:"max=100"`
	WantedSkill        string `json:"wantedSkill" validate:"max=100"`
	WantedSkillNote    string `json:"wantedSkillNote"`
	OfferedSkill       string `json:"offeredSkill" validate:"max=100"`
	OfferedSkillNote   string `json:"offeredSkillNote"`
	AvailabilityWindow string `json:"availabilityWindow" validate:"max=50"`
}

var skillRecordFieldCauses = validation.FieldCauses{
	"studentId":        apperrors.ErrInvalidStudentID,
	"fullName":         apperrors.ErrFullNameRequired,
	"attendanceNumber": apperrors.ErrInvalidAttendance,
}

// Normalize trims identity and contact fields in place. Skill labels and
// notes are left byte for byte; matching compares them exactly.
func (r *SkillRecordRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.ClassName = strings.TrimSpace(r.ClassName)
	r.AttendanceNumber = strings.TrimSpace(r.AttendanceNumber)
	r.Gender = strings.TrimSpace(r.Gender)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.AvailabilityWindow = strings.TrimSpace(r.AvailabilityWindow)
}

// Validate checks the request and returns an *apperrors.ValidationError on failure.
func (r *SkillRecordRequest) Validate() error {
	return validation.ValidateStruct(r, skillRecordFieldCauses)
}

// ToModel converts a validated request into a SkillRecord without identity.
func (r *SkillRecordRequest) ToModel() (*models.SkillRecord, error) {
	studentID, err := strconv.Atoi(r.StudentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidStudentID, err)
	}

	record := &models.SkillRecord{
		StudentID:          studentID,
		ClassName:          optional(r.ClassName),
		Gender:             optional(r.Gender),
		FullName:           r.FullName,
		Email:              optional(r.Email),
		WantedSkill:        optional(r.WantedSkill),
		WantedSkillNote:    optional(r.WantedSkillNote),
		OfferedSkill:       optional(r.OfferedSkill),
		OfferedSkillNote:   optional(r.OfferedSkillNote),
		AvailabilityWindow: optional(r.AvailabilityWindow),
	}

	if r.AttendanceNumber != "" {
		n, err := strconv.Atoi(r.AttendanceNumber)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidAttendance, err)
		}
		record.AttendanceNumber = &n
	}

	return record, nil
}

// SkillSearchRequest holds list/search query parameters.
type SkillSearchRequest struct {
	Query string `form:"q"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
