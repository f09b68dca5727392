package models

import (
	"strings"
	"time"
)

// SkillRecord is one registrant's entry: what they want to learn, what they
// can teach, and how to reach them.
type SkillRecord struct {
	ID                 int64     `json:"id"`
	StudentID          int       `json:"studentId"`
	ClassName          *string   `json:"className,omitempty"`
	AttendanceNumber   *int      `json:"attendanceNumber,omitempty"`
	Gender             *string   `json:"gender,omitempty"`
	FullName           string    `json:"fullName"`
	Email              *string   `json:"email,omitempty"`
	WantedSkill        *string   `json:"wantedSkill,omitempty"`
	WantedSkillNote    *string   `json:"wantedSkillNote,omitempty"`
	OfferedSkill       *string   `json:"offeredSkill,omitempty"`
	OfferedSkillNote   *string   `json:"offeredSkillNote,omitempty"`
	AvailabilityWindow *string   `json:"availabilityWindow,omitempty"`
	RegisteredAt       time.Time `json:"registeredAt"`
}

// Wanted returns the wanted skill label or "".
func (r *SkillRecord) Wanted() string {
	return deref(r.WantedSkill)
}

// Offered returns the offered skill label or "".
func (r *SkillRecord) Offered() string {
	return deref(r.OfferedSkill)
}

// EmailAddress returns the email address or "".
func (r *SkillRecord) EmailAddress() string {
	return deref(r.Email)
}

// HasEmail reports whether the record can receive notifications.
func (r *SkillRecord) HasEmail() bool {
	return strings.TrimSpace(deref(r.Email)) != ""
}

// CanMatch reports whether both skill sides are filled in.
func (r *SkillRecord) CanMatch() bool {
	return r.Wanted() != "" && r.Offered() != ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
