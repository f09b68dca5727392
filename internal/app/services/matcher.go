package services

import "github.com/yigit/sharesuki/internal/app/models"

// Matching compares skill labels with exact, case-sensitive equality.
// None of these functions modify the records they are given, and results
// keep the order of the input snapshot.

// FindSupplyMatches returns the records offering wantedSkill, except excludeID.
func FindSupplyMatches(records []*models.SkillRecord, wantedSkill string, excludeID int64) []*models.SkillRecord {
	matches := make([]*models.SkillRecord, 0)
	if wantedSkill == "" {
		return matches
	}

	for _, rec := range records {
		if rec.ID != excludeID && rec.Offered() == wantedSkill {
			matches = append(matches, rec)
		}
	}
	return matches
}

// FindDemandMatches returns the records wanting offeredSkill, except excludeID.
func FindDemandMatches(records []*models.SkillRecord, offeredSkill string, excludeID int64) []*models.SkillRecord {
	matches := make([]*models.SkillRecord, 0)
	if offeredSkill == "" {
		return matches
	}

	for _, rec := range records {
		if rec.ID != excludeID && rec.Wanted() == offeredSkill {
			matches = append(matches, rec)
		}
	}
	return matches
}

// FindMutualMatches looks subjectID up in records and returns its mutual
// matches. An unknown subject has none.
func FindMutualMatches(records []*models.SkillRecord, subjectID int64) []*models.SkillRecord {
	for _, rec := range records {
		if rec.ID == subjectID {
			return MutualMatchesOf(records, rec)
		}
	}
	return make([]*models.SkillRecord, 0)
}

// MutualMatchesOf returns every other record that offers what subject wants,
// wants what subject offers, and has an email address to be notified at.
func MutualMatchesOf(records []*models.SkillRecord, subject *models.SkillRecord) []*models.SkillRecord {
	matches := make([]*models.SkillRecord, 0)
	if subject == nil || !subject.CanMatch() {
		return matches
	}

	wanted, offered := subject.Wanted(), subject.Offered()
	for _, rec := range records {
		if rec.ID == subject.ID {
			continue
		}
		if rec.Offered() == wanted && rec.Wanted() == offered && rec.HasEmail() {
			matches = append(matches, rec)
		}
	}
	return matches
}
