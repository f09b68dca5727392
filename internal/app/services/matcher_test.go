package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sharesuki/internal/app/models"
)

func record(id int64, wanted, offered, address string) *models.SkillRecord {
	return &models.SkillRecord{
		ID:           id,
		StudentID:    100000 + int(id),
		FullName:     "student",
		WantedSkill:  optionalLabel(wanted),
		OfferedSkill: optionalLabel(offered),
		Email:        optionalLabel(address),
	}
}

func ids(records []*models.SkillRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func snapshot() []*models.SkillRecord {
	return []*models.SkillRecord{
		record(1, "Go", "Rust", "one@example.com"),
		record(2, "Rust", "Go", "two@example.com"),
		record(3, "Rust", "Go", ""),
		record(4, "Python", "Go", "four@example.com"),
		record(5, "Rust", "go", "five@example.com"),
		record(6, "", "", "six@example.com"),
		record(7, "Rust", "Go", "   "),
	}
}

func TestFindSupplyMatches(t *testing.T) {
	records := snapshot()

	assert.Equal(t, []int64{2, 3, 4, 7}, ids(FindSupplyMatches(records, "Go", 1)))
	assert.Equal(t, []int64{3, 4, 7}, ids(FindSupplyMatches(records, "Go", 2)), "excluded id never appears")
	assert.Equal(t, []int64{5}, ids(FindSupplyMatches(records, "go", 0)), "comparison is case sensitive")
	assert.Empty(t, FindSupplyMatches(records, "", 0))
	assert.NotNil(t, FindSupplyMatches(records, "", 0))
	assert.Empty(t, FindSupplyMatches(records, "Haskell", 0))
	assert.Empty(t, FindSupplyMatches(nil, "Go", 0))
}

func TestFindDemandMatches(t *testing.T) {
	records := snapshot()

	assert.Equal(t, []int64{2, 3, 5, 7}, ids(FindDemandMatches(records, "Rust", 1)))
	assert.Equal(t, []int64{3, 5, 7}, ids(FindDemandMatches(records, "Rust", 2)))
	assert.Empty(t, FindDemandMatches(records, "", 0))
	assert.Empty(t, FindDemandMatches(records, "rust", 0))
}

func TestFindMutualMatches(t *testing.T) {
	records := snapshot()

	tests := []struct {
		name    string
		subject int64
		want    []int64
	}{
		{"reciprocal with email only", 1, []int64{2}},
		{"reverse direction", 2, []int64{1}},
		{"subject without email still matches", 3, []int64{1}},
		{"no reciprocal", 4, []int64{}},
		{"empty skills", 6, []int64{}},
		{"unknown subject", 99, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindMutualMatches(records, tt.subject)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestMutualMatchesOf_IsSymmetric(t *testing.T) {
	records := snapshot()

	for _, a := range records {
		for _, b := range MutualMatchesOf(records, a) {
			if !a.HasEmail() {
				continue
			}
			assert.Contains(t, ids(MutualMatchesOf(records, b)), a.ID,
				"%d matches %d, so %d must match %d", a.ID, b.ID, b.ID, a.ID)
		}
	}
}

func TestMatchers_DoNotModifyInput(t *testing.T) {
	records := snapshot()
	before := make([]models.SkillRecord, len(records))
	for i, r := range records {
		before[i] = *r
	}

	_ = FindSupplyMatches(records, "Go", 1)
	_ = FindDemandMatches(records, "Rust", 1)
	_ = FindMutualMatches(records, 1)

	require.Len(t, records, len(before))
	for i, r := range records {
		assert.Equal(t, before[i], *r)
	}
}

func TestFindMutualMatches_NeverIncludesSubject(t *testing.T) {
	records := append(snapshot(),
		record(8, "Go", "Go", "eight@example.com"),
		record(9, "Go", "Go", "nine@example.com"),
	)

	for _, pair := range [][2]int64{{8, 9}, {9, 8}} {
		subject, other := pair[0], pair[1]
		got := ids(FindMutualMatches(records, subject))
		assert.Equal(t, []int64{other}, got)
		assert.NotContains(t, got, subject)
		assert.NotContains(t, ids(FindSupplyMatches(records, "Go", subject)), subject)
		assert.NotContains(t, ids(FindDemandMatches(records, "Go", subject)), subject)
	}
}
