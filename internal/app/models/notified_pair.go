package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// NotifiedPair marks that a mutual match between two records has already
// been announced for the current combination of their skill labels.
type NotifiedPair struct {
	LowID         int64     `json:"lowId"`
	HighID        int64     `json:"highId"`
	SkillPairHash string    `json:"skillPairHash"`
	NotifiedAt    time.Time `json:"notifiedAt"`
}

// NewNotifiedPair builds the order-independent key for a and b.
func NewNotifiedPair(a, b *SkillRecord) NotifiedPair {
	low, high := a, b
	if high.ID < low.ID {
		low, high = high, low
	}

	h := sha256.New()
	for _, part := range []string{low.Wanted(), low.Offered(), high.Wanted(), high.Offered()} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	return NotifiedPair{
		LowID:         low.ID,
		HighID:        high.ID,
		SkillPairHash: hex.EncodeToString(h.Sum(nil)),
	}
}
