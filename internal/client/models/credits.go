package models

import "time"

// Credits is the cached credit ledger. Lifetime counters only grow;
// remaining counters are set by the service or by an optimistic grant.
type Credits struct {
	ScreenCredits            int `json:"screenCredits"`
	RevisionCredits          int `json:"revisionCredits"`
	RemainingScreenCredits   int `json:"remainingScreenCredits"`
	RemainingRevisionCredits int `json:"remainingRevisionCredits"`

	// LastUpdated is the time of the last authoritative write. Zero means never.
	LastUpdated time.Time `json:"-"`
}

func (c Credits) UsedScreenCredits() int {
	return c.ScreenCredits - c.RemainingScreenCredits
}

func (c Credits) UsedRevisionCredits() int {
	return c.RevisionCredits - c.RemainingRevisionCredits
}

// Normalize clamps the counters into 0 <= remaining <= lifetime.
// A remaining count above the lifetime total raises the total.
func (c *Credits) Normalize() {
	c.ScreenCredits = max(c.ScreenCredits, 0)
	c.RevisionCredits = max(c.RevisionCredits, 0)
	c.RemainingScreenCredits = max(c.RemainingScreenCredits, 0)
	c.RemainingRevisionCredits = max(c.RemainingRevisionCredits, 0)
	c.ScreenCredits = max(c.ScreenCredits, c.RemainingScreenCredits)
	c.RevisionCredits = max(c.RevisionCredits, c.RemainingRevisionCredits)
}
