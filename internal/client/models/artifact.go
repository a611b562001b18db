package models

import (
	"fmt"
	"time"
)

// Origin tags where an artifact came from. The preview picks its slot by it.
type Origin string

const (
	OriginGenerated Origin = "generated"
	OriginEdited    Origin = "edited"
)

func ParseOrigin(s string) (Origin, error) {
	switch o := Origin(s); o {
	case OriginGenerated, OriginEdited:
		return o, nil
	default:
		return "", fmt.Errorf("unknown origin %q", s)
	}
}

// Artifact is a generated or edited markup payload with its service-assigned id.
type Artifact struct {
	ScreenID string
	Markup   string
	Origin   Origin
}

// HistoryRecord is an artifact kept in the local history table.
type HistoryRecord struct {
	ID        int64
	ScreenID  string
	Origin    Origin
	Markup    string
	Digest    string
	CreatedAt time.Time
}
