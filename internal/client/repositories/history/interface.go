package history

import (
	"context"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
)

type Repository interface {
	// Record stores rec and keeps at most keep rows (keep <= 0 keeps all).
	Record(ctx context.Context, rec *models.HistoryRecord, keep int) error
	Latest(ctx context.Context, limit int) ([]models.HistoryRecord, error)
	// ByScreenID returns the newest row for screenID, or ok=false.
	ByScreenID(ctx context.Context, screenID string) (*models.HistoryRecord, bool, error)
	Clear(ctx context.Context) error
}
