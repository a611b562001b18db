package history

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/dmitrijs2005/screenmock/internal/dbx"
	"golang.org/x/crypto/blake2b"
)

// Digest is the hex BLAKE2b-256 of markup.
func Digest(markup string) string {
	sum := blake2b.Sum256([]byte(markup))
	return hex.EncodeToString(sum[:])
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Record(ctx context.Context, rec *models.HistoryRecord, keep int) error {
	if rec.Digest == "" {
		rec.Digest = Digest(rec.Markup)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO history (screen_id, origin, markup, digest, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, rec.ScreenID, string(rec.Origin), rec.Markup, rec.Digest, rec.CreatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to insert history: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read history id: %w", err)
		}
		rec.ID = id

		if keep <= 0 {
			return nil
		}
		_, err = tx.ExecContext(ctx, `
			DELETE FROM history WHERE id NOT IN (
				SELECT id FROM history ORDER BY id DESC LIMIT ?
			)
		`, keep)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Latest(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, screen_id, origin, markup, digest, created_at
		FROM history ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	defer rows.Close()

	result := make([]models.HistoryRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) ByScreenID(ctx context.Context, screenID string) (*models.HistoryRecord, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, screen_id, origin, markup, digest, created_at
		FROM history WHERE screen_id = ? ORDER BY id DESC LIMIT 1
	`, screenID)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.HistoryRecord, error) {
	var (
		rec       models.HistoryRecord
		origin    string
		createdAt string
	)
	if err := s.Scan(&rec.ID, &rec.ScreenID, &origin, &rec.Markup, &rec.Digest, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan history row: %w", err)
	}
	o, err := models.ParseOrigin(origin)
	if err != nil {
		return nil, err
	}
	rec.Origin = o
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = t
	return &rec, nil
}
