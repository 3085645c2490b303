package database

import (
	"context"
	"time"

	"github.com/ayush-gupta456/pass-op/internal/models"

	"github.com/google/uuid"
)

func (q *Queries) ListEntries(ctx context.Context, userID int64) ([]models.VaultEntry, error) {
	query := `
		SELECT id, user_id, site, username, password, created_at, updated_at
		FROM vault_entries
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.VaultEntry
	for rows.Next() {
		var entry models.VaultEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Site,
			&entry.Username,
			&entry.Password,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if entries == nil {
		return []models.VaultEntry{}, nil
	}

	return entries, nil
}

type CreateEntryParams struct {
	ID       uuid.UUID
	UserID   int64
	Site     string
	Username string
	Password string
}

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (*models.VaultEntry, error) {
	query := `
		INSERT INTO vault_entries (id, user_id, site, username, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, user_id, site, username, password, created_at, updated_at
	`
	now := time.Now()

	row := q.db.QueryRow(ctx, query, arg.ID, arg.UserID, arg.Site, arg.Username, arg.Password, now)

	var entry models.VaultEntry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Site,
		&entry.Username,
		&entry.Password,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

type UpdateEntryParams struct {
	ID       uuid.UUID
	UserID   int64
	Site     string
	Username string
	Password string
}

// UpdateEntry combines the entry id and the owning user id in the filter, so a
// caller can never touch another user's entry even with a guessed id.
func (q *Queries) UpdateEntry(ctx context.Context, arg UpdateEntryParams) (bool, error) {
	query := `
		UPDATE vault_entries
		SET site = $1, username = $2, password = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`
	now := time.Now()
	res, err := q.db.Exec(ctx, query, arg.Site, arg.Username, arg.Password, now, arg.ID, arg.UserID)
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

func (q *Queries) DeleteEntry(ctx context.Context, id uuid.UUID, userID int64) (bool, error) {
	query := `DELETE FROM vault_entries WHERE id = $1 AND user_id = $2`
	res, err := q.db.Exec(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
