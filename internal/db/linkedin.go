package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const linkedInColumns = `access_token, expires_at, linkedin_user_id, linkedin_name, linkedin_email, created_at`

func scanLinkedInToken(row pgx.Row) (*LinkedInToken, error) {
	var t LinkedInToken
	if err := row.Scan(&t.AccessToken, &t.ExpiresAt, &t.LinkedInUserID, &t.LinkedInName, &t.LinkedInEmail, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// SavePendingLinkedInToken stores a token obtained by the OAuth callback under its state
func (db *DB) SavePendingLinkedInToken(ctx context.Context, state string, t *LinkedInToken) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO pending_linkedin_tokens (state, access_token, expires_at, linkedin_user_id, linkedin_name, linkedin_email)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (state) DO UPDATE SET access_token = $2, expires_at = $3,
		   linkedin_user_id = $4, linkedin_name = $5, linkedin_email = $6, created_at = NOW()`,
		state, t.AccessToken, t.ExpiresAt, t.LinkedInUserID, t.LinkedInName, t.LinkedInEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to save pending linkedin token: %w", err)
	}
	return nil
}

// GetPendingLinkedInToken retrieves a pending token. Returns nil, nil when not found.
func (db *DB) GetPendingLinkedInToken(ctx context.Context, state string) (*LinkedInToken, error) {
	t, err := scanLinkedInToken(db.pool.QueryRow(ctx,
		`SELECT `+linkedInColumns+` FROM pending_linkedin_tokens WHERE state = $1`, state))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending linkedin token: %w", err)
	}
	return t, nil
}

// DeletePendingLinkedInToken removes a pending token
func (db *DB) DeletePendingLinkedInToken(ctx context.Context, state string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM pending_linkedin_tokens WHERE state = $1`, state); err != nil {
		return fmt.Errorf("failed to delete pending linkedin token: %w", err)
	}
	return nil
}

// AssociateLinkedInToken moves the pending token for state to ownerID,
// replacing any token the owner already had. Both steps run in one transaction.
func (db *DB) AssociateLinkedInToken(ctx context.Context, state, ownerID string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`INSERT INTO linkedin_tokens (owner_id, access_token, expires_at, linkedin_user_id, linkedin_name, linkedin_email)
		 SELECT $2, access_token, expires_at, linkedin_user_id, linkedin_name, linkedin_email
		 FROM pending_linkedin_tokens WHERE state = $1
		 ON CONFLICT (owner_id) DO UPDATE SET access_token = EXCLUDED.access_token,
		   expires_at = EXCLUDED.expires_at, linkedin_user_id = EXCLUDED.linkedin_user_id,
		   linkedin_name = EXCLUDED.linkedin_name, linkedin_email = EXCLUDED.linkedin_email,
		   created_at = NOW()`,
		state, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to store linkedin token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending linkedin token not found for state %q", state)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM pending_linkedin_tokens WHERE state = $1`, state); err != nil {
		return fmt.Errorf("failed to delete pending linkedin token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit linkedin association: %w", err)
	}
	return nil
}

// GetLinkedInToken retrieves ownerID's token. Returns nil, nil when not connected.
func (db *DB) GetLinkedInToken(ctx context.Context, ownerID string) (*LinkedInToken, error) {
	t, err := scanLinkedInToken(db.pool.QueryRow(ctx,
		`SELECT `+linkedInColumns+` FROM linkedin_tokens WHERE owner_id = $1`, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get linkedin token: %w", err)
	}
	return t, nil
}
