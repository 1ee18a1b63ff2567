package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/skillsculpt/internal/types"
)

const resumeColumns = `id, owner_id, document, created_at, updated_at`

func scanResume(row pgx.Row) (*types.Resume, error) {
	var (
		r   types.Resume
		doc []byte
	)
	if err := row.Scan(&r.ID, &r.OwnerID, &doc, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc, &r.ResumeDocument); err != nil {
		return nil, fmt.Errorf("failed to decode resume %s: %w", r.ID, err)
	}
	r.ResumeDocument.Normalize()
	return &r, nil
}

func marshalDocument(doc types.ResumeDocument) ([]byte, error) {
	doc.Normalize()
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	return data, nil
}

// CreateResume stores a new resume for ownerID
func (db *DB) CreateResume(ctx context.Context, ownerID string, doc types.ResumeDocument) (*types.Resume, error) {
	data, err := marshalDocument(doc)
	if err != nil {
		return nil, err
	}

	r, err := scanResume(db.pool.QueryRow(ctx,
		`INSERT INTO resumes (owner_id, document)
		 VALUES ($1, $2)
		 RETURNING `+resumeColumns,
		ownerID, data,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return r, nil
}

// GetResume retrieves a resume owned by ownerID.
// Returns nil, nil when it does not exist or belongs to someone else.
func (db *DB) GetResume(ctx context.Context, ownerID string, id uuid.UUID) (*types.Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes returns ownerID's resumes, most recently updated first
func (db *DB) ListResumes(ctx context.Context, ownerID string) ([]types.Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE owner_id = $1 ORDER BY updated_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResume replaces the document of a resume owned by ownerID.
// Returns nil, nil when it does not exist or belongs to someone else.
func (db *DB) UpdateResume(ctx context.Context, ownerID string, id uuid.UUID, doc types.ResumeDocument) (*types.Resume, error) {
	data, err := marshalDocument(doc)
	if err != nil {
		return nil, err
	}

	r, err := scanResume(db.pool.QueryRow(ctx,
		`UPDATE resumes SET document = $1, updated_at = NOW()
		 WHERE id = $2 AND owner_id = $3
		 RETURNING `+resumeColumns,
		data, id, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return r, nil
}

// DeleteResume removes a resume owned by ownerID and reports whether it existed
func (db *DB) DeleteResume(ctx context.Context, ownerID string, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
