package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/cvera/cv-import/internal/types"
)

// CreateDocument stores a normalized profile as a new CV document owned by
// the user and returns the document's ID. The payload is written as JSONB so
// the web layer can render it without further transformation.
func (db *DB) CreateDocument(ctx context.Context, ownerID, title string, profile *types.NormalizedProfile) (uuid.UUID, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal CV payload: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO cv_documents (owner_id, title, payload)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		ownerID, title, payload,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create CV document: %w", err)
	}
	return id, nil
}
