// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/fomag/convocatoria-backend/internal/models"
)

// CredentialExists reports whether a credential row exists for the NIT.
func (r *Repository) CredentialExists(ctx context.Context, nit string) (bool, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM clave_nit WHERE nit = ?`, nit)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetCredential retrieves the credential for a NIT.
func (r *Repository) GetCredential(ctx context.Context, nit string) (*models.Credential, error) {
	var cred models.Credential
	err := r.db.GetContext(ctx, &cred,
		`SELECT nit, clave, created_at, updated_at FROM clave_nit WHERE nit = ?`, nit)
	if err != nil {
		return nil, wrapError(err)
	}
	return &cred, nil
}

// CreateCredential inserts a new credential. Returns ErrDuplicate when a row
// already exists for the NIT; the uniqueness constraint is the arbiter so two
// concurrent creates cannot both succeed.
func (r *Repository) CreateCredential(ctx context.Context, nit, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clave_nit (nit, clave) VALUES (?, ?) ON CONFLICT (nit) DO NOTHING`,
		nit, hash)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDuplicate
	}
	return nil
}

// UpsertCredential creates the credential if absent or replaces its hash.
func (r *Repository) UpsertCredential(ctx context.Context, nit, hash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clave_nit (nit, clave) VALUES (?, ?)
		 ON CONFLICT (nit) DO UPDATE SET clave = excluded.clave, updated_at = CURRENT_TIMESTAMP`,
		nit, hash)
	return err
}
