// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"fmt"

	"github.com/fomag/convocatoria-backend/internal/models"
)

// profileColumns maps recovery question field ids to their backing columns.
// Only whitelisted columns may be interpolated into the decoy query.
var profileColumns = map[string]string{
	"representante": "representante_legal",
	"correo":        "correo_representante",
	"celular":       "celular_representante",
}

// LatestProfileByNIT returns the newest registration row for a NIT.
func (r *Repository) LatestProfileByNIT(ctx context.Context, nit string) (*models.ProviderProfile, error) {
	var profile models.ProviderProfile
	err := r.db.GetContext(ctx, &profile,
		`SELECT id, nit, nombre_prestador, clase_prestador, telefono_fijo,
		        celular_admin, correo_admin, representante_legal,
		        correo_representante, celular_representante, fecha_registro
		 FROM registro_prestadores
		 WHERE TRIM(nit) = TRIM(?)
		 ORDER BY fecha_registro DESC
		 LIMIT 1`, nit)
	if err != nil {
		return nil, wrapError(err)
	}
	return &profile, nil
}

// FieldDecoys samples up to limit distinct non-empty values for a question
// field, drawn from other providers' rows. Values equal to exclude (after
// trimming) never appear. Sampling order is random.
func (r *Repository) FieldDecoys(ctx context.Context, fieldID, exclude string, limit int) ([]string, error) {
	column, ok := profileColumns[fieldID]
	if !ok {
		return nil, fmt.Errorf("unknown profile field %q", fieldID)
	}

	var values []string
	query := fmt.Sprintf(
		`SELECT DISTINCT TRIM(%s) FROM registro_prestadores
		 WHERE %s IS NOT NULL AND TRIM(%s) <> '' AND LOWER(TRIM(%s)) <> LOWER(TRIM(?))
		 ORDER BY RANDOM()
		 LIMIT ?`, column, column, column, column)
	if err := r.db.SelectContext(ctx, &values, query, exclude, limit); err != nil {
		return nil, err
	}
	return values, nil
}

// CreateProfile inserts a registration row. Business registration itself is
// handled elsewhere; this exists for seeding and tests.
func (r *Repository) CreateProfile(ctx context.Context, profile *models.ProviderProfile) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO registro_prestadores
		 (nit, nombre_prestador, clase_prestador, telefono_fijo, celular_admin,
		  correo_admin, representante_legal, correo_representante, celular_representante)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.NIT, profile.NombrePrestador, profile.ClasePrestador,
		profile.TelefonoFijo, profile.CelularAdmin, profile.CorreoAdmin,
		profile.RepresentanteLegal, profile.CorreoRepresentante, profile.CelularRepresentante)
	if err != nil {
		return err
	}
	profile.ID, err = res.LastInsertId()
	return err
}

// UpdateRepresentante overwrites all representative and contact fields for
// every registration row of the NIT.
func (r *Repository) UpdateRepresentante(ctx context.Context, profile *models.ProviderProfile) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE registro_prestadores SET
		    nombre_prestador = ?,
		    clase_prestador = ?,
		    telefono_fijo = ?,
		    celular_admin = ?,
		    correo_admin = ?,
		    representante_legal = ?,
		    correo_representante = ?,
		    celular_representante = ?
		 WHERE TRIM(nit) = TRIM(?)`,
		profile.NombrePrestador, profile.ClasePrestador, profile.TelefonoFijo,
		profile.CelularAdmin, profile.CorreoAdmin, profile.RepresentanteLegal,
		profile.CorreoRepresentante, profile.CelularRepresentante, profile.NIT)
	return err
}

// UpdateRepresentanteBasico overwrites only the fields editable from the
// password recovery dialog.
func (r *Repository) UpdateRepresentanteBasico(ctx context.Context, nit, representanteLegal, correoRepresentante, celularRepresentante, correoAdmin string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE registro_prestadores SET
		    representante_legal = ?,
		    correo_representante = ?,
		    celular_representante = ?,
		    correo_admin = ?
		 WHERE TRIM(nit) = TRIM(?)`,
		representanteLegal, correoRepresentante, celularRepresentante, correoAdmin, nit)
	return err
}
