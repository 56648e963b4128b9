// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// ProviderProfile is one registration row for a provider. The newest row per
// NIT (by fecha_registro) is the on-file profile the recovery flow reads.
type ProviderProfile struct { //nolint:govet // fieldalignment not critical
	ID                   int64          `db:"id" json:"-"`
	NIT                  string         `db:"nit" json:"nit"`
	NombrePrestador      sql.NullString `db:"nombre_prestador" json:"nombrePrestador"`
	ClasePrestador       sql.NullString `db:"clase_prestador" json:"clasePrestador"`
	TelefonoFijo         sql.NullString `db:"telefono_fijo" json:"telefonoFijo"`
	CelularAdmin         sql.NullString `db:"celular_admin" json:"celularAdmin"`
	CorreoAdmin          sql.NullString `db:"correo_admin" json:"correoAdmin"`
	RepresentanteLegal   sql.NullString `db:"representante_legal" json:"representanteLegal"`
	CorreoRepresentante  sql.NullString `db:"correo_representante" json:"correoRepresentante"`
	CelularRepresentante sql.NullString `db:"celular_representante" json:"celularRepresentante"`
	FechaRegistro        time.Time      `db:"fecha_registro" json:"-"`
}
