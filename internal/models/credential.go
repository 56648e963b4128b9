// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Credential is the durable hashed secret associated with a provider NIT.
// At most one row exists per NIT; the hash is replaced on password reset.
type Credential struct {
	NIT       string    `db:"nit" json:"nit"`
	Clave     string    `db:"clave" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
