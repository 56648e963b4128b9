// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"

	"github.com/fomag/convocatoria-backend/internal/database"
	"github.com/fomag/convocatoria-backend/internal/models"
	"github.com/fomag/convocatoria-backend/internal/repository"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestCredential stores a credential row for a NIT. The hash is stored
// as-is, callers that need a real bcrypt hash must produce one themselves.
func NewTestCredential(t *testing.T, repo *repository.Repository, nit, hash string) {
	t.Helper()
	err := repo.CreateCredential(context.Background(), nit, hash)
	require.NoError(t, err)
}

// NewTestProfile stores a registration row for a NIT with the given
// representative fields filled in.
func NewTestProfile(t *testing.T, repo *repository.Repository, nit, representante, correo, celular string) *models.ProviderProfile {
	t.Helper()
	profile := &models.ProviderProfile{
		NIT:                  nit,
		NombrePrestador:      NullString("IPS de Prueba"),
		ClasePrestador:       NullString("IPS"),
		CorreoAdmin:          NullString("admin@prueba.example"),
		RepresentanteLegal:   NullString(representante),
		CorreoRepresentante:  NullString(correo),
		CelularRepresentante: NullString(celular),
	}
	err := repo.CreateProfile(context.Background(), profile)
	require.NoError(t, err)
	return profile
}

// NullString wraps a string as a valid sql.NullString. Empty input yields
// an invalid (NULL) value.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
