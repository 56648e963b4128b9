// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fomag/convocatoria-backend/internal/auth"
	"github.com/fomag/convocatoria-backend/internal/models"
	"github.com/fomag/convocatoria-backend/internal/repository"
	"github.com/fomag/convocatoria-backend/internal/services/acceso"
)

// RepresentanteHandlers serves the legal representative profile endpoints.
type RepresentanteHandlers struct {
	repo   *repository.Repository
	acceso *acceso.Service
}

// NewRepresentante creates a new RepresentanteHandlers instance.
func NewRepresentante(repo *repository.Repository, accesoSvc *acceso.Service) *RepresentanteHandlers {
	return &RepresentanteHandlers{repo: repo, acceso: accesoSvc}
}

// RepresentanteResponse is the profile view returned to the client.
type RepresentanteResponse struct {
	NombrePrestador      string `json:"nombrePrestador"`
	ClasePrestador       string `json:"clasePrestador"`
	TelefonoFijo         string `json:"telefonoFijo"`
	CelularAdmin         string `json:"celularAdmin"`
	CorreoAdmin          string `json:"correoAdmin"`
	RepresentanteLegal   string `json:"representanteLegal"`
	CorreoRepresentante  string `json:"correoRepresentante"`
	CelularRepresentante string `json:"celularRepresentante"`
}

func representanteView(p *models.ProviderProfile) *RepresentanteResponse {
	return &RepresentanteResponse{
		NombrePrestador:      p.NombrePrestador.String,
		ClasePrestador:       p.ClasePrestador.String,
		TelefonoFijo:         p.TelefonoFijo.String,
		CelularAdmin:         p.CelularAdmin.String,
		CorreoAdmin:          p.CorreoAdmin.String,
		RepresentanteLegal:   p.RepresentanteLegal.String,
		CorreoRepresentante:  p.CorreoRepresentante.String,
		CelularRepresentante: p.CelularRepresentante.String,
	}
}

// Obtener returns the newest profile for a NIT. Requires an authenticated
// principal; the gateway is fail-open for anonymous requests, so presence is
// checked here.
func (h *RepresentanteHandlers) Obtener(c echo.Context) error {
	if !auth.IsAuthenticated(c.Request().Context()) {
		return unauthenticated(c)
	}

	nit := strings.TrimSpace(c.QueryParam("nit"))
	if nit == "" {
		return badRequest(c)
	}

	profile, err := h.repo.LatestProfileByNIT(c.Request().Context(), nit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, envelope(nil))
		}
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, envelope(representanteView(profile)))
}

// ActualizarRequest is the full representative update payload.
type ActualizarRequest struct {
	NIT                  string `json:"nit"`
	NombrePrestador      string `json:"nombrePrestador"`
	ClasePrestador       string `json:"clasePrestador"`
	TelefonoFijo         string `json:"telefonoFijo"`
	CelularAdmin         string `json:"celularAdmin"`
	CorreoAdmin          string `json:"correoAdmin"`
	RepresentanteLegal   string `json:"representanteLegal"`
	CorreoRepresentante  string `json:"correoRepresentante"`
	CelularRepresentante string `json:"celularRepresentante"`
}

// Actualizar overwrites the representative data of the authenticated
// provider. The principal must match the payload NIT.
func (h *RepresentanteHandlers) Actualizar(c echo.Context) error {
	principal := auth.NIT(c.Request().Context())
	if principal == "" {
		return unauthenticated(c)
	}

	var req ActualizarRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	req.NIT = strings.TrimSpace(req.NIT)
	if req.NIT == "" {
		return badRequest(c)
	}
	if req.NIT != principal {
		return echo.NewHTTPError(http.StatusForbidden)
	}

	profile := &models.ProviderProfile{
		NIT:                  req.NIT,
		NombrePrestador:      nullable(req.NombrePrestador),
		ClasePrestador:       nullable(req.ClasePrestador),
		TelefonoFijo:         nullable(req.TelefonoFijo),
		CelularAdmin:         nullable(req.CelularAdmin),
		CorreoAdmin:          nullable(req.CorreoAdmin),
		RepresentanteLegal:   nullable(req.RepresentanteLegal),
		CorreoRepresentante:  nullable(req.CorreoRepresentante),
		CelularRepresentante: nullable(req.CelularRepresentante),
	}
	if err := h.repo.UpdateRepresentante(c.Request().Context(), profile); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// ActualizarBasicoRequest is the reduced update allowed from the password
// recovery dialog, authenticated by the reset token instead of a session.
type ActualizarBasicoRequest struct {
	TokenRecuperacion    string `json:"tokenRecuperacion"`
	RepresentanteLegal   string `json:"representanteLegal"`
	CorreoRepresentante  string `json:"correoRepresentante"`
	CelularRepresentante string `json:"celularRepresentante"`
	CorreoAdmin          string `json:"correoAdmin"`
}

// ActualizarDesdeRecuperacion updates contact data during recovery. The reset
// token is peeked, not consumed, so the subsequent restablecer call still
// works.
func (h *RepresentanteHandlers) ActualizarDesdeRecuperacion(c echo.Context) error {
	var req ActualizarBasicoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	req.TokenRecuperacion = strings.TrimSpace(req.TokenRecuperacion)
	if req.TokenRecuperacion == "" {
		return badRequest(c)
	}

	nit, err := h.acceso.ValidarTokenRecuperacion(req.TokenRecuperacion)
	if err != nil {
		return serviceError(c, err)
	}

	err = h.repo.UpdateRepresentanteBasico(c.Request().Context(), nit,
		req.RepresentanteLegal, req.CorreoRepresentante, req.CelularRepresentante, req.CorreoAdmin)
	if err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func nullable(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}
