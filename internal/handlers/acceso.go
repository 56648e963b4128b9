// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fomag/convocatoria-backend/internal/services/acceso"
	"github.com/fomag/convocatoria-backend/internal/services/token"
)

// clave length bounds, matching what the portal UI enforces.
const (
	minClaveLen = 6
	maxClaveLen = 64
)

// AccesoHandlers serves the credential and recovery endpoints.
type AccesoHandlers struct {
	acceso *acceso.Service
	tokens *token.Service
}

// NewAcceso creates a new AccesoHandlers instance.
func NewAcceso(accesoSvc *acceso.Service, tokens *token.Service) *AccesoHandlers {
	return &AccesoHandlers{acceso: accesoSvc, tokens: tokens}
}

// Estado reports whether the NIT must create a clave or can log in.
func (h *AccesoHandlers) Estado(c echo.Context) error {
	nit := strings.TrimSpace(c.QueryParam("nit"))
	if nit == "" {
		return badRequest(c)
	}

	estado, err := h.acceso.Estado(c.Request().Context(), nit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, envelope(estado))
}

// ClavePayload is the request body shared by crear and login.
type ClavePayload struct {
	NIT   string `json:"nit"`
	Clave string `json:"clave"`
}

func (p *ClavePayload) normalize() bool {
	p.NIT = strings.TrimSpace(p.NIT)
	p.Clave = strings.TrimSpace(p.Clave)
	return p.NIT != "" && len(p.Clave) >= minClaveLen && len(p.Clave) <= maxClaveLen
}

// Crear sets the first clave for a NIT.
func (h *AccesoHandlers) Crear(c echo.Context) error {
	var payload ClavePayload
	if err := c.Bind(&payload); err != nil || !payload.normalize() {
		return badRequest(c)
	}

	if err := h.acceso.CrearClave(c.Request().Context(), payload.NIT, payload.Clave); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// LoginResponse carries the session token returned on a successful login.
type LoginResponse struct {
	NIT   string `json:"nit"`
	Token string `json:"token"`
}

// Login validates the clave and mints a session token.
func (h *AccesoHandlers) Login(c echo.Context) error {
	var payload ClavePayload
	if err := c.Bind(&payload); err != nil || !payload.normalize() {
		return badRequest(c)
	}

	if err := h.acceso.ValidarIngreso(c.Request().Context(), payload.NIT, payload.Clave); err != nil {
		return serviceError(c, err)
	}

	tok, err := h.tokens.Mint(payload.NIT)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, LoginResponse{NIT: payload.NIT, Token: tok})
}

// Preguntas issues a recovery challenge for the NIT.
func (h *AccesoHandlers) Preguntas(c echo.Context) error {
	nit := strings.TrimSpace(c.QueryParam("nit"))
	if nit == "" {
		return badRequest(c)
	}

	preguntas, err := h.acceso.ObtenerPreguntas(c.Request().Context(), nit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, preguntas)
}

// ValidarRequest is the answer submission for an open challenge.
type ValidarRequest struct {
	NIT        string            `json:"nit"`
	DesafioID  string            `json:"desafioId"`
	Respuestas map[string]string `json:"respuestas"`
}

// Validar checks the submitted answers and hands out a reset token.
func (h *AccesoHandlers) Validar(c echo.Context) error {
	var req ValidarRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	req.NIT = strings.TrimSpace(req.NIT)
	req.DesafioID = strings.TrimSpace(req.DesafioID)
	if req.NIT == "" || req.DesafioID == "" {
		return badRequest(c)
	}

	validacion, err := h.acceso.ValidarPreguntas(c.Request().Context(), req.NIT, req.DesafioID, req.Respuestas)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, validacion)
}

// RestablecerRequest exchanges a reset token for a new clave.
type RestablecerRequest struct {
	TokenRecuperacion string `json:"tokenRecuperacion"`
	Clave             string `json:"clave"`
}

// Restablecer consumes the reset token and stores the new clave.
func (h *AccesoHandlers) Restablecer(c echo.Context) error {
	var req RestablecerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	req.TokenRecuperacion = strings.TrimSpace(req.TokenRecuperacion)
	req.Clave = strings.TrimSpace(req.Clave)
	if req.TokenRecuperacion == "" || len(req.Clave) < minClaveLen || len(req.Clave) > maxClaveLen {
		return badRequest(c)
	}

	if err := h.acceso.RestablecerClave(c.Request().Context(), req.TokenRecuperacion, req.Clave); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
