// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fomag/convocatoria-backend/internal/i18n"
	"github.com/fomag/convocatoria-backend/internal/services/acceso"
)

// serviceError maps a service sentinel to its HTTP status and localized
// message. Unrecognized errors become an opaque 500; the details go to the
// log only.
func serviceError(c echo.Context, err error) error {
	ctx := c.Request().Context()

	switch {
	case errors.Is(err, acceso.ErrClaveExists):
		return echo.NewHTTPError(http.StatusConflict, i18n.T(ctx, "error_clave_exists"))
	case errors.Is(err, acceso.ErrClaveIncorrecta):
		return echo.NewHTTPError(http.StatusUnauthorized, i18n.T(ctx, "error_clave_incorrecta"))
	case errors.Is(err, acceso.ErrNITNotFound):
		return echo.NewHTTPError(http.StatusNotFound, i18n.T(ctx, "error_nit_no_encontrado"))
	case errors.Is(err, acceso.ErrDesafioInvalido):
		return echo.NewHTTPError(http.StatusUnauthorized, i18n.T(ctx, "error_desafio_invalido"))
	case errors.Is(err, acceso.ErrRespuestasIncorrectas):
		return echo.NewHTTPError(http.StatusUnauthorized, i18n.T(ctx, "error_respuestas_incorrectas"))
	case errors.Is(err, acceso.ErrTokenInvalido):
		return echo.NewHTTPError(http.StatusUnauthorized, i18n.T(ctx, "error_token_recuperacion_invalido"))
	default:
		slog.Error("unhandled service error", "error", err, "uri", c.Request().RequestURI)
		return echo.NewHTTPError(http.StatusInternalServerError, i18n.T(ctx, "error_interno"))
	}
}

// badRequest returns a localized 400.
func badRequest(c echo.Context) error {
	return echo.NewHTTPError(http.StatusBadRequest, i18n.T(c.Request().Context(), "error_solicitud_invalida"))
}

// unauthenticated returns a localized 401 for routes that require a
// principal.
func unauthenticated(c echo.Context) error {
	return echo.NewHTTPError(http.StatusUnauthorized, i18n.T(c.Request().Context(), "error_no_autenticado"))
}
