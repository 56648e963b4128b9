// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"github.com/labstack/echo/v4"

	"github.com/fomag/convocatoria-backend/internal/handlers"
	"github.com/fomag/convocatoria-backend/internal/repository"
	"github.com/fomag/convocatoria-backend/internal/services/acceso"
	"github.com/fomag/convocatoria-backend/internal/services/token"
)

func setupRoutes(e *echo.Echo, repo *repository.Repository, accesoSvc *acceso.Service, tokens *token.Service) {
	h := handlers.New()
	e.GET("/health", h.Health)

	// Credential and recovery endpoints are anonymous: the caller is proving
	// identity here, not carrying it.
	accesoHandlers := handlers.NewAcceso(accesoSvc, tokens)
	g := e.Group("/api/acceso")
	g.GET("/estado", accesoHandlers.Estado)
	g.POST("/crear", accesoHandlers.Crear)
	g.POST("/login", accesoHandlers.Login)
	g.GET("/recuperacion/preguntas", accesoHandlers.Preguntas)
	g.POST("/recuperacion/validar", accesoHandlers.Validar)
	g.POST("/recuperacion/restablecer", accesoHandlers.Restablecer)

	// Representative reads/updates need a session; the recovery variant
	// authenticates with the reset token instead.
	repHandlers := handlers.NewRepresentante(repo, accesoSvc)
	r := e.Group("/api/representante")
	r.GET("", repHandlers.Obtener)
	r.PUT("", repHandlers.Actualizar)
	r.PUT("/recuperacion", repHandlers.ActualizarDesdeRecuperacion)
}
