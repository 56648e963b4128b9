// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains all HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers contains the handlers that are not tied to a service.
type Handlers struct{}

// New creates a new Handlers instance.
func New() *Handlers {
	return &Handlers{}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// envelope wraps a payload in the {"data": ...} response shape the Angular
// client expects for estado and representante reads.
func envelope(data any) map[string]any {
	return map[string]any{"data": data}
}
