// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fomag/convocatoria-backend/internal/config"
	"github.com/fomag/convocatoria-backend/internal/handlers"
	"github.com/fomag/convocatoria-backend/internal/repository"
	"github.com/fomag/convocatoria-backend/internal/services/acceso"
	"github.com/fomag/convocatoria-backend/internal/services/password"
	"github.com/fomag/convocatoria-backend/internal/services/token"
	"github.com/fomag/convocatoria-backend/internal/testutil"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		TokenDuration: 8 * time.Hour,
		ChallengeTTL:  15 * time.Minute,
		ResetTokenTTL: 30 * time.Minute,
		DecoyLimit:    10,
	}
}

func newTestAccesoHandlers(t *testing.T) (*handlers.AccesoHandlers, *acceso.Service, *repository.Repository) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	cfg := testAuthConfig()
	svc := acceso.NewService(repo, password.NewHasher(), nil, cfg)
	tokens, err := token.NewService(cfg)
	require.NoError(t, err)
	return handlers.NewAcceso(svc, tokens), svc, repo
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestEstadoHandler(t *testing.T) {
	h, svc, _ := newTestAccesoHandlers(t)
	e := echo.New()

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/acceso/estado?nit=900123456", nil)
	require.NoError(t, h.Estado(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data struct {
			NIT  string `json:"nit"`
			Modo string `json:"modo"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "900123456", body.Data.NIT)
	assert.Equal(t, "CREAR", body.Data.Modo)

	require.NoError(t, svc.CrearClave(context.Background(), "900123456", "secreta1"))

	c, rec = testutil.NewEchoContext(e, http.MethodGet, "/api/acceso/estado?nit=900123456", nil)
	require.NoError(t, h.Estado(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INGRESAR", body.Data.Modo)
}

func TestEstadoHandler_MissingNIT(t *testing.T) {
	h, _, _ := newTestAccesoHandlers(t)
	e := echo.New()

	c, _ := testutil.NewEchoContext(e, http.MethodGet, "/api/acceso/estado", nil)
	err := h.Estado(c)

	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestCrearHandler(t *testing.T) {
	h, _, _ := newTestAccesoHandlers(t)
	e := echo.New()

	body := strings.NewReader(`{"nit":"900123456","clave":"secreta1"}`)
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/crear", body)
	require.NoError(t, h.Crear(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// A second create for the same NIT conflicts.
	body = strings.NewReader(`{"nit":"900123456","clave":"otra-clave"}`)
	c, _ = testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/crear", body)
	err := h.Crear(c)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

func TestCrearHandler_ClaveTooShort(t *testing.T) {
	h, _, _ := newTestAccesoHandlers(t)
	e := echo.New()

	body := strings.NewReader(`{"nit":"900123456","clave":"abc"}`)
	c, _ := testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/crear", body)
	err := h.Crear(c)

	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestLoginHandler(t *testing.T) {
	h, svc, _ := newTestAccesoHandlers(t)
	e := echo.New()

	require.NoError(t, svc.CrearClave(context.Background(), "900123456", "secreta1"))

	body := strings.NewReader(`{"nit":"900123456","clave":"secreta1"}`)
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/login", body)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "900123456", resp.NIT)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginHandler_UnknownNITAndWrongClaveLookAlike(t *testing.T) {
	h, svc, _ := newTestAccesoHandlers(t)
	e := echo.New()

	require.NoError(t, svc.CrearClave(context.Background(), "900123456", "secreta1"))

	body := strings.NewReader(`{"nit":"900123456","clave":"equivocada"}`)
	c, _ := testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/login", body)
	wrongClave := h.Login(c)

	body = strings.NewReader(`{"nit":"999999999","clave":"secreta1"}`)
	c, _ = testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/login", body)
	unknownNIT := h.Login(c)

	var heWrong, heUnknown *echo.HTTPError
	require.ErrorAs(t, wrongClave, &heWrong)
	require.ErrorAs(t, unknownNIT, &heUnknown)
	assert.Equal(t, http.StatusUnauthorized, heWrong.Code)
	assert.Equal(t, heWrong.Code, heUnknown.Code)
	assert.Equal(t, heWrong.Message, heUnknown.Message)
}

func TestPreguntasHandler_UnknownNIT(t *testing.T) {
	h, _, _ := newTestAccesoHandlers(t)
	e := echo.New()

	c, _ := testutil.NewEchoContext(e, http.MethodGet, "/api/acceso/recuperacion/preguntas?nit=900123456", nil)
	err := h.Preguntas(c)

	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestRecoveryFlowThroughHandlers(t *testing.T) {
	h, svc, repo := newTestAccesoHandlers(t)
	e := echo.New()
	ctx := context.Background()

	testutil.NewTestProfile(t, repo, "900123456", "Maria Gomez", "maria@ips.example", "3001234567")
	require.NoError(t, svc.CrearClave(ctx, "900123456", "vieja-clave"))

	// Issue the challenge.
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/acceso/recuperacion/preguntas?nit=900123456", nil)
	require.NoError(t, h.Preguntas(c))
	var desafio acceso.RecuperacionPreguntas
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desafio))
	require.Len(t, desafio.Preguntas, 3)

	// Answer it.
	validarBody := fmt.Sprintf(`{
		"nit": "900123456",
		"desafioId": %q,
		"respuestas": {
			"representante": "Maria Gomez",
			"correo": "maria@ips.example",
			"celular": "3001234567"
		}
	}`, desafio.DesafioID)
	c, rec = testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/recuperacion/validar", strings.NewReader(validarBody))
	require.NoError(t, h.Validar(c))
	var validacion acceso.RecuperacionValidacion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &validacion))
	require.NotEmpty(t, validacion.TokenRecuperacion)
	assert.Equal(t, "Maria Gomez", validacion.Representante.RepresentanteLegal)

	// Reset the clave with the token.
	resetBody := fmt.Sprintf(`{"tokenRecuperacion": %q, "clave": "nueva-clave"}`, validacion.TokenRecuperacion)
	c, rec = testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/recuperacion/restablecer", strings.NewReader(resetBody))
	require.NoError(t, h.Restablecer(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The new clave works, the token does not work twice.
	assert.NoError(t, svc.ValidarIngreso(ctx, "900123456", "nueva-clave"))

	c, _ = testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/recuperacion/restablecer", strings.NewReader(resetBody))
	err := h.Restablecer(c)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestValidarHandler_WrongAnswers(t *testing.T) {
	h, _, repo := newTestAccesoHandlers(t)
	e := echo.New()

	testutil.NewTestProfile(t, repo, "900123456", "Maria Gomez", "maria@ips.example", "3001234567")

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/acceso/recuperacion/preguntas?nit=900123456", nil)
	require.NoError(t, h.Preguntas(c))
	var desafio acceso.RecuperacionPreguntas
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desafio))

	body := fmt.Sprintf(`{
		"nit": "900123456",
		"desafioId": %q,
		"respuestas": {"representante": "Carlos Ruiz", "correo": "x", "celular": "y"}
	}`, desafio.DesafioID)
	c, _ = testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/recuperacion/validar", strings.NewReader(body))
	err := h.Validar(c)

	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestRestablecerHandler_UnknownToken(t *testing.T) {
	h, _, _ := newTestAccesoHandlers(t)
	e := echo.New()

	body := strings.NewReader(`{"tokenRecuperacion":"no-such-token","clave":"nueva-clave"}`)
	c, _ := testutil.NewEchoContext(e, http.MethodPost, "/api/acceso/recuperacion/restablecer", body)
	err := h.Restablecer(c)

	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestHealthHandler(t *testing.T) {
	h := handlers.New()
	e := echo.New()

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/health", nil)
	require.NoError(t, h.Health(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
