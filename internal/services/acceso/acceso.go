// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package acceso owns the credential lifecycle of the provider portal:
// password creation and login, the knowledge-based recovery flow with decoy
// options, and the single-use reset tokens it hands out.
package acceso

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fomag/convocatoria-backend/internal/config"
	"github.com/fomag/convocatoria-backend/internal/models"
	"github.com/fomag/convocatoria-backend/internal/repository"
)

// Access modes reported by Estado.
const (
	ModoCrear    = "CREAR"
	ModoIngresar = "INGRESAR"
)

var (
	// ErrClaveExists is returned when a credential already exists for the NIT.
	ErrClaveExists = errors.New("ya existe una clave para este NIT")
	// ErrClaveIncorrecta is returned for a failed login. The message is the
	// same whether the NIT is unknown or the clave is wrong.
	ErrClaveIncorrecta = errors.New("clave incorrecta")
	// ErrNITNotFound is returned when no registration profile exists to build
	// a recovery challenge from.
	ErrNITNotFound = errors.New("NIT no encontrado")
	// ErrDesafioInvalido covers an unknown, expired, or foreign challenge.
	ErrDesafioInvalido = errors.New("desafío inválido o expirado")
	// ErrRespuestasIncorrectas is returned when any submitted answer does not
	// match the on-file value.
	ErrRespuestasIncorrectas = errors.New("respuestas incorrectas")
	// ErrTokenInvalido is returned for an unknown, expired, or already
	// consumed reset token.
	ErrTokenInvalido = errors.New("token de recuperación inválido")
)

// Store is the durable collaborator: credentials plus the registration
// profiles the recovery questions are built from.
type Store interface {
	CredentialExists(ctx context.Context, nit string) (bool, error)
	GetCredential(ctx context.Context, nit string) (*models.Credential, error)
	CreateCredential(ctx context.Context, nit, hash string) error
	UpsertCredential(ctx context.Context, nit, hash string) error
	LatestProfileByNIT(ctx context.Context, nit string) (*models.ProviderProfile, error)
	FieldDecoys(ctx context.Context, fieldID, exclude string, limit int) ([]string, error)
}

// Hasher is the one-way salted hashing primitive for claves.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Notifier is told after a successful password reset. Implementations must
// not block the reset on delivery problems.
type Notifier interface {
	ClaveRestablecida(ctx context.Context, nit string, correos []string)
}

// Service coordinates the credential and recovery operations.
type Service struct { //nolint:govet // fieldalignment not critical
	store      Store
	hasher     Hasher
	notifier   Notifier
	challenges *challengeRegistry
	resets     *resetTokenRegistry
	cfg        *config.AuthConfig
}

// NewService creates the acceso coordinator. notifier may be nil.
func NewService(store Store, hasher Hasher, notifier Notifier, cfg *config.AuthConfig) *Service {
	return &Service{
		store:      store,
		hasher:     hasher,
		notifier:   notifier,
		challenges: newChallengeRegistry(),
		resets:     newResetTokenRegistry(),
		cfg:        cfg,
	}
}

// EstadoAcceso tells the client whether the NIT must create a clave or can
// log in.
type EstadoAcceso struct {
	NIT  string `json:"nit"`
	Modo string `json:"modo"`
}

// Estado reports the access mode for a NIT. Pure read, no side effect.
func (s *Service) Estado(ctx context.Context, nit string) (*EstadoAcceso, error) {
	exists, err := s.store.CredentialExists(ctx, nit)
	if err != nil {
		return nil, fmt.Errorf("checking credential: %w", err)
	}
	modo := ModoCrear
	if exists {
		modo = ModoIngresar
	}
	return &EstadoAcceso{NIT: nit, Modo: modo}, nil
}

// CrearClave hashes and persists the first clave for a NIT. A second call for
// the same NIT always fails with ErrClaveExists; the store's uniqueness
// constraint resolves concurrent first calls.
func (s *Service) CrearClave(ctx context.Context, nit, clave string) error {
	hash, err := s.hasher.Hash(clave)
	if err != nil {
		return fmt.Errorf("hashing clave: %w", err)
	}
	if err := s.store.CreateCredential(ctx, nit, hash); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrClaveExists
		}
		return fmt.Errorf("storing credential: %w", err)
	}
	return nil
}

// ValidarIngreso checks a login attempt. Unknown NIT and wrong clave fail
// identically so callers cannot enumerate registered NITs.
func (s *Service) ValidarIngreso(ctx context.Context, nit, clave string) error {
	cred, err := s.store.GetCredential(ctx, nit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClaveIncorrecta
		}
		return fmt.Errorf("loading credential: %w", err)
	}
	if !s.hasher.Verify(clave, cred.Clave) {
		return ErrClaveIncorrecta
	}
	return nil
}

// RecuperacionPreguntas is the issued challenge: an opaque id plus the three
// questions with shuffled options.
type RecuperacionPreguntas struct {
	DesafioID string     `json:"desafioId"`
	Preguntas []Pregunta `json:"preguntas"`
}

// ObtenerPreguntas builds a recovery challenge from the newest registration
// profile of the NIT and registers it with a fresh expiry.
func (s *Service) ObtenerPreguntas(ctx context.Context, nit string) (*RecuperacionPreguntas, error) {
	profile, err := s.store.LatestProfileByNIT(ctx, nit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNITNotFound
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	c := &challenge{
		NIT:           nit,
		Representante: safe(profile.RepresentanteLegal),
		Correo:        safe(profile.CorreoRepresentante),
		Celular:       safe(profile.CelularRepresentante),
		CorreoAdmin:   safe(profile.CorreoAdmin),
		ExpiresAt:     time.Now().Add(s.cfg.ChallengeTTL),
	}

	correct := map[string]string{
		"representante": c.Representante,
		"correo":        c.Correo,
		"celular":       c.Celular,
	}

	preguntas := make([]Pregunta, 0, len(questionPrompts))
	for _, p := range questionPrompts {
		opciones, err := buildOptions(ctx, s.store, p.id, correct[p.id], s.cfg.DecoyLimit)
		if err != nil {
			return nil, fmt.Errorf("building options for %s: %w", p.id, err)
		}
		preguntas = append(preguntas, Pregunta{ID: p.id, Texto: p.texto, Opciones: opciones})
	}

	desafioID := uuid.New().String()
	s.challenges.put(desafioID, c)

	return &RecuperacionPreguntas{DesafioID: desafioID, Preguntas: preguntas}, nil
}

// DatosRepresentante is the profile snapshot captured at challenge time.
type DatosRepresentante struct {
	RepresentanteLegal   string `json:"representanteLegal"`
	CorreoRepresentante  string `json:"correoRepresentante"`
	CelularRepresentante string `json:"celularRepresentante"`
	CorreoAdmin          string `json:"correoAdmin"`
}

// RecuperacionValidacion is returned on a fully correct answer set.
type RecuperacionValidacion struct {
	TokenRecuperacion string             `json:"tokenRecuperacion"`
	Representante     DatosRepresentante `json:"representante"`
}

// ValidarPreguntas checks the submitted answers against the challenge
// snapshot. All three must match after trimming and case folding; any
// mismatch, an expired or unknown challenge, or a challenge issued for a
// different NIT fails. On success the challenge is discarded and a single-use
// reset token is issued.
func (s *Service) ValidarPreguntas(ctx context.Context, nit, desafioID string, respuestas map[string]string) (*RecuperacionValidacion, error) {
	c, ok := s.challenges.get(desafioID)
	if !ok || c.NIT != nit {
		return nil, ErrDesafioInvalido
	}

	if !match(respuestas["representante"], c.Representante) ||
		!match(respuestas["correo"], c.Correo) ||
		!match(respuestas["celular"], c.Celular) {
		return nil, ErrRespuestasIncorrectas
	}

	s.challenges.remove(desafioID)

	token := uuid.New().String()
	s.resets.put(token, nit, s.cfg.ResetTokenTTL)

	return &RecuperacionValidacion{
		TokenRecuperacion: token,
		Representante: DatosRepresentante{
			RepresentanteLegal:   c.Representante,
			CorreoRepresentante:  c.Correo,
			CelularRepresentante: c.Celular,
			CorreoAdmin:          c.CorreoAdmin,
		},
	}, nil
}

// RestablecerClave consumes a reset token and upserts the credential with the
// new clave. The token is removed atomically on lookup, so a concurrent
// second use always fails.
func (s *Service) RestablecerClave(ctx context.Context, tokenRecuperacion, clave string) error {
	nit, ok := s.resets.consume(tokenRecuperacion)
	if !ok {
		return ErrTokenInvalido
	}

	hash, err := s.hasher.Hash(clave)
	if err != nil {
		return fmt.Errorf("hashing clave: %w", err)
	}
	if err := s.store.UpsertCredential(ctx, nit, hash); err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}

	s.notifyReset(ctx, nit)
	return nil
}

// ValidarTokenRecuperacion is a non-consuming peek used by the
// profile-update-during-recovery flow. The token stays valid for the
// subsequent RestablecerClave call.
func (s *Service) ValidarTokenRecuperacion(tokenRecuperacion string) (string, error) {
	nit, ok := s.resets.peek(tokenRecuperacion)
	if !ok {
		return "", ErrTokenInvalido
	}
	return nit, nil
}

// notifyReset tells the representative (and admin, when distinct) that the
// clave was changed. Delivery problems never fail the reset.
func (s *Service) notifyReset(ctx context.Context, nit string) {
	if s.notifier == nil {
		return
	}
	profile, err := s.store.LatestProfileByNIT(ctx, nit)
	if err != nil {
		slog.Warn("skipping reset notification, profile unavailable", "nit", nit, "error", err)
		return
	}

	var correos []string
	if c := safe(profile.CorreoRepresentante); c != "" {
		correos = append(correos, c)
	}
	if c := safe(profile.CorreoAdmin); c != "" && !strings.EqualFold(c, safe(profile.CorreoRepresentante)) {
		correos = append(correos, c)
	}
	if len(correos) == 0 {
		return
	}
	s.notifier.ClaveRestablecida(ctx, nit, correos)
}

// match compares a submitted answer with the on-file value: both sides
// trimmed, case-insensitive. An empty on-file value matches only an empty
// submission.
func match(respuesta, correcta string) bool {
	return strings.EqualFold(strings.TrimSpace(respuesta), strings.TrimSpace(correcta))
}

func safe(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return strings.TrimSpace(v.String)
}
