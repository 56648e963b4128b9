// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fomag/convocatoria-backend/internal/repository"
	"github.com/fomag/convocatoria-backend/internal/testutil"
)

func TestLatestProfileByNIT(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.NewTestProfile(t, repo, "900123456", "Maria Gomez", "maria@ips.example", "3001234567")

	profile, err := repo.LatestProfileByNIT(ctx, "900123456")

	require.NoError(t, err)
	assert.Equal(t, "900123456", profile.NIT)
	assert.Equal(t, "Maria Gomez", profile.RepresentanteLegal.String)
	assert.Equal(t, "maria@ips.example", profile.CorreoRepresentante.String)
}

func TestLatestProfileByNIT_TrimsStoredNIT(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.NewTestProfile(t, repo, "  900123456  ", "Maria Gomez", "maria@ips.example", "3001234567")

	profile, err := repo.LatestProfileByNIT(ctx, "900123456")

	require.NoError(t, err)
	assert.Equal(t, "Maria Gomez", profile.RepresentanteLegal.String)
}

func TestLatestProfileByNIT_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.LatestProfileByNIT(context.Background(), "900123456")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFieldDecoys(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.NewTestProfile(t, repo, "900000001", "Maria Gomez", "maria@ips.example", "3000000001")
	testutil.NewTestProfile(t, repo, "900000002", "Carlos Ruiz", "carlos@ips.example", "3000000002")
	testutil.NewTestProfile(t, repo, "900000003", "Ana Torres", "ana@ips.example", "3000000003")

	decoys, err := repo.FieldDecoys(ctx, "representante", "Maria Gomez", 10)

	require.NoError(t, err)
	assert.Len(t, decoys, 2)
	assert.NotContains(t, decoys, "Maria Gomez")
	assert.ElementsMatch(t, []string{"Carlos Ruiz", "Ana Torres"}, decoys)
}

func TestFieldDecoys_ExcludesCaseVariants(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.NewTestProfile(t, repo, "900000001", "MARIA GOMEZ", "a@ips.example", "3000000001")
	testutil.NewTestProfile(t, repo, "900000002", "Carlos Ruiz", "b@ips.example", "3000000002")

	decoys, err := repo.FieldDecoys(ctx, "representante", "Maria Gomez", 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"Carlos Ruiz"}, decoys)
}

func TestFieldDecoys_RespectsLimit(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	for i := range 8 {
		nit := string(rune('1' + i))
		testutil.NewTestProfile(t, repo, "90000000"+nit, "Rep "+nit, "r"+nit+"@ips.example", "300000000"+nit)
	}

	decoys, err := repo.FieldDecoys(ctx, "correo", "noexiste@ips.example", 5)

	require.NoError(t, err)
	assert.Len(t, decoys, 5)
}

func TestFieldDecoys_UnknownField(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.FieldDecoys(context.Background(), "clave", "", 5)

	assert.Error(t, err)
}

func TestUpdateRepresentanteBasico(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.NewTestProfile(t, repo, "900123456", "Maria Gomez", "maria@ips.example", "3001234567")
	testutil.NewTestProfile(t, repo, "900123456", "Maria Gomez", "maria@ips.example", "3001234567")

	err := repo.UpdateRepresentanteBasico(ctx, "900123456", "Carlos Ruiz", "carlos@ips.example", "3009999999", "admin2@ips.example")
	require.NoError(t, err)

	// Every row of the NIT is overwritten, so the latest reflects the change.
	profile, err := repo.LatestProfileByNIT(ctx, "900123456")
	require.NoError(t, err)
	assert.Equal(t, "Carlos Ruiz", profile.RepresentanteLegal.String)
	assert.Equal(t, "carlos@ips.example", profile.CorreoRepresentante.String)
	assert.Equal(t, "3009999999", profile.CelularRepresentante.String)
	assert.Equal(t, "admin2@ips.example", profile.CorreoAdmin.String)
}

func TestUpdateRepresentante(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	profile := testutil.NewTestProfile(t, repo, "900123456", "Maria Gomez", "maria@ips.example", "3001234567")

	profile.RepresentanteLegal = testutil.NullString("Carlos Ruiz")
	profile.TelefonoFijo = testutil.NullString("6015551234")
	err := repo.UpdateRepresentante(ctx, profile)
	require.NoError(t, err)

	got, err := repo.LatestProfileByNIT(ctx, "900123456")
	require.NoError(t, err)
	assert.Equal(t, "Carlos Ruiz", got.RepresentanteLegal.String)
	assert.Equal(t, "6015551234", got.TelefonoFijo.String)
}
