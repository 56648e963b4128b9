// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fomag/convocatoria-backend/internal/auth"
)

func TestNIT(t *testing.T) {
	ctx := auth.WithNIT(context.Background(), "900123456")

	assert.Equal(t, "900123456", auth.NIT(ctx))
	assert.True(t, auth.IsAuthenticated(ctx))
}

func TestNIT_Absent(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, auth.NIT(ctx))
	assert.False(t, auth.IsAuthenticated(ctx))
}
