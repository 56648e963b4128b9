// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package acceso

import (
	"context"
	"math/rand/v2"
)

// Pregunta is one recovery question with its shuffled answer options.
type Pregunta struct {
	ID       string   `json:"id"`
	Texto    string   `json:"texto"`
	Opciones []string `json:"opciones"`
}

// question prompts are fixed; the portal UI is Spanish-only.
var questionPrompts = []struct {
	id    string
	texto string
}{
	{"representante", "¿Quién es el representante legal?"},
	{"correo", "¿Cuál es el correo del representante?"},
	{"celular", "¿Cuál es el celular del representante?"},
}

// decoySource samples plausible wrong answers from other providers' rows.
type decoySource interface {
	FieldDecoys(ctx context.Context, fieldID, exclude string, limit int) ([]string, error)
}

// buildOptions assembles the option list for one field: up to limit decoys
// from other providers, the true value appended, duplicates collapsed, order
// shuffled. The true value always appears exactly once, so the list never
// comes back empty.
func buildOptions(ctx context.Context, src decoySource, fieldID, correct string, limit int) ([]string, error) {
	decoys, err := src.FieldDecoys(ctx, fieldID, correct, limit)
	if err != nil {
		return nil, err
	}

	options := make([]string, 0, len(decoys)+1)
	seen := make(map[string]struct{}, len(decoys)+1)
	for _, v := range append(decoys, correct) {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		options = append(options, v)
	}

	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options, nil
}
