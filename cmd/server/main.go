// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fomag/convocatoria-backend/internal/config"
	"github.com/fomag/convocatoria-backend/internal/server"
)

func main() {
	cmd := &cli.Command{
		Name:   "convocatoria-backend",
		Usage:  "Start the provider registration portal backend",
		Flags:  config.Flags(),
		Action: server.Run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
