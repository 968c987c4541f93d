package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/mvasiljevs/commhub/internal/buildinfo"
	"github.com/mvasiljevs/commhub/internal/client/cli"
	"github.com/mvasiljevs/commhub/internal/client/config"
	"github.com/mvasiljevs/commhub/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := logging.NewSlogLogger(slog.New(handler))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
