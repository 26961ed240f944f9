package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/cli"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/config"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/database"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewNop()
	if cfg.Debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.StatePath)
	if err != nil {
		log.Fatal(err)
	}
	store, err := session.NewStore(db)
	if err != nil {
		log.Fatal(err)
	}

	gw := gateway.New(cfg.BaseURL, store, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
	app := cli.New(cfg, logger, store, gw, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "parkcli:", err)
		os.Exit(1)
	}
}
