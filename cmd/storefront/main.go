package main

import (
	"log"

	"github.com/sweetlavka/storefront/internal/config"
	"github.com/sweetlavka/storefront/internal/handler"
	"github.com/sweetlavka/storefront/internal/logger"
	"github.com/sweetlavka/storefront/internal/service"
	"github.com/sweetlavka/storefront/internal/session"
	"github.com/sweetlavka/storefront/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.GetConfig()

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}

	store, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}

	sessions := session.NewRegistry(cfg.Session)
	service := service.NewService(cfg.Service, store, sessions, zaplog)

	return handler.Serve(cfg.Handler, sessions, service, zaplog)
}
