package config

import (
	"flag"
	"os"

	handlerConfig "github.com/sweetlavka/storefront/internal/handler/config"
	loggerConfig "github.com/sweetlavka/storefront/internal/logger/config"
	serviceConfig "github.com/sweetlavka/storefront/internal/service/config"
	sessionConfig "github.com/sweetlavka/storefront/internal/session/config"
	storeConfig "github.com/sweetlavka/storefront/internal/store/config"
)

type Config struct {
	Handler handlerConfig.Config
	Service serviceConfig.Config
	Store   storeConfig.Config
	Logger  loggerConfig.Config
	Session sessionConfig.Config
}

// GetConfig читает флаги запуска, переменные окружения важнее флагов.
// Вызывается один раз при старте.
func GetConfig() Config {
	var cfg Config

	flag.StringVar(&cfg.Handler.ServerAddr, "a", ":8080", "адрес запуска сервера")
	flag.StringVar(&cfg.Store.DBDsn, "d", "", "строка подключения к базе данных")
	flag.StringVar(&cfg.Service.FulfillmentAddr, "f", "", "адрес службы исполнения заказов")
	flag.StringVar(&cfg.Logger.LogLevel, "l", "info", "уровень логирования")
	flag.StringVar(&cfg.Session.TokenSecret, "s", "karamelka", "ключ подписи cookie сессии")
	flag.Parse()

	if v := os.Getenv("RUN_ADDRESS"); v != "" {
		cfg.Handler.ServerAddr = v
	}
	if v := os.Getenv("DATABASE_URI"); v != "" {
		cfg.Store.DBDsn = v
	}
	if v := os.Getenv("FULFILLMENT_ADDRESS"); v != "" {
		cfg.Service.FulfillmentAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logger.LogLevel = v
	}
	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		cfg.Session.TokenSecret = v
	}

	return cfg
}
