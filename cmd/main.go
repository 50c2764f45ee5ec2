// Package main starts the paper trading API server.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-petr/paper-trade/cmd/httpserver"
	"github.com/go-petr/paper-trade/internal/middleware"
	"github.com/go-petr/paper-trade/pkg/configpkg"
	"github.com/go-petr/paper-trade/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err = dbpkg.Migrate(config.DBSource, config.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("cannot migrate database schema")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("PAPER TRADE API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
