package main

import (
	"github.com/wiseman/studentrecords/internal/pkg/logger"
	"github.com/wiseman/studentrecords/internal/server"
)

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server exited with error")
	}
}
