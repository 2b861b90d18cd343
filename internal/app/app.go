package app

import (
	"fmt"
	"net/http"

	"github.com/spreadpool/against-the-spread/internal/config"
	"github.com/spreadpool/against-the-spread/internal/domain/lines"
	"github.com/spreadpool/against-the-spread/internal/infrastructure/repository/blob"
	"github.com/spreadpool/against-the-spread/internal/infrastructure/repository/memory"
	"github.com/spreadpool/against-the-spread/internal/interfaces/httpapi"
	"github.com/spreadpool/against-the-spread/internal/platform/logging"
	"github.com/spreadpool/against-the-spread/internal/usecase"
)

// NewHTTPServer wires repositories, services and the router into a ready to
// run server. An empty storage connection string selects the in-memory
// repository, used for local development and tests.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	linesRepo, err := newLinesRepository(cfg, logger)
	if err != nil {
		return nil, err
	}

	linesSvc := usecase.NewLinesService(linesRepo, logger)
	picksSvc := usecase.NewPicksService(logger)

	handler := httpapi.NewHandler(linesSvc, picksSvc, cfg.UploadMaxBytes, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminUploadToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func newLinesRepository(cfg config.Config, logger *logging.Logger) (lines.Repository, error) {
	if cfg.StorageConnectionString == "" {
		logger.Info("using in-memory lines repository", "reason", "STORAGE_CONNECTION_STRING empty")
		return memory.NewLinesRepository(), nil
	}

	repo, err := blob.NewLinesRepository(cfg.StorageConnectionString, cfg.StorageContainer)
	if err != nil {
		return nil, fmt.Errorf("init blob lines repository: %w", err)
	}
	logger.Info("using blob lines repository", "container", cfg.StorageContainer)

	return repo, nil
}
