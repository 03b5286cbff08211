package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/arcadebit/tictactoe-server/internal/config"
	"github.com/arcadebit/tictactoe-server/internal/repository"
	"github.com/arcadebit/tictactoe-server/internal/repository/storage"
	"github.com/arcadebit/tictactoe-server/internal/server"
	"github.com/arcadebit/tictactoe-server/internal/service"
)

// RunApp - wires the storage backend, auth service, and TCP server
// together and runs until a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	userRepo, cleanup, err := buildUserRepository(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not open user store: %w", err)
	}

	defer func() {
		if err = cleanup(); err != nil {
			log.Error("could not close user store", "error", err)
		}
	}()

	auth := service.NewAuthService(userRepo, service.NewBcryptHasher())

	gameServer := server.New(logger, auth)

	log.Info("Starting game server", "port", conf.Port)

	if err = gameServer.Start(ctx, conf.Port); err != nil {
		return fmt.Errorf("game server error: %w", err)
	}

	return nil
}

// buildUserRepository - selects the user store backend from config: a
// flat JSON file or Redis.
func buildUserRepository(ctx context.Context, conf *config.Config) (repository.UserRepository, func() error, error) {
	noop := func() error { return nil }

	switch conf.Storage.Type {
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Storage.Redis.GetRedisAddr())
		if err != nil {
			return nil, noop, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisUserRepository(redisStorage.Connection), redisStorage.Close, nil
	case config.StorageFile:
		userRepo, err := repository.NewFileUserRepository(conf.UserDatabase)
		if err != nil {
			return nil, noop, err
		}

		return userRepo, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage type: %q", conf.Storage.Type)
	}
}
