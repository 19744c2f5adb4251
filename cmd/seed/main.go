package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"feedsvc/internal/auth"
	"feedsvc/internal/config"
	"feedsvc/internal/logging"
	"feedsvc/internal/repository"
	"feedsvc/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var fixturePath string

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Load users and posts from a JSON fixture",
		Long:         `Creates the users and posts listed in a fixture file through the service layer. Users that already exist are skipped.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), fixturePath)
		},
	}
	cmd.Flags().StringVarP(&fixturePath, "file", "f", "seed.json", "path to the fixture file")
	return cmd
}

func run(ctx context.Context, fixturePath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := logging.New(cfg.ServiceName+"-seed", cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	fx, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}

	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store init: %w", err)
	}
	defer func() { _ = stores.Close(context.Background()) }()

	hasher := auth.NewPasswordHasher(auth.DefaultCost)
	users := service.NewUserService(stores.Users, hasher, nil, cfg.CacheTTL)
	posts := service.NewPostService(stores.Posts, stores.Users, nil, cfg.CacheTTL)

	res, err := seed(ctx, fx, users, posts, logger)
	if err != nil {
		return err
	}
	logger.Info("seed completed",
		zap.Int("users_created", res.UsersCreated),
		zap.Int("users_skipped", res.UsersSkipped),
		zap.Int("posts_created", res.PostsCreated),
	)
	return nil
}
