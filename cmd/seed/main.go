package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"star-catalog-api/internal/config"
	"star-catalog-api/internal/database"
	"star-catalog-api/internal/logger"
	"star-catalog-api/internal/repository"
	"star-catalog-api/internal/service"
)

// seed populates the database outside the API: test users with a fixed
// password, and the people/planets catalog imported from SWAPI.
func main() {
	users := flag.Int("users", 0, "number of test users to create")
	catalog := flag.Bool("catalog", false, "import people and planets from SWAPI")
	flag.Parse()

	logHandler := logger.NewPrettyHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	if *users <= 0 && !*catalog {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), *users, *catalog); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, users int, catalog bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	if users > 0 {
		userRepo := repository.NewUserRepository(db.Pool)
		tokenRepo := repository.NewTokenRepository(db.Pool)
		authService, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, userRepo, tokenRepo)
		if err != nil {
			return err
		}

		for i := 1; i <= users; i++ {
			email := fmt.Sprintf("test_user%d@test.com", i)
			user, err := authService.Register(ctx, email, "123456")
			if err != nil {
				return fmt.Errorf("create %s: %w", email, err)
			}
			slog.Info("user created", "id", user.ID, "email", user.Email)
		}
	}

	if catalog {
		catalogRepo := repository.NewCatalogRepository(db.Pool)
		catalogService := service.NewCatalogService(catalogRepo, cfg.SWAPIBaseURL)
		if err := catalogService.ImportFromSWAPI(ctx); err != nil {
			return fmt.Errorf("import catalog: %w", err)
		}
	}

	return nil
}
