package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iliyamo/bike-catalog-admin/internal/auth"
	"github.com/iliyamo/bike-catalog-admin/internal/config"
	"github.com/iliyamo/bike-catalog-admin/internal/database"
	"github.com/iliyamo/bike-catalog-admin/internal/handler"
	"github.com/iliyamo/bike-catalog-admin/internal/queue"
	"github.com/iliyamo/bike-catalog-admin/internal/repository"
	"github.com/iliyamo/bike-catalog-admin/internal/router"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")
	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.Algorithm, time.Duration(cfg.AccessTTLMin)*time.Minute)
	if err != nil {
		return err
	}
	admins := repository.NewAdminRepo(db)
	authenticator, err := auth.NewAuthenticator(admins, auth.NewHasher(cfg.BcryptCost), tokens)
	if err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.Cache.Enabled {
		if rdb = config.NewRedisClient(ctx, cfg.Redis); rdb == nil {
			logrus.WithField("addr", cfg.Redis.Addr).Warn("redis unreachable; catalog cache disabled")
		} else {
			defer rdb.Close()
		}
	}

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.Events.Enabled {
		events = queue.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Queue)
	}

	e := router.New(router.Deps{
		Gate: auth.NewGate(tokens, admins),
		Auth: handler.NewAuthHandler(authenticator),
		Catalog: handler.NewCatalogHandler(
			repository.NewProductTypeRepo(db),
			repository.NewPartCategoryRepo(db),
			repository.NewPartOptionRepo(db),
			events,
		),
		Cache: cfg.Cache,
		Redis: rdb,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
