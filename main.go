// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/hms-portal/auth"
	"github.com/ariebrainware/hms-portal/config"
	"github.com/ariebrainware/hms-portal/endpoint"
	"github.com/ariebrainware/hms-portal/middleware"
	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/ariebrainware/hms-portal/scheduler"
	"github.com/ariebrainware/hms-portal/store"
	"github.com/ariebrainware/hms-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-portal",
		Short: "Hospital management portal API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(resetCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the store with default records unless already initialized",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := setup()
			if err := requirePersistentStore(cfg); err != nil {
				return err
			}
			s, db, err := openStore(logger)
			if err != nil {
				return err
			}
			defer closeAll(s, db)

			seeded, err := store.Initialize(cmd.Context(), s, time.Now())
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			if seeded {
				fmt.Println("Store seeded with default records.")
			} else {
				fmt.Println("Store already initialized, nothing to do.")
			}
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe every collection and reseed the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return errors.New("refusing to wipe the store without --yes")
			}
			cfg, logger := setup()
			if err := requirePersistentStore(cfg); err != nil {
				return err
			}
			s, db, err := openStore(logger)
			if err != nil {
				return err
			}
			defer closeAll(s, db)

			if err := store.Reset(cmd.Context(), s, time.Now()); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}
			fmt.Println("Store reset to default records.")
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "Confirm wiping all stored records")
	return cmd
}

// setup loads configuration and installs the process-wide loggers.
func setup() (*config.Config, zerolog.Logger) {
	cfg := config.LoadConfig()
	logger := util.NewLogger(cfg.LogLevel, cfg.LogPretty)
	log.Logger = logger
	util.SetSecurityLogger(logger)
	return cfg, logger
}

// requirePersistentStore rejects commands whose effect would vanish with the
// process, as the memory store does.
func requirePersistentStore(cfg *config.Config) error {
	if cfg.StoreDriver == "" || cfg.StoreDriver == "memory" {
		return fmt.Errorf("STORE_DRIVER=%q keeps data in process memory; use redis or sql", cfg.StoreDriver)
	}
	return nil
}

// openStore connects the optional SQL database and opens the configured
// store. The database is only mandatory for STORE_DRIVER=sql.
func openStore(logger zerolog.Logger) (store.Store, *gorm.DB, error) {
	cfg := config.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		if cfg.StoreDriver == "sql" {
			return nil, nil, fmt.Errorf("error connecting to database: %w", err)
		}
		logger.Warn().Err(err).Msg("database unavailable, security events will not be persisted")
		db = nil
	}
	if db != nil {
		if err := db.AutoMigrate(&model.SecurityLog{}); err != nil {
			logger.Warn().Err(err).Msg("security log migration failed")
		} else {
			util.SetSecurityLoggerDB(db)
		}
	}

	s, err := config.OpenStore(db)
	if err != nil {
		return nil, db, err
	}
	logger.Info().Str("driver", cfg.StoreDriver).Msg("store opened")
	return s, db, nil
}

func closeAll(s store.Store, db *gorm.DB) {
	if s != nil {
		_ = s.Close()
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func runServer() error {
	cfg, logger := setup()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := util.InitGeoIP(cfg.GeoIPDBPath); err != nil {
		logger.Warn().Err(err).Msg("geoip database not loaded")
	}
	defer util.CloseGeoIP()

	if _, err := config.ConnectRedis(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, login rate limiting disabled")
	}

	s, db, err := openStore(logger)
	if err != nil {
		return err
	}
	defer closeAll(s, db)

	ctx := context.Background()
	repo := repository.New(s, logger)
	if err := repo.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	svc := auth.NewService(repo, logger, cfg.SessionTTL)

	sched := scheduler.New(logger)
	if err := sched.AddSessionPurge(cfg.SessionPurgeSchedule, svc); err != nil {
		return err
	}
	sched.Start()

	gin.SetMode(cfg.GinMode)
	router := endpoint.NewRouter(endpoint.RouterConfig{
		AppName:     cfg.AppName,
		Repo:        repo,
		Auth:        svc,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   middleware.RateLimitConfig{Limit: cfg.LoginRateLimit, Window: cfg.LoginRateWindow},
		Latency:     cfg.SimulatedLatency,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("error starting server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	hits, misses, size := util.GetGeoIPCacheMetrics()
	logger.Info().Int64("geoip_hits", hits).Int64("geoip_misses", misses).Int("geoip_cached", size).Msg("server stopped")
	return nil
}
