package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-scheduler/internal/config"
	"github.com/iliyamo/cinema-scheduler/internal/handler"
	"github.com/iliyamo/cinema-scheduler/internal/logger"
	"github.com/iliyamo/cinema-scheduler/internal/middleware"
	"github.com/iliyamo/cinema-scheduler/internal/queue"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/router"
	"github.com/iliyamo/cinema-scheduler/internal/service"
	"github.com/iliyamo/cinema-scheduler/internal/validator"
)

// ServeOptions holds the serve flags.  Empty values fall back to the
// environment.
type ServeOptions struct {
	Port             string
	SchedulingConfig string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Port, "port", "p", "", "HTTP port (default $APP_PORT or 8080)")
	cmd.Flags().StringVar(&opts.SchedulingConfig, "scheduling-config", "", "YAML file with opening hours and retry settings (default $SCHEDULING_CONFIG)")
	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg := config.Load()
	if opts.Port != "" {
		cfg.Port = opts.Port
	}
	if opts.SchedulingConfig != "" {
		cfg.SchedulingFile = opts.SchedulingConfig
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sched, err := config.LoadScheduling(cfg.SchedulingFile)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it rate limiting and caching are skipped.
	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		log.Warn("redis unavailable; rate limiting and caching disabled", zap.Error(err))
	} else {
		defer func() { _ = rdb.Close() }()
	}

	movies := repository.NewMovieRepo()
	rooms := repository.NewRoomRepo()
	shows := repository.NewShowRepo()

	svcOpts := []service.Option{service.WithLogger(log)}
	if cfg.EventsEnabled {
		svcOpts = append(svcOpts, service.WithNotifier(service.NewAMQPPublisher(cfg.AMQPURL, log)))
	}
	svc := service.NewSchedulingService(movies, rooms, shows,
		validator.Default(shows, sched.Hours), sched.MaxRetries, svcOpts...)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log))

	router.RegisterRoutes(e)
	router.RegisterCatalog(e, handler.NewCatalogHandler(movies, rooms),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb, log))
	router.RegisterSchedule(e, handler.NewScheduleHandler(svc, sched.Location))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Info("listening",
			zap.String("addr", addr),
			zap.String("env", cfg.Env),
			zap.String("timezone", sched.Location.String()),
			zap.Bool("events", cfg.EventsEnabled),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	if cfg.EventsEnabled {
		g.Go(func() error {
			err := queue.StartScheduleConsumer(ctx, cfg.AMQPURL, log)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	err = g.Wait()
	log.Info("server stopped")
	return err
}
