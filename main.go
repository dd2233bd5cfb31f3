package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/clearlist/screener-backend/api"
	"github.com/clearlist/screener-backend/infra"
	"github.com/clearlist/screener-backend/jobs"
	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/repositories"
	"github.com/clearlist/screener-backend/usecases"
	"github.com/clearlist/screener-backend/utils"
)

type AppConfiguration struct {
	env                string
	port               string
	matchingConfigPath string
	refreshCron        string
	initialSources     []models.ListSource
	requestTimeout     time.Duration

	pg infra.PgConfig
}

func loadConfiguration() AppConfiguration {
	conf := AppConfiguration{
		env:                utils.GetStringEnv("ENV", "development"),
		port:               utils.GetStringEnv("PORT", "8080"),
		matchingConfigPath: utils.GetStringEnv("MATCHING_CONFIG_PATH", ""),
		refreshCron:        utils.GetStringEnv("FEED_REFRESH_CRON", "0 */6 * * *"),
		requestTimeout:     utils.GetDurationEnv("REQUEST_TIMEOUT", 15*time.Second),
		pg: infra.PgConfig{
			ConnectionString: utils.GetStringEnv("PG_CONNECTION_STRING", ""),
			Hostname:         utils.GetStringEnv("PG_HOSTNAME", ""),
			Port:             utils.GetStringEnv("PG_PORT", "5432"),
			User:             utils.GetStringEnv("PG_USER", ""),
			Password:         utils.GetStringEnv("PG_PASSWORD", ""),
			Database:         utils.GetStringEnv("PG_DATABASE", "screener"),
		},
	}

	for _, tag := range strings.Split(utils.GetStringEnv("INITIAL_SOURCES", "OFAC,UN"), ",") {
		source := models.ListSourceFrom(strings.TrimSpace(tag))
		if source != models.ListSourceUnknown {
			conf.initialSources = append(conf.initialSources, source)
		}
	}

	return conf
}

func initLogger(env string) *slog.Logger {
	if env == "development" {
		return slog.New(utils.LocalDevHandlerOptions{UseColor: true}.NewLocalDevHandler(os.Stdout))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func newUsecases(ctx context.Context, conf AppConfiguration) (usecases.Usecases, error) {
	matchingConfig, err := infra.LoadMatchingConfig(conf.matchingConfigPath)
	if err != nil {
		return usecases.Usecases{}, err
	}

	var screeningLog *repositories.ScreeningLogRepository
	if conf.pg.ConnectionString != "" || conf.pg.Hostname != "" {
		pool, err := infra.NewPostgresConnectionPool(ctx, conf.pg.GetConnectionString())
		if err != nil {
			return usecases.Usecases{}, err
		}
		screeningLog = repositories.NewScreeningLogRepository(pool)
	}

	return usecases.NewUsecases(
		matchingConfig,
		repositories.NewFeedDownloader(nil),
		screeningLog,
	), nil
}

func runServer(ctx context.Context, conf AppConfiguration, uc usecases.Usecases) error {
	logger := utils.LoggerFromContext(ctx)

	if len(conf.initialSources) > 0 {
		go func() {
			if err := jobs.LoadInitialFeeds(ctx, uc, conf.initialSources); err != nil {
				logger.ErrorContext(ctx, "initial feed load failed, engine stays not-ready until a refresh succeeds",
					"error", err.Error())
			}
		}()
	}

	router := initRouter(ctx, conf)
	server := api.New(router, api.Configuration{
		Env:     conf.env,
		Port:    conf.port,
		Timeout: conf.requestTimeout,
	}, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", "port", conf.port)
		if err := server.ListenAndServe(); err != nil {
			logger.ErrorContext(ctx, "error serving the app", "error", err.Error())
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runScheduler(ctx context.Context, conf AppConfiguration, uc usecases.Usecases) {
	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	jobs.RunScheduler(notify, uc, conf.refreshCron)
}

func main() {
	shouldRunServer := flag.Bool("server", true, "run the screening API server")
	shouldRunScheduler := flag.Bool("scheduler", false, "run the periodic feed refresh scheduler")
	flag.Parse()

	conf := loadConfiguration()

	logger := initLogger(conf.env)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	uc, err := newUsecases(ctx, conf)
	if err != nil {
		logger.ErrorContext(ctx, "failed to set up engine", "error", err.Error())
		os.Exit(1)
	}

	if *shouldRunScheduler {
		runScheduler(ctx, conf, uc)
		return
	}

	if *shouldRunServer {
		if err := runServer(ctx, conf, uc); err != nil {
			logger.ErrorContext(ctx, "server shutdown failed", "error", err.Error())
			os.Exit(1)
		}
	}
}
