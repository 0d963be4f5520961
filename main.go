package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	_ "golang.org/x/crypto/x509roots/fallback"

	"github.com/meeplestats/meeplestats/internal/adapters/cache"
	"github.com/meeplestats/meeplestats/internal/adapters/database"
	"github.com/meeplestats/meeplestats/internal/adapters/snapshotrepository"
	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/config"
	"github.com/meeplestats/meeplestats/internal/logging"
	"github.com/meeplestats/meeplestats/internal/ports"
	"github.com/meeplestats/meeplestats/internal/reporting"
	"github.com/meeplestats/meeplestats/internal/telemetry"
)

const serviceName = "meeplestats"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instanceID := uuid.New().String()
	logger := slog.New(logging.NewTracingLogHandler(slog.NewJSONHandler(os.Stdout, nil))).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	conf, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", conf.NonSensitiveString())

	shutdownOTel, err := telemetry.SetupOTelSDK(ctx, serviceName)
	if err != nil {
		fail("Failed to initialize OpenTelemetry", "error", err.Error())
	}
	defer func() {
		if err := shutdownOTel(context.Background()); err != nil {
			logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
		}
	}()
	logger.Info("Initialized OpenTelemetry")

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(conf)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	var provider app.SnapshotProvider
	switch conf.SnapshotSource() {
	case config.SnapshotSourceFile:
		fileProvider, err := snapshotrepository.NewFileProvider(
			conf.SnapshotPath(),
			time.Now,
			logger.With("component", "snapshotfile"),
		)
		if err != nil {
			fail("Failed to load snapshot file", "error", err.Error())
		}
		go func() {
			if err := fileProvider.Watch(ctx); err != nil {
				logger.Error("Stopped watching snapshot file", "error", err.Error())
			}
		}()
		provider = fileProvider
	case config.SnapshotSourcePostgres:
		logger.Info("Initializing database connection")
		db, err := database.NewPostgresDatabaseFromConfig(conf)
		if err != nil {
			fail("Failed to initialize database", "error", err.Error())
		}
		defer db.Close()
		logger.Info("Initialized database connection")

		schemaName := database.GetSchemaName(!conf.IsProduction())

		err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, schemaName)
		if err != nil {
			fail("Failed to migrate database", "error", err.Error())
		}

		provider = snapshotrepository.NewStoreProvider(snapshotrepository.NewPostgres(db, schemaName))
		logger.Info("Initialized snapshot store")
	default:
		fail("Unknown snapshot source", "source", string(conf.SnapshotSource()))
	}

	resultCache, stopCache := cache.NewTTLCache[any](conf.CacheTTL())
	defer stopCache()

	allowedOrigins, err := ports.NewDomainSuffixes(conf.AllowedOrigins()...)
	if err != nil {
		fail("Failed to initialize allowed origins", "error", err.Error())
	}
	if conf.IsDevelopment() {
		allowedOrigins = allowedOrigins.WithLocalhost()
	}

	getAvailableYears := app.BuildGetAvailableYears(provider, resultCache)
	getYearSummary := app.BuildGetYearSummary(provider, resultCache)
	getHIndexReport := app.BuildGetHIndexReport(provider, resultCache)
	getMilestones := app.BuildGetMilestones(provider, resultCache)
	getMilestoneGames := app.BuildGetMilestoneGames(provider, resultCache)
	getValueClubs := app.BuildGetValueClubs(provider, resultCache)
	getValueClubGames := app.BuildGetValueClubGames(provider, resultCache)
	getActivity := app.BuildGetActivity(provider, resultCache)
	getAchievements := app.BuildGetAchievements(provider, resultCache)
	getRanking := app.BuildGetRanking(provider, resultCache)

	mux := http.NewServeMux()

	handle := func(pattern string, handler http.HandlerFunc) {
		mux.HandleFunc("OPTIONS "+pattern, ports.BuildCORSHandler(allowedOrigins))
		mux.HandleFunc("GET "+pattern, handler)
	}

	handle("/v1/years", ports.MakeGetAvailableYearsHandler(
		getAvailableYears,
		allowedOrigins,
		logger.With("port", "years"),
		sentryMiddleware,
	))
	handle("/v1/summary", ports.MakeGetYearSummaryHandler(
		getYearSummary,
		allowedOrigins,
		logger.With("port", "summary"),
		sentryMiddleware,
	))
	handle("/v1/hindex", ports.MakeGetHIndexHandler(
		getHIndexReport,
		allowedOrigins,
		logger.With("port", "hindex"),
		sentryMiddleware,
	))
	handle("/v1/milestones", ports.MakeGetMilestonesHandler(
		getMilestones,
		allowedOrigins,
		logger.With("port", "milestones"),
		sentryMiddleware,
	))
	handle("/v1/milestones/games", ports.MakeGetMilestoneGamesHandler(
		getMilestoneGames,
		allowedOrigins,
		logger.With("port", "milestonegames"),
		sentryMiddleware,
	))
	handle("/v1/valueclubs", ports.MakeGetValueClubsHandler(
		getValueClubs,
		allowedOrigins,
		logger.With("port", "valueclubs"),
		sentryMiddleware,
	))
	handle("/v1/valueclubs/games", ports.MakeGetValueClubGamesHandler(
		getValueClubGames,
		allowedOrigins,
		logger.With("port", "valueclubgames"),
		sentryMiddleware,
	))
	handle("/v1/activity", ports.MakeGetActivityHandler(
		getActivity,
		allowedOrigins,
		logger.With("port", "activity"),
		sentryMiddleware,
	))
	handle("/v1/achievements", ports.MakeGetAchievementsHandler(
		getAchievements,
		allowedOrigins,
		logger.With("port", "achievements"),
		sentryMiddleware,
	))
	handle("/v1/rankings/{kind}", ports.MakeGetRankingHandler(
		getRanking,
		allowedOrigins,
		logger.With("port", "rankings"),
		sentryMiddleware,
	))
	handle("/v1/wrapped", ports.MakeGetWrappedHandler(
		ports.WrappedQueries{
			GetYearSummary:  getYearSummary,
			GetHIndexReport: getHIndexReport,
			GetActivity:     getActivity,
			GetAchievements: getAchievements,
			GetRanking:      getRanking,
		},
		allowedOrigins,
		logger.With("port", "wrapped"),
		sentryMiddleware,
	))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Port()),
		Handler:           otelhttp.NewHandler(mux, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server", "error", err.Error())
		}
	}()

	logger.Info("Init complete", "port", conf.Port())
	err = server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
