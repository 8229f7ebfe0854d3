package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/leagueforge/leagueforge/auth"
	"github.com/leagueforge/leagueforge/internal/config"
	"github.com/leagueforge/leagueforge/internal/database"
	"github.com/leagueforge/leagueforge/internal/metrics"
	"github.com/leagueforge/leagueforge/janitor"
	"github.com/leagueforge/leagueforge/leagues"
	"github.com/leagueforge/leagueforge/server"
	"github.com/leagueforge/leagueforge/teams"
	"github.com/leagueforge/leagueforge/token/ledger"
	"github.com/leagueforge/leagueforge/users"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())
	logger := newLogger(c)

	db, err := database.Open(c.GetDatabaseURL())
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	if err := database.RunMigrations(c.GetDatabaseURL()); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	serverOptions := []server.Option{
		server.WithLogger(logger),
		server.WithMetrics(collector, registry),
	}

	if c.OIDCEnabled() {
		oidcClient, err := auth.NewOIDCClient(context.Background(), auth.OIDCSettings{
			IssuerURL:    c.GetOIDCIssuerURL(),
			ClientID:     c.GetOIDCClientID(),
			ClientSecret: c.GetOIDCClientSecret(),
			RedirectURL:  c.GetOIDCRedirectURL(),
		})
		if err != nil {
			return err
		}
		serverOptions = append(serverOptions, server.WithOIDC(oidcClient))
	}

	ledgerRepo := ledger.NewPostgresRepo(db)
	srv, err := server.New(c, server.Repos{
		Users:   users.NewPostgresRepo(db),
		Ledger:  ledgerRepo,
		Leagues: leagues.NewPostgresRepo(db),
		Teams:   teams.NewPostgresRepo(db),
	}, serverOptions...)
	if err != nil {
		return err
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	tokenJanitor, err := janitor.New(ledgerRepo, logger,
		janitor.WithInterval(c.GetJanitorInterval()),
		janitor.WithMetrics(collector),
	)
	if err != nil {
		return err
	}
	go tokenJanitor.Run(janitorCtx)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer, logger)
	waitForStopSignal()
	stopJanitor()
	returnError = shutdown(httpServer)
	return returnError
}

func newLogger(c config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if c.GetEnv() == "DEV" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger
}

func listenAndServe(httpServer *http.Server, logger zerolog.Logger) {
	logger.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("server stopped unexpectedly")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
