package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Heidric/localaws.git/internal/cfg"
	"github.com/Heidric/localaws.git/internal/db"
	"github.com/Heidric/localaws.git/internal/logger"
	"github.com/Heidric/localaws.git/internal/server"
	"github.com/Heidric/localaws.git/internal/services"
	"github.com/Heidric/localaws.git/internal/telemetry"
)

func loadConfig() (*cfg.Config, error) {
	config, err := cfg.NewConfig(cfg.SinkPort)
	if err != nil {
		return nil, err
	}

	port := flag.String("p", config.Port, "TCP port to listen on")
	flag.Parse()
	config.Port = *port

	return config, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig()
	if err != nil {
		log.Fatal(err, "Load config")
	}

	if _, err := logger.Initialize("cloudwatch", config.Logger); err != nil {
		log.Fatal(err, "Init logger")
	}

	runner, ctx := errgroup.WithContext(ctx)

	sink := services.NewSinkService(db.NewSnapshotStore())

	srv := server.NewSinkServer(config.Addr(), config.BodyLimit, sink, logger.Log)
	srv.SetShutdownTimeout(config.ShutdownTimeout)
	srv.Run(ctx, runner)
	logger.Log.Info().Msgf("CloudWatch service listening on port %s", config.Port)

	var promSrv *server.Server
	if config.PrometheusAddress != "" {
		reg := telemetry.NewRegistry(telemetry.NewSinkCollector(sink))
		promSrv = server.NewMetricsServer(config.PrometheusAddress, telemetry.Handler(reg), logger.Log)
		promSrv.Run(ctx, runner)
	}

	runner.Go(func() error {
		<-ctx.Done()

		err := srv.Shutdown(ctx)
		if promSrv != nil {
			if perr := promSrv.Shutdown(ctx); err == nil {
				err = perr
			}
		}
		return err
	})

	if err := runner.Wait(); err != nil {
		logger.Log.Fatal().Err(err).Msg("CloudWatch service stopped")
	}
}
