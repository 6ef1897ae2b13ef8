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
	config, err := cfg.NewConfig(cfg.GatewayPort)
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

	if _, err := logger.Initialize(services.GatewayName, config.Logger); err != nil {
		log.Fatal(err, "Init logger")
	}

	runner, ctx := errgroup.WithContext(ctx)

	storage := db.NewCounterStore()
	gateway := services.NewGatewayService(storage)

	srv := server.NewGatewayServer(config.Addr(), config.BodyLimit, gateway, logger.Log)
	srv.SetShutdownTimeout(config.ShutdownTimeout)
	srv.Run(ctx, runner)
	logger.Log.Info().Msgf("API Gateway listening on port %s", config.Port)

	var promSrv *server.Server
	if config.PrometheusAddress != "" {
		reg := telemetry.NewRegistry(telemetry.NewGatewayCollector(gateway, logger.Log))
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
		storage.Close()
		return err
	})

	if err := runner.Wait(); err != nil {
		logger.Log.Fatal().Err(err).Msg("API Gateway stopped")
	}
}
