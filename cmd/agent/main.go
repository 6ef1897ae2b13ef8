package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Heidric/localaws.git/internal/agent"
	"github.com/Heidric/localaws.git/internal/cfg"
	"github.com/Heidric/localaws.git/internal/logger"
)

func loadConfig() (*cfg.AgentConfig, error) {
	config, err := cfg.NewAgentConfig()
	if err != nil {
		return nil, err
	}

	sinkAddr := flag.String("a", config.SinkAddress, "metrics sink address")
	gatewayAddr := flag.String("g", config.GatewayAddress, "API gateway address to scrape, empty to skip")
	pollInterval := flag.Duration("p", config.PollInterval, "poll interval")
	reportInterval := flag.Duration("r", config.ReportInterval, "report interval")
	flag.Parse()

	config.SinkAddress = *sinkAddr
	config.GatewayAddress = *gatewayAddr
	config.PollInterval = *pollInterval
	config.ReportInterval = *reportInterval

	return config, nil
}

func main() {
	start := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig()
	if err != nil {
		log.Fatal(err, "Load config")
	}

	if _, err := logger.Initialize("agent", config.Logger); err != nil {
		log.Fatal(err, "Init logger")
	}

	a := agent.NewAgent(agent.Options{
		SinkAddress:    config.SinkAddress,
		GatewayAddress: config.GatewayAddress,
		PollInterval:   config.PollInterval,
		ReportInterval: config.ReportInterval,
		Logger:         logger.Log,
	})

	logger.Log.Info().
		Str("sink", config.SinkAddress).
		Str("gateway", config.GatewayAddress).
		Str("poll", config.PollInterval.String()).
		Str("report", config.ReportInterval.String()).
		Msg("Agent started")

	if err := a.Run(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Agent stopped")
	}
	logger.Log.Info().Dur("uptime", time.Since(start)).Msg("Agent stopped")
}
