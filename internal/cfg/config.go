package cfg

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/vrischmann/envconfig"

	"github.com/Heidric/localaws.git/pkg/log"
)

const (
	GatewayPort = "8080"
	SinkPort    = "9090"

	defaultBodyLimit       = 100 << 10
	defaultShutdownTimeout = 10 * time.Second
	defaultPollInterval    = 2 * time.Second
	defaultReportInterval  = 10 * time.Second
	defaultSinkAddress     = "localhost:9090"
)

// Config is the server configuration shared by the gateway and the sink.
type Config struct {
	Logger            *log.Config
	Port              string        `envconfig:"PORT,optional"`
	Host              string        `envconfig:"HOST,optional"`
	BodyLimit         int64         `envconfig:"BODY_LIMIT,optional"`
	PrometheusAddress string        `envconfig:"PROMETHEUS_ADDRESS,optional"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT,optional"`
}

// Addr is the listen address built from Host and Port.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// AgentConfig configures the reporting agent.
type AgentConfig struct {
	Logger         *log.Config
	SinkAddress    string        `envconfig:"SINK_ADDRESS,optional"`
	GatewayAddress string        `envconfig:"GATEWAY_ADDRESS,optional"`
	PollInterval   time.Duration `envconfig:"POLL_INTERVAL,optional"`
	ReportInterval time.Duration `envconfig:"REPORT_INTERVAL,optional"`
}

// NewConfig loads a server Config; defaultPort applies when PORT is unset.
func NewConfig(defaultPort string) (*Config, error) {
	_ = godotenv.Load()

	normalizeSeconds("SHUTDOWN_TIMEOUT")

	config := &Config{
		Logger: &log.Config{},
	}
	if err := envconfig.Init(config); err != nil {
		return nil, errors.Wrap(err, "init env config")
	}

	if config.Port == "" {
		config.Port = defaultPort
	}
	if config.BodyLimit <= 0 {
		config.BodyLimit = defaultBodyLimit
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaultShutdownTimeout
	}
	config.Logger.SetDefault()

	return config, nil
}

// NewAgentConfig loads the agent configuration.
func NewAgentConfig() (*AgentConfig, error) {
	_ = godotenv.Load()

	normalizeSeconds("POLL_INTERVAL")
	normalizeSeconds("REPORT_INTERVAL")

	config := &AgentConfig{
		Logger: &log.Config{},
	}
	if err := envconfig.Init(config); err != nil {
		return nil, errors.Wrap(err, "init env config")
	}

	if config.SinkAddress == "" {
		config.SinkAddress = defaultSinkAddress
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaultPollInterval
	}
	if config.ReportInterval <= 0 {
		config.ReportInterval = defaultReportInterval
	}
	config.Logger.SetDefault()

	return config, nil
}

// normalizeSeconds rewrites a bare integer value of key as a duration in seconds.
func normalizeSeconds(key string) {
	val := os.Getenv(key)
	if val == "" {
		return
	}
	if sec, err := strconv.Atoi(val); err == nil {
		os.Setenv(key, strconv.Itoa(sec)+"s")
	}
}
