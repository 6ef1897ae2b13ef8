package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Heidric/localaws.git/internal/model"
)

// Agent samples the host, and optionally the gateway counters, every
// poll interval and posts the latest sample to the sink every report
// interval.
type Agent struct {
	sinkURL        string
	gatewayURL     string
	pollInterval   time.Duration
	reportInterval time.Duration
	retryDelays    []time.Duration
	client         *http.Client
	sampler        HostSampler
	logger         *zerolog.Logger
	now            func() time.Time

	mu        sync.Mutex
	host      model.HostStats
	gateway   *model.RequestMetrics
	pollCount int64
}

type Options struct {
	SinkAddress    string
	GatewayAddress string
	PollInterval   time.Duration
	ReportInterval time.Duration
	Sampler        HostSampler
	Logger         *zerolog.Logger
}

func NewAgent(opts Options) *Agent {
	if opts.Sampler == nil {
		opts.Sampler = PsutilSampler{}
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}

	a := &Agent{
		sinkURL:        "http://" + opts.SinkAddress + "/metrics",
		pollInterval:   opts.PollInterval,
		reportInterval: opts.ReportInterval,
		retryDelays:    retryDelays,
		client:         &http.Client{Timeout: 5 * time.Second},
		sampler:        opts.Sampler,
		logger:         opts.Logger,
		now:            time.Now,
	}
	if opts.GatewayAddress != "" {
		a.gatewayURL = "http://" + opts.GatewayAddress + "/metrics"
	}
	return a
}

// Run polls and reports until ctx is done.
func (a *Agent) Run(ctx context.Context) error {
	runner, ctx := errgroup.WithContext(ctx)
	runner.Go(func() error {
		a.loop(ctx, a.pollInterval, a.poll)
		return nil
	})
	runner.Go(func() error {
		a.loop(ctx, a.reportInterval, a.report)
		return nil
	})
	return runner.Wait()
}

func (a *Agent) loop(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fn(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *Agent) poll(ctx context.Context) {
	host, sampleErr := a.sampler.Sample(ctx)
	if sampleErr != nil {
		a.logger.Warn().Err(sampleErr).Msg("sample host")
	}

	var gateway *model.RequestMetrics
	if a.gatewayURL != "" {
		snap, err := a.fetchGateway(ctx)
		if err != nil {
			a.logger.Warn().Err(err).Str("url", a.gatewayURL).Msg("fetch gateway metrics")
		} else {
			gateway = &snap
		}
	}

	a.mu.Lock()
	if sampleErr == nil {
		a.host = host
	}
	if gateway != nil {
		a.gateway = gateway
	}
	a.pollCount++
	a.mu.Unlock()
}

// report posts the current snapshot; the poll count restarts from the
// polls made since that snapshot once the sink accepts it.
func (a *Agent) report(ctx context.Context) {
	rep := a.Snapshot()

	body, err := json.Marshal(rep)
	if err != nil {
		a.logger.Error().Err(err).Msg("encode report")
		return
	}

	err = withRetry(ctx, a.retryDelays, func() error {
		return a.send(ctx, body)
	}, isRetriable)
	if err != nil {
		a.logger.Warn().Err(err).Str("url", a.sinkURL).Msg("report metrics")
		return
	}

	a.mu.Lock()
	a.pollCount -= rep.PollCount
	a.mu.Unlock()
}

// Snapshot builds the report for the current sample.
func (a *Agent) Snapshot() model.AgentReport {
	a.mu.Lock()
	defer a.mu.Unlock()

	return model.AgentReport{
		Host:        a.host,
		Gateway:     a.gateway,
		PollCount:   a.pollCount,
		CollectedAt: model.FormatTimestamp(a.now()),
	}
}

func (a *Agent) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.sinkURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode}
	}
	return nil
}

func (a *Agent) fetchGateway(ctx context.Context) (model.RequestMetrics, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.gatewayURL, nil)
	if err != nil {
		return model.RequestMetrics{}, errors.Wrap(err, "build request")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return model.RequestMetrics{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.RequestMetrics{}, &statusError{code: resp.StatusCode}
	}

	var report model.MetricsReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return model.RequestMetrics{}, errors.Wrap(err, "decode gateway metrics")
	}
	return report.Metrics, nil
}
