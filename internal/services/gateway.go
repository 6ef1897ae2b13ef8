package services

import (
	"time"

	"github.com/pkg/errors"

	"github.com/Heidric/localaws.git/internal/model"
)

const (
	GatewayName   = "apigateway"
	statusHealthy = "healthy"
	statusActive  = "active"
)

// GatewayEndpoints is the static route list the gateway advertises.
var GatewayEndpoints = []string{"/health", "/metrics", "/v1/services"}

type CounterStorage interface {
	Observe(path string) error
	IncErrors() error
	Snapshot() (model.RequestMetrics, error)
}

type GatewayService struct {
	storage CounterStorage
	now     func() time.Time
}

func NewGatewayService(storage CounterStorage) *GatewayService {
	return &GatewayService{storage: storage, now: time.Now}
}

// Track records one inbound request for path.
func (g *GatewayService) Track(path string) error {
	return errors.Wrap(g.storage.Observe(path), "observe request")
}

func (g *GatewayService) RecordError() error {
	return errors.Wrap(g.storage.IncErrors(), "count error")
}

func (g *GatewayService) Metrics() (model.RequestMetrics, error) {
	snap, err := g.storage.Snapshot()
	if err != nil {
		return model.RequestMetrics{}, errors.Wrap(err, "snapshot counters")
	}
	return snap, nil
}

func (g *GatewayService) MetricsReport() (model.MetricsReport, error) {
	snap, err := g.Metrics()
	if err != nil {
		return model.MetricsReport{}, err
	}
	return model.MetricsReport{
		Metrics:   snap,
		Timestamp: model.FormatTimestamp(g.now()),
	}, nil
}

func (g *GatewayService) Health() model.Health {
	return health(g.now())
}

// Services lists only the gateway itself.
func (g *GatewayService) Services() model.ServiceDirectory {
	endpoints := make([]string, len(GatewayEndpoints))
	copy(endpoints, GatewayEndpoints)
	return model.ServiceDirectory{
		Services: []model.Service{{
			Name:      GatewayName,
			Status:    statusActive,
			Endpoints: endpoints,
		}},
	}
}

func health(now time.Time) model.Health {
	return model.Health{
		Status:    statusHealthy,
		Timestamp: model.FormatTimestamp(now),
	}
}
