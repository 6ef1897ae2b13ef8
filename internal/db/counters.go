package db

import (
	"sync"

	"github.com/Heidric/localaws.git/internal/customerrors"
	"github.com/Heidric/localaws.git/internal/model"
)

type commandType int

const (
	observe commandType = iota
	incErrors
	snapshot
)

type command struct {
	action  commandType
	path    string
	respond chan model.RequestMetrics
}

// CounterStore owns the gateway request counters. A single goroutine
// applies every command, so updates are serialized without locks.
type CounterStore struct {
	commands  chan command
	done      chan struct{}
	closeOnce sync.Once
}

func NewCounterStore() *CounterStore {
	s := &CounterStore{
		commands: make(chan command),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *CounterStore) run() {
	data := model.RequestMetrics{RequestsPerEndpoint: make(map[string]int64)}
	for {
		select {
		case cmd := <-s.commands:
			switch cmd.action {
			case observe:
				data.TotalRequests++
				data.RequestsPerEndpoint[cmd.path]++
				cmd.respond <- model.RequestMetrics{}
			case incErrors:
				data.Errors++
				cmd.respond <- model.RequestMetrics{}
			case snapshot:
				perEndpoint := make(map[string]int64, len(data.RequestsPerEndpoint))
				for k, v := range data.RequestsPerEndpoint {
					perEndpoint[k] = v
				}
				cmd.respond <- model.RequestMetrics{
					TotalRequests:       data.TotalRequests,
					RequestsPerEndpoint: perEndpoint,
					Errors:              data.Errors,
				}
			}
		case <-s.done:
			return
		}
	}
}

func (s *CounterStore) send(action commandType, path string) (model.RequestMetrics, error) {
	cmd := command{
		action:  action,
		path:    path,
		respond: make(chan model.RequestMetrics, 1),
	}
	select {
	case s.commands <- cmd:
	case <-s.done:
		return model.RequestMetrics{}, customerrors.ErrStoreClosed
	}
	return <-cmd.respond, nil
}

// Observe counts one request against path and the total.
func (s *CounterStore) Observe(path string) error {
	_, err := s.send(observe, path)
	return err
}

func (s *CounterStore) IncErrors() error {
	_, err := s.send(incErrors, "")
	return err
}

// Snapshot returns a deep copy of the counters.
func (s *CounterStore) Snapshot() (model.RequestMetrics, error) {
	return s.send(snapshot, "")
}

func (s *CounterStore) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
