package services

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/Heidric/localaws.git/internal/customerrors"
	"github.com/Heidric/localaws.git/internal/model"
)

var emptyDocument = json.RawMessage(`{}`)

type SnapshotStorage interface {
	Put(data []byte, at time.Time)
	Get() (data []byte, at time.Time, ok bool)
}

type SinkService struct {
	storage SnapshotStorage
	now     func() time.Time
}

func NewSinkService(storage SnapshotStorage) *SinkService {
	return &SinkService{storage: storage, now: time.Now}
}

// Store replaces the stored document with raw. Any JSON value is accepted;
// an empty body stores an empty object. Invalid JSON leaves the store untouched.
func (s *SinkService) Store(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = emptyDocument
	}
	if !json.Valid(raw) {
		return customerrors.ErrInvalidJSON
	}
	s.storage.Put(raw, s.now())
	return nil
}

func (s *SinkService) Current() model.MetricsDocument {
	data, at, ok := s.storage.Get()
	if !ok {
		return model.MetricsDocument{Data: emptyDocument}
	}
	ts := model.FormatTimestamp(at)
	return model.MetricsDocument{Data: data, Timestamp: &ts}
}

// LastUpdated reports when the document was last stored.
func (s *SinkService) LastUpdated() (time.Time, bool) {
	_, at, ok := s.storage.Get()
	return at, ok
}

func (s *SinkService) Health() model.Health {
	return health(s.now())
}
