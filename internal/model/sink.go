package model

import "encoding/json"

// MetricsDocument is the sink's single stored document. Data is the
// last posted JSON body, untouched; Timestamp is nil until the first post.
type MetricsDocument struct {
	Data      json.RawMessage `json:"data"`
	Timestamp *string         `json:"timestamp"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
