package model

// RequestMetrics is the gateway's request accounting.
// TotalRequests always equals the sum of RequestsPerEndpoint.
type RequestMetrics struct {
	TotalRequests       int64            `json:"totalRequests"`
	RequestsPerEndpoint map[string]int64 `json:"requestsPerEndpoint"`
	Errors              int64            `json:"errors"`
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type MetricsReport struct {
	Metrics   RequestMetrics `json:"metrics"`
	Timestamp string         `json:"timestamp"`
}

// Service describes one entry of the /v1/services directory.
type Service struct {
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

type ServiceDirectory struct {
	Services []Service `json:"services"`
}
