package model

// HostStats is the host resource sample gathered by the agent.
type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// AgentReport is the document the agent posts to the sink.
type AgentReport struct {
	Host        HostStats       `json:"host"`
	Gateway     *RequestMetrics `json:"gateway,omitempty"`
	PollCount   int64           `json:"poll_count"`
	CollectedAt string          `json:"collected_at"`
}
