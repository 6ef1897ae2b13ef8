package agent

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Heidric/localaws.git/internal/model"
)

// HostSampler reads current host resource usage.
type HostSampler interface {
	Sample(ctx context.Context) (model.HostStats, error)
}

// PsutilSampler samples CPU and memory usage with gopsutil.
type PsutilSampler struct{}

func (PsutilSampler) Sample(ctx context.Context) (model.HostStats, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return model.HostStats{}, errors.Wrap(err, "cpu percent")
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return model.HostStats{}, errors.Wrap(err, "virtual memory")
	}

	stats := model.HostStats{MemoryPercent: vm.UsedPercent}
	if len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	return stats, nil
}
