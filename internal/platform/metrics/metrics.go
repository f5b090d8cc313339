package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errors := atomic.LoadUint64(&c.errorRequests)
	durationMs := atomic.LoadUint64(&c.totalDurationMs)

	var avg float64
	if total > 0 {
		avg = float64(durationMs) / float64(total)
	}
	return map[string]any{
		"totalRequests": total,
		"errorRequests": errors,
		"avgDurationMs": avg,
	}
}
