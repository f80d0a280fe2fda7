package health

import (
	"context"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"library-admin/internal/cache"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
)

// Pinger is anything that can tell whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	backend Pinger
	db      *pgxpool.Pool
	started time.Time
}

// HealthStatus is healthy when the REST backend answers. Redis and the audit
// database are optional and only reported.
type HealthStatus struct {
	Status   string           `json:"status"`
	Backend  DependencyHealth `json:"backend"`
	Redis    DependencyHealth `json:"redis"`
	Database DependencyHealth `json:"database"`
	Host     *HostStats       `json:"host,omitempty"`
	Uptime   string           `json:"uptime,omitempty"`
}

type DependencyHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
	Goroutines    int     `json:"goroutines"`
}

func NewHealthChecker(backend Pinger, db *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{backend: backend, db: db, started: time.Now()}
}

func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	backendHealth := check(ctx, h.backend.Ping)

	redisHealth := DependencyHealth{Status: statusDisabled}
	if cache.Enabled() {
		redisHealth = check(ctx, cache.Ping)
	}

	dbHealth := DependencyHealth{Status: statusDisabled}
	if h.db != nil {
		dbHealth = check(ctx, h.db.Ping)
	}

	status := statusHealthy
	if backendHealth.Status != statusHealthy {
		status = statusUnhealthy
	}

	return HealthStatus{
		Status:   status,
		Backend:  backendHealth,
		Redis:    redisHealth,
		Database: dbHealth,
	}
}

// CheckDetailed adds host resource usage and process uptime.
func (h *HealthChecker) CheckDetailed(ctx context.Context) HealthStatus {
	status := h.CheckBasic(ctx)
	status.Host = hostStats(ctx)
	status.Uptime = time.Since(h.started).Round(time.Second).String()
	return status
}

func check(ctx context.Context, ping func(context.Context) error) DependencyHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DependencyHealth{
			Status:       statusUnhealthy,
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return DependencyHealth{
		Status:       statusHealthy,
		ResponseTime: responseTime,
	}
}

func hostStats(ctx context.Context) *HostStats {
	stats := &HostStats{Goroutines: runtime.NumGoroutine()}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	}
	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		stats.DiskPercent = usage.UsedPercent
	}
	return stats
}
