// Package rslimiter refuses new scans while the host is short on memory.
// Every scan opens a browser context, so admission is checked before the
// session is created rather than after the browser starts swapping.
package rslimiter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/shivam1584818/fb-group-finder-backend/internal/common"
	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
)

const defaultCheckInterval = 30 * time.Second

// MemoryProbe returns system memory usage as a fraction between 0 and 1
type MemoryProbe func() (float64, error)

// SystemMemoryProbe reads memory usage through gopsutil
func SystemMemoryProbe() (float64, error) {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("failed to get system memory stats: %w", err)
	}
	return vmStat.UsedPercent / 100.0, nil
}

// ResourceLimiter gates scan admission and periodically logs resource usage
type ResourceLimiter struct {
	config        config.ResourceLimiterConfig
	logger        zerolog.Logger
	probe         MemoryProbe
	checkInterval time.Duration

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewResourceLimiter creates a new resource limiter
func NewResourceLimiter(cfg config.ResourceLimiterConfig, logger zerolog.Logger) *ResourceLimiter {
	if cfg.SystemMemThreshold == 0 {
		cfg.SystemMemThreshold = config.DefaultResourceLimiterSystemMemThreshold
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &ResourceLimiter{
		config:        cfg,
		logger:        logger.With().Str("component", "ResourceLimiter").Logger(),
		probe:         SystemMemoryProbe,
		checkInterval: defaultCheckInterval,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// WithMemoryProbe replaces the memory source
func (rl *ResourceLimiter) WithMemoryProbe(probe MemoryProbe) *ResourceLimiter {
	rl.probe = probe
	return rl
}

// Admit returns an error wrapping common.ErrServiceUnavailable when system
// memory usage is above the threshold. Probe failures admit the request.
func (rl *ResourceLimiter) Admit() error {
	if !rl.config.Enabled {
		return nil
	}

	used, err := rl.probe()
	if err != nil {
		rl.logger.Warn().Err(err).Msg("Memory probe failed, admitting request")
		return nil
	}

	if used > rl.config.SystemMemThreshold {
		rl.logger.Warn().
			Float64("used_percent", used*100).
			Float64("threshold_percent", rl.config.SystemMemThreshold*100).
			Msg("System memory usage exceeded threshold, rejecting scan")
		return common.WrapErrorf(common.ErrServiceUnavailable,
			"system memory usage %.1f%% exceeds %.1f%%", used*100, rl.config.SystemMemThreshold*100)
	}

	return nil
}

// Start begins periodic resource logging
func (rl *ResourceLimiter) Start() {
	rl.mu.Lock()
	if rl.isRunning {
		rl.mu.Unlock()
		return
	}
	rl.isRunning = true
	rl.mu.Unlock()

	rl.wg.Add(1)
	go rl.monitorResources()

	rl.logger.Info().
		Bool("enabled", rl.config.Enabled).
		Float64("system_mem_threshold", rl.config.SystemMemThreshold).
		Dur("check_interval", rl.checkInterval).
		Msg("Resource limiter started")
}

// Stop stops the resource monitor
func (rl *ResourceLimiter) Stop() {
	rl.mu.Lock()
	if !rl.isRunning {
		rl.mu.Unlock()
		return
	}
	rl.isRunning = false
	rl.mu.Unlock()

	rl.cancel()
	rl.wg.Wait()
	rl.logger.Info().Msg("Resource limiter stopped")
}

func (rl *ResourceLimiter) monitorResources() {
	defer rl.wg.Done()

	ticker := time.NewTicker(rl.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.ctx.Done():
			return
		case <-ticker.C:
			usage := GetResourceUsage()
			rl.logger.Debug().
				Int64("alloc_mb", usage.AllocMB).
				Int64("sys_mb", usage.SysMB).
				Int("goroutines", usage.Goroutines).
				Float64("system_mem_percent", usage.SystemMemUsedPercent).
				Msg("Current resource usage")
		}
	}
}
