package health

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/benedict-erwin/store-console/pkg/utils"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
)

// cacheValidDuration bounds how often probes reach upstream
const cacheValidDuration = 10 * time.Second

type (
	// Probe checks one dependency; nil means healthy
	Probe func(ctx context.Context) error

	ServiceHealth struct {
		Status       string    `json:"status"`
		ResponseTime string    `json:"response_time"`
		LastCheck    time.Time `json:"last_check"`
		Error        string    `json:"error,omitempty"`
	}

	ReadinessStatus struct {
		Status         string                   `json:"status"`
		Timestamp      time.Time                `json:"timestamp"`
		Version        string                   `json:"version"`
		Uptime         string                   `json:"uptime"`
		GoroutineCount int                      `json:"goroutine_count"`
		Services       map[string]ServiceHealth `json:"services"`
	}

	// Checker runs probes and caches the combined result
	Checker struct {
		version   string
		startTime time.Time
		probes    map[string]Probe

		mu        sync.Mutex
		cache     *ReadinessStatus
		cacheTime time.Time
	}
)

// NewChecker returns a checker for the named probes
func NewChecker(version string, probes map[string]Probe) *Checker {
	return &Checker{version: version, startTime: time.Now(), probes: probes}
}

// CheckReadiness runs every probe, or returns the result cached within the last 10s
func (c *Checker) CheckReadiness(ctx context.Context) *ReadinessStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache != nil && time.Since(c.cacheTime) < cacheValidDuration {
		cached := *c.cache
		return &cached
	}

	status := &ReadinessStatus{
		Status:         StatusReady,
		Timestamp:      utils.Now(),
		Version:        c.version,
		Uptime:         time.Since(c.startTime).Round(time.Second).String(),
		GoroutineCount: runtime.NumGoroutine(),
		Services:       make(map[string]ServiceHealth, len(c.probes)),
	}
	for name, probe := range c.probes {
		h := run(ctx, probe)
		status.Services[name] = h
		if h.Status != StatusHealthy {
			status.Status = StatusNotReady
		}
	}

	c.cache, c.cacheTime = status, time.Now()
	cached := *status
	return &cached
}

// ClearCache forces the next check to run the probes
func (c *Checker) ClearCache() {
	c.mu.Lock()
	c.cache = nil
	c.mu.Unlock()
}

func run(ctx context.Context, probe Probe) ServiceHealth {
	start := time.Now()
	err := probe(ctx)
	h := ServiceHealth{
		Status:       StatusHealthy,
		ResponseTime: time.Since(start).String(),
		LastCheck:    utils.Now(),
	}
	if err != nil {
		h.Status = StatusUnhealthy
		h.Error = err.Error()
	}
	return h
}

// UpstreamProbe treats any HTTP answer from baseURL as reachable; only transport errors fail
func UpstreamProbe(client *http.Client, baseURL string) Probe {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		return resp.Body.Close()
	}
}
