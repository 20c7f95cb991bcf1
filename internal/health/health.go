// Package health reports dependency health over the gRPC health protocol
// and a plain HTTP endpoint.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// Checker runs checks periodically and publishes the results. The empty
// service name carries the overall status.
type Checker struct {
	server   *health.Server
	interval time.Duration
	timeout  time.Duration

	mu      sync.RWMutex
	names   []string
	checks  map[string]Check
	results map[string]error
}

// NewChecker creates a Checker probing every interval.
func NewChecker(interval time.Duration) *Checker {
	return &Checker{
		server:   health.NewServer(),
		interval: interval,
		timeout:  interval / 2,
		checks:   make(map[string]Check),
		results:  make(map[string]error),
	}
}

// Add registers a named check. Add before Run.
func (c *Checker) Add(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.checks[name]; !ok {
		c.names = append(c.names, name)
		sort.Strings(c.names)
	}
	c.checks[name] = check
}

// CheckNow runs every check once and updates the published status.
func (c *Checker) CheckNow(ctx context.Context) bool {
	c.mu.RLock()
	names := append([]string(nil), c.names...)
	c.mu.RUnlock()

	healthy := true
	for _, name := range names {
		c.mu.RLock()
		check := c.checks[name]
		c.mu.RUnlock()

		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := check(checkCtx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			healthy = false
			status = healthpb.HealthCheckResponse_NOT_SERVING
			logger.Log.Warnw("health check failed", "check", name, "error", err)
		}
		c.server.SetServingStatus(name, status)

		c.mu.Lock()
		c.results[name] = err
		c.mu.Unlock()
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus("", overall)
	return healthy
}

// Run checks until ctx is done, then marks everything NOT_SERVING.
func (c *Checker) Run(ctx context.Context) {
	c.CheckNow(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.CheckNow(ctx)
		}
	}
}

// Register exposes the gRPC health service on srv.
func (c *Checker) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, c.server)
}

// StatusResponse is the body of the HTTP health endpoint
// swagger:model StatusResponse
type StatusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Handler serves the last results. It answers 503 while any check fails.
func (c *Checker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.mu.RLock()
		resp := StatusResponse{Status: "ok", Checks: make(map[string]string, len(c.names))}
		for _, name := range c.names {
			err, seen := c.results[name]
			switch {
			case !seen:
				resp.Checks[name] = "unknown"
				resp.Status = "unavailable"
			case err != nil:
				resp.Checks[name] = err.Error()
				resp.Status = "unavailable"
			default:
				resp.Checks[name] = "ok"
			}
		}
		c.mu.RUnlock()

		code := http.StatusOK
		if resp.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
