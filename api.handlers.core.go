package main

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Statistics holds app stats for ops.
type Statistics struct {
	version   string
	container bool
	runtime   string
	platform  string
	called    uint64
	started   time.Time
	status    map[int]uint64
	mu        *sync.RWMutex
}

// Maintenance holds app maintenance mode infos. It is toggled by ops
// requests while public requests read it.
type Maintenance struct {
	mu      sync.RWMutex
	enabled bool
	message string
	started time.Time
}

// Enable turns the maintenance mode on with the reason shown to users.
func (m *Maintenance) Enable(message string, started time.Time) {
	m.mu.Lock()
	m.enabled = true
	m.message = message
	m.started = started
	m.mu.Unlock()
}

// Disable turns the maintenance mode off and clears its infos.
func (m *Maintenance) Disable() {
	m.mu.Lock()
	m.enabled = false
	m.message = ""
	m.started = time.Time{}
	m.mu.Unlock()
}

// State returns a consistent view of the maintenance mode.
func (m *Maintenance) State() (enabled bool, message string, started time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled, m.message, m.started
}

// Clocker provides the current time.
type Clocker interface {
	Now() time.Time
}

// Clock reads the wall clock in a fixed zone.
type Clock struct {
	zone *time.Location
}

// NewClock returns a clock in UTC for production and in the local zone otherwise.
func NewClock(utc bool) *Clock {
	if utc {
		return &Clock{zone: time.UTC}
	}
	return &Clock{zone: time.Local}
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.zone)
}

// APIHandler defines the API handler.
type APIHandler struct {
	logger       *zap.Logger
	config       *Config
	stats        *Statistics
	mode         *Maintenance
	clock        Clocker
	idsHandler   UIDHandler
	limiter      *rate.Limiter
	movieService MovieServiceProvider
}

// NewAPIHandler provides a new instance of APIHandler.
func NewAPIHandler(logger *zap.Logger, config *Config, stats *Statistics, clock Clocker, idsHandler UIDHandler, ms MovieServiceProvider) *APIHandler {
	m := &Maintenance{}
	stats.status = make(map[int]uint64)
	stats.mu = &sync.RWMutex{}
	api := &APIHandler{
		logger:       logger,
		config:       config,
		stats:        stats,
		mode:         m,
		clock:        clock,
		idsHandler:   idsHandler,
		movieService: ms,
	}
	if config != nil && config.RateLimit.Enabled {
		api.limiter = rate.NewLimiter(rate.Limit(config.RateLimit.RPS), config.RateLimit.Burst)
	}
	return api
}

// uptime reports in whole minutes how long the api has been serving.
func (api *APIHandler) uptime() string {
	return fmt.Sprintf("%.0f mins", api.clock.Now().Sub(api.stats.started).Minutes())
}
