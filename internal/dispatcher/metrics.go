package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/structlab/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	commandMetrics map[string]*CommandMetrics

	totalDispatches uint64
	totalErrors     uint64
	totalQueued     uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// CommandMetrics holds metrics for a single command key.
type CommandMetrics struct {
	Key           string
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.Status
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commandMetrics: make(map[string]*CommandMetrics),
	}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(key string, duration time.Duration, status handler.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	switch status {
	case handler.StatusError:
		m.totalErrors++
	case handler.StatusQueued:
		m.totalQueued++
	}

	cm := m.commandMetrics[key]
	if cm == nil {
		cm = &CommandMetrics{
			Key:         key,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.commandMetrics[key] = cm
	}

	cm.DispatchCount++
	cm.TotalDuration += duration
	cm.LastStatus = status
	cm.LastDispatch = time.Now()

	if duration < cm.MinDuration {
		cm.MinDuration = duration
	}
	if duration > cm.MaxDuration {
		cm.MaxDuration = duration
	}
	if status == handler.StatusError {
		cm.ErrorCount++
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++
	if cm := m.commandMetrics[key]; cm != nil {
		cm.ErrorCount++
	}
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalErrors returns the total number of error results.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalQueued returns how many commands were queued behind builds.
func (m *Metrics) TotalQueued() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalQueued
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// CommandStats returns a copy of the metrics for a command key, or nil.
func (m *Metrics) CommandStats(key string) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.commandMetrics[key]
	if cm == nil {
		return nil
	}
	out := *cm
	return &out
}

// TopCommands returns the n most dispatched command keys.
func (m *Metrics) TopCommands(n int) []*CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	commands := make([]*CommandMetrics, 0, len(m.commandMetrics))
	for _, cm := range m.commandMetrics {
		out := *cm
		commands = append(commands, &out)
	}

	sort.Slice(commands, func(i, j int) bool {
		return commands[i].DispatchCount > commands[j].DispatchCount
	})

	if n > len(commands) {
		n = len(commands)
	}
	return commands[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commandMetrics = make(map[string]*CommandMetrics)
	m.totalDispatches = 0
	m.totalErrors = 0
	m.totalQueued = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time view of the collector.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalErrors     uint64
	TotalQueued     uint64
	TotalPanics     uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	CommandCount    int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalErrors:     m.totalErrors,
		TotalQueued:     m.totalQueued,
		TotalPanics:     m.totalPanics,
		TotalDuration:   m.totalDuration,
		CommandCount:    len(m.commandMetrics),
		Timestamp:       time.Now(),
	}
	if m.totalDispatches > 0 {
		snap.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}
	return snap
}

// AverageCommandDuration returns the average duration for the command.
func (cm *CommandMetrics) AverageCommandDuration() time.Duration {
	if cm.DispatchCount == 0 {
		return 0
	}
	return cm.TotalDuration / time.Duration(cm.DispatchCount)
}

// ErrorRate returns the error rate as a percentage.
func (cm *CommandMetrics) ErrorRate() float64 {
	if cm.DispatchCount == 0 {
		return 0
	}
	return float64(cm.ErrorCount) / float64(cm.DispatchCount) * 100
}
