package metrics

import (
	"time"
)

// DefaultUpdateInterval is how often the collector samples registered
// monitors when no interval is given.
var DefaultUpdateInterval = 5 * time.Second

// Collector periodically samples every registered monitor and pushes
// its snapshot into the state gauges.
type Collector struct {
	// stopCh is used to signal the collector to stop
	stopCh chan struct{}

	// intervalCh is used to signal interval changes
	intervalCh chan time.Duration

	// running indicates if the collector is currently running
	running bool

	// currentInterval stores the current interval for comparison
	currentInterval time.Duration
}

// NewCollector creates a new metrics collector
// interval 0 means use DefaultUpdateInterval
func NewCollector(interval time.Duration) *Collector {
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}
	return &Collector{
		stopCh:          make(chan struct{}),
		intervalCh:      make(chan time.Duration, 1), // Buffered to avoid blocking
		running:         false,
		currentInterval: interval,
	}
}

// Start begins collecting metrics at the configured interval
func (c *Collector) Start() {
	if c.running {
		return
	}

	c.running = true
	go c.collectLoop()
}

// Stop stops the metrics collector
func (c *Collector) Stop() {
	if !c.running {
		return
	}

	close(c.stopCh)
	c.running = false
}

// UpdateInterval updates the collection interval dynamically
func (c *Collector) UpdateInterval(newInterval time.Duration) {
	if !c.running || newInterval <= 0 {
		return
	}
	// Non-blocking send (channel is buffered)
	select {
	case c.intervalCh <- newInterval:
	default:
		// Channel full: an earlier change is still pending, this one is dropped
	}
}

func (c *Collector) collectLoop() {
	currentInterval := c.currentInterval
	ticker := time.NewTicker(currentInterval)
	defer ticker.Stop()

	c.Collect()

	for {
		select {
		case <-ticker.C:
			c.Collect()
		case newInterval := <-c.intervalCh:
			if newInterval != currentInterval {
				ticker.Stop()
				currentInterval = newInterval
				c.currentInterval = currentInterval
				ticker = time.NewTicker(currentInterval)
			}
		case <-c.stopCh:
			return
		}
	}
}

// Collect samples every registered monitor once
func (c *Collector) Collect() {
	if !IsInitialized() {
		return
	}

	for _, src := range RegisteredMonitors() {
		PublishSnapshot(src.Name(), src.Snapshot())
	}
}
