package main

import (
	"log"
	"math/rand"
	"sync"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/neerajchowdary889/RWMonitor/Helper/Guard"
	"github.com/neerajchowdary889/RWMonitor/Monitor"
	"github.com/neerajchowdary889/RWMonitor/metrics"
	"github.com/neerajchowdary889/RWMonitor/types"
)

var (
	readerTasks  = flag.Int("readers", 16, "number of reader tasks to spawn")
	writerTasks  = flag.Int("writers", 2, "number of writer tasks to spawn")
	iterations   = flag.Int("iterations", 1000, "acquire/release cycles per task")
	depth        = flag.Int("depth", 3, "reentrant acquisition depth per cycle")
	holdTime     = flag.Duration("hold", 200*time.Microsecond, "maximum time a task keeps the lock per cycle")
	metricsAddr  = flag.String("metrics-addr", ":19090", "address for the Prometheus exporter")
	sampleEvery  = flag.Duration("sample-interval", 2*time.Second, "metrics collector sampling interval")
)

func main() {
	flag.Parse()

	if err := metrics.StartMetricsServer(*metricsAddr, *sampleEvery); err != nil {
		log.Fatalf("failed to start metrics server: %v", err)
	}
	log.Printf("✓ Metrics exporter listening on %s", *metricsAddr)

	m := Monitor.New(*readerTasks, *writerTasks,
		Monitor.WithName("example"),
		Monitor.WithMetrics(true),
	)
	guard := Guard.NewGuardHelper()

	start := time.Now()
	var wg sync.WaitGroup

	// Reader fleet: reentrant bursts of shared acquisitions
	for i := 0; i < *readerTasks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := types.NextHolderID()
			for n := 0; n < *iterations; n++ {
				m.AcquireRead(id)
				for d := 1; d < *depth; d++ {
					m.AcquireRead(id)
				}
				time.Sleep(time.Duration(rand.Int63n(int64(*holdTime) + 1)))
				for d := 0; d < *depth; d++ {
					m.Release(id)
				}
			}
		}()
	}

	// Writer fleet: exclusive sections through the guard helper
	for i := 0; i < *writerTasks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := types.NextHolderID()
			for n := 0; n < *iterations; n++ {
				guard.WithWrite(m, id, func() {
					time.Sleep(time.Duration(rand.Int63n(int64(*holdTime) + 1)))
				})
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	snap := m.Snapshot()
	log.Printf("✓ Workload finished in %s (final state: %s, waiting %d/%d)",
		elapsed, snap.Occupancy, snap.WaitingReaders, snap.WaitingWriters)

	m.Destroy()
	log.Println("✓ Monitor destroyed cleanly")

	if err := metrics.StopMetricsServer(); err != nil {
		log.Printf("metrics server shutdown: %v", err)
	}
}
