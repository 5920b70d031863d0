package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neerajchowdary889/RWMonitor/types"
)

var (
	// exporter holds the HTTP server serving metrics and monitor state
	exporter     *http.Server
	exporterLock sync.Mutex

	// exporterCollector samples registered monitors while the exporter runs
	exporterCollector *Collector
)

// monitorStatus is one row of the exporter's live monitor summary,
// built from a Snapshot taken at request time.
type monitorStatus struct {
	Name            string `json:"name"`
	Occupancy       string `json:"occupancy"`
	ActiveReaders   int    `json:"active_readers"`
	ActiveWriters   int    `json:"active_writers"`
	WaitingReaders  int    `json:"waiting_readers"`
	WaitingWriters  int    `json:"waiting_writers"`
	BlockNewReaders bool   `json:"block_new_readers"`
	BlockNewWriters bool   `json:"block_new_writers"`
}

func summarize() []monitorStatus {
	sources := RegisteredMonitors()
	out := make([]monitorStatus, 0, len(sources))
	for _, src := range sources {
		snap := src.Snapshot()
		out = append(out, monitorStatus{
			Name:            src.Name(),
			Occupancy:       snap.Occupancy.String(),
			ActiveReaders:   snap.ActiveReaders,
			ActiveWriters:   snap.ActiveWriters,
			WaitingReaders:  snap.WaitingReaders,
			WaitingWriters:  snap.WaitingWriters,
			BlockNewReaders: snap.BlockNewReaders,
			BlockNewWriters: snap.BlockNewWriters,
		})
	}
	return out
}

// StartMetricsServer exposes the Prometheus instruments plus a live view
// of every registered monitor:
//
//	/metrics  - Prometheus scrape endpoint
//	/monitors - JSON snapshot of each registered monitor
//	/health   - overall status with quiescent/busy monitor counts
//	/         - HTML index listing the registered monitors
//
// addr is the address to listen on (e.g., ":9090"). updateInterval is
// how often the collector refreshes the state gauges (0 = default).
func StartMetricsServer(addr string, updateInterval time.Duration) error {
	exporterLock.Lock()
	defer exporterLock.Unlock()

	if exporter != nil {
		return fmt.Errorf("metrics server is already running on %s", exporter.Addr)
	}

	InitMetrics()

	exporterCollector = NewCollector(updateInterval)
	exporterCollector.Start()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/monitors", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summarize()); err != nil {
			log.Printf("monitor summary encoding failed: %v", err)
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		statuses := summarize()
		busy := 0
		for _, s := range statuses {
			if s.Occupancy != types.Idle.String() || s.WaitingReaders > 0 || s.WaitingWriters > 0 {
				busy++
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "ok",
			"monitors":  len(statuses),
			"busy":      busy,
			"quiescent": len(statuses) - busy,
		})
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<!DOCTYPE html>\n<html>\n<head><title>RWMonitor</title></head>\n<body>\n")
		fmt.Fprint(w, "<h1>Reader/Writer Monitor Exporter</h1>\n")
		names := sourcesSnapshotNames()
		fmt.Fprintf(w, "<p>%d monitor(s) registered:</p>\n<ul>\n", len(names))
		for _, name := range names {
			fmt.Fprintf(w, "<li>%s</li>\n", name)
		}
		fmt.Fprint(w, "</ul>\n")
		fmt.Fprint(w, `<p><a href="/metrics">Prometheus metrics</a> | <a href="/monitors">monitor snapshots</a> | <a href="/health">health</a></p>`+"\n")
		fmt.Fprint(w, "</body>\n</html>\n")
	})

	exporter = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func(server *http.Server) {
		log.Printf("Starting metrics server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics server error: %v", err)
		}
	}(exporter)

	return nil
}

func sourcesSnapshotNames() []string {
	sources := RegisteredMonitors()
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name())
	}
	return names
}

// StopMetricsServer stops the collector and shuts the exporter down
// gracefully.
func StopMetricsServer() error {
	exporterLock.Lock()
	defer exporterLock.Unlock()

	if exporter == nil {
		return nil
	}

	exporterCollector.Stop()
	exporterCollector = nil

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := exporter.Shutdown(ctx)
	exporter = nil
	return err
}
