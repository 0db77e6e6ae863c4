package observability

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mcwire"

// Registry holds every mcwire metric. It is separate from the default
// registerer so dumps carry no runtime collectors.
var Registry = prometheus.NewRegistry()

var (
	registerOnce sync.Once

	packetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "packet",
			Name:      "total",
			Help:      "Packets encoded or decoded by the CLI.",
		},
		[]string{"op", "state", "direction", "packet", "success"},
	)
	blocklistFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blocklist",
			Name:      "fetch_total",
			Help:      "Deny-list fetch attempts.",
		},
		[]string{"status", "success"},
	)
	blocklistDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "blocklist",
			Name:      "fetch_duration_seconds",
			Help:      "Deny-list fetch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"success"},
	)
	blocklistHashes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "blocklist",
			Name:      "hashes",
			Help:      "Hashes in the last loaded deny-list.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		Registry.MustRegister(packetsTotal, blocklistFetches, blocklistDuration, blocklistHashes)
	})
}

func RecordPacket(op, state, direction, packet string, success bool) {
	RegisterMetrics()
	packetsTotal.WithLabelValues(op, state, direction, packet, strconv.FormatBool(success)).Inc()
}

// RecordBlocklistFetch records one fetch. status is 0 when no response arrived.
func RecordBlocklistFetch(status, hashes int, duration time.Duration, success bool) {
	RegisterMetrics()
	successLabel := strconv.FormatBool(success)
	blocklistFetches.WithLabelValues(strconv.Itoa(status), successLabel).Inc()
	blocklistDuration.WithLabelValues(successLabel).Observe(duration.Seconds())
	if success {
		blocklistHashes.Set(float64(hashes))
	}
}

// WriteText writes counters and gauges as "name{labels} value" lines, sorted.
// Histograms are reduced to their sample count.
func WriteText(w io.Writer) error {
	RegisterMetrics()
	families, err := Registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			name := mf.GetName()
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				name += "_count"
				value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, value))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
