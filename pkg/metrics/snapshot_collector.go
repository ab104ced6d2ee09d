package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartstow/move-planner/internal/store/model"
	"go.uber.org/zap"
)

const collectTimeout = 5 * time.Second

// StatsSource is anything able to summarize the saved snapshots.
type StatsSource interface {
	Statistics(ctx context.Context) (model.SnapshotStats, error)
}

type snapshotStatsCollector struct {
	source              StatsSource
	totalSnapshots      *prometheus.Desc
	totalByTableVersion *prometheus.Desc
}

func NewSnapshotStatsCollector(s StatsSource) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_snapshots_%s", movePlanner, name)
	}

	return &snapshotStatsCollector{
		source: s,
		totalSnapshots: prometheus.NewDesc(
			fqName("total"),
			"Total number of saved snapshots.",
			nil,
			prometheus.Labels{},
		),
		totalByTableVersion: prometheus.NewDesc(
			fqName("by_table_version_total"),
			"Total saved snapshots by reference table version.",
			[]string{tableVersionLabel},
			prometheus.Labels{},
		),
	}
}

// RegisterSnapshotStatsCollector exposes the saved snapshot statistics on the default registry.
func RegisterSnapshotStatsCollector(s StatsSource) error {
	return prometheus.Register(NewSnapshotStatsCollector(s))
}

func (c *snapshotStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalSnapshots
	ch <- c.totalByTableVersion
}

// Collect implements Collector.
func (c *snapshotStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	stats, err := c.source.Statistics(ctx)
	if err != nil {
		zap.S().Named("snapshot_collector").Errorf("failed to collect snapshot statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.totalSnapshots, prometheus.GaugeValue, float64(stats.Total))

	for version, total := range stats.TotalByTableVersion {
		ch <- prometheus.MustNewConstMetric(c.totalByTableVersion, prometheus.GaugeValue, float64(total), version)
	}
}
