package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/siddarth709/Portfolio/internal/mirror"
)

var (
	mirrorPushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "mirror",
			Name:      "pushes_total",
			Help:      "远端推送次数，按后端与结果（ok/skipped/failed）区分。",
		},
		[]string{"backend", "result"},
	)

	mirrorPushDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "mirror",
			Name:      "push_duration_seconds",
			Help:      "远端推送耗时分布（秒）。",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	mirrorRestoresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "mirror",
			Name:      "restores_total",
			Help:      "启动恢复的逐文件结果（restored/missing/failed）。",
		},
		[]string{"backend", "result"},
	)
)

// InstrumentMirror 为任意镜像后端包上 Prometheus 计数。
func InstrumentMirror(m mirror.Mirror) mirror.Mirror {
	return instrumentedMirror{next: m}
}

type instrumentedMirror struct {
	next mirror.Mirror
}

func (m instrumentedMirror) Name() string { return m.next.Name() }

func (m instrumentedMirror) Push(ctx context.Context, change mirror.Change) mirror.Result {
	backend := m.next.Name()
	start := time.Now()
	res := m.next.Push(ctx, change)
	mirrorPushDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())

	result := "ok"
	switch {
	case res.Err != nil:
		result = "failed"
	case res.Skipped:
		result = "skipped"
	}
	mirrorPushesTotal.WithLabelValues(backend, result).Inc()
	return res
}

func (m instrumentedMirror) Restore(ctx context.Context, paths []string) mirror.Report {
	backend := m.next.Name()
	report := m.next.Restore(ctx, paths)
	mirrorRestoresTotal.WithLabelValues(backend, "restored").Add(float64(len(report.Restored)))
	mirrorRestoresTotal.WithLabelValues(backend, "missing").Add(float64(len(report.Missing)))
	mirrorRestoresTotal.WithLabelValues(backend, "failed").Add(float64(len(report.Failed)))
	return report
}
