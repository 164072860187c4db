package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/siddarth709/Portfolio/internal/mirror"
)

type scriptedMirror struct {
	name   string
	result mirror.Result
	report mirror.Report
}

func (m scriptedMirror) Name() string { return m.name }
func (m scriptedMirror) Push(context.Context, mirror.Change) mirror.Result {
	return m.result
}
func (m scriptedMirror) Restore(context.Context, []string) mirror.Report {
	return m.report
}

func TestInstrumentMirrorCountsPushes(t *testing.T) {
	ok := InstrumentMirror(scriptedMirror{name: "test-ok"})
	failed := InstrumentMirror(scriptedMirror{name: "test-failed", result: mirror.Result{Err: errors.New("boom")}})

	ok.Push(context.Background(), mirror.Change{})
	ok.Push(context.Background(), mirror.Change{})
	res := failed.Push(context.Background(), mirror.Change{})

	assert.Error(t, res.Err)
	assert.Equal(t, "test-ok", ok.Name())
	assert.Equal(t, 2.0, testutil.ToFloat64(mirrorPushesTotal.WithLabelValues("test-ok", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mirrorPushesTotal.WithLabelValues("test-failed", "failed")))
}

func TestInstrumentMirrorCountsRestores(t *testing.T) {
	m := InstrumentMirror(scriptedMirror{name: "test-restore", report: mirror.Report{
		Restored: []string{"data/a.json", "data/b.json"},
		Missing:  []string{"data/c.json"},
		Failed:   map[string]error{"data/d.json": errors.New("x")},
	}})

	report := m.Restore(context.Background(), nil)
	assert.Len(t, report.Restored, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(mirrorRestoresTotal.WithLabelValues("test-restore", "restored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mirrorRestoresTotal.WithLabelValues("test-restore", "missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mirrorRestoresTotal.WithLabelValues("test-restore", "failed")))
}
