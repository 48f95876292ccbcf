package monitoring

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.IncAdmissions()
	m.IncAdmissions()
	m.IncRejections()
	m.IncReports()
	m.IncPersistFailures()
	m.IncCommands("reduce_speed")
	m.IncCommands("reduce_speed")
	m.IncCommands("accelerate")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.admissions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFailures))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.commands.WithLabelValues("reduce_speed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("accelerate")))
}

func TestMetrics_ObserveSweep(t *testing.T) {
	m := NewMetrics()

	m.ObserveSweep(3, 2, nil)
	m.ObserveSweep(5, 5, errors.New("database is locked"))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.sessionsReclaimed))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.vehiclesInactive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sweeps.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sweeps.WithLabelValues("error")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.IncAdmissions()
	m.IncCommands("accelerate")
	m.ObserveSweep(1, 1, nil)
	m.SetActiveStreams(4)
}

func TestMetrics_HandlerRefreshesGauges(t *testing.T) {
	m := NewMetrics()

	rec := httptest.NewRecorder()
	m.Handler(func() { m.SetActiveStreams(7) }).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "tracker_active_streams 7"), "gauge missing from scrape:\n%s", body)
}
