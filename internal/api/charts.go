package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/vehicle.tracker/internal/httputil"
	"github.com/banshee-data/vehicle.tracker/internal/tracking"
)

// speedChart renders the recent speed trace of a vehicle as an HTML line
// chart, with the command thresholds drawn as mark lines.
func (s *Server) speedChart(w http.ResponseWriter, r *http.Request) {
	id := vehicleID(r)
	positions, err := s.reg.Store().RecentPositions(r.Context(), id, tracking.DefaultHistorySize)
	if err != nil {
		httputil.ServiceUnavailable(w, fmt.Sprintf("failed to load history: %v", err))
		return
	}
	if len(positions) == 0 {
		httputil.NotFound(w, fmt.Sprintf("no positions recorded for %s", id))
		return
	}

	xs := make([]string, 0, len(positions))
	ys := make([]opts.LineData, 0, len(positions))
	for _, p := range positions {
		xs = append(xs, time.UnixMilli(p.ReceivedAt).UTC().Format("15:04:05"))
		ys = append(ys, opts.LineData{Value: p.SpeedKmh})
	}

	summary := tracking.SummarizeSpeeds(positions)
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Vehicle Speed", Theme: "dark", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Speed of %s", id),
			Subtitle: fmt.Sprintf("samples=%d mean=%.1f max=%.1f km/h", summary.Samples, summary.Mean, summary.Max),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "km/h", Min: 0}),
	)
	line.SetXAxis(xs).AddSeries("speed", ys,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false), ShowSymbol: opts.Bool(true)}),
		charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "reduce_speed", YAxis: tracking.HighSpeedKmh},
			opts.MarkLineNameYAxisItem{Name: "accelerate", YAxis: tracking.LowSpeedKmh},
		),
	)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
