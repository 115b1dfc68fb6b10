package raycastviz

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/velocity.report/internal/raycast"
)

// WriteScanScatter renders a top-down (x,z) scatter of a scan's hit
// points as a self-contained HTML page, grounded in the teacher's
// internal/lidar/monitor.WebServer.handleBackgroundGridPolar — a debug
// polar/XY scatter built with charts.NewScatter() and opts.ScatterData.
func WriteScanScatter(w io.Writer, hits []float32, origin raycast.Vec3, title string) error {
	n := len(hits) / 3
	if n == 0 {
		return fmt.Errorf("raycastviz: no hits to scatter")
	}

	data := make([]opts.ScatterData, 0, n)
	maxAbs := 0.0
	for i := 0; i < n; i++ {
		x := float64(hits[3*i]) - origin.X
		z := float64(hits[3*i+2]) - origin.Z
		if a := math.Abs(x); a > maxAbs {
			maxAbs = a
		}
		if a := math.Abs(z); a > maxAbs {
			maxAbs = a
		}
		data = append(data, opts.ScatterData{Value: []interface{}{x, z}})
	}

	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("hits=%d", n)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Z (m)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("hits", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	return scatter.Render(w)
}
