// Package raycastviz renders debug-only diagnostics for a completed scan:
// a static range-histogram PNG and an interactive HTML scatter. Neither
// is a "visualization adapter" in spec.md §1's sense (those turn hits
// into renderable 3D scene objects for a host application) — these are
// flat developer-facing reports, analogous to the teacher's monitor
// debug endpoints. internal/raycast has no knowledge of this package.
package raycastviz

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/velocity.report/internal/raycast"
)

// hitRanges computes the Euclidean distance of each hit point in hits
// (a flat [x,y,z,...] buffer) from origin.
func hitRanges(hits []float32, origin raycast.Vec3) []float64 {
	n := len(hits) / 3
	ranges := make([]float64, n)
	for i := 0; i < n; i++ {
		dx := float64(hits[3*i]) - origin.X
		dy := float64(hits[3*i+1]) - origin.Y
		dz := float64(hits[3*i+2]) - origin.Z
		ranges[i] = math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return ranges
}

// SaveRangeHistogram renders a PNG histogram of a scan's hit ranges
// (distance from the sensor origin) to path, grounded in the teacher's
// internal/lidar/monitor.GridPlotter.generateRingPlot PNG-saving pattern.
func SaveRangeHistogram(hits []float32, origin raycast.Vec3, title, path string) error {
	ranges := hitRanges(hits, origin)
	if len(ranges) == 0 {
		return fmt.Errorf("raycastviz: no hits to histogram")
	}

	values := make(plotter.Values, len(ranges))
	copy(values, ranges)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Range (m)"
	p.Y.Label.Text = "Count"

	hist, err := plotter.NewHist(values, 32)
	if err != nil {
		return fmt.Errorf("raycastviz: failed to build histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("raycastviz: failed to save histogram to %s: %w", path, err)
	}
	return nil
}
