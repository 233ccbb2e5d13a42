package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height int
	Samples       int             // Samples per pixel
	Workers       int             // Parallel workers used
	Integrator    string          // Integrator kind
	CameraRays    int             // Camera rays traced
	Duration      time.Duration   // Wall time of the whole render
	PassTimes     []time.Duration // Wall time of each sample pass
}

// RaysPerSecond returns the camera ray throughput
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.CameraRays) / s.Duration.Seconds()
}

// SlowestPass returns the longest sample pass
func (s RenderStats) SlowestPass() time.Duration {
	var slowest time.Duration
	for _, p := range s.PassTimes {
		slowest = max(slowest, p)
	}
	return slowest
}

// WriteTable renders the statistics as a text table
func (s RenderStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Integrator", s.Integrator})
	table.Append([]string{"Samples per pixel", fmt.Sprintf("%d", s.Samples)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"Camera rays", fmt.Sprintf("%d", s.CameraRays)})
	table.Append([]string{"Slowest pass", s.SlowestPass().String()})
	table.Append([]string{"Rays per second", fmt.Sprintf("%.0f", s.RaysPerSecond())})
	table.Append([]string{"Total time", s.Duration.String()})
	table.Render()
}
