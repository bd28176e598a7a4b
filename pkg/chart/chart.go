// Package chart renders the torque, efficiency, loss and current curves of a
// bldc.Result as PNG line charts.
package chart

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ja7ad/bldc/pkg/bldc"
)

// File names written by WriteAll.
const (
	TorqueFile     = "torque_speed.png"
	EfficiencyFile = "efficiency_speed.png"
	LossesFile     = "losses_speed.png"
	CurrentFile    = "current_speed.png"
)

// Image geometry: 6.4 x 4.8 in at 200 DPI (1280 x 960 px).
const (
	Width  = 6.4 * vg.Inch
	Height = 4.8 * vg.Inch
	DPI    = 200
)

const speedLabel = "Speed [rpm]"

var errSeries = errors.New("chart: series length does not match x axis")

// Series is one named curve over the shared x axis.
type Series struct {
	Name string
	Y    []float64
}

// EnsureDir creates dir (and parents) if needed and returns its absolute
// path. Existing contents are left alone.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("chart: resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("chart: create %s: %w", abs, err)
	}
	return abs, nil
}

// WriteAll writes the four standard charts into dir, creating it if absent,
// and returns the absolute directory.
func WriteAll(dir string, res *bldc.Result) (string, error) {
	outdir, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}

	speed := res.SpeedRPM()
	effPct := res.Efficiency()
	for i := range effPct {
		effPct[i] *= 100
	}

	charts := []struct {
		file, title, ylabel string
		series              []Series
	}{
		{TorqueFile, "Torque-Speed Curve", "Torque [Nm]", []Series{{Y: res.Torque()}}},
		{EfficiencyFile, "Efficiency vs Speed", "Efficiency [%]", []Series{{Y: effPct}}},
		{LossesFile, "Losses vs Speed", "Power [W]", []Series{
			{Name: "Copper loss (I²R)", Y: res.CopperLoss()},
			{Name: "Core+mech loss (approx)", Y: res.CoreLoss()},
			{Name: "Total loss", Y: res.TotalLoss()},
		}},
		{CurrentFile, "Phase Current vs Speed", "Current [A]", []Series{{Y: res.Current()}}},
	}

	for _, c := range charts {
		p, err := Line(c.title, speedLabel, c.ylabel, speed, c.series...)
		if err != nil {
			return "", fmt.Errorf("chart: %s: %w", c.file, err)
		}
		if err := SavePNG(p, filepath.Join(outdir, c.file)); err != nil {
			return "", err
		}
	}
	return outdir, nil
}

// Line builds a gridded line chart. A legend is drawn when any series is named.
func Line(title, xlabel, ylabel string, xs []float64, series ...Series) (*plot.Plot, error) {
	if len(xs) == 0 {
		return nil, errSeries
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, s := range series {
		if len(s.Y) != len(xs) {
			return nil, fmt.Errorf("%w: %q has %d points, x has %d", errSeries, s.Name, len(s.Y), len(xs))
		}
		pts := make(plotter.XYs, len(xs))
		for j := range xs {
			pts[j].X = xs[j]
			pts[j].Y = s.Y[j]
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		if s.Name != "" {
			p.Legend.Add(s.Name, l)
		}
	}
	return p, nil
}

// SavePNG draws p onto a Width x Height canvas at DPI and writes it to path.
func SavePNG(p *plot.Plot, path string) error {
	c := vgimg.NewWith(
		vgimg.UseWH(Width, Height),
		vgimg.UseDPI(DPI),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		return fmt.Errorf("chart: cannot write png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("chart: cannot write png: %w", err)
	}
	return nil
}
