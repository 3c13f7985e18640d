// Package chart draws forecast line charts as PNG images, either streamed to
// a writer or saved under the static plots directory.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"aqicast/internal/common/fsutil"
	"aqicast/internal/forecast"
)

// PlotsSubdir is the directory under the static root that holds saved charts.
const PlotsSubdir = "plots"

const (
	defaultWidth  = 8 * vg.Inch
	defaultHeight = 4 * vg.Inch
)

var seriesColor = color.RGBA{B: 255, A: 255}

// ErrEmpty is returned when asked to draw a forecast without points.
var ErrEmpty = errors.New("chart: forecast has no points")

// Options tweak a rendered chart. Zero values pick the defaults.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// DefaultTitle is used when Options.Title is empty.
func DefaultTitle(city string) string { return "AQI Forecast for " + city }

// Render builds the plot for res: one line with a marker per day, date ticks,
// grid and legend.
func Render(res forecast.Result, opts Options) (*plot.Plot, error) {
	if len(res.Points) == 0 {
		return nil, ErrEmpty
	}
	loc := res.Points[0].Date.Location()

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = DefaultTitle(res.City)
	}
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "AQI"
	p.X.Tick.Marker = plot.TimeTicks{
		Format: "2006-01-02",
		Time:   func(t float64) time.Time { return time.Unix(int64(t), 0).In(loc) },
	}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(res.Points))
	for i, pt := range res.Points {
		xys[i].X = float64(pt.Date.Unix())
		xys[i].Y = pt.Value
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	line.Color = seriesColor
	points.Shape = draw.CircleGlyph{}
	points.Color = seriesColor
	p.Add(line, points)
	p.Legend.Add("Predicted AQI", line, points)
	p.Legend.Top = true
	return p, nil
}

// WritePNG renders res and writes the PNG to w. Nothing touches the disk.
func WritePNG(w io.Writer, res forecast.Result, opts Options) error {
	p, err := Render(res, opts)
	if err != nil {
		return err
	}
	width, height := opts.size()
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// FileName is the saved chart name for city.
func FileName(city string) string { return strings.ToLower(city) + "_forecast.png" }

// Saver writes charts into <staticDir>/plots.
type Saver struct {
	staticDir string
	opts      Options
}

// NewSaver creates the plots directory if needed.
func NewSaver(staticDir string, opts Options) (*Saver, error) {
	base, err := fsutil.ExpandHome(staticDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(base, PlotsSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create plots dir: %w", err)
	}
	return &Saver{staticDir: base, opts: opts}, nil
}

// StaticDir is the directory the relative paths returned by Save resolve against.
func (s *Saver) StaticDir() string { return s.staticDir }

// Save renders res and replaces <city>_forecast.png. It returns the path
// relative to the static directory, with forward slashes.
func (s *Saver) Save(res forecast.Result) (string, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, res, s.opts); err != nil {
		return "", err
	}
	name := FileName(res.City)
	if err := fsutil.WriteFileAtomic(filepath.Join(s.staticDir, PlotsSubdir, name), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("save chart: %w", err)
	}
	return path.Join(PlotsSubdir, name), nil
}
