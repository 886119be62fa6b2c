// Package render turns the monthly and weekly count series into chart artefacts.
package render

import (
	"fmt"
	"math"

	"github.com/boy-johnny/fraud-data/models"
)

// Element ids of the two charts inside the HTML page.
const (
	MonthlyChartID = "monthly"
	WeeklyChartID  = "weekly"
)

const (
	padLeft   = 70
	padRight  = 30
	padTop    = 50
	padBottom = 80
	yTicks    = 5
)

type point struct {
	X, Y  float64
	Label string
	Count int
}

type bar struct {
	X, Y, W, H float64
	Label      string
	Count      int
}

type tick struct {
	Y     float64
	Label string
}

// chart is the precomputed SVG geometry of one series.
type chart struct {
	ID            string
	Title         string
	XLabel        string
	YLabel        string
	Width, Height float64
	Left, Right   float64
	Top, Bottom   float64
	Ticks         []tick
	Points        []point
	Bars          []bar
	Polyline      string
	Empty         bool
	RotateLabels  bool
}

func newChart(id string, s models.CountSeries, width, height float64) chart {
	c := chart{
		ID:     id,
		Title:  s.Title,
		XLabel: s.XLabel,
		YLabel: s.YLabel,
		Width:  width,
		Height: height,
		Left:   padLeft,
		Right:  width - padRight,
		Top:    padTop,
		Bottom: height - padBottom,
		Empty:  len(s.Buckets) == 0,
	}

	peak := niceCeil(maxCount(s))
	for i := 0; i <= yTicks; i++ {
		v := peak * float64(i) / yTicks
		c.Ticks = append(c.Ticks, tick{Y: c.y(v, peak), Label: fmt.Sprintf("%g", v)})
	}
	return c
}

func (c chart) y(v, peak float64) float64 {
	return c.Bottom - (c.Bottom-c.Top)*v/peak
}

// lineChart lays buckets out as evenly spaced points.
func lineChart(s models.CountSeries, width, height float64) chart {
	c := newChart(MonthlyChartID, s, width, height)
	peak := niceCeil(maxCount(s))
	n := len(s.Buckets)
	c.RotateLabels = n > 12

	step := 0.0
	if n > 1 {
		step = (c.Right - c.Left) / float64(n-1)
	}
	for i, b := range s.Buckets {
		x := c.Left + step*float64(i)
		if n == 1 {
			x = (c.Left + c.Right) / 2
		}
		p := point{X: x, Y: c.y(float64(b.Count), peak), Label: b.Key, Count: b.Count}
		c.Points = append(c.Points, p)
		if i > 0 {
			c.Polyline += " "
		}
		c.Polyline += fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return c
}

// barChart lays buckets out as equal-width columns.
func barChart(s models.CountSeries, width, height float64) chart {
	c := newChart(WeeklyChartID, s, width, height)
	peak := niceCeil(maxCount(s))
	n := len(s.Buckets)
	if n == 0 {
		return c
	}

	slot := (c.Right - c.Left) / float64(n)
	w := slot * 0.6
	for i, b := range s.Buckets {
		top := c.y(float64(b.Count), peak)
		c.Bars = append(c.Bars, bar{
			X:     c.Left + slot*float64(i) + (slot-w)/2,
			Y:     top,
			W:     w,
			H:     c.Bottom - top,
			Label: b.Key,
			Count: b.Count,
		})
	}
	return c
}

func maxCount(s models.CountSeries) int {
	peak := 0
	for _, b := range s.Buckets {
		if b.Count > peak {
			peak = b.Count
		}
	}
	return peak
}

// niceCeil rounds v up to 1, 2 or 5 times a power of ten so tick labels stay readable.
func niceCeil(v int) float64 {
	if v <= 0 {
		return yTicks
	}
	mag := math.Pow(10, math.Floor(math.Log10(float64(v))))
	for _, m := range []float64{1, 2, 5, 10} {
		if float64(v) <= m*mag {
			ceil := m * mag
			if ceil < yTicks {
				return yTicks
			}
			return ceil
		}
	}
	return 10 * mag
}
