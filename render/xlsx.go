package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/boy-johnny/fraud-data/models"
	"github.com/boy-johnny/fraud-data/utils"
)

// Workbook layout.
const (
	XLSXFile     = "report.xlsx"
	MonthlySheet = "Monthly"
	WeeklySheet  = "Weekly"
)

// XLSXRenderer writes both series into a workbook with native Excel charts.
type XLSXRenderer struct {
	logger *utils.Logger
}

func NewXLSXRenderer(logger *utils.Logger) *XLSXRenderer {
	return &XLSXRenderer{logger: logger}
}

// Render writes XLSXFile into dir and returns its path.
func (r *XLSXRenderer) Render(a *models.Analysis, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("xlsx: create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MonthlySheet); err != nil {
		return "", fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(WeeklySheet); err != nil {
		return "", fmt.Errorf("xlsx: new sheet: %w", err)
	}

	if err := writeSeries(f, MonthlySheet, "year_month", a.Monthly); err != nil {
		return "", err
	}
	if err := writeSeries(f, WeeklySheet, "day_of_week", a.Weekly); err != nil {
		return "", err
	}

	if len(a.Monthly.Buckets) > 0 {
		if err := f.AddChart(MonthlySheet, "D2", seriesChart(excelize.Line, MonthlySheet, a.Monthly, 960, 440)); err != nil {
			return "", fmt.Errorf("xlsx: monthly chart: %w", err)
		}
	}
	if err := f.AddChart(WeeklySheet, "D2", seriesChart(excelize.Col, WeeklySheet, a.Weekly, 640, 380)); err != nil {
		return "", fmt.Errorf("xlsx: weekly chart: %w", err)
	}

	path := filepath.Join(dir, XLSXFile)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("xlsx: save %q: %w", path, err)
	}

	r.logger.Info("[render] Workbook written to %s", path)
	return path, nil
}

func writeSeries(f *excelize.File, sheet, keyHeader string, s models.CountSeries) error {
	if err := f.SetSheetRow(sheet, "A1", &[]any{keyHeader, "count"}); err != nil {
		return fmt.Errorf("xlsx: %s header: %w", sheet, err)
	}
	for i, b := range s.Buckets {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", sheet, i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{b.Key, b.Count}); err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", sheet, i, err)
		}
	}
	return nil
}

func seriesChart(kind excelize.ChartType, sheet string, s models.CountSeries, width, height uint) *excelize.Chart {
	last := len(s.Buckets) + 1
	series := excelize.ChartSeries{
		Name:       fmt.Sprintf("%s!$B$1", sheet),
		Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, last),
		Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheet, last),
	}
	if kind == excelize.Line {
		series.Marker = excelize.ChartMarker{Symbol: "circle", Size: 6}
	}

	return &excelize.Chart{
		Type:      kind,
		Series:    []excelize.ChartSeries{series},
		Title:     []excelize.RichTextRun{{Text: s.Title}},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: s.XLabel}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: s.YLabel}}, MajorGridLines: true},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: width, Height: height},
	}
}
