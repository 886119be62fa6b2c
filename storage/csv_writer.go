package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/boy-johnny/fraud-data/models"
)

// Export file names written into the output directory.
const (
	ReportsFile = "reports.csv"
	MonthlyFile = "monthly_counts.csv"
	WeeklyFile  = "weekly_counts.csv"
)

// CSVWriter exports cleaned reports and both count series as CSV files.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates the output directory if needed and returns a writer for it.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// Write exports the analysis, overwriting previous files.
func (c *CSVWriter) Write(a *models.Analysis) error {
	rows := make([][]string, 0, len(a.Reports))
	for _, r := range a.Reports {
		rows = append(rows, []string{
			r.SerialNo,
			r.LineID,
			r.ReportDate.Format("2006-01-02"),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			r.DayOfWeek,
			r.YearMonth.String(),
		})
	}
	if err := c.writeFile(ReportsFile, []string{
		models.FieldSerialNo, models.FieldLineID, models.FieldReportDate,
		"year", "month", "day_of_week", "year_month",
	}, rows); err != nil {
		return err
	}

	if err := c.writeFile(MonthlyFile, []string{"year_month", "count"}, seriesRows(a.Monthly)); err != nil {
		return err
	}
	return c.writeFile(WeeklyFile, []string{"day_of_week", "count"}, seriesRows(a.Weekly))
}

func (c *CSVWriter) writeFile(name string, header []string, rows [][]string) error {
	path := filepath.Join(c.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csv: write rows: %w", err)
	}
	return f.Close()
}

func seriesRows(s models.CountSeries) [][]string {
	rows := make([][]string, 0, len(s.Buckets))
	for _, b := range s.Buckets {
		rows = append(rows, []string{b.Key, strconv.Itoa(b.Count)})
	}
	return rows
}
