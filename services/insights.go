package services

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/boy-johnny/fraud-data/models"
	"github.com/boy-johnny/fraud-data/utils"
)

// Chart titles and axis labels handed to the renderers.
const (
	MonthlyTitle  = "每月詐騙LINE ID通報數量趨勢圖"
	MonthlyXLabel = "月份"
	MonthlyYLabel = "通報數量"
	WeeklyTitle   = "每週各日詐騙通報數量分佈"
	WeeklyXLabel  = "星期"
	WeeklyYLabel  = "通報總數量"
)

// InsightService aggregates reports into count series and prints summaries.
type InsightService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger, out: os.Stdout}
}

// SetOutput redirects Print.
func (s *InsightService) SetOutput(w io.Writer) {
	s.out = w
}

// Monthly counts reports per year-month in ascending calendar order.
// Months without reports are absent.
func (s *InsightService) Monthly(reports []models.Report) models.CountSeries {
	counts := make(map[models.YearMonth]int)
	for _, r := range reports {
		counts[r.YearMonth]++
	}

	keys := make([]models.YearMonth, 0, len(counts))
	for ym := range counts {
		keys = append(keys, ym)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})

	series := models.CountSeries{
		Title:   MonthlyTitle,
		XLabel:  MonthlyXLabel,
		YLabel:  MonthlyYLabel,
		Buckets: make([]models.Bucket, 0, len(keys)),
	}
	for _, ym := range keys {
		series.Buckets = append(series.Buckets, models.Bucket{Key: ym.String(), Count: counts[ym]})
	}
	return series
}

// Weekly counts reports per weekday, always Monday to Sunday with explicit zeros.
func (s *InsightService) Weekly(reports []models.Report) models.CountSeries {
	counts := make(map[string]int, len(WeekdayOrder))
	for _, r := range reports {
		counts[r.DayOfWeek]++
	}

	series := models.CountSeries{
		Title:   WeeklyTitle,
		XLabel:  WeeklyXLabel,
		YLabel:  WeeklyYLabel,
		Buckets: make([]models.Bucket, 0, len(WeekdayOrder)),
	}
	for _, day := range WeekdayOrder {
		series.Buckets = append(series.Buckets, models.Bucket{Key: day, Count: counts[day]})
	}
	return series
}

// Generate fills both series of the analysis from its reports.
func (s *InsightService) Generate(a *models.Analysis) {
	a.Monthly = s.Monthly(a.Reports)
	a.Weekly = s.Weekly(a.Reports)
	s.logger.Info("[insights] %d reports across %d months", len(a.Reports), len(a.Monthly.Buckets))
}

// Print writes the console summary: schema, sample rows, recent months and the weekly table.
func (s *InsightService) Print(a *models.Analysis, sampleRows, recentMonths int) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)
	w := s.out

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 LINE ID FRAUD REPORT INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	// Schema
	fmt.Fprintf(w, "\033[1;33m  Schema\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Source       : %s\n", a.SourcePath)
	fmt.Fprintf(w, "  Rows read    : \033[1m%d\033[0m\n", a.TotalRows)
	fmt.Fprintf(w, "  Rows kept    : \033[1m%d\033[0m\n", len(a.Reports))
	fmt.Fprintf(w, "  Rows dropped : \033[1m%d\033[0m (invalid report date)\n", a.Dropped)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-3s %-20s %-10s %s\n", "#", "Column", "Non-empty", "Type")
	for i, c := range a.Columns {
		fmt.Fprintf(w, "  %-3d %-20s %-10d %s\n", i, truncate(c.Name, 20), c.NonEmpty, c.Type)
	}
	fmt.Fprintln(w)

	// Sample
	fmt.Fprintf(w, "\033[1;33m  First %d Reports\033[0m\n", sampleRows)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(a.Reports) == 0 {
		fmt.Fprintf(w, "  No reports\n")
	}
	for i, r := range a.Reports {
		if i >= sampleRows {
			break
		}
		fmt.Fprintf(w, "  %-8s %-24s %s %-9s %s\n",
			truncate(r.SerialNo, 8), truncate(r.LineID, 24), r.ReportDate.Format("2006-01-02"),
			r.DayOfWeek, r.YearMonth)
	}
	fmt.Fprintln(w)

	// Monthly
	fmt.Fprintf(w, "\033[1;33m  Reports per Month (last %d)\033[0m\n", recentMonths)
	fmt.Fprintf(w, "  %s\n", thin)
	recent := a.Monthly.Tail(recentMonths)
	if len(recent) == 0 {
		fmt.Fprintf(w, "  No monthly data\n")
	}
	printBars(w, recent)
	fmt.Fprintln(w)

	// Weekly
	fmt.Fprintf(w, "\033[1;33m  Reports per Weekday\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	printBars(w, a.Weekly.Buckets)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

// printBars scales bars so the largest count spans barWidth cells.
func printBars(w io.Writer, buckets []models.Bucket) {
	const barWidth = 30
	peak := 0
	for _, b := range buckets {
		if b.Count > peak {
			peak = b.Count
		}
	}
	for _, b := range buckets {
		n := 0
		if peak > 0 {
			n = b.Count * barWidth / peak
		}
		fmt.Fprintf(w, "  %-10s %-30s %d\n", b.Key, strings.Repeat("█", n), b.Count)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
