package services

import (
	"time"

	"github.com/boy-johnny/fraud-data/models"
)

// WeekdayOrder is the fixed Monday-first order of the weekly series.
var WeekdayOrder = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayName returns the English name of t's weekday, independent of locale.
func WeekdayName(t time.Time) string {
	return WeekdayOrder[weekdayIndex(t.Weekday())]
}

// weekdayIndex maps time.Weekday (Sunday = 0) onto WeekdayOrder (Monday = 0).
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// DeriveFeatures builds Reports with calendar features. Every row must be valid.
func DeriveFeatures(rows []models.ParsedRow) []models.Report {
	reports := make([]models.Report, len(rows))
	for i, r := range rows {
		d := r.ReportDate
		reports[i] = models.Report{
			SerialNo:   r.SerialNo,
			LineID:     r.LineID,
			ReportDate: d,
			Year:       d.Year(),
			Month:      int(d.Month()),
			DayOfWeek:  WeekdayName(d),
			YearMonth:  models.YearMonthOf(d),
		}
	}
	return reports
}
