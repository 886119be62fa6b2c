package services

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/boy-johnny/fraud-data/models"
)

// dateLayouts are tried in order before falling back to dateparse.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"2006.01.02",
	"20060102",
	"2006年1月2日",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006/1/2 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// DateParser turns raw date text into calendar dates. Failures never abort:
// the row is marked invalid and left for the Cleaner.
type DateParser struct {
	loc *time.Location
}

// NewDateParser creates a parser interpreting zone-less dates in loc.
func NewDateParser(loc *time.Location) *DateParser {
	if loc == nil {
		loc = time.UTC
	}
	return &DateParser{loc: loc}
}

// Parse returns the date at day precision, or ok=false.
func (p *DateParser) Parse(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return truncateDay(t, p.loc), true
		}
	}

	t, err := dateparse.ParseIn(s, p.loc)
	if err != nil {
		return time.Time{}, false
	}
	return truncateDay(t, p.loc), true
}

// ParseAll returns new rows with ReportDate and Valid filled in, and the
// number of rows that parsed.
func (p *DateParser) ParseAll(rows []models.ParsedRow) ([]models.ParsedRow, int) {
	out := make([]models.ParsedRow, len(rows))
	valid := 0
	for i, r := range rows {
		r.ReportDate, r.Valid = p.Parse(r.RawDate)
		if r.Valid {
			valid++
		}
		out[i] = r
	}
	return out, valid
}

// truncateDay keeps the calendar day written in the source, even when the
// text carried its own offset. loc only labels the result.
func truncateDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
