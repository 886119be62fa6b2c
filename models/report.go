package models

import (
	"fmt"
	"time"
)

// Canonical field names produced by the normalizer.
const (
	FieldSerialNo   = "serial_no"
	FieldLineID     = "line_id"
	FieldReportDate = "report_date"
)

// Table is the loader's output: the header row verbatim plus every data row.
// Rows always have exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// RawRecord maps a header name to the cell value of one row.
type RawRecord map[string]string

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Record returns the i-th row as a RawRecord.
func (t *Table) Record(i int) RawRecord {
	rec := make(RawRecord, len(t.Header))
	for j, h := range t.Header {
		rec[h] = t.Rows[i][j]
	}
	return rec
}

// Column returns the index of the named header, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ParsedRow is a typed row whose report date may be absent.
// Valid is false when the raw date could not be parsed.
type ParsedRow struct {
	SerialNo   string
	LineID     string
	RawDate    string
	ReportDate time.Time
	Valid      bool
}

// Report is one fraud report that survived date filtering, with its calendar features.
type Report struct {
	SerialNo   string
	LineID     string
	ReportDate time.Time
	Year       int
	Month      int
	DayOfWeek  string
	YearMonth  YearMonth
}

// YearMonth is a calendar month bucket ordered year-major, month-minor.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the bucket containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Compare returns -1, 0 or 1 following calendar order.
func (ym YearMonth) Compare(other YearMonth) int {
	switch {
	case ym.Year < other.Year:
		return -1
	case ym.Year > other.Year:
		return 1
	case ym.Month < other.Month:
		return -1
	case ym.Month > other.Month:
		return 1
	}
	return 0
}

// Before reports whether ym is an earlier month than other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Compare(other) < 0
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Bucket is a single (key, count) entry of a CountSeries.
type Bucket struct {
	Key   string
	Count int
}

// CountSeries is an ordered sequence of buckets plus the labels a chart needs.
type CountSeries struct {
	Title   string
	XLabel  string
	YLabel  string
	Buckets []Bucket
}

// Total sums the counts of every bucket.
func (s CountSeries) Total() int {
	total := 0
	for _, b := range s.Buckets {
		total += b.Count
	}
	return total
}

// Tail returns the last n buckets, or all of them when there are fewer.
func (s CountSeries) Tail(n int) []Bucket {
	if n < 0 || n >= len(s.Buckets) {
		return s.Buckets
	}
	return s.Buckets[len(s.Buckets)-n:]
}

// ColumnInfo summarises one column of the normalized table.
type ColumnInfo struct {
	Name     string
	NonEmpty int
	Type     string
}

// Analysis holds everything a run produces.
type Analysis struct {
	RunID      string
	SourcePath string
	TotalRows  int
	Dropped    int
	Columns    []ColumnInfo
	Reports    []Report
	Monthly    CountSeries
	Weekly     CountSeries
}
