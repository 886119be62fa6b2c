package services

import (
	"fmt"

	"github.com/boy-johnny/fraud-data/models"
)

// DefaultColumnMapping maps the source export's headers to canonical field names.
var DefaultColumnMapping = map[string]string{
	"編號":      models.FieldSerialNo,
	"LINE ID": models.FieldLineID,
	"通報日期":    models.FieldReportDate,
}

// Normalizer renames raw headers to canonical field names.
type Normalizer struct {
	mapping map[string]string
}

// NewNormalizer creates a Normalizer with the given raw -> canonical mapping.
func NewNormalizer(mapping map[string]string) *Normalizer {
	return &Normalizer{mapping: mapping}
}

// Normalize returns a copy of t with renamed headers. Unknown headers pass
// through untouched and no row is dropped. A table that carries none of the
// expected columns, raw or canonical, or that ends up with the same canonical
// column twice, is a schema mismatch.
func (n *Normalizer) Normalize(t *models.Table) (*models.Table, error) {
	canonical := make(map[string]struct{}, len(n.mapping))
	for _, to := range n.mapping {
		canonical[to] = struct{}{}
	}

	header := make([]string, len(t.Header))
	recognised := 0
	for i, h := range t.Header {
		if to, ok := n.mapping[h]; ok {
			header[i] = to
			recognised++
			continue
		}
		if _, ok := canonical[h]; ok {
			recognised++
		}
		header[i] = h
	}

	if recognised == 0 {
		return nil, fmt.Errorf("normalizer: none of the expected columns in %v: %w", t.Header, models.ErrSchemaMismatch)
	}

	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		if _, ok := canonical[h]; !ok {
			continue
		}
		if _, dup := seen[h]; dup {
			return nil, fmt.Errorf("normalizer: column %q appears more than once in %v: %w", h, t.Header, models.ErrSchemaMismatch)
		}
		seen[h] = struct{}{}
	}

	return &models.Table{Header: header, Rows: t.Rows}, nil
}

// TypedRows converts a normalized table into typed rows. This is the only place
// that looks columns up by name. The report date column is mandatory.
func TypedRows(t *models.Table) ([]models.ParsedRow, error) {
	dateCol := t.Column(models.FieldReportDate)
	if dateCol < 0 {
		return nil, fmt.Errorf("normalizer: missing %q column: %w", models.FieldReportDate, models.ErrSchemaMismatch)
	}
	serialCol := t.Column(models.FieldSerialNo)
	lineCol := t.Column(models.FieldLineID)

	rows := make([]models.ParsedRow, len(t.Rows))
	for i, cells := range t.Rows {
		rows[i] = models.ParsedRow{
			SerialNo: cell(cells, serialCol),
			LineID:   cell(cells, lineCol),
			RawDate:  cells[dateCol],
		}
	}
	return rows, nil
}

// Summarize reports the non-empty count and inferred type of every column.
func Summarize(t *models.Table, parsed []models.ParsedRow) []models.ColumnInfo {
	infos := make([]models.ColumnInfo, len(t.Header))
	for i, h := range t.Header {
		infos[i] = models.ColumnInfo{Name: h, Type: "string"}
		for _, row := range t.Rows {
			if row[i] != "" {
				infos[i].NonEmpty++
			}
		}
		if h == models.FieldReportDate {
			infos[i].Type = "date"
			infos[i].NonEmpty = 0
			for _, p := range parsed {
				if p.Valid {
					infos[i].NonEmpty++
				}
			}
		}
	}
	return infos
}

func cell(cells []string, col int) string {
	if col < 0 {
		return ""
	}
	return cells[col]
}
