package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boy-johnny/fraud-data/models"
)

func rawTable(rows ...[]string) *models.Table {
	return &models.Table{Header: []string{"編號", "LINE ID", "通報日期"}, Rows: rows}
}

func TestNormalizeRenamesKnownHeaders(t *testing.T) {
	n := NewNormalizer(DefaultColumnMapping)
	in := &models.Table{Header: []string{"編號", "LINE ID", "通報日期", "備註"}, Rows: [][]string{{"1", "a", "2024-01-05", "x"}}}

	out, err := n.Normalize(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"serial_no", "line_id", "report_date", "備註"}, out.Header)
	assert.Equal(t, in.Rows, out.Rows)
	assert.Equal(t, "通報日期", in.Header[2], "input must not be mutated")
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := NewNormalizer(DefaultColumnMapping)

	once, err := n.Normalize(rawTable([]string{"1", "a", "2024-01-05"}))
	require.NoError(t, err)
	twice, err := n.Normalize(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestNormalizeSchemaMismatch(t *testing.T) {
	n := NewNormalizer(DefaultColumnMapping)
	_, err := n.Normalize(&models.Table{Header: []string{"id", "name"}})
	assert.ErrorIs(t, err, models.ErrSchemaMismatch)
}

func TestTypedRowsRequiresReportDate(t *testing.T) {
	_, err := TypedRows(&models.Table{Header: []string{"serial_no", "line_id"}})
	assert.ErrorIs(t, err, models.ErrSchemaMismatch)
}

func TestTypedRowsToleratesMissingOptionalColumns(t *testing.T) {
	rows, err := TypedRows(&models.Table{Header: []string{"report_date"}, Rows: [][]string{{"2024-01-05"}}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].SerialNo)
	assert.Equal(t, "2024-01-05", rows[0].RawDate)
}

func TestSummarizeCountsValidDates(t *testing.T) {
	table := &models.Table{
		Header: []string{"serial_no", "line_id", "report_date"},
		Rows:   [][]string{{"1", "", "2024-01-05"}, {"2", "b", "bad"}},
	}
	parsed := []models.ParsedRow{{Valid: true}, {Valid: false}}

	infos := Summarize(table, parsed)

	assert.Equal(t, models.ColumnInfo{Name: "serial_no", NonEmpty: 2, Type: "string"}, infos[0])
	assert.Equal(t, models.ColumnInfo{Name: "line_id", NonEmpty: 1, Type: "string"}, infos[1])
	assert.Equal(t, models.ColumnInfo{Name: "report_date", NonEmpty: 1, Type: "date"}, infos[2])
}

func TestNormalizeRejectsDuplicateCanonicalColumns(t *testing.T) {
	n := NewNormalizer(DefaultColumnMapping)
	in := &models.Table{
		Header: []string{"編號", "通報日期", "report_date"},
		Rows:   [][]string{{"1", "2024-01-05", "2023-01-01"}},
	}

	_, err := n.Normalize(in)
	assert.ErrorIs(t, err, models.ErrSchemaMismatch)
}
