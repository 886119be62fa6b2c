package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/boy-johnny/fraud-data/models"
	"github.com/boy-johnny/fraud-data/utils"
)

func sampleAnalysis() *models.Analysis {
	return &models.Analysis{
		RunID:   "run-1",
		Dropped: 1,
		Reports: make([]models.Report, 3),
		Monthly: models.CountSeries{
			Title: "每月詐騙LINE ID通報數量趨勢圖", XLabel: "月份", YLabel: "通報數量",
			Buckets: []models.Bucket{{Key: "2023-12", Count: 1}, {Key: "2024-01", Count: 2}},
		},
		Weekly: models.CountSeries{
			Title: "每週各日詐騙通報數量分佈", XLabel: "星期", YLabel: "通報總數量",
			Buckets: []models.Bucket{
				{Key: "Monday", Count: 0}, {Key: "Tuesday", Count: 0}, {Key: "Wednesday", Count: 0},
				{Key: "Thursday", Count: 0}, {Key: "Friday", Count: 2}, {Key: "Saturday", Count: 1},
				{Key: "Sunday", Count: 0},
			},
		},
	}
}

func TestNiceCeil(t *testing.T) {
	assert.Equal(t, float64(yTicks), niceCeil(0))
	assert.Equal(t, float64(yTicks), niceCeil(3))
	assert.Equal(t, 10.0, niceCeil(7))
	assert.Equal(t, 20.0, niceCeil(12))
	assert.Equal(t, 500.0, niceCeil(420))
	assert.Equal(t, 1000.0, niceCeil(999))
}

func TestLineChartGeometry(t *testing.T) {
	c := lineChart(sampleAnalysis().Monthly, 1000, 500)

	require.Len(t, c.Points, 2)
	assert.Equal(t, c.Left, c.Points[0].X)
	assert.Equal(t, c.Right, c.Points[1].X)
	assert.Less(t, c.Points[1].Y, c.Points[0].Y, "higher count is drawn higher")
	assert.Equal(t, 1, strings.Count(c.Polyline, " "))
}

func TestBarChartKeepsOrder(t *testing.T) {
	c := barChart(sampleAnalysis().Weekly, 700, 400)

	require.Len(t, c.Bars, 7)
	assert.Equal(t, "Monday", c.Bars[0].Label)
	assert.Equal(t, "Sunday", c.Bars[6].Label)
	assert.Zero(t, c.Bars[0].H)
	assert.Greater(t, c.Bars[4].H, c.Bars[5].H)
}

func TestHTMLRenderer(t *testing.T) {
	dir := t.TempDir()
	path, err := NewHTMLRenderer(utils.NewNopLogger(), "Noto Sans TC, sans-serif").Render(sampleAnalysis(), dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, `id="monthly"`)
	assert.Contains(t, page, `id="weekly"`)
	assert.Contains(t, page, "每月詐騙LINE ID通報數量趨勢圖")
	assert.Contains(t, page, "通報總數量")
	assert.Contains(t, page, "Noto Sans TC")
	assert.Contains(t, page, "<polyline")
	assert.Equal(t, 7, strings.Count(page, "<rect"))
}

func TestHTMLRendererEmptyMonthly(t *testing.T) {
	a := sampleAnalysis()
	a.Monthly.Buckets = nil

	path, err := NewHTMLRenderer(utils.NewNopLogger(), "sans-serif").Render(a, t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "no data")
	assert.NotContains(t, string(data), "<polyline")
}

func TestXLSXRenderer(t *testing.T) {
	dir := t.TempDir()
	path, err := NewXLSXRenderer(utils.NewNopLogger()).Render(sampleAnalysis(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, XLSXFile), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	monthly, err := f.GetRows(MonthlySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"year_month", "count"}, {"2023-12", "1"}, {"2024-01", "2"}}, monthly)

	weekly, err := f.GetRows(WeeklySheet)
	require.NoError(t, err)
	require.Len(t, weekly, 8)
	assert.Equal(t, []string{"Friday", "2"}, weekly[5])
}

func TestXLSXRendererEmptyMonthly(t *testing.T) {
	a := sampleAnalysis()
	a.Monthly.Buckets = nil

	_, err := NewXLSXRenderer(utils.NewNopLogger()).Render(a, t.TempDir())
	assert.NoError(t, err)
}

func TestFindChromeBinaryHonoursEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")
	assert.Equal(t, "/opt/custom/chrome", findChromeBinary())
}
