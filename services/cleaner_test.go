package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/boy-johnny/fraud-data/models"
	"github.com/boy-johnny/fraud-data/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func TestCleanerDropsInvalidDates(t *testing.T) {
	c := NewCleaner(newTestLogger())
	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	rows := []models.ParsedRow{
		{SerialNo: "1", ReportDate: d, Valid: true},
		{SerialNo: "2", RawDate: "bad"},
		{SerialNo: "3", ReportDate: d.AddDate(0, 0, 1), Valid: true},
	}

	kept, dropped := c.Clean(rows)

	assert.Equal(t, 1, dropped)
	if assert.Len(t, kept, 2) {
		assert.Equal(t, "1", kept[0].SerialNo)
		assert.Equal(t, "3", kept[1].SerialNo)
	}
	for _, r := range kept {
		assert.True(t, r.Valid)
		assert.False(t, r.ReportDate.IsZero())
	}
}

func TestCleanerKeepsDuplicates(t *testing.T) {
	c := NewCleaner(newTestLogger())
	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	rows := []models.ParsedRow{
		{SerialNo: "1", ReportDate: d, Valid: true},
		{SerialNo: "1", ReportDate: d, Valid: true},
	}

	kept, dropped := c.Clean(rows)
	assert.Len(t, kept, 2)
	assert.Zero(t, dropped)
}

func TestCleanerEmptyInput(t *testing.T) {
	kept, dropped := NewCleaner(newTestLogger()).Clean(nil)
	assert.Empty(t, kept)
	assert.Zero(t, dropped)
}
