package services

import (
	"github.com/boy-johnny/fraud-data/models"
	"github.com/boy-johnny/fraud-data/utils"
)

// Cleaner drops rows whose report date could not be parsed.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean keeps rows with a valid date, in their original order, and returns
// how many were dropped.
func (c *Cleaner) Clean(rows []models.ParsedRow) ([]models.ParsedRow, int) {
	result := make([]models.ParsedRow, 0, len(rows))

	for _, r := range rows {
		if !r.Valid {
			c.logger.Debug("[cleaner] Dropping serial %q: unparseable date %q", r.SerialNo, r.RawDate)
			continue
		}
		result = append(result, r)
	}

	dropped := len(rows) - len(result)
	if dropped > 0 {
		c.logger.Warn("[cleaner] Cleaned %d → %d rows (dropped %d with invalid dates)",
			len(rows), len(result), dropped)
	} else {
		c.logger.Info("[cleaner] All %d rows have valid dates", len(rows))
	}
	return result, dropped
}
