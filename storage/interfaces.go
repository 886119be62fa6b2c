package storage

import "github.com/boy-johnny/fraud-data/models"

// TableLoader is the interface any tabular source must satisfy.
type TableLoader interface {
	Load(path string) (*models.Table, error)
}

// AnalysisWriter is the interface for exporting the results of a run.
type AnalysisWriter interface {
	Write(a *models.Analysis) error
}
