package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boy-johnny/fraud-data/models"
	"github.com/boy-johnny/fraud-data/storage"
	"github.com/boy-johnny/fraud-data/utils"
)

// Pipeline runs load, normalize, parse, filter, derive and aggregate in order.
type Pipeline struct {
	runID      string
	logger     *utils.Logger
	loader     storage.TableLoader
	normalizer *Normalizer
	parser     *DateParser
	cleaner    *Cleaner
	insights   *InsightService
}

// NewRunID returns a fresh identifier for one pipeline run.
func NewRunID() string {
	return uuid.NewString()
}

// NewPipeline wires the stages for the run runID. The logger and loader are
// expected to be tagged with the same id already. Zone-less dates are
// interpreted in loc.
func NewPipeline(runID string, logger *utils.Logger, loader storage.TableLoader, loc *time.Location) *Pipeline {
	return &Pipeline{
		runID:      runID,
		logger:     logger,
		loader:     loader,
		normalizer: NewNormalizer(DefaultColumnMapping),
		parser:     NewDateParser(loc),
		cleaner:    NewCleaner(logger),
		insights:   NewInsightService(logger),
	}
}

// RunID identifies this run in logs and outputs.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Insights exposes the aggregation service, e.g. for printing.
func (p *Pipeline) Insights() *InsightService {
	return p.insights
}

// Run loads the file at path and analyses it.
func (p *Pipeline) Run(path string) (*models.Analysis, error) {
	table, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}
	a, err := p.Analyze(table)
	if err != nil {
		return nil, err
	}
	a.SourcePath = path
	return a, nil
}

// Analyze runs every in-memory stage over an already loaded table.
func (p *Pipeline) Analyze(raw *models.Table) (*models.Analysis, error) {
	table, err := p.normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}

	rows, err := TypedRows(table)
	if err != nil {
		return nil, err
	}

	parsed, valid := p.parser.ParseAll(rows)
	if len(parsed) > 0 && valid == 0 {
		return nil, fmt.Errorf("date parser: none of %d %s values could be parsed: %w",
			len(parsed), models.FieldReportDate, models.ErrSchemaMismatch)
	}

	kept, dropped := p.cleaner.Clean(parsed)

	a := &models.Analysis{
		RunID:     p.runID,
		TotalRows: len(rows),
		Dropped:   dropped,
		Columns:   Summarize(table, parsed),
		Reports:   DeriveFeatures(kept),
	}
	p.insights.Generate(a)
	return a, nil
}
