package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/boy-johnny/fraud-data/models"
	"github.com/boy-johnny/fraud-data/utils"
)

// CSVLoader reads a delimited report export into a Table.
type CSVLoader struct {
	logger       *utils.Logger
	encoding     string
	showProgress bool
}

// NewCSVLoader creates a loader for the given text encoding ("utf-8" or "big5").
func NewCSVLoader(logger *utils.Logger, enc string, showProgress bool) *CSVLoader {
	return &CSVLoader{logger: logger, encoding: enc, showProgress: showProgress}
}

// Load opens path and parses it. Missing or unreadable files yield
// ErrSourceNotFound; anything that is not tabular yields ErrMalformedSource.
func (l *CSVLoader) Load(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %q: %w: %v", path, models.ErrSourceNotFound, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("loader: stat %q: %w: %v", path, models.ErrSourceNotFound, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("loader: %q is a directory: %w", path, models.ErrSourceNotFound)
	}

	var r io.Reader = f
	if l.showProgress {
		bar := progressbar.DefaultBytes(info.Size(), "loading "+info.Name())
		defer bar.Finish()
		r = io.TeeReader(f, bar)
	}

	table, err := l.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("loader: %q: %w", path, err)
	}

	l.logger.Info("[loader] Read %d rows x %d columns from %s", table.Len(), len(table.Header), path)
	return table, nil
}

// Parse decodes and reads CSV from r. Rows shorter than the header are padded
// with empty cells; rows longer than the header are rejected.
func (l *CSVLoader) Parse(r io.Reader) (*models.Table, error) {
	dec, err := decoderFor(l.encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header row: %w", models.ErrMalformedSource)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w: %v", models.ErrMalformedSource, err)
	}

	table := &models.Table{Header: header}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrMalformedSource, err)
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d: %w",
				line, len(header), len(row), models.ErrMalformedSource)
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func decoderFor(name string) (transform.Transformer, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "big5":
		return traditionalchinese.Big5.NewDecoder(), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}
