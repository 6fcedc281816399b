// Package dataio loads prospect records from CSV and Excel files.
package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

// requiredColumns must be present in every input file.
var requiredColumns = []string{"name", "email", "company", "role"}

// LoadProspects reads prospects from path, dispatching on the file
// extension. limit <= 0 means no limit.
func LoadProspects(path string, limit int) ([]outreach.Prospect, error) {
	slog.Info("loading prospects", "path", path, "limit", limit)

	var (
		prospects []outreach.Prospect
		err       error
	)
	switch {
	case strings.HasSuffix(path, ".csv"):
		prospects, err = loadCSV(path)
	case strings.HasSuffix(path, ".xlsx"), strings.HasSuffix(path, ".xls"):
		prospects, err = loadExcel(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", path)
	}
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(prospects) > limit {
		prospects = prospects[:limit]
		slog.Info("limited prospects", "limit", limit)
	}
	slog.Info("loaded prospects", "count", len(prospects))
	return prospects, nil
}

func loadCSV(path string) ([]outreach.Prospect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var out []outreach.Prospect
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		out = append(out, prospectFromRecord(rec, index))
	}
}

func loadExcel(path string) ([]outreach.Prospect, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty sheet", path)
	}

	index, err := columnIndex(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var out []outreach.Prospect
	for _, rec := range rows[1:] {
		out = append(out, prospectFromRecord(rec, index))
	}
	return out, nil
}

// columnIndex maps lowercased header names to positions and verifies the
// required columns exist. Extra columns are ignored.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func prospectFromRecord(rec []string, index map[string]int) outreach.Prospect {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	return outreach.Prospect{
		Name:           get("name"),
		Email:          get("email"),
		Company:        get("company"),
		Role:           get("role"),
		Position:       get("position"),
		JobDescription: get("job_description"),
	}
}
