// Package report aggregates per-prospect results and persists run output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shpitdev/cold-outreach-pipeline/internal/validate"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

// Report is the run summary for one batch.
type Report struct {
	OperationType  string  `json:"operation_type"`
	TotalProspects int     `json:"total_prospects"`
	Successful     int     `json:"successful"`
	Failed         int     `json:"failed"`
	SuccessRate    float64 `json:"success_rate"`
	Timestamp      string  `json:"timestamp"`
}

// Output is the persisted run artifact.
type Output struct {
	Results []outreach.Result `json:"results"`
	Summary Report            `json:"summary"`
}

// Generate builds the summary over results. The rate is a percentage, zero
// when the batch was empty.
func Generate(results []outreach.Result, operationType string, at time.Time) Report {
	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}
	total := len(results)
	rate := 0.0
	if total > 0 {
		rate = float64(successful) / float64(total) * 100
	}
	return Report{
		OperationType:  operationType,
		TotalProspects: total,
		Successful:     successful,
		Failed:         total - successful,
		SuccessRate:    rate,
		Timestamp:      at.Format(time.RFC3339),
	}
}

// Display writes the bounded summary block to w.
func Display(w io.Writer, r Report) {
	bar := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\n", bar)
	fmt.Fprintln(w, "PROCESSING SUMMARY")
	fmt.Fprintln(w, bar)
	fmt.Fprintf(w, "Operation: %s\n", titleCase(r.OperationType))
	fmt.Fprintf(w, "Total Prospects: %d\n", r.TotalProspects)
	fmt.Fprintf(w, "Successful: %d\n", r.Successful)
	fmt.Fprintf(w, "Failed: %d\n", r.Failed)
	fmt.Fprintf(w, "Success Rate: %.1f%%\n", r.SuccessRate)
	fmt.Fprintf(w, "Timestamp: %s\n", r.Timestamp)
	fmt.Fprintln(w, bar)
}

// DisplayValidation writes the validation summary block to w.
func DisplayValidation(w io.Writer, s validate.Summary) {
	fmt.Fprintln(w, "\nEmail Validation Results:")
	fmt.Fprintf(w, "Valid emails: %d/%d\n", s.Valid, s.Total)
	fmt.Fprintf(w, "Success rate: %.1f%%\n", s.SuccessRate)
	if len(s.InvalidList) > 0 {
		fmt.Fprintf(w, "Invalid emails: %s\n", strings.Join(s.InvalidList, ", "))
	}
}

// Save persists {results, summary} as indented JSON at path, creating
// parent directories as needed.
func Save(path string, results []outreach.Result, summary Report) error {
	slog.Info("saving results", "path", path)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	out := Output{Results: results, Summary: summary}
	if out.Results == nil {
		out.Results = []outreach.Result{}
	}
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads a previously saved run artifact.
func Load(path string) (Output, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Output{}, fmt.Errorf("read results %s: %w", path, err)
	}
	var out Output
	if err := json.Unmarshal(raw, &out); err != nil {
		return Output{}, fmt.Errorf("parse results %s: %w", path, err)
	}
	return out, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
