// Package validate checks prospect records before they enter the pipeline.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether addr looks like a deliverable address. The
// check is purely syntactic; it requires a two-letter-or-longer TLD.
func ValidEmail(addr string) bool {
	return emailRe.MatchString(strings.TrimSpace(addr))
}

// ProspectReport is the outcome of validating one prospect record.
type ProspectReport struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Valid    bool     `json:"valid"`
}

// CheckProspect validates the fields the pipeline depends on. Errors make
// the record unusable; warnings only degrade personalization.
func CheckProspect(p outreach.Prospect) ProspectReport {
	var report ProspectReport

	required := []struct {
		field string
		value string
	}{
		{"email", p.Email},
		{"name", p.Name},
		{"position", p.PositionOrRole()},
		{"job_description", p.JobDescription},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("Missing required field: %s", f.field))
		}
	}

	if strings.TrimSpace(p.Email) != "" && !ValidEmail(p.Email) {
		report.Errors = append(report.Errors, fmt.Sprintf("Invalid email address: %s", p.Email))
	}

	if name := strings.TrimSpace(p.Name); name != "" && len(strings.Fields(name)) < 2 {
		report.Warnings = append(report.Warnings, "Name appears to be incomplete (no last name)")
	}
	if jd := strings.TrimSpace(p.JobDescription); jd != "" && len(jd) < 50 {
		report.Warnings = append(report.Warnings, "Job description seems too short for proper personalization")
	}
	if strings.TrimSpace(p.Company) == "" {
		report.Warnings = append(report.Warnings, "Company name missing - personalization will be limited")
	}

	report.Valid = len(report.Errors) == 0
	return report
}

// Summary aggregates validation over a batch of prospects.
type Summary struct {
	Total        int      `json:"total_emails"`
	Valid        int      `json:"valid_emails"`
	Invalid      int      `json:"invalid_emails"`
	InvalidList  []string `json:"invalid_email_list"`
	SuccessRate  float64  `json:"success_rate"`
	ByProspect   []ProspectReport
}

// CheckBatch validates every prospect and tallies email validity.
func CheckBatch(prospects []outreach.Prospect) Summary {
	s := Summary{Total: len(prospects)}
	for _, p := range prospects {
		report := CheckProspect(p)
		s.ByProspect = append(s.ByProspect, report)
		if ValidEmail(p.Email) {
			s.Valid++
		} else {
			s.Invalid++
			s.InvalidList = append(s.InvalidList, p.Email)
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Valid) / float64(s.Total) * 100
	}
	return s
}
