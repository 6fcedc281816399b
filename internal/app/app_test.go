package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shpitdev/cold-outreach-pipeline/internal/app"
	"github.com/shpitdev/cold-outreach-pipeline/internal/config"
	"github.com/shpitdev/cold-outreach-pipeline/internal/mail"
	"github.com/shpitdev/cold-outreach-pipeline/internal/report"
)

const prospectCSV = `name,email,company,role,job_description
Jane Doe,jane.doe@acme.ai,Acme AI,Senior Software Engineer,Looking for Python and AWS experience building scalable backend services
Bob Ray,bob@mega.example.com,MegaCorp Enterprise,Platform Architect,Enterprise Kubernetes and cloud migration work
`

func writeProspects(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prospects.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testApp(mailer *mail.DryRunMailer, out *strings.Builder) *app.App {
	return &app.App{
		Settings: config.Settings{SenderName: "John Smith", MaxRetries: 2, RequestTimeout: 5 * time.Second},
		Profile: &config.UserProfile{
			PersonalInfo: config.PersonalInfo{Name: "John Smith", Title: "Senior Software Engineer", Email: "john@example.com"},
			Skills: config.SkillGroups{
				{Category: "languages", Skills: []string{"Python", "JavaScript"}},
				{Category: "cloud", Skills: []string{"AWS", "Docker"}},
			},
			Achievements: []config.Achievement{{Description: "Led migration of legacy services to AWS"}},
		},
		Templates: config.TemplateStore{
			"tech_startup":             {Tone: "energetic"},
			"enterprise":               {Tone: "formal"},
			"professional_application": {Tone: "professional"},
		},
		Agents: config.AgentConfigs{
			config.AgentResearcher: {Role: "Company Research Specialist"},
		},
		Mailer:     mailer,
		RatePolicy: mail.Policy{PerHour: 100, PerDay: 1000, MinInterval: 0},
		Clock:      func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) },
		Out:        out,
	}
}

func TestRunPreview(t *testing.T) {
	t.Parallel()

	input := writeProspects(t, prospectCSV)
	outputPath := filepath.Join(t.TempDir(), "out", "previews.json")
	mailer := &mail.DryRunMailer{}
	var buf strings.Builder

	a := testApp(mailer, &buf)
	require.NoError(t, a.RunPreview(context.Background(), input, 0, outputPath))

	out := buf.String()
	assert.Contains(t, out, "✓ Jane Doe:")
	assert.Contains(t, out, "✓ Bob Ray:")
	assert.Contains(t, out, "PROCESSING SUMMARY")
	assert.Contains(t, out, "Success Rate: 100.0%")
	assert.Empty(t, mailer.Drafts, "preview must not reach the mailer")

	saved, err := report.Load(outputPath)
	require.NoError(t, err)
	require.Len(t, saved.Results, 2)
	assert.Equal(t, "preview", saved.Summary.OperationType)
	require.NotNil(t, saved.Results[0].Email)
	assert.NotEmpty(t, saved.Results[0].Email.Subject)
	assert.Nil(t, saved.Results[0].DraftResult, "preview result must not carry a draft result")
}

func TestRunDraft(t *testing.T) {
	t.Parallel()

	input := writeProspects(t, prospectCSV)
	outputPath := filepath.Join(t.TempDir(), "drafts.json")
	mailer := &mail.DryRunMailer{}
	var buf strings.Builder

	a := testApp(mailer, &buf)
	require.NoError(t, a.RunDraft(context.Background(), input, 0, outputPath))

	require.Len(t, mailer.Drafts, 2)
	assert.Equal(t, "jane.doe@acme.ai", mailer.Drafts[0].To)

	saved, err := report.Load(outputPath)
	require.NoError(t, err)
	require.NotNil(t, saved.Results[0].DraftResult)
	assert.Equal(t, "draft", saved.Results[0].DraftResult.Status)
}

func TestRunDraftLimit(t *testing.T) {
	t.Parallel()

	input := writeProspects(t, prospectCSV)
	mailer := &mail.DryRunMailer{}
	var buf strings.Builder

	a := testApp(mailer, &buf)
	outputPath := filepath.Join(t.TempDir(), "drafts.json")
	require.NoError(t, a.RunDraft(context.Background(), input, 1, outputPath))
	assert.Len(t, mailer.Drafts, 1)
}

func TestRunPreviewBatchWithFailure(t *testing.T) {
	t.Parallel()

	input := writeProspects(t, `name,email,company,role,job_description
Jane Doe,jane.doe@acme.ai,Acme AI,Senior Software Engineer,Python and AWS work
No Company,nc@example.com,,Engineer,Backend work
Bob Ray,bob@mega.example.com,MegaCorp Enterprise,Platform Architect,Enterprise Kubernetes work
`)
	outputPath := filepath.Join(t.TempDir(), "previews.json")
	var buf strings.Builder

	a := testApp(&mail.DryRunMailer{}, &buf)
	require.NoError(t, a.RunPreview(context.Background(), input, 0, outputPath))

	assert.Contains(t, buf.String(), "✗ No Company: No company name provided")
	assert.Contains(t, buf.String(), "Success Rate: 66.7%")

	saved, err := report.Load(outputPath)
	require.NoError(t, err)
	require.Len(t, saved.Results, 3)
	// Results keep input order even around the failure.
	assert.Equal(t, "Jane Doe", saved.Results[0].Prospect.Name)
	assert.Equal(t, "No Company", saved.Results[1].Prospect.Name)
	assert.Equal(t, "Bob Ray", saved.Results[2].Prospect.Name)
	assert.False(t, saved.Results[1].Success)
	assert.Equal(t, "research", saved.Results[1].FailedPhase)
	assert.Equal(t, 2, saved.Summary.Successful)
	assert.Equal(t, 1, saved.Summary.Failed)
}

func TestRunPreviewEmptyFile(t *testing.T) {
	t.Parallel()

	input := writeProspects(t, "name,email,company,role\n")
	var buf strings.Builder
	a := testApp(&mail.DryRunMailer{}, &buf)

	err := a.RunPreview(context.Background(), input, 0, filepath.Join(t.TempDir(), "out.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no prospects")
}

func TestRunValidate(t *testing.T) {
	t.Parallel()

	input := writeProspects(t, `name,email,company,role,job_description
Jane Doe,jane.doe@acme.ai,Acme AI,Senior Software Engineer,Looking for Python and AWS experience building scalable backend services
Bob,not-an-email,MegaCorp,Architect,Enterprise work
`)
	var buf strings.Builder
	a := testApp(&mail.DryRunMailer{}, &buf)

	require.NoError(t, a.RunValidate(context.Background(), input, 0))

	out := buf.String()
	assert.Contains(t, out, "Valid emails: 1/2")
	assert.Contains(t, out, "Invalid email address: not-an-email")
	assert.Contains(t, out, "no last name")
}

func TestBuildRegistry(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	a := testApp(&mail.DryRunMailer{}, &buf)
	r := a.BuildRegistry()

	want := []string{"company_research", "profile_matcher", "email_writer", "quality_checker", "mail_drafter"}
	assert.Equal(t, want, r.Names())
}
