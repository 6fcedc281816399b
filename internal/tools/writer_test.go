package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/shpitdev/cold-outreach-pipeline/internal/config"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

func testTemplates() config.TemplateStore {
	return config.TemplateStore{
		outreach.TemplateTechStartup:             {Tone: "energetic"},
		outreach.TemplateEnterprise:              {Tone: "formal"},
		outreach.TemplateProfessionalApplication: {Tone: "professional"},
	}
}

func writerContext(company, role, size string) *outreach.Context {
	ec := outreach.NewContext(outreach.Prospect{
		Name:    "Jane Doe",
		Email:   "jane@acme.io",
		Company: company,
		Role:    role,
	})
	research := HeuristicResearch(company)
	research.Size = size
	ec.CompanyResearch = &research
	ec.ProfileMatches = &outreach.ProfileMatches{
		DirectMatches:       []string{"Python", "AWS"},
		UniqueStrengths:     []string{"GraphQL"},
		AchievementMatches:  []string{"Led migration to microservices"},
		ExperienceRelevance: 0.9,
	}
	return ec
}

func TestSelectTemplateType(t *testing.T) {
	tests := []struct {
		size string
		want string
	}{
		{"Startup", outreach.TemplateTechStartup},
		{"Early stage", outreach.TemplateTechStartup},
		{"Medium to Large", outreach.TemplateEnterprise},
		{"Enterprise", outreach.TemplateEnterprise},
		{"Small to Medium", outreach.TemplateProfessionalApplication},
		{"Unknown", outreach.TemplateProfessionalApplication},
	}

	for _, tt := range tests {
		if got := selectTemplateType(tt.size); got != tt.want {
			t.Errorf("selectTemplateType(%q) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestWriter_Subjects(t *testing.T) {
	tests := []struct {
		company string
		role    string
		size    string
		want    string
	}{
		{"Acme AI", "Senior Engineer", "Small to Medium", "Application for Senior Engineer at Acme AI"},
		{"MegaCorp Enterprise", "Architect", "Medium to Large", "Enterprise Architect - Reducing Risk for MegaCorp Enterprise"},
		{"Startup Ventures", "CTO", "Startup", "Scaling Startup Ventures's CTO - Your Mission Resonates"},
	}

	tool := NewWriter(testTemplates(), "John Smith")
	for _, tt := range tests {
		ec := writerContext(tt.company, tt.role, tt.size)
		res := outreach.Run(context.Background(), tool, ec, nil)
		if !res.Success {
			t.Fatalf("unexpected failure for %s: %#v", tt.company, res)
		}
		if ec.EmailDraft.Subject != tt.want {
			t.Errorf("subject for %s = %q, want %q", tt.company, ec.EmailDraft.Subject, tt.want)
		}
	}
}

func TestWriter_BodyAssembly(t *testing.T) {
	tool := NewWriter(testTemplates(), "John Smith")
	ec := writerContext("Acme AI", "Senior Engineer", "Small to Medium")

	res := outreach.Run(context.Background(), tool, ec, nil)
	if !res.Success {
		t.Fatalf("unexpected failure: %#v", res)
	}
	body := ec.EmailDraft.Body

	wantOpening := "Hi Jane Doe,\n\nAcme AI announced new product launch - congratulations! I've been following Acme AI's growth and am impressed by your innovative approach."
	if !strings.HasPrefix(body, wantOpening) {
		t.Fatalf("unexpected opening:\n%s", body)
	}
	if !strings.Contains(body, "I'm a senior software engineer with 7+ years") {
		t.Fatal("high relevance must use the senior introduction")
	}
	if !strings.Contains(body, "• Deep expertise in Python, AWS") {
		t.Fatal("missing skills bullet")
	}
	if !strings.Contains(body, "• Led migration to microservices") {
		t.Fatal("missing achievement bullet")
	}
	if !strings.Contains(body, "• Unique perspective with GraphQL") {
		t.Fatal("missing strengths bullet")
	}
	if !strings.Contains(body, "Your values of Innovation, Customer Success resonate") {
		t.Fatal("missing company connection")
	}
	if !strings.Contains(body, "Would love to discuss how I could help Acme AI scale efficiently in the Senior Engineer role. Free for a quick call this week?") {
		t.Fatal("missing call to action")
	}
	if !strings.HasSuffix(body, "Best regards,\nJohn Smith") {
		t.Fatal("missing closing")
	}
}

func TestWriter_NoNewsOpening(t *testing.T) {
	tool := NewWriter(testTemplates(), "John Smith")
	ec := writerContext("Acme AI", "Senior Engineer", "Small to Medium")
	ec.CompanyResearch.RecentNews = nil
	ec.ProfileMatches.ExperienceRelevance = 0.5

	res := outreach.Run(context.Background(), tool, ec, nil)
	if !res.Success {
		t.Fatalf("unexpected failure: %#v", res)
	}
	body := ec.EmailDraft.Body
	if !strings.HasPrefix(body, "Hi Jane Doe,\n\nI've been researching Acme AI and am excited about the work you're doing.") {
		t.Fatalf("unexpected opening:\n%s", body)
	}
	if !strings.Contains(body, "I'm a software engineer passionate about solving complex technical challenges") {
		t.Fatal("low relevance must use the generic introduction")
	}
}

func TestWriter_MissingTemplates(t *testing.T) {
	tool := NewWriter(nil, "John Smith")
	ec := writerContext("Acme AI", "Senior Engineer", "Small to Medium")

	res := outreach.Run(context.Background(), tool, ec, nil)
	if res.Success || res.ErrorMessage != "Failed to load email templates" {
		t.Fatalf("unexpected result: %#v", res)
	}
}

func TestWriter_RequiresResearchAndMatches(t *testing.T) {
	tool := NewWriter(testTemplates(), "John Smith")
	ec := outreach.NewContext(outreach.Prospect{Name: "Jane Doe", Email: "jane@acme.io", Company: "Acme AI", Role: "Engineer"})

	res := outreach.Run(context.Background(), tool, ec, nil)
	if res.Success {
		t.Fatal("writer must fail without research and matches")
	}
	if !strings.Contains(res.ErrorMessage, outreach.KeyCompanyResearch) {
		t.Fatalf("error must name missing keys: %q", res.ErrorMessage)
	}
}
