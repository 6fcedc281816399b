package tools

import (
	"context"
	"reflect"
	"testing"

	"github.com/shpitdev/cold-outreach-pipeline/internal/config"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

func testProfile() *config.UserProfile {
	return &config.UserProfile{
		PersonalInfo: config.PersonalInfo{
			Name:  "John Smith",
			Title: "Senior Software Engineer",
		},
		Skills: config.SkillGroups{
			{Category: "languages", Skills: []string{"Python", "JavaScript"}},
			{Category: "cloud", Skills: []string{"AWS", "Docker"}},
			{Category: "data", Skills: []string{"SQL"}},
		},
		Achievements: []config.Achievement{
			{Description: "Led Kubernetes migration for payments platform"},
			{Description: "Built Python data pipeline processing 1M events daily"},
		},
	}
}

func matcherContext(jobDescription, position string) *outreach.Context {
	return outreach.NewContext(outreach.Prospect{
		Name:           "Jane Doe",
		Email:          "jane@acme.io",
		Company:        "Acme AI",
		Role:           position,
		JobDescription: jobDescription,
	})
}

func TestMatcher_DirectAndMissing(t *testing.T) {
	tool := NewMatcher(testProfile())
	ec := matcherContext("Looking for Python, AWS, Kubernetes experience", "Senior Engineer")

	res := outreach.Run(context.Background(), tool, ec, nil)
	if !res.Success {
		t.Fatalf("unexpected failure: %#v", res)
	}
	m := ec.ProfileMatches
	if m == nil {
		t.Fatal("profile_matches not written")
	}

	// Keyword-list order: Python before AWS before Kubernetes.
	if !reflect.DeepEqual(m.DirectMatches, []string{"Python", "AWS"}) {
		t.Fatalf("unexpected direct matches: %v", m.DirectMatches)
	}
	if !reflect.DeepEqual(m.MissingSkills, []string{"Kubernetes"}) {
		t.Fatalf("unexpected missing skills: %v", m.MissingSkills)
	}
	// Profile order, minus the required skills.
	if !reflect.DeepEqual(m.UniqueStrengths, []string{"JavaScript", "Docker", "SQL"}) {
		t.Fatalf("unexpected unique strengths: %v", m.UniqueStrengths)
	}

	if m.SkillCoverage < 0.66 || m.SkillCoverage > 0.67 {
		t.Fatalf("unexpected coverage: %v", m.SkillCoverage)
	}
}

func TestMatcher_RelatedMatchesViaAdjacency(t *testing.T) {
	tool := NewMatcher(testProfile())
	// Django adjacent to Python; MongoDB adjacent to SQL.
	ec := matcherContext("We use Django and MongoDB heavily", "Backend Engineer")

	res := outreach.Run(context.Background(), tool, ec, nil)
	if !res.Success {
		t.Fatalf("unexpected failure: %#v", res)
	}
	m := ec.ProfileMatches
	if !reflect.DeepEqual(m.RelatedMatches, []string{"Django", "MongoDB"}) {
		t.Fatalf("unexpected related matches: %v", m.RelatedMatches)
	}
}

func TestMatcher_ExperienceRelevance(t *testing.T) {
	tool := NewMatcher(testProfile())

	tests := []struct {
		position string
		want     float64
	}{
		{"Senior Software Engineer", 0.9},
		{"Lead Senior Software Engineer", 0.9},
		{"Staff Engineer", 0.7},
		{"Product Manager", 0.5},
	}

	for _, tt := range tests {
		if got := tool.experienceRelevance(tt.position); got != tt.want {
			t.Errorf("experienceRelevance(%q) = %v, want %v", tt.position, got, tt.want)
		}
	}
}

func TestMatcher_AchievementMatches(t *testing.T) {
	tool := NewMatcher(testProfile())
	ec := matcherContext("Scaling Kubernetes workloads", "Platform Engineer")

	res := outreach.Run(context.Background(), tool, ec, nil)
	if !res.Success {
		t.Fatalf("unexpected failure: %#v", res)
	}
	m := ec.ProfileMatches
	if len(m.AchievementMatches) != 1 || m.AchievementMatches[0] != "Led Kubernetes migration for payments platform" {
		t.Fatalf("unexpected achievement matches: %v", m.AchievementMatches)
	}
}

func TestMatcher_Strategy(t *testing.T) {
	tool := NewMatcher(testProfile())
	ec := matcherContext("Python, AWS, Kubernetes", "Senior Engineer")

	res := outreach.Run(context.Background(), tool, ec, nil)
	if !res.Success {
		t.Fatalf("unexpected failure: %#v", res)
	}
	s := ec.Strategy
	if s == nil {
		t.Fatal("personalization_strategy not written")
	}
	if s.PrimaryFocus != "Direct skill match: Python, AWS" {
		t.Fatalf("unexpected primary focus: %q", s.PrimaryFocus)
	}
	if s.UniqueAngle != "Unique expertise in JavaScript, Docker" {
		t.Fatalf("unexpected unique angle: %q", s.UniqueAngle)
	}
	if !reflect.DeepEqual(s.ConnectionPoints, []string{"Experience with Python", "Experience with AWS"}) {
		t.Fatalf("unexpected connection points: %v", s.ConnectionPoints)
	}
	if len(s.ValuePropositions) != 3 {
		t.Fatalf("unexpected value propositions: %v", s.ValuePropositions)
	}
}

func TestMatcher_NoProfile(t *testing.T) {
	tool := NewMatcher(nil)
	ec := matcherContext("Python", "Engineer")

	res := outreach.Run(context.Background(), tool, ec, nil)
	if res.Success || res.ErrorMessage != "Failed to load user profile" {
		t.Fatalf("unexpected result: %#v", res)
	}
}

func TestMatchConfidence_Capped(t *testing.T) {
	m := outreach.ProfileMatches{SkillCoverage: 1.0, ExperienceRelevance: 0.9}
	got := MatchConfidence(m)
	if got < 0.959 || got > 0.961 {
		t.Fatalf("MatchConfidence = %v, want ~0.96", got)
	}
	over := outreach.ProfileMatches{SkillCoverage: 2.0, ExperienceRelevance: 0.9}
	if MatchConfidence(over) != 1.0 {
		t.Fatalf("confidence must cap at 1.0, got %v", MatchConfidence(over))
	}
}
