// Package tools implements the five pipeline stage tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shpitdev/cold-outreach-pipeline/internal/config"
	"github.com/shpitdev/cold-outreach-pipeline/internal/llm"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

// industryKeywords maps name fragments to an industry. The first matching
// group wins, so order is load-bearing.
var industryKeywords = []struct {
	industry string
	words    []string
}{
	{"Technology", []string{"tech", "software", "ai", "ml", "data", "digital"}},
	{"Financial Services", []string{"finance", "bank", "pay", "fintech", "credit"}},
	{"Healthcare", []string{"health", "medical", "bio", "pharma", "care"}},
	{"Retail", []string{"retail", "ecommerce", "shop", "store", "market"}},
	{"Professional Services", []string{"consult", "advisory", "service"}},
}

var (
	startupWords    = []string{"startup", "start-up", "ventures"}
	corpSuffixWords = []string{"inc", "corp", "llc", "ltd"}
)

// Research resolves company facts for one prospect. With an LLM client
// configured it asks the model for a structured company brief and falls
// back to the deterministic heuristic on any failure; without one the
// heuristic is the only source.
type Research struct {
	LLM   llm.Client
	Agent config.AgentConfig
	Clock func() time.Time
}

func NewResearch(client llm.Client, agent config.AgentConfig, clock func() time.Time) *Research {
	if clock == nil {
		clock = time.Now
	}
	return &Research{LLM: client, Agent: agent, Clock: clock}
}

func (t *Research) Name() string        { return "company_research" }
func (t *Research) Description() string { return "Research company information from public sources" }

func (t *Research) Category() outreach.Category { return outreach.CategoryResearch }

func (t *Research) RequiredContextKeys() []string { return []string{outreach.KeyProspectData} }
func (t *Research) OptionalContextKeys() []string { return []string{outreach.KeyCompanyResearch} }

func (t *Research) Execute(ctx context.Context, ec *outreach.Context, inputs map[string]any) outreach.ToolResult {
	company, _ := inputs["company_name"].(string)
	if strings.TrimSpace(company) == "" {
		company = ec.Prospect.Company
	}
	if strings.TrimSpace(company) == "" {
		return outreach.Failure("No company name provided")
	}

	research := t.research(ctx, company)
	research.ResearchTimestamp = t.Clock().Unix()
	ec.CompanyResearch = &research

	return outreach.ToolResult{
		Success: true,
		Data: map[string]any{
			"company_name":       company,
			"industry":           research.Industry,
			"size":               research.Size,
			"research_timestamp": research.ResearchTimestamp,
		},
		Metadata: map[string]any{
			"research_sources": []string{"name_heuristics"},
		},
	}
}

func (t *Research) research(ctx context.Context, company string) outreach.CompanyResearch {
	if t.LLM != nil {
		r, err := t.liveResearch(ctx, company)
		if err == nil {
			return r
		}
		slog.Warn("live research failed, using heuristic", "company", company, "err", err)
	}
	return HeuristicResearch(company)
}

// liveResearchResponse is the structured brief requested from the model.
type liveResearchResponse struct {
	Industry      string   `json:"industry"`
	Size          string   `json:"size"`
	RecentNews    []string `json:"recent_news"`
	Culture       string   `json:"culture"`
	Technologies  []string `json:"technologies"`
	Values        []string `json:"values"`
	Challenges    []string `json:"challenges"`
	Opportunities []string `json:"opportunities"`
}

func (t *Research) liveResearch(ctx context.Context, company string) (outreach.CompanyResearch, error) {
	prompt := fmt.Sprintf(`Research the company %q for a cold-outreach email.

Return ONLY a single JSON object with these keys:
- industry (string; one of: Technology, Financial Services, Healthcare, Retail, Professional Services, General Business)
- size (string; one of: Startup, Small to Medium, Medium to Large, Unknown)
- recent_news (array of strings)
- culture (string)
- technologies (array of strings)
- values (array of strings)
- challenges (array of strings)
- opportunities (array of strings)

If you cannot determine a field, use an empty string or empty array.`, company)

	text, err := t.LLM.Generate(ctx, prompt, llm.Options{
		SystemInstruction: agentInstruction(t.Agent),
		JSONOutput:        true,
	})
	if err != nil {
		return outreach.CompanyResearch{}, err
	}

	var parsed liveResearchResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return outreach.CompanyResearch{}, fmt.Errorf("parse research json: %w", err)
	}

	out := outreach.CompanyResearch{
		Name:          company,
		Industry:      strings.TrimSpace(parsed.Industry),
		Size:          strings.TrimSpace(parsed.Size),
		RecentNews:    parsed.RecentNews,
		Culture:       strings.TrimSpace(parsed.Culture),
		Technologies:  parsed.Technologies,
		Values:        parsed.Values,
		Challenges:    parsed.Challenges,
		Opportunities: parsed.Opportunities,
	}
	// Backfill anything the model left empty so downstream stages always
	// have material to work with.
	fallback := HeuristicResearch(company)
	if out.Industry == "" {
		out.Industry = fallback.Industry
	}
	if out.Size == "" {
		out.Size = fallback.Size
	}
	if len(out.RecentNews) == 0 {
		out.RecentNews = fallback.RecentNews
	}
	if out.Culture == "" {
		out.Culture = fallback.Culture
	}
	if len(out.Values) == 0 {
		out.Values = fallback.Values
	}
	return out, nil
}

// HeuristicResearch derives a deterministic company brief from the name
// alone. Same input, same output.
func HeuristicResearch(company string) outreach.CompanyResearch {
	return outreach.CompanyResearch{
		Name:     company,
		Industry: determineIndustry(company),
		Size:     estimateSize(company),
		RecentNews: []string{
			company + " announced new product launch",
			company + " expanded to new markets",
			company + " received Series B funding",
		},
		Culture:      "Innovation-focused, collaborative environment",
		Technologies: []string{"Python", "AI/ML", "Cloud Computing", "React", "Node.js"},
		Values:       []string{"Innovation", "Customer Success", "Teamwork", "Excellence"},
		Challenges:   []string{"Scaling infrastructure", "Talent acquisition", "Market competition"},
		Opportunities: []string{
			"Market expansion",
			"Product innovation",
			"Strategic partnerships",
		},
	}
}

func determineIndustry(company string) string {
	lower := strings.ToLower(company)
	for _, group := range industryKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return group.industry
			}
		}
	}
	return "General Business"
}

// estimateSize checks startup markers before corporate suffixes so a name
// like "AI Startup Inc" classifies as Startup.
func estimateSize(company string) string {
	lower := strings.ToLower(company)
	for _, word := range startupWords {
		if strings.Contains(lower, word) {
			return "Startup"
		}
	}
	for _, word := range corpSuffixWords {
		if strings.Contains(lower, word) {
			return "Medium to Large"
		}
	}
	return "Small to Medium"
}

func agentInstruction(a config.AgentConfig) string {
	var parts []string
	if strings.TrimSpace(a.Role) != "" {
		parts = append(parts, "You are "+a.Role+".")
	}
	if strings.TrimSpace(a.Goal) != "" {
		parts = append(parts, "Your goal: "+a.Goal)
	}
	if strings.TrimSpace(a.Backstory) != "" {
		parts = append(parts, a.Backstory)
	}
	return strings.Join(parts, "\n")
}
