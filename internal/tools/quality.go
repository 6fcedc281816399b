package tools

import (
	"context"
	"regexp"
	"strings"

	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

var (
	genericPhrases = []string{
		"your company", "your team", "this role", "this position",
		"your organization", "your business",
	}
	spamWords = []string{
		"urgent", "limited time", "act now", "exclusive offer",
		"free", "guaranteed", "no risk", "once in a lifetime",
	}
	informalWords = []string{"hey", "hi there", "whats up", "cool", "awesome"}
	ctaIndicators = []string{
		"would love to", "interested in", "available for", "free for",
		"can we", "would you be", "let's discuss", "schedule a call",
	}
	ctaSpecifics = []string{"this week", "next week", "call", "meeting", "discussion"}

	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
)

// Quality scores the draft across six fixed categories. The score formulas
// are a stable contract; changing them breaks downstream thresholds.
type Quality struct{}

func NewQuality() *Quality { return &Quality{} }

func (t *Quality) Name() string { return "quality_checker" }

func (t *Quality) Description() string {
	return "Review and improve email quality, personalization, and effectiveness"
}

func (t *Quality) Category() outreach.Category { return outreach.CategoryQuality }

func (t *Quality) RequiredContextKeys() []string {
	return []string{outreach.KeyEmailDraft, outreach.KeyProspectData}
}

func (t *Quality) OptionalContextKeys() []string {
	return []string{outreach.KeyQualityMetrics, outreach.KeyCompanyResearch, outreach.KeyProfileMatches}
}

func (t *Quality) Execute(_ context.Context, ec *outreach.Context, _ map[string]any) outreach.ToolResult {
	draft := *ec.EmailDraft

	metrics := outreach.QualityMetrics{
		Personalization: checkPersonalization(draft, ec.Prospect),
		GrammarStyle:    checkGrammarStyle(draft.Body),
		LengthStructure: checkLengthStructure(draft),
		Professionalism: checkProfessionalism(draft),
		CallToAction:    checkCallToAction(draft.Body),
		CompanySpecific: checkCompanySpecific(draft.Body, ec.CompanyResearch),
	}
	improvements := suggestImprovements(metrics)

	ec.QualityMetrics = &metrics
	// The v1 rule set does not rewrite the draft; the final email is the
	// input draft.

	return outreach.ToolResult{
		Success: true,
		Data: map[string]any{
			"overall_score": metrics.OverallScore(),
			"improvements":  improvements,
		},
		Metadata: map[string]any{
			"checks_performed":     6,
			"improvements_applied": len(improvements),
		},
	}
}

func checkPersonalization(draft outreach.EmailDraft, p outreach.Prospect) outreach.PersonalizationCheck {
	body := strings.ToLower(draft.Body)
	var c outreach.PersonalizationCheck

	if name := strings.ToLower(strings.TrimSpace(p.Name)); name != "" && strings.Contains(body, name) {
		c.ProspectNameUsed = true
		c.Score += 0.2
	}
	if company := strings.ToLower(strings.TrimSpace(p.Company)); company != "" && strings.Contains(body, company) {
		c.CompanyMentioned = true
		c.Score += 0.2
	}
	if position := strings.ToLower(strings.TrimSpace(p.PositionOrRole())); position != "" && strings.Contains(body, position) {
		c.PositionMentioned = true
		c.Score += 0.2
	}

	genericCount := 0
	for _, phrase := range genericPhrases {
		if strings.Contains(body, phrase) {
			genericCount++
		}
	}
	if genericCount < 2 {
		c.SpecificDetails = true
		c.Score += 0.4
	}
	return c
}

func checkGrammarStyle(body string) outreach.GrammarStyleCheck {
	c := outreach.GrammarStyleCheck{SentenceLength: "good", ToneAppropriate: true}

	parts := sentenceSplitRe.Split(body, -1)
	totalWords := 0
	for _, sentence := range parts {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		words := strings.Fields(sentence)
		totalWords += len(words)

		iCount := 0
		for _, w := range words {
			if w == "I" {
				iCount++
			}
		}
		if iCount > 3 {
			c.GrammarErrors++
		}
		if len(words) > 25 {
			c.GrammarErrors++
		}
	}

	avg := float64(totalWords) / float64(max(len(parts), 1))
	if avg > 20 {
		c.SentenceLength = "long"
	} else if avg < 8 {
		c.SentenceLength = "short"
	}

	c.Score = 1.0 - float64(c.GrammarErrors)*0.1
	if c.Score < 0 {
		c.Score = 0
	}
	return c
}

func checkLengthStructure(draft outreach.EmailDraft) outreach.LengthStructureCheck {
	c := outreach.LengthStructureCheck{
		BodyLength:        len(draft.Body),
		SubjectLength:     len(draft.Subject),
		Paragraphs:        len(strings.Split(draft.Body, "\n\n")),
		LengthAppropriate: true,
		StructureGood:     true,
	}

	if c.BodyLength < 100 || c.BodyLength > 500 {
		c.LengthAppropriate = false
	}
	if c.SubjectLength < 10 || c.SubjectLength > 60 {
		c.LengthAppropriate = false
	}
	if c.Paragraphs < 3 || c.Paragraphs > 8 {
		c.StructureGood = false
	}

	if c.LengthAppropriate {
		c.Score += 0.5
	}
	if c.StructureGood {
		c.Score += 0.5
	}
	return c
}

func checkProfessionalism(draft outreach.EmailDraft) outreach.ProfessionalismCheck {
	body := strings.ToLower(draft.Body)
	subject := strings.ToLower(draft.Subject)

	c := outreach.ProfessionalismCheck{
		ProfessionalTone:     true,
		NoSpamWords:          true,
		AppropriateFormality: true,
	}
	for _, word := range spamWords {
		if strings.Contains(body, word) || strings.Contains(subject, word) {
			c.NoSpamWords = false
			break
		}
	}
	for _, word := range informalWords {
		if strings.Contains(body, word) {
			c.AppropriateFormality = false
			break
		}
	}

	if c.ProfessionalTone {
		c.Score += 0.3
	}
	if c.NoSpamWords {
		c.Score += 0.4
	}
	if c.AppropriateFormality {
		c.Score += 0.3
	}
	return c
}

func checkCallToAction(body string) outreach.CallToActionCheck {
	lower := strings.ToLower(body)
	var c outreach.CallToActionCheck

	for _, indicator := range ctaIndicators {
		if strings.Contains(lower, indicator) {
			c.HasCTA = true
			break
		}
	}
	c.CTAClear = c.HasCTA
	for _, indicator := range ctaSpecifics {
		if strings.Contains(lower, indicator) {
			c.CTASpecific = true
			break
		}
	}

	if c.HasCTA {
		c.Score += 0.4
	}
	if c.CTAClear {
		c.Score += 0.3
	}
	if c.CTASpecific {
		c.Score += 0.3
	}
	return c
}

func checkCompanySpecific(body string, research *outreach.CompanyResearch) outreach.CompanySpecificCheck {
	lower := strings.ToLower(body)
	var c outreach.CompanySpecificCheck

	if research != nil {
		for _, value := range research.Values {
			if strings.Contains(lower, strings.ToLower(value)) {
				c.CompanyValuesMentioned = true
				break
			}
		}
	newsLoop:
		for _, item := range research.RecentNews {
			words := strings.Fields(strings.ToLower(item))
			if len(words) > 3 {
				words = words[:3]
			}
			for _, word := range words {
				if strings.Contains(lower, word) {
					c.RecentNewsMentioned = true
					break newsLoop
				}
			}
		}
		if industry := strings.ToLower(research.Industry); industry != "" && strings.Contains(lower, industry) {
			c.IndustrySpecific = true
		}
	}

	if c.CompanyValuesMentioned {
		c.Score += 0.4
	}
	if c.RecentNewsMentioned {
		c.Score += 0.4
	}
	if c.IndustrySpecific {
		c.Score += 0.2
	}
	return c
}

func suggestImprovements(m outreach.QualityMetrics) []string {
	var out []string
	if m.Personalization.Score < 0.7 {
		out = append(out, "Add more specific details about the company and role")
	}
	if m.GrammarStyle.GrammarErrors > 0 {
		out = append(out, "Review sentence structure and grammar")
	}
	if !m.LengthStructure.LengthAppropriate {
		if m.LengthStructure.BodyLength < 100 {
			out = append(out, "Add more detail to make email more substantial")
		} else {
			out = append(out, "Consider shortening email for better readability")
		}
	}
	if !m.Professionalism.NoSpamWords {
		out = append(out, "Remove marketing language and focus on professional tone")
	}
	if !m.CallToAction.HasCTA {
		out = append(out, "Add a clear call-to-action")
	} else if !m.CallToAction.CTASpecific {
		out = append(out, "Make call-to-action more specific with time/action")
	}
	return out
}
