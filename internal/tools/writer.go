package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/shpitdev/cold-outreach-pipeline/internal/config"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

// Writer composes the personalized email draft from research and matches.
type Writer struct {
	Templates  config.TemplateStore
	SenderName string
}

func NewWriter(templates config.TemplateStore, senderName string) *Writer {
	if strings.TrimSpace(senderName) == "" {
		senderName = "John Smith"
	}
	return &Writer{Templates: templates, SenderName: senderName}
}

func (t *Writer) Name() string { return "email_writer" }

func (t *Writer) Description() string {
	return "Write personalized cold emails based on research and personalization data"
}

func (t *Writer) Category() outreach.Category { return outreach.CategoryWriting }

func (t *Writer) RequiredContextKeys() []string {
	return []string{outreach.KeyProspectData, outreach.KeyCompanyResearch, outreach.KeyProfileMatches}
}

func (t *Writer) OptionalContextKeys() []string {
	return []string{outreach.KeyEmailDraft, outreach.KeyPersonalizationStrategy}
}

func (t *Writer) Execute(_ context.Context, ec *outreach.Context, _ map[string]any) outreach.ToolResult {
	if len(t.Templates) == 0 {
		return outreach.Failure("Failed to load email templates")
	}

	research := ec.CompanyResearch
	matches := ec.ProfileMatches

	templateType := selectTemplateType(research.Size)
	subject := composeSubject(templateType, ec.Prospect)
	body := t.composeBody(ec.Prospect, research, matches)

	draft := outreach.EmailDraft{
		Subject:      subject,
		Body:         body,
		TemplateType: templateType,
	}
	ec.EmailDraft = &draft

	return outreach.ToolResult{
		Success: true,
		Data: map[string]any{
			"subject":       draft.Subject,
			"body":          draft.Body,
			"template_type": draft.TemplateType,
		},
		Metadata: map[string]any{
			"template_used": templateType,
			"template_tone": t.Templates.Get(templateType).Tone,
			"email_length":  len(body),
		},
	}
}

// selectTemplateType keys off the research size classification. "Medium to
// Large" contains "large", so it routes to the enterprise template.
func selectTemplateType(size string) string {
	lower := strings.ToLower(size)
	switch {
	case strings.Contains(lower, "startup") || strings.Contains(lower, "early"):
		return outreach.TemplateTechStartup
	case strings.Contains(lower, "enterprise") || strings.Contains(lower, "large"):
		return outreach.TemplateEnterprise
	default:
		return outreach.TemplateProfessionalApplication
	}
}

func composeSubject(templateType string, p outreach.Prospect) string {
	position := p.PositionOrRole()
	switch templateType {
	case outreach.TemplateTechStartup:
		return fmt.Sprintf("Scaling %s's %s - Your Mission Resonates", p.Company, position)
	case outreach.TemplateEnterprise:
		return fmt.Sprintf("Enterprise %s - Reducing Risk for %s", position, p.Company)
	default:
		return fmt.Sprintf("Application for %s at %s", position, p.Company)
	}
}

func (t *Writer) composeBody(p outreach.Prospect, research *outreach.CompanyResearch, matches *outreach.ProfileMatches) string {
	name := p.Name
	if strings.TrimSpace(name) == "" {
		name = "there"
	}
	company := p.Company
	if strings.TrimSpace(company) == "" {
		company = "your company"
	}
	position := p.PositionOrRole()
	if strings.TrimSpace(position) == "" {
		position = "this role"
	}

	parts := []string{
		opening(name, company, research.RecentNews),
		introduction(matches.ExperienceRelevance),
	}
	parts = append(parts, valueBullets(matches)...)
	parts = append(parts,
		companyConnection(research),
		fmt.Sprintf("Would love to discuss how I could help %s scale efficiently in the %s role. Free for a quick call this week?", company, position),
		"Best regards,\n"+t.SenderName,
	)
	return strings.Join(parts, "\n\n")
}

func opening(name, company string, recentNews []string) string {
	if len(recentNews) > 0 {
		return fmt.Sprintf(
			"Hi %s,\n\n%s - congratulations! I've been following %s's growth and am impressed by your innovative approach.",
			name, recentNews[0], company,
		)
	}
	return fmt.Sprintf("Hi %s,\n\nI've been researching %s and am excited about the work you're doing.", name, company)
}

func introduction(experienceRelevance float64) string {
	if experienceRelevance > 0.8 {
		return "I'm a senior software engineer with 7+ years of experience building scalable applications, and I believe my background aligns perfectly with your needs."
	}
	return "I'm a software engineer passionate about solving complex technical challenges, and I'm excited about the opportunity to contribute to your team."
}

func valueBullets(m *outreach.ProfileMatches) []string {
	var bullets []string
	if len(m.DirectMatches) > 0 {
		bullets = append(bullets, "• Deep expertise in "+strings.Join(firstN(m.DirectMatches, 3), ", "))
	}
	for _, achievement := range firstN(m.AchievementMatches, 2) {
		bullets = append(bullets, "• "+achievement)
	}
	if len(m.UniqueStrengths) > 0 {
		bullets = append(bullets, "• Unique perspective with "+strings.Join(firstN(m.UniqueStrengths, 2), ", "))
	}
	return bullets
}

func companyConnection(research *outreach.CompanyResearch) string {
	if len(research.Values) > 0 {
		return fmt.Sprintf(
			"Your values of %s resonate with my approach to building sustainable, scalable solutions.",
			strings.Join(firstN(research.Values, 2), ", "),
		)
	}
	if len(research.Challenges) > 0 {
		return fmt.Sprintf(
			"I'm particularly interested in helping %s and believe my experience could accelerate your objectives.",
			research.Challenges[0],
		)
	}
	return "I'm excited about the opportunity to contribute to your mission and help drive innovation."
}
