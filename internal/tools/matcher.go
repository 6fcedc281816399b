package tools

import (
	"context"
	"strings"

	"github.com/shpitdev/cold-outreach-pipeline/internal/config"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

// skillKeywords is the fixed vocabulary mined from job descriptions. The
// slice order fixes the order of direct and missing matches.
var skillKeywords = []string{
	"Python", "JavaScript", "Java", "C++", "React", "Node.js", "Django",
	"AWS", "Docker", "Kubernetes", "SQL", "MongoDB", "Redis",
	"Machine Learning", "AI", "Data Science", "DevOps", "Agile",
	"REST API", "GraphQL", "Microservices", "CI/CD",
}

// skillRelations maps a skill to its adjacent skills. Relation order fixes
// the order of related matches.
var skillRelations = []struct {
	skill   string
	related []string
}{
	{"Python", []string{"Django", "Flask", "FastAPI", "Pandas", "NumPy"}},
	{"JavaScript", []string{"React", "Node.js", "Vue.js", "Angular", "TypeScript"}},
	{"Machine Learning", []string{"AI", "Deep Learning", "Data Science", "TensorFlow", "PyTorch"}},
	{"AWS", []string{"Cloud Computing", "Docker", "Kubernetes", "DevOps"}},
	{"SQL", []string{"Database", "PostgreSQL", "MySQL", "MongoDB"}},
}

// valuePropositions is the fixed closing list on every strategy.
var valuePropositions = []string{
	"Immediate contribution to technical challenges",
	"Proven track record of delivering results",
	"Strong problem-solving and analytical skills",
}

// Matcher lines the sender's profile up against the prospect's job
// description and derives the personalization strategy.
type Matcher struct {
	Profile *config.UserProfile
}

func NewMatcher(profile *config.UserProfile) *Matcher {
	return &Matcher{Profile: profile}
}

func (t *Matcher) Name() string { return "profile_matcher" }

func (t *Matcher) Description() string {
	return "Match user profile with job requirements for personalization"
}

func (t *Matcher) Category() outreach.Category { return outreach.CategoryPersonalization }

func (t *Matcher) RequiredContextKeys() []string { return []string{outreach.KeyProspectData} }

func (t *Matcher) OptionalContextKeys() []string {
	return []string{outreach.KeyProfileMatches, outreach.KeyPersonalizationStrategy}
}

func (t *Matcher) Execute(_ context.Context, ec *outreach.Context, inputs map[string]any) outreach.ToolResult {
	if t.Profile == nil {
		return outreach.Failure("Failed to load user profile")
	}

	jobRequirements, _ := inputs["job_requirements"].(string)
	if strings.TrimSpace(jobRequirements) == "" {
		jobRequirements = ec.Prospect.JobDescription
	}
	position, _ := inputs["position"].(string)
	if strings.TrimSpace(position) == "" {
		position = ec.Prospect.PositionOrRole()
	}

	matches := t.match(jobRequirements, position)
	strategy := deriveStrategy(matches)

	ec.ProfileMatches = &matches
	ec.Strategy = &strategy

	return outreach.ToolResult{
		Success: true,
		Data: map[string]any{
			"direct_matches":   matches.DirectMatches,
			"skill_coverage":   matches.SkillCoverage,
			"match_confidence": MatchConfidence(matches),
		},
		Metadata: map[string]any{
			"profile_loaded":     true,
			"matching_algorithm": "skill_based",
		},
	}
}

func (t *Matcher) match(jobRequirements, position string) outreach.ProfileMatches {
	userSkills := t.Profile.SkillSet()
	userSet := make(map[string]bool, len(userSkills))
	for _, s := range userSkills {
		userSet[s] = true
	}

	required := extractSkills(jobRequirements)
	requiredSet := make(map[string]bool, len(required))
	for _, s := range required {
		requiredSet[s] = true
	}

	matches := outreach.ProfileMatches{}
	for _, s := range required {
		if userSet[s] {
			matches.DirectMatches = append(matches.DirectMatches, s)
		} else {
			matches.MissingSkills = append(matches.MissingSkills, s)
		}
	}
	for _, s := range userSkills {
		if !requiredSet[s] {
			matches.UniqueStrengths = append(matches.UniqueStrengths, s)
		}
	}
	matches.RelatedMatches = relatedMatches(userSet, requiredSet)
	matches.AchievementMatches = t.achievementMatches(jobRequirements)
	matches.ExperienceRelevance = t.experienceRelevance(position)
	matches.SkillCoverage = float64(len(matches.DirectMatches)) / float64(max(len(required), 1))
	return matches
}

// extractSkills returns keywords found in the text, in vocabulary order.
func extractSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range skillKeywords {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	return found
}

// relatedMatches walks the adjacency list in declaration order, collecting
// required skills adjacent to a user skill, deduplicated.
func relatedMatches(userSet, requiredSet map[string]bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rel := range skillRelations {
		if !userSet[rel.skill] {
			continue
		}
		for _, adj := range rel.related {
			if requiredSet[adj] && !seen[adj] {
				seen[adj] = true
				out = append(out, adj)
			}
		}
	}
	return out
}

func (t *Matcher) achievementMatches(jobRequirements string) []string {
	tokens := strings.Fields(strings.ToLower(jobRequirements))
	var out []string
	for _, a := range t.Profile.Achievements {
		desc := strings.ToLower(a.Description)
		for _, tok := range tokens {
			if strings.Contains(desc, tok) {
				out = append(out, a.Description)
				break
			}
		}
	}
	return out
}

func (t *Matcher) experienceRelevance(position string) float64 {
	title := strings.ToLower(strings.TrimSpace(t.Profile.PersonalInfo.Title))
	target := strings.ToLower(strings.TrimSpace(position))

	if title != "" && target != "" &&
		(strings.Contains(target, title) || strings.Contains(title, target)) {
		return 0.9
	}
	for _, word := range strings.Fields(title) {
		if strings.Contains(target, word) {
			return 0.7
		}
	}
	return 0.5
}

// MatchConfidence is the weighted sum of coverage and relevance, capped at 1.
func MatchConfidence(m outreach.ProfileMatches) float64 {
	confidence := m.SkillCoverage*0.6 + m.ExperienceRelevance*0.4
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}

func deriveStrategy(m outreach.ProfileMatches) outreach.PersonalizationStrategy {
	s := outreach.PersonalizationStrategy{
		ValuePropositions: append([]string(nil), valuePropositions...),
	}

	switch {
	case len(m.DirectMatches) > 0:
		s.PrimaryFocus = "Direct skill match: " + strings.Join(firstN(m.DirectMatches, 3), ", ")
	case len(m.RelatedMatches) > 0:
		s.PrimaryFocus = "Related experience: " + strings.Join(firstN(m.RelatedMatches, 3), ", ")
	default:
		s.PrimaryFocus = "Transferable skills and experience"
	}

	s.KeyHighlights = firstN(m.AchievementMatches, 2)
	if len(m.UniqueStrengths) > 0 {
		s.UniqueAngle = "Unique expertise in " + strings.Join(firstN(m.UniqueStrengths, 2), ", ")
	}
	for _, skill := range firstN(m.DirectMatches, 3) {
		s.ConnectionPoints = append(s.ConnectionPoints, "Experience with "+skill)
	}
	return s
}

func firstN(in []string, n int) []string {
	if len(in) < n {
		n = len(in)
	}
	return append([]string(nil), in[:n]...)
}
