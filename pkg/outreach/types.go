package outreach

import "strings"

// Prospect is one target recipient record. It is immutable across a pipeline
// run; stage tools read it but never rewrite it.
type Prospect struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Company        string `json:"company"`
	Role           string `json:"role"`
	Position       string `json:"position,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
}

// PositionOrRole returns the explicit position when present, else the role.
func (p Prospect) PositionOrRole() string {
	if strings.TrimSpace(p.Position) != "" {
		return p.Position
	}
	return p.Role
}

// CompanyResearch is the research stage output for one company.
type CompanyResearch struct {
	Name              string   `json:"name"`
	Industry          string   `json:"industry"`
	Size              string   `json:"size"`
	RecentNews        []string `json:"recent_news"`
	Culture           string   `json:"culture"`
	Technologies      []string `json:"technologies"`
	Values            []string `json:"values"`
	Challenges        []string `json:"challenges"`
	Opportunities     []string `json:"opportunities"`
	ResearchTimestamp int64    `json:"research_timestamp"`
}

// ProfileMatches is the profile-matcher output: how the sender's profile
// lines up against the prospect's job description.
type ProfileMatches struct {
	DirectMatches       []string `json:"direct_matches"`
	RelatedMatches      []string `json:"related_matches"`
	MissingSkills       []string `json:"missing_skills"`
	UniqueStrengths     []string `json:"unique_strengths"`
	AchievementMatches  []string `json:"achievement_matches"`
	ExperienceRelevance float64  `json:"experience_relevance"`
	SkillCoverage       float64  `json:"skill_coverage"`
}

// PersonalizationStrategy is deterministically derived from ProfileMatches.
type PersonalizationStrategy struct {
	PrimaryFocus      string   `json:"primary_focus"`
	KeyHighlights     []string `json:"key_highlights"`
	UniqueAngle       string   `json:"unique_angle"`
	ConnectionPoints  []string `json:"connection_points"`
	ValuePropositions []string `json:"value_propositions"`
}

// Template types selected from company research.
const (
	TemplateTechStartup             = "tech_startup"
	TemplateEnterprise              = "enterprise"
	TemplateProfessionalApplication = "professional_application"
)

// PersonalizationData records which personalization hooks made it into the
// composed body.
type PersonalizationData struct {
	CompanyMentions     []string `json:"company_mentions"`
	SkillMentions       []string `json:"skill_mentions"`
	AchievementMentions []string `json:"achievement_mentions"`
}

// EmailDraft is the composed email for one prospect.
type EmailDraft struct {
	Subject             string              `json:"subject"`
	Body                string              `json:"body"`
	TemplateType        string              `json:"template_type"`
	PersonalizationData PersonalizationData `json:"personalization_data"`
}

// PersonalizationCheck scores how personalized the draft is.
type PersonalizationCheck struct {
	ProspectNameUsed  bool    `json:"prospect_name_used"`
	CompanyMentioned  bool    `json:"company_mentioned"`
	PositionMentioned bool    `json:"position_mentioned"`
	SpecificDetails   bool    `json:"specific_details"`
	Score             float64 `json:"score"`
}

// GrammarStyleCheck scores sentence structure heuristics.
type GrammarStyleCheck struct {
	GrammarErrors   int     `json:"grammar_errors"`
	SpellingErrors  int     `json:"spelling_errors"`
	SentenceLength  string  `json:"sentence_length"`
	ToneAppropriate bool    `json:"tone_appropriate"`
	Score           float64 `json:"score"`
}

// LengthStructureCheck scores body/subject length and paragraph structure.
type LengthStructureCheck struct {
	BodyLength        int     `json:"body_length"`
	SubjectLength     int     `json:"subject_length"`
	Paragraphs        int     `json:"paragraphs"`
	LengthAppropriate bool    `json:"length_appropriate"`
	StructureGood     bool    `json:"structure_good"`
	Score             float64 `json:"score"`
}

// ProfessionalismCheck scores spam-word and formality heuristics.
type ProfessionalismCheck struct {
	ProfessionalTone     bool    `json:"professional_tone"`
	NoSpamWords          bool    `json:"no_spam_words"`
	AppropriateFormality bool    `json:"appropriate_formality"`
	Score                float64 `json:"score"`
}

// CallToActionCheck scores call-to-action presence and specificity.
type CallToActionCheck struct {
	HasCTA      bool    `json:"has_cta"`
	CTAClear    bool    `json:"cta_clear"`
	CTASpecific bool    `json:"cta_specific"`
	Score       float64 `json:"score"`
}

// CompanySpecificCheck scores how much of the research surfaced in the body.
type CompanySpecificCheck struct {
	CompanyValuesMentioned bool    `json:"company_values_mentioned"`
	RecentNewsMentioned    bool    `json:"recent_news_mentioned"`
	IndustrySpecific       bool    `json:"industry_specific"`
	Score                  float64 `json:"score"`
}

// QualityMetrics holds the six scored quality categories. The category set
// and score formulas are a fixed contract.
type QualityMetrics struct {
	Personalization PersonalizationCheck `json:"personalization"`
	GrammarStyle    GrammarStyleCheck    `json:"grammar_style"`
	LengthStructure LengthStructureCheck `json:"length_structure"`
	Professionalism ProfessionalismCheck `json:"professionalism"`
	CallToAction    CallToActionCheck    `json:"call_to_action"`
	CompanySpecific CompanySpecificCheck `json:"company_specific"`
}

// OverallScore is the arithmetic mean of the six category scores.
func (q QualityMetrics) OverallScore() float64 {
	sum := q.Personalization.Score +
		q.GrammarStyle.Score +
		q.LengthStructure.Score +
		q.Professionalism.Score +
		q.CallToAction.Score +
		q.CompanySpecific.Score
	return sum / 6
}

// Send statuses for SendResult.
const (
	SendStatusSent   = "sent"
	SendStatusDraft  = "draft"
	SendStatusFailed = "failed"
)

// SendResult is the mail-drafter stage output.
type SendResult struct {
	Success    bool   `json:"success"`
	MessageID  string `json:"message_id,omitempty"`
	SentAt     int64  `json:"sent_at,omitempty"`
	Recipient  string `json:"recipient"`
	Subject    string `json:"subject"`
	BodyLength int    `json:"body_length"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// Result statuses for per-prospect pipeline results.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the per-prospect pipeline outcome. The prospect is carried
// verbatim; Email and DraftResult are set only on the paths that produce them.
type Result struct {
	Success     bool        `json:"success"`
	Prospect    Prospect    `json:"prospect"`
	Email       *EmailDraft `json:"email,omitempty"`
	DraftResult *SendResult `json:"draft_result,omitempty"`
	Error       string      `json:"error,omitempty"`
	FailedPhase string      `json:"failed_phase,omitempty"`
	Timestamp   int64       `json:"timestamp"`
	Status      string      `json:"status"`
}
