package domain

// SectionScore is one section's contribution to the completeness score
type SectionScore struct {
	Section string  `json:"section"`
	Earned  float64 `json:"earned"`
	Weight  int     `json:"weight"`
}

// DateIssue flags an experience entry with an implausible date range
type DateIssue struct {
	Section string `json:"section"`
	Company string `json:"company"`
	Problem string `json:"problem"`
}

// SkillsQuality summarizes how well the skill list is backed by evidence
type SkillsQuality struct {
	Total     int      `json:"total"`
	Endorsed  int      `json:"endorsed"`
	Linked    int      `json:"linked"`
	Orphans   []string `json:"orphans"`
	ProofRate float64  `json:"proof_rate"`
}

type ProfileAnalysis struct {
	Completeness    int            `json:"completeness"`
	Grade           string         `json:"grade"`
	SectionScores   []SectionScore `json:"section_scores"`
	DateIssues      []DateIssue    `json:"date_issues"`
	SkillsQuality   SkillsQuality  `json:"skills_quality"`
	Recommendations []string       `json:"recommendations"`
	Narrative       string         `json:"narrative"`
}

// MatchConfidence bands for the skill-match score
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

type MatchReport struct {
	Score               float64      `json:"score"`
	Confidence          string       `json:"confidence"`
	Similarity          float64      `json:"similarity"`
	MatchedSkills       []string     `json:"matched_skills"`
	MissingSkills       []string     `json:"missing_skills"`
	RelevantExperiences []Experience `json:"relevant_experiences"`
	Improvements        []string     `json:"improvements"`
	JobTitle            string       `json:"job_title"`
	JDSource            JDSource     `json:"jd_source"`
	Narrative           string       `json:"narrative"`
}

// Section priority levels for the content rewriter
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type SectionPriority struct {
	Section  string `json:"section"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

type ContentRevision struct {
	Section          string            `json:"section"`
	Priorities       []SectionPriority `json:"priorities"`
	QuickWins        []string          `json:"quick_wins"`
	Rewritten        string            `json:"rewritten"`
	Improvements     []string          `json:"improvements"`
	Keywords         []string          `json:"keywords"`
	CredibilityNotes []string          `json:"credibility_notes"`
	Tips             []string          `json:"tips"`
	Narrative        string            `json:"narrative"`
}

// SkillEvolution describes how the skill set developed across roles
type SkillEvolution struct {
	Recent          []string `json:"recent"`
	Older           []string `json:"older"`
	Consistent      []string `json:"consistent"`
	AcquisitionRate float64  `json:"acquisition_rate"`
	CareerYears     float64  `json:"career_years"`
}

type CareerAdvice struct {
	Comprehensive  bool           `json:"comprehensive"`
	SkillEvolution SkillEvolution `json:"skill_evolution"`
	Gaps           []string       `json:"gaps"`
	Resources      []string       `json:"resources"`
	Steps          []string       `json:"steps"`
	Timeline       string         `json:"timeline"`
	Narrative      string         `json:"narrative"`
}
