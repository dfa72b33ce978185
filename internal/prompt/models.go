package prompt

// RouterPromptVars holds variables for the query router prompt
type RouterPromptVars struct {
	Query      string
	HasProfile bool
	TargetRole string
}

// AnalyzerPromptVars holds variables for the profile analysis prompt
type AnalyzerPromptVars struct {
	CurrentDate        string
	ProfileSummary     string
	CompletenessReport string
	DateIssues         string
	SkillsQuality      string
	MemoryContext      string
	Query              string
}

// MatcherPromptVars holds variables for the job matching prompt
type MatcherPromptVars struct {
	ProfileSummary string
	JobTitle       string
	JobDescription string
	MatchScore     string
	MatchedSkills  string
	MissingSkills  string
	MemoryContext  string
	Query          string
}

// ContentPromptVars holds variables for the content rewriting prompt
type ContentPromptVars struct {
	Section       string
	SectionText   string
	Priorities    string
	QuickWins     string
	TargetRole    string
	MemoryContext string
	Query         string
}

// CounselorPromptVars holds variables for the comprehensive career prompt
type CounselorPromptVars struct {
	ProfileSummary string
	SkillEvolution string
	TargetRole     string
	CareerGoals    string
	MemoryContext  string
	Query          string
}

// ConversationalPromptVars holds variables for the lightweight advice prompt
type ConversationalPromptVars struct {
	ProfileSummary string
	MemoryContext  string
	Query          string
}

// FollowUpPromptVars holds variables for the follow-up question prompt
type FollowUpPromptVars struct {
	Branch       string
	ReplySummary string
	HasProfile   bool
}
