package domain

type Branch string

const (
	BranchProfileAnalysis   Branch = "profile_analysis"
	BranchJobMatching       Branch = "job_matching"
	BranchContentGeneration Branch = "content_generation"
	BranchCareerCounseling  Branch = "career_counseling"
	BranchUnknown           Branch = "unknown"
)

func (b Branch) String() string {
	return string(b)
}

func (b Branch) IsValid() bool {
	switch b {
	case BranchProfileAnalysis, BranchJobMatching, BranchContentGeneration, BranchCareerCounseling:
		return true
	default:
		return false
	}
}

// DisplayName returns the branch name as shown in the chat UI
func (b Branch) DisplayName() string {
	switch b {
	case BranchProfileAnalysis:
		return "Profile Analysis"
	case BranchJobMatching:
		return "Job Matching"
	case BranchContentGeneration:
		return "Content Optimization"
	case BranchCareerCounseling:
		return "Career Counseling"
	default:
		return "Assistant"
	}
}

// RouteSource identifies which routing stage produced a decision
type RouteSource string

const (
	RouteSourceKeyword RouteSource = "keyword"
	RouteSourceLLM     RouteSource = "llm"
	RouteSourceCache   RouteSource = "cache"
	RouteSourceDefault RouteSource = "default"
)

type RouteDecision struct {
	Branch     Branch      `json:"branch"`
	Confidence float64     `json:"confidence"`
	Reasoning  string      `json:"reasoning"`
	Source     RouteSource `json:"source"`
}
