package router

import (
	"strings"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
)

// branchKeywords maps each agent branch to phrases that identify it
// without an LLM round trip. Matching is substring-based over the
// normalized query.
var branchKeywords = map[domain.Branch][]string{
	domain.BranchProfileAnalysis: {
		"analyze my profile",
		"analyse my profile",
		"profile analysis",
		"review my profile",
		"review my linkedin",
		"rate my profile",
		"profile score",
		"profile completeness",
		"how complete",
		"profile feedback",
		"audit my profile",
		"weak points of my profile",
	},
	domain.BranchJobMatching: {
		"job match",
		"match me",
		"match against",
		"match with",
		"match score",
		"am i a fit",
		"am i qualified",
		"qualified for",
		"fit for this",
		"this job description",
		"this jd",
		"this posting",
		"compare my profile",
		"suitability",
	},
	domain.BranchContentGeneration: {
		"rewrite",
		"rephrase",
		"reword",
		"improve my headline",
		"improve my about",
		"improve my summary",
		"better headline",
		"optimize my headline",
		"optimize my about",
		"write my",
		"draft a",
		"draft my",
		"bullet point",
		"make it sound",
	},
	domain.BranchCareerCounseling: {
		"career path",
		"career advice",
		"career roadmap",
		"career goal",
		"career change",
		"transition to",
		"transition into",
		"move into",
		"skill gap",
		"what should i learn",
		"what to learn",
		"next role",
		"grow my career",
		"guidance",
	},
}

// matchKeywords returns the branch whose keyword list matched, but only
// when exactly one branch matched. Ambiguous queries go to the LLM.
func matchKeywords(normalizedQuery string) (domain.Branch, string, bool) {
	var (
		matched domain.Branch
		phrase  string
		count   int
	)

	for branch, keywords := range branchKeywords {
		for _, kw := range keywords {
			if strings.Contains(normalizedQuery, kw) {
				count++
				matched = branch
				phrase = kw
				break
			}
		}
	}

	if count == 1 {
		return matched, phrase, true
	}
	return domain.BranchUnknown, "", false
}
