package agent

import "github.com/careerpilot/linkedin-optimizer-go/internal/domain"

// Static texts served when the model chain is unavailable. The
// deterministic parts of each report are still computed and rendered.
const (
	analysisFallback = "I analyzed your profile structure, and the scores above reflect what I found. " +
		"I couldn't generate personalized commentary right now, so start with the lowest-scoring sections: " +
		"fill in anything empty, expand short sections past a couple of sentences, and make sure every " +
		"experience entry has a description with concrete results."

	matchFallback = "The match score above is based on comparing your skills against the job requirements. " +
		"I couldn't generate detailed commentary right now. As a rule of thumb: address the missing skills " +
		"list first, and weave the matched skills into your headline and experience descriptions so " +
		"recruiters see them immediately."

	contentFallback = "I couldn't draft a rewrite right now. In the meantime: lead with your strongest " +
		"outcome, use concrete numbers where you can, and swap duty-style phrases (\"responsible for\") " +
		"for impact verbs like built, led, delivered, or reduced."

	counselFallback = "I couldn't generate personalized career advice right now. Broadly useful next steps: " +
		"pick one skill gap between you and your target role, close it with a small public project, and " +
		"update your profile as soon as you do."
)

// fallbackFollowUps returns the static follow-up trio for a branch,
// used when the follow-up generation call fails
func fallbackFollowUps(branch domain.Branch) []string {
	switch branch {
	case domain.BranchProfileAnalysis:
		return []string{
			"Which section should I improve first?",
			"How does my profile compare for my target role?",
			"Can you rewrite my headline?",
		}
	case domain.BranchJobMatching:
		return []string{
			"How do I close the missing skill gaps?",
			"Can you tailor my about section to this job?",
			"What similar roles would fit me better?",
		}
	case domain.BranchContentGeneration:
		return []string{
			"Can you make it shorter?",
			"Can you rewrite another section?",
			"Which keywords should I add for recruiters?",
		}
	default:
		return []string{
			"What skills should I learn next?",
			"How do I position myself for a senior role?",
			"Can you analyze my profile?",
		}
	}
}
