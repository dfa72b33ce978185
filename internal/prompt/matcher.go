package prompt

import "fmt"

// BuildMatcherPrompt builds the job matching prompt
func BuildMatcherPrompt(vars MatcherPromptVars) string {
	return fmt.Sprintf(`You are a technical recruiter evaluating a candidate against a job description.

## Candidate Profile:
%s

## Job: %s
%s

## Computed Skill Match:
- Match score: %s
- Matched skills: %s
- Missing skills: %s

## Conversation Context:
%s

## User Request:
"%s"

## Instructions:
- Give an honest fit verdict in 2-3 sentences, consistent with the computed score
- Explain which matched skills carry the most weight for this role
- For each missing skill, say whether it is a dealbreaker or learnable on the job
- End with a section titled "Improvement Suggestions:" containing 4-8 bulleted actions that would raise this candidate's fit
- Plain markdown, no preamble`,
		vars.ProfileSummary,
		vars.JobTitle,
		vars.JobDescription,
		vars.MatchScore,
		vars.MatchedSkills,
		vars.MissingSkills,
		vars.MemoryContext,
		vars.Query,
	)
}
