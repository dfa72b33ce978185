package prompt

import "fmt"

// BuildFollowUpPrompt builds the follow-up question suggestion prompt
func BuildFollowUpPrompt(vars FollowUpPromptVars) string {
	profileState := "has a loaded profile"
	if !vars.HasProfile {
		profileState = "has not loaded a profile yet"
	}

	return fmt.Sprintf(`You suggest follow-up questions in a LinkedIn optimization chat.
The user %s and just received a %s response summarized below.

## Last Response Summary:
%s

## Task:
Suggest exactly 3 follow-up questions the user would plausibly ask next.

## Response Format:
1. <question>
2. <question>
3. <question>

**Rules**:
- Each question under 90 characters
- Questions must be answerable by this assistant (profile analysis, job matching, rewriting, career advice)
- No duplicates of what was just answered
- Numbered list only, no other text`,
		profileState,
		vars.Branch,
		vars.ReplySummary,
	)
}
