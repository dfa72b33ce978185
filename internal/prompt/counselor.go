package prompt

import "fmt"

// BuildCounselorPrompt builds the comprehensive career planning prompt.
// The reply must carry the section headers parsed by the counselor agent.
func BuildCounselorPrompt(vars CounselorPromptVars) string {
	targetRole := vars.TargetRole
	if targetRole == "" {
		targetRole = "not specified, infer a sensible next role from the profile"
	}
	careerGoals := vars.CareerGoals
	if careerGoals == "" {
		careerGoals = "not specified"
	}

	return fmt.Sprintf(`You are a senior career coach building a development plan.

## Candidate Profile:
%s

## Skill Evolution (computed from role history):
%s

## Target Role: %s
## Stated Goals: %s

## Conversation Context:
%s

## User Request:
"%s"

## Response Format (use these exact section headers):

ASSESSMENT:
<2-3 sentences on where the candidate stands today relative to the target>

SKILL GAPS:
- <gap, most critical first, max 8>

RESOURCES:
- <course, certification, community, or project for closing the gaps, max 6>

ACTION STEPS:
1. <concrete step, max 5, ordered>

TIMELINE:
<one line estimating the transition length in months or years>

**Rules**:
- Ground every gap in the actual profile, cite the evidence ("no cloud experience in any role since 2021")
- Resources must be real and commonly known, no invented course names
- Keep the plan achievable alongside a full-time job`,
		vars.ProfileSummary,
		vars.SkillEvolution,
		targetRole,
		careerGoals,
		vars.MemoryContext,
		vars.Query,
	)
}

// BuildConversationalPrompt builds the lightweight advice prompt used for
// short questions that do not warrant a full plan.
func BuildConversationalPrompt(vars ConversationalPromptVars) string {
	return fmt.Sprintf(`You are a pragmatic career coach in an ongoing chat.

## Candidate Profile:
%s

## Conversation Context:
%s

## Question:
"%s"

## Instructions:
- Answer the question directly in 2-5 short paragraphs
- Reference the candidate's actual background where it strengthens the answer
- No section headers, no bullet spam, conversational but substantive
- If the question needs information you do not have, say what is missing`,
		vars.ProfileSummary,
		vars.MemoryContext,
		vars.Query,
	)
}
