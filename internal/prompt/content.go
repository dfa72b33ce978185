package prompt

import "fmt"

// BuildContentPrompt builds the section rewriting prompt. The reply must
// follow the labeled-block contract parsed by the content agent.
func BuildContentPrompt(vars ContentPromptVars) string {
	targetRole := vars.TargetRole
	if targetRole == "" {
		targetRole = "their current field"
	}

	return fmt.Sprintf(`You are a LinkedIn content strategist rewriting profile sections.

## Section to Improve: %s

## Current Text:
%s

## Section Priorities (computed):
%s

## Quick Wins (computed):
%s

## Target Role: %s

## Conversation Context:
%s

## User Request:
"%s"

## Response Format (labeled blocks, in this exact order):

REWRITTEN:
<the full rewritten section text, ready to paste into LinkedIn>

IMPROVEMENTS:
- <what changed and why, one bullet per change>

KEYWORDS:
- <searchable keywords now present in the text>

CREDIBILITY:
- <claims that need numbers or proof the user must fill in>

TIPS:
- <2-4 section-specific writing tips>

**Rules**:
- REWRITTEN must respect LinkedIn's length limits (headline 220 chars, about 2600 chars)
- Use first person for about sections, no pronoun headline style for headlines
- Never invent employers, titles, dates, or metrics; mark unknowns as [X]
- Keep every label line exactly as written above`,
		vars.Section,
		vars.SectionText,
		vars.Priorities,
		vars.QuickWins,
		targetRole,
		vars.MemoryContext,
		vars.Query,
	)
}
