package internal

import _ "embed"

// Instruction templates for the external text-generation capability.
// Placeholders ({{INPUT}}, {{CONTEXT}}, {{QUESTION}}, {{DATE}}) are
// substituted with plain string replacement before the call.

//go:embed prompts/classification.txt
var classificationPrompt string

//go:embed prompts/query.txt
var queryPrompt string

//go:embed prompts/daily_digest.txt
var dailyDigestPrompt string

//go:embed prompts/weekly_digest.txt
var weeklyDigestPrompt string
