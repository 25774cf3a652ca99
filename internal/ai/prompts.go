package ai

import (
	_ "embed"
	"strings"
)

//go:embed persona.md
var personaTemplate string

//go:embed questions.md
var questionsTemplate string

// SystemPersona is the system message sent with every question request.
var SystemPersona = strings.TrimSpace(personaTemplate)

// TechQuestionPrompt builds the user message asking for questions about techStack.
func TechQuestionPrompt(techStack string) string {
	template := questionsTemplate
	if strings.TrimSpace(template) == "" {
		template = "Tech stack:\n{{TECH_STACK}}\n\nGenerate 3 to 5 technical questions as a numbered list."
	}
	return strings.ReplaceAll(template, "{{TECH_STACK}}", strings.TrimSpace(techStack))
}
