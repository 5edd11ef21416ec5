package service

import "fmt"

// PromptTemplate renders the final prompt from the query and the gathered
// knowledge blob. Rendering is pure: same inputs, byte-identical output.
type PromptTemplate interface {
	Render(query, knowledge string) string
}

// TurnTemplate is the bare Human/Assistant turn format. The knowledge
// section is omitted when the blob is empty.
type TurnTemplate struct{}

func (TurnTemplate) Render(query, knowledge string) string {
	if knowledge == "" {
		return fmt.Sprintf("\n\nHuman: %s\n\nAssistant:", query)
	}
	return fmt.Sprintf("\n\nHuman: %s\n\nRelevant Knowledge Base Content:\n%s\n\nAssistant:", query, knowledge)
}

// AssistantTemplate prepends an instructional preamble before the query and
// knowledge sections.
type AssistantTemplate struct{}

const assistantPreamble = `
You are an intelligent assistant that helps users with their queries based on the provided context.
Given the user query and relevant knowledge base content, generate a detailed and helpful response.

User Query: %s

Relevant Knowledge Base Content:
%s

Assistant:`

func (AssistantTemplate) Render(query, knowledge string) string {
	return fmt.Sprintf(assistantPreamble, query, knowledge)
}

// TemplateForStyle maps a config prompt_style to its template, defaulting to
// the turn format.
func TemplateForStyle(style string) PromptTemplate {
	if style == "assistant" {
		return AssistantTemplate{}
	}
	return TurnTemplate{}
}
