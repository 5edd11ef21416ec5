package service

import (
	"context"
	"log"
)

// Invoking abstracts the retrying invoker so handlers and tests can swap in
// fakes.
type Invoking interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// KnowledgeGatherer abstracts the knowledge service.
type KnowledgeGatherer interface {
	Gather(ctx context.Context, query string) string
}

// Pipeline is the shared ask flow: gather knowledge, assemble the prompt,
// invoke generation with retry. The handler variants differ only in how they
// obtain the query and where they deliver the result.
type Pipeline struct {
	knowledge KnowledgeGatherer
	template  PromptTemplate
	invoker   Invoking
}

func NewPipeline(knowledge KnowledgeGatherer, template PromptTemplate, invoker Invoking) *Pipeline {
	return &Pipeline{
		knowledge: knowledge,
		template:  template,
		invoker:   invoker,
	}
}

// Ask runs the full pipeline and returns the assembled prompt alongside the
// generated response.
func (p *Pipeline) Ask(ctx context.Context, query string) (prompt, response string, err error) {
	knowledge := p.knowledge.Gather(ctx, query)
	prompt = p.template.Render(query, knowledge)
	log.Printf("Constructed prompt: %s", prompt)

	response, err = p.invoker.Invoke(ctx, prompt)
	if err != nil {
		return prompt, "", err
	}
	return prompt, response, nil
}
