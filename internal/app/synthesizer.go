package app

import (
	"context"
	"strings"

	"webqa/internal/ai"
)

// RefusalAnswer is what the model is told to reply when the context cannot answer the question.
const RefusalAnswer = "I don't have enough information to answer this question based on the ingested content."

const groundingInstruction = "You are a helpful assistant that answers questions based ONLY on the provided information.\n" +
	"If the information needed to answer the question is not contained in the provided context, " +
	"respond with \"" + RefusalAnswer + "\"\n" +
	"Do not use prior knowledge."

type chatCompleter interface {
	Complete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage) (string, error)
}

// Synthesizer turns retrieved chunks into a grounded answer.
type Synthesizer struct {
	llm    chatCompleter
	config ai.ChatConfig
}

// NewSynthesizer pins sampling temperature to zero so identical prompts give identical answers.
func NewSynthesizer(llm chatCompleter, cfg ai.ChatConfig) *Synthesizer {
	cfg.Temperature = 0
	return &Synthesizer{llm: llm, config: cfg}
}

// Answer asks the completion model to answer question from contextChunks only.
func (s *Synthesizer) Answer(ctx context.Context, question string, contextChunks []string) (string, error) {
	messages := []ai.ChatMessage{
		{Role: "user", Content: BuildPrompt(question, contextChunks)},
	}
	answer, err := s.llm.Complete(ctx, s.config, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// BuildPrompt lays out the grounding instruction, the context chunks separated by blank
// lines, and the question.
func BuildPrompt(question string, contextChunks []string) string {
	var b strings.Builder
	b.WriteString(groundingInstruction)
	b.WriteString("\n\nContext information:\n")
	b.WriteString(strings.Join(contextChunks, "\n\n"))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:")
	return b.String()
}
