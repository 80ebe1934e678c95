package service

import (
	"context"
	"fmt"
	"strings"

	"wordmine-server/internal/domain"
)

const vocabularyInstruction = "你是一个英语专家。请从以下学术论文片段中提取出6级难度的词汇。"

var formatInstructions = "The output should be formatted as a JSON instance that conforms to the JSON schema below.\n" +
	"Return only the JSON object, without commentary.\n\n" +
	"Here is the output schema:\n```\n" + WordListSchema + "\n```"

// BuildVocabularyPrompt renders the fixed instruction, the format
// instructions and the chunk text into one prompt.
func BuildVocabularyPrompt(chunk string) string {
	var b strings.Builder
	b.Grow(len(vocabularyInstruction) + len(formatInstructions) + len(chunk) + 32)
	b.WriteString(vocabularyInstruction)
	b.WriteString("\n")
	b.WriteString(formatInstructions)
	b.WriteString("\n内容片段：")
	b.WriteString(chunk)
	return b.String()
}

// LLMVocabularyExtractor asks a language model for the vocabulary of one chunk.
type LLMVocabularyExtractor struct {
	model  domain.LanguageModel
	parser domain.WordListParser
}

func NewLLMVocabularyExtractor(model domain.LanguageModel, parser domain.WordListParser) *LLMVocabularyExtractor {
	return &LLMVocabularyExtractor{
		model:  model,
		parser: parser,
	}
}

func (e *LLMVocabularyExtractor) ExtractWords(ctx context.Context, chunk string) (*domain.WordList, error) {
	raw, err := e.model.Generate(ctx, BuildVocabularyPrompt(chunk))
	if err != nil {
		return nil, fmt.Errorf("language model call failed: %w", err)
	}
	list, err := e.parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	return list, nil
}
