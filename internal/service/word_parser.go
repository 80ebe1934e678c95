package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"wordmine-server/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// WordListSchema is the JSON Schema every model answer is validated against.
// It is also embedded verbatim in the prompt's format instructions.
const WordListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "words": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "word": {"type": "string", "description": "English word"},
          "translation": {"type": "string", "description": "Chinese translation"}
        },
        "required": ["word", "translation"]
      }
    }
  },
  "required": ["words"]
}`

// validationSchema relaxes WordListSchema: an answer without "words" is
// accepted and contributes nothing.
const validationSchema = `{
  "type": "object",
  "properties": {
    "words": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "word": {"type": "string"},
          "translation": {"type": "string"}
        },
        "required": ["word", "translation"]
      }
    }
  }
}`

// wordListSchemaID is absolute so validation errors never embed a local path.
const wordListSchemaID = "https://wordmine.local/wordlist.json"

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// JSONWordListParser parses model output that should contain a WordList JSON object.
type JSONWordListParser struct {
	schema *jsonschema.Schema
}

func NewJSONWordListParser() (*JSONWordListParser, error) {
	schema, err := jsonschema.CompileString(wordListSchemaID, validationSchema)
	if err != nil {
		return nil, fmt.Errorf("compile word list schema: %w", err)
	}
	return &JSONWordListParser{schema: schema}, nil
}

// Parse extracts and validates the JSON in raw. A JSON value that is not an
// object yields an empty WordList.
func (p *JSONWordListParser) Parse(raw string) (*domain.WordList, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedModelOutput, err)
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedModelOutput, err)
	}
	if _, ok := doc.(map[string]interface{}); !ok {
		return &domain.WordList{}, nil
	}
	if err := p.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedModelOutput, err)
	}

	var list domain.WordList
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedModelOutput, err)
	}
	return &list, nil
}

// extractJSON strips markdown fences and surrounding prose.
func extractJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	if text == "" {
		return "", errors.New("empty output")
	}
	if json.Valid([]byte(text)) {
		return text, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}
	return "", errors.New("no JSON object found")
}
