package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"quizgen/internal/question"
)

// Schema is the subset of JSON Schema used to describe generator responses.
type Schema struct {
	Type                 string            `json:"type,omitempty"`
	Description          string            `json:"description,omitempty"`
	Enum                 []any             `json:"enum,omitempty"`
	Properties           map[string]Schema `json:"properties,omitempty"`
	Items                *Schema           `json:"items,omitempty"`
	Required             []string          `json:"required,omitempty"`
	MinItems             *int              `json:"minItems,omitempty"`
	AdditionalProperties *Schema           `json:"additionalProperties,omitempty"`
}

func objectSchema(properties map[string]Schema, required ...string) Schema {
	return Schema{Type: "object", Properties: properties, Required: required}
}

func arraySchema(items Schema, minItems int) Schema {
	return Schema{Type: "array", Items: &items, MinItems: &minItems}
}

func stringSchema(description string) Schema {
	return Schema{Type: "string", Description: description}
}

// ResponseSchema describes the {"questions": [...]} envelope expected for
// questions of type t. Every record's questionType is pinned to t.
func ResponseSchema(t question.Type) Schema {
	properties := map[string]Schema{
		"id":           stringSchema("معرف فريد للسؤال"),
		"questionText": stringSchema("نص السؤال"),
		"questionType": {
			Type:        "string",
			Enum:        []any{string(t)},
			Description: fmt.Sprintf("نوع السؤال يجب أن يكون '%s'", t),
		},
		"explanation": stringSchema("شرح موجز للإجابة الصحيحة"),
	}
	required := []string{"questionText", "questionType", "correctAnswer"}

	switch t {
	case question.Matching:
		properties["stems"] = arraySchema(stringSchema(""), 1)
		properties["options"] = arraySchema(stringSchema(""), 1)
		text := stringSchema("")
		properties["correctAnswer"] = Schema{
			Type:                 "object",
			Description:          "كائن يربط كل عنصر من \"stems\" بالإجابة الصحيحة من \"options\".",
			AdditionalProperties: &text,
		}
		required = append(required, "stems", "options")
	case question.MultipleChoice, question.CauseAndEffect:
		properties["options"] = arraySchema(stringSchema(""), 2)
		properties["correctAnswer"] = stringSchema("الإجابة الصحيحة كنص.")
		required = append(required, "options")
	case question.TrueFalse:
		properties["correctAnswer"] = Schema{Type: "boolean", Description: "الإجابة الصحيحة (true للصواب, false للخطأ)."}
	case question.FillInTheBlank:
		properties["correctAnswer"] = stringSchema("الكلمة أو العبارة المفقودة الصحيحة.")
	}

	return objectSchema(map[string]Schema{
		"questions": arraySchema(objectSchema(properties, required...), 1),
	}, "questions")
}

// compileSchema turns a Schema into a validator.
func compileSchema(schema Schema) (*jsonschema.Schema, error) {
	payload, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	const url = "quizgen://response.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(payload)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}

// decodeDocument parses content into the generic form the validator checks.
// Numbers stay json.Number so integer constraints see the literal value.
func decodeDocument(content string) (any, error) {
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()
	var document any
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("decode response: unexpected data after the JSON document")
	}
	return document, nil
}
