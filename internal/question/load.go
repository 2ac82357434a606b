package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set is the envelope used by question files and generator responses.
type Set struct {
	Questions []Raw `json:"questions" yaml:"questions"`
}

// LoadFile reads, parses, and validates a question file. JSON and YAML files
// may hold either a bare list of questions or a {questions: [...]} envelope.
func LoadFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}
	raws, err := parseFile(data, path)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, &SchemaError{Issues: []Issue{{Field: "questions", Message: "must include at least one entry"}}}
	}
	return ValidateAll(raws)
}

// SaveFile writes questions as a {questions: [...]} envelope, choosing the
// encoding from the file extension.
func SaveFile(path string, questions []Question) error {
	data, err := Encode(questions, path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create question dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write question file: %w", err)
	}
	return nil
}

// Encode renders questions as JSON, or YAML when path ends in .yml/.yaml.
func Encode(questions []Question, path string) ([]byte, error) {
	raws := make([]Raw, 0, len(questions))
	for _, q := range questions {
		raws = append(raws, q.ToRaw())
	}
	set := Set{Questions: raws}
	if isYAMLPath(path) {
		data, err := yaml.Marshal(set)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

func parseFile(data []byte, path string) ([]Raw, error) {
	if isYAMLPath(path) {
		return parseYAML(data)
	}
	return ParseJSON(data)
}

// ParseJSON decodes a bare list or an envelope of raw question records.
func ParseJSON(data []byte) ([]Raw, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raws []Raw
		if err := decodeSingleJSON(trimmed, &raws); err != nil {
			return nil, err
		}
		return raws, nil
	}
	var set Set
	if err := decodeSingleJSON(trimmed, &set); err != nil {
		return nil, err
	}
	return set.Questions, nil
}

func decodeSingleJSON(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse json: multiple documents are not supported")
		}
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}

func parseYAML(data []byte) ([]Raw, error) {
	var root yaml.Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	var target any = &Set{}
	var raws []Raw
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind == yaml.SequenceNode {
		target = &raws
	}
	// Re-encode the node so KnownFields applies to the typed decode.
	encoded, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	strict := yaml.NewDecoder(bytes.NewReader(encoded))
	strict.KnownFields(true)
	if err := strict.Decode(target); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if set, ok := target.(*Set); ok {
		return set.Questions, nil
	}
	return raws, nil
}
