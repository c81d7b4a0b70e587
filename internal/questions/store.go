// Package questions loads and validates the question set used by a quiz session.
package questions

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/quizbit/internal/session"
)

//go:embed quiz.json
var defaultSet []byte

//go:embed schema.json
var schemaDoc []byte

const schemaURL = "schema://question-set.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Record is the on-disk form of one question.
type Record struct {
	Text        string   `json:"text"`
	OptionList  []string `json:"optionList"`
	Answer      []int    `json:"answer"`
	Description string   `json:"description"`
}

// ValidationError reports a question that breaks the record invariants.
type ValidationError struct {
	Index   int    // Position of the question in the set (-1 for the whole set)
	Field   string // Offending field
	Message string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("question set: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("question %d: %s: %s", e.Index, e.Field, e.Message)
}

// Default returns the question set embedded in the binary.
func Default() ([]session.Question, error) {
	qs, err := Parse(defaultSet)
	if err != nil {
		return nil, fmt.Errorf("embedded question set: %w", err)
	}
	return qs, nil
}

// Load reads the question set at path, or the embedded set when path is empty.
func Load(path string) ([]session.Question, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question set: %w", err)
	}
	qs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return qs, nil
}

// Parse validates raw JSON against the question set schema and converts it
// into session questions. Answer indices are returned sorted.
func Parse(data []byte) ([]session.Question, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode question set: %w", err)
	}
	if len(records) == 0 {
		return nil, &ValidationError{Index: -1, Field: "questions", Message: "set is empty"}
	}

	out := make([]session.Question, 0, len(records))
	for i, r := range records {
		if err := validateRecord(i, r); err != nil {
			return nil, err
		}
		answer := slices.Clone(r.Answer)
		slices.Sort(answer)
		out = append(out, session.Question{
			Text:        r.Text,
			Options:     slices.Clone(r.OptionList),
			Answer:      answer,
			Description: r.Description,
		})
	}
	return out, nil
}

// validateRecord checks the invariants the schema cannot express.
func validateRecord(i int, r Record) error {
	if len(r.OptionList) == 0 {
		return &ValidationError{Index: i, Field: "optionList", Message: "must not be empty"}
	}
	if len(r.Answer) == 0 {
		return &ValidationError{Index: i, Field: "answer", Message: "must not be empty"}
	}
	if len(r.Answer) > len(r.OptionList) {
		return &ValidationError{Index: i, Field: "answer", Message: "more answers than options"}
	}
	seen := make(map[int]bool, len(r.Answer))
	for _, a := range r.Answer {
		if a < 0 || a >= len(r.OptionList) {
			return &ValidationError{
				Index:   i,
				Field:   "answer",
				Message: fmt.Sprintf("index %d out of range [0, %d)", a, len(r.OptionList)),
			}
		}
		if seen[a] {
			return &ValidationError{Index: i, Field: "answer", Message: fmt.Sprintf("duplicate index %d", a)}
		}
		seen[a] = true
	}
	return nil
}

func validateSchema(data []byte) error {
	sch, err := questionSetSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// questionSetSchema compiles the embedded schema once.
func questionSetSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaDoc))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
