package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a JSON Schema a response must satisfy. Providers pass it to
// their native structured output mode; Validate checks the result.
type Schema struct {
	// Name identifies the schema to the provider and keys the compile
	// cache, so it must be unique. Kebab-case, e.g. "progress-insights".
	Name string

	// Description guides generation.
	Description string

	Definition map[string]any
}

// compiled holds compiled schemas by name.
var compiled sync.Map // string -> *jsonschema.Schema

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if c, ok := compiled.Load(s.Name); ok {
		return c.(*jsonschema.Schema), nil
	}

	b, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", s.Name, err)
	}
	c := jsonschema.NewCompiler()
	url := "schema://" + s.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", s.Name, err)
	}

	actual, _ := compiled.LoadOrStore(s.Name, sch)
	return actual.(*jsonschema.Schema), nil
}

// Validate checks that raw is a JSON document accepted by the schema. A nil
// schema accepts anything. Failures are *ErrInvalidResponse.
func (s *Schema) Validate(raw []byte) error {
	if s == nil {
		return nil
	}
	invalid := func(err error) error {
		return &ErrInvalidResponse{Content: json.RawMessage(raw), Err: err}
	}

	sch, err := s.compile()
	if err != nil {
		return invalid(err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("not JSON: %w", err))
	}
	if err := sch.Validate(inst); err != nil {
		return invalid(fmt.Errorf("schema %s: %w", s.Name, err))
	}
	return nil
}
